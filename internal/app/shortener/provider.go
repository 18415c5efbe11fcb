package shortener

// ProviderID 外部短链服务商标识，取值是封闭集合
type ProviderID string

const (
	ClckRu   ProviderID = "clck_ru"
	DaGd     ProviderID = "da_gd"
	OsdbLink ProviderID = "osdb_link"
	IsGd     ProviderID = "is_gd"
	VGd      ProviderID = "v_gd"
	TinyURL  ProviderID = "tinyurl"
)

var providers = []ProviderID{ClckRu, DaGd, OsdbLink, IsGd, VGd, TinyURL}

var displayNames = map[ProviderID]string{
	ClckRu:   "clck.ru",
	DaGd:     "da.gd",
	OsdbLink: "osdb.link",
	IsGd:     "is.gd",
	VGd:      "v.gd",
	TinyURL:  "tinyurl.com",
}

// Providers 返回全部服务商，顺序即键盘顺序
func Providers() []ProviderID {
	out := make([]ProviderID, len(providers))
	copy(out, providers)
	return out
}

// AliasProviders 返回支持自定义别名的服务商
func AliasProviders() []ProviderID {
	return []ProviderID{IsGd, VGd}
}

func ParseProvider(s string) (ProviderID, bool) {
	p := ProviderID(s)
	if _, ok := displayNames[p]; !ok {
		return "", false
	}
	return p, true
}

func (p ProviderID) DisplayName() string {
	if n, ok := displayNames[p]; ok {
		return n
	}
	return string(p)
}

func (p ProviderID) SupportsAlias() bool {
	return p == IsGd || p == VGd
}
