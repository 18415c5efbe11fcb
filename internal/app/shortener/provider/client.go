package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"shortbot.local/internal/app/shortener"
	"shortbot.local/internal/platform/metrics"
)

// DefaultTimeout 单次外部调用的超时
const DefaultTimeout = 10 * time.Second

var (
	osdbLabelRe = regexp.MustCompile(`<label id=surl>.*?(http://osdb\.link/\w+)`)
	osdbLinkRe  = regexp.MustCompile(`http://osdb\.link/\w+`)
)

// Endpoints 各服务商根地址（不带结尾的 /）
type Endpoints struct {
	ClckRu   string
	DaGd     string
	OsdbLink string
	IsGd     string
	VGd      string
	TinyURL  string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		ClckRu:   "https://clck.ru",
		DaGd:     "https://da.gd",
		OsdbLink: "https://osdb.link",
		IsGd:     "https://is.gd",
		VGd:      "https://v.gd",
		TinyURL:  "https://tinyurl.com",
	}
}

// Client 实现 shortener.Shortener：每次调用只发一个请求，不重试
type Client struct {
	http      *resty.Client
	endpoints Endpoints
	logger    *zap.Logger
}

// NewClient transport 为 nil 时使用 http.DefaultTransport，外面统一包一层 otelhttp
func NewClient(endpoints Endpoints, timeout time.Duration, transport http.RoundTripper, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if transport == nil {
		transport = http.DefaultTransport
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	logger = logger.Named("provider")
	hc := resty.New().
		SetLogger(logger.Sugar()).
		SetTransport(otelhttp.NewTransport(transport)).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", "shortbot/1.0")

	return &Client{
		http:      hc,
		endpoints: trimEndpoints(endpoints),
		logger:    logger,
	}
}

func (c *Client) Shorten(ctx context.Context, longURL string, p shortener.ProviderID, alias string) shortener.Result {
	start := time.Now()
	res := c.shorten(ctx, longURL, p, alias)

	metrics.ProviderRequestDuration.WithLabelValues(string(p)).Observe(time.Since(start).Seconds())
	metrics.ProviderRequests.WithLabelValues(string(p), outcome(res)).Inc()
	return res
}

func (c *Client) shorten(ctx context.Context, longURL string, p shortener.ProviderID, alias string) shortener.Result {
	if alias != "" && !p.SupportsAlias() {
		c.logger.Error("alias passed to provider without alias support", zap.String("provider", string(p)))
		return shortener.NoResult{}
	}

	switch p {
	case shortener.ClckRu:
		return c.plainGet(ctx, p, c.endpoints.ClckRu+"/--", map[string]string{"url": longURL})
	case shortener.DaGd:
		return c.plainGet(ctx, p, c.endpoints.DaGd+"/s", map[string]string{"url": longURL})
	case shortener.OsdbLink:
		return c.osdb(ctx, longURL)
	case shortener.IsGd:
		return c.gd(ctx, p, c.endpoints.IsGd, longURL, alias)
	case shortener.VGd:
		return c.gd(ctx, p, c.endpoints.VGd, longURL, alias)
	case shortener.TinyURL:
		res := c.plainGet(ctx, p, c.endpoints.TinyURL+"/api-create.php", map[string]string{"url": longURL})
		if s, ok := res.(shortener.Success); ok && !s.HasScheme() {
			return shortener.Success{URL: "https://" + s.URL}
		}
		return res
	default:
		c.logger.Error("unknown provider", zap.String("provider", string(p)))
		return shortener.NoResult{}
	}
}

// plainGet 响应体就是短链：200 且去空白后非空才算成功
func (c *Client) plainGet(ctx context.Context, p shortener.ProviderID, endpoint string, query map[string]string) shortener.Result {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(endpoint)
	if err != nil {
		c.transportError(p, err)
		return shortener.NoResult{}
	}
	if resp.StatusCode() != http.StatusOK {
		return shortener.NoResult{}
	}
	body := strings.TrimSpace(resp.String())
	if body == "" {
		return shortener.NoResult{}
	}
	return shortener.Success{URL: body}
}

// osdb 返回的是整页 HTML，先找 label 里的链接，找不到再退回到任意匹配
func (c *Client) osdb(ctx context.Context, longURL string) shortener.Result {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{"url": longURL}).
		Post(c.endpoints.OsdbLink + "/")
	if err != nil {
		c.transportError(shortener.OsdbLink, err)
		return shortener.NoResult{}
	}
	if resp.StatusCode() != http.StatusOK {
		return shortener.NoResult{}
	}

	html := resp.String()
	if m := osdbLabelRe.FindStringSubmatch(html); m != nil {
		return shortener.Success{URL: m[1]}
	}
	if m := osdbLinkRe.FindString(html); m != "" {
		return shortener.Success{URL: m}
	}
	return shortener.NoResult{}
}

type gdResponse struct {
	ShortURL     *string      `json:"shorturl"`
	ErrorCode    *json.Number `json:"errorcode"`
	ErrorMessage string       `json:"errormessage"`
}

// gd is.gd 和 v.gd 接口相同：无别名走 format=simple，有别名走 format=json
func (c *Client) gd(ctx context.Context, p shortener.ProviderID, base, longURL, alias string) shortener.Result {
	endpoint := base + "/create.php"
	if alias == "" {
		return c.plainGet(ctx, p, endpoint, map[string]string{"format": "simple", "url": longURL})
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"format": "json", "url": longURL, "shorturl": alias}).
		Get(endpoint)
	if err != nil {
		c.transportError(p, err)
		return shortener.NoResult{}
	}
	if resp.StatusCode() != http.StatusOK {
		return shortener.NoResult{}
	}

	var body gdResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return shortener.NoResult{}
	}
	switch {
	case body.ShortURL != nil:
		return shortener.Success{URL: *body.ShortURL}
	case body.ErrorCode != nil:
		code, err := body.ErrorCode.Int64()
		if err != nil {
			return shortener.NoResult{}
		}
		return shortener.ProviderError{Code: int(code), Message: body.ErrorMessage}
	default:
		return shortener.NoResult{}
	}
}

func (c *Client) transportError(p shortener.ProviderID, err error) {
	c.logger.Warn("provider request failed", zap.String("provider", string(p)), zap.Error(err))
}

func outcome(r shortener.Result) string {
	switch r.(type) {
	case shortener.Success:
		return "success"
	case shortener.ProviderError:
		return "provider_error"
	default:
		return "no_result"
	}
}

func trimEndpoints(e Endpoints) Endpoints {
	return Endpoints{
		ClckRu:   strings.TrimSuffix(e.ClckRu, "/"),
		DaGd:     strings.TrimSuffix(e.DaGd, "/"),
		OsdbLink: strings.TrimSuffix(e.OsdbLink, "/"),
		IsGd:     strings.TrimSuffix(e.IsGd, "/"),
		VGd:      strings.TrimSuffix(e.VGd, "/"),
		TinyURL:  strings.TrimSuffix(e.TinyURL, "/"),
	}
}
