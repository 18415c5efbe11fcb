package shortener

import (
	"errors"
	"regexp"
	"strings"
)

const (
	schemeHTTP  = "http://"
	schemeHTTPS = "https://"

	// MaxBatch 一次批量最多处理的 URL 数
	MaxBatch = 5
	// MinAliasLen 自定义别名最短长度
	MinAliasLen = 3
)

var (
	ErrInvalidURL    = errors.New("invalid url")
	ErrAliasTooShort = errors.New("alias too short")
	ErrAliasInvalid  = errors.New("alias has invalid characters")
	ErrBatchTooMany  = errors.New("too many urls in batch")
	ErrBatchEmpty    = errors.New("no urls in batch")
	ErrBatchNoValid  = errors.New("no valid urls in batch")
)

var aliasRe = regexp.MustCompile(`^[a-z0-9_]+$`)

// ValidateURL 只做最粗的判断：至少包含 '.'、':' 或显式 scheme。
// 真正能否缩短交给服务商决定。
func ValidateURL(raw string) error {
	if strings.Contains(raw, schemeHTTP) || strings.Contains(raw, schemeHTTPS) ||
		strings.Contains(raw, ".") || strings.Contains(raw, ":") {
		return nil
	}
	return ErrInvalidURL
}

func HasScheme(s string) bool {
	return strings.HasPrefix(s, schemeHTTP) || strings.HasPrefix(s, schemeHTTPS)
}

// NormalizeURL 没有 scheme 时补 https://，幂等
func NormalizeURL(raw string) string {
	if HasScheme(raw) {
		return raw
	}
	return schemeHTTPS + raw
}

// NormalizeAlias 转小写后校验；先判断长度，再判断字符集
func NormalizeAlias(raw string) (string, error) {
	alias := strings.ToLower(raw)
	if len(alias) < MinAliasLen {
		return "", ErrAliasTooShort
	}
	if !aliasRe.MatchString(alias) {
		return "", ErrAliasInvalid
	}
	return alias, nil
}

// BatchInput 批量输入解析结果
type BatchInput struct {
	// URLs 已补全 scheme，保持输入顺序，最多 MaxBatch 个
	URLs []string
	// Invalid 没通过 ValidateURL 的原始行
	Invalid []string
}

// ParseBatch 按换行切分，去掉空行后校验。
//
// 非空行超过 MaxBatch 返回 ErrBatchTooMany；没有非空行返回 ErrBatchEmpty；
// 有非法行时只报告不中断，全部非法才返回 ErrBatchNoValid（Invalid 仍然带回）。
func ParseBatch(text string) (BatchInput, error) {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) > MaxBatch {
		return BatchInput{}, ErrBatchTooMany
	}
	if len(lines) == 0 {
		return BatchInput{}, ErrBatchEmpty
	}

	var in BatchInput
	for _, line := range lines {
		if err := ValidateURL(line); err != nil {
			in.Invalid = append(in.Invalid, line)
			continue
		}
		in.URLs = append(in.URLs, NormalizeURL(line))
	}
	if len(in.URLs) > MaxBatch {
		in.URLs = in.URLs[:MaxBatch]
	}
	if len(in.URLs) == 0 {
		return in, ErrBatchNoValid
	}
	return in, nil
}
