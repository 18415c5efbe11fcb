package shortener

import "strings"

// Result 一次缩短调用的结果，只有 Success / ProviderError / NoResult 三种。
// 调用方用 type switch 穷举处理。
type Result interface {
	isResult()
}

// Success 服务商返回的短链（原样，可能不带 scheme）
type Success struct {
	URL string
}

// ProviderError 服务商明确返回的错误，目前只有 is.gd / v.gd 的 JSON 接口会给出
type ProviderError struct {
	Code    int
	Message string
}

// NoResult 传输失败、非 200、响应无法解析
type NoResult struct{}

func (Success) isResult()       {}
func (ProviderError) isResult() {}
func (NoResult) isResult()      {}

// aliasTakenCode is.gd 的 errorcode 2：别名已被占用
const aliasTakenCode = 2

func (e ProviderError) IsAliasConflict() bool {
	return e.Code == aliasTakenCode
}

// HasScheme 以 http:// 或 https:// 开头
func (s Success) HasScheme() bool {
	return HasScheme(s.URL)
}

// Display 单链流程展示用：缺 scheme 且含 '.' 时补 https://
func (s Success) Display() string {
	if !HasScheme(s.URL) && strings.Contains(s.URL, ".") {
		return schemeHTTPS + s.URL
	}
	return s.URL
}
