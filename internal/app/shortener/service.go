package shortener

import "context"

// Shortener 对外部服务商发起一次缩短。
//
// alias 为空表示不使用自定义别名；只有 SupportsAlias 的服务商可以传非空 alias。
// 任何失败都以 Result 的形式返回，不返回 error。
type Shortener interface {
	Shorten(ctx context.Context, longURL string, provider ProviderID, alias string) Result
}

// Flow 统计和日志里区分三种流程
type Flow string

const (
	FlowSingle Flow = "single"
	FlowCustom Flow = "custom"
	FlowBatch  Flow = "batch"
)
