package trace

import "go.opentelemetry.io/otel/attribute"

// span 属性键（机器人自定义，不属于 semconv）
const (
	AttrUpdateID  = attribute.Key("telegram.update_id")
	AttrUserID    = attribute.Key("telegram.user_id")
	AttrKind      = attribute.Key("telegram.update_kind")
	AttrCommand   = attribute.Key("telegram.command")
	AttrProvider  = attribute.Key("shortbot.provider")
	AttrFlow      = attribute.Key("shortbot.flow")
	AttrBatchSize = attribute.Key("shortbot.batch_size")
)
