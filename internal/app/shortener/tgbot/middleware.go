package tgbot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"shortbot.local/internal/app/shortener/session"
	"shortbot.local/internal/platform/metrics"
	"shortbot.local/internal/platform/trace"
)

// HandlerFunc 处理一个 update
type HandlerFunc func(ctx context.Context, u tgbotapi.Update)

// Middleware 包一层 HandlerFunc，用法和 HTTP 中间件一样
type Middleware func(next HandlerFunc) HandlerFunc

// chain 第一个中间件在最外层
func chain(h HandlerFunc, mws ...Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

type ctxKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID 取 AccessLog 生成的关联 id
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Metrics 统计 update 数量和正在处理的数量
func Metrics() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, u tgbotapi.Update) {
			metrics.UpdatesInflight.Inc()
			defer metrics.UpdatesInflight.Dec()
			metrics.UpdatesTotal.WithLabelValues(updateKind(u)).Inc()
			next(ctx, u)
		}
	}
}

// Trace 每个 update 一个 span
func Trace() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, u tgbotapi.Update) {
			kind := updateKind(u)
			ctx, span := trace.Tracer().Start(ctx, "telegram."+kind,
				oteltrace.WithSpanKind(oteltrace.SpanKindServer),
				oteltrace.WithAttributes(
					trace.AttrUpdateID.Int(u.UpdateID),
					trace.AttrKind.String(kind),
				),
			)
			defer span.End()

			if from := updateUser(u); from != nil {
				span.SetAttributes(trace.AttrUserID.Int64(from.ID))
			}
			if u.Message != nil && u.Message.IsCommand() {
				span.SetAttributes(trace.AttrCommand.String(u.Message.Command()))
			}
			next(ctx, u)
		}
	}
}

// AccessLog 生成 request_id 并在处理完后打一行日志
func AccessLog(l *zap.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, u tgbotapi.Update) {
			id := uuid.NewString()
			ctx = withRequestID(ctx, id)
			start := time.Now()

			next(ctx, u)

			fields := []zap.Field{
				zap.Int("update_id", u.UpdateID),
				zap.String("request_id", id),
				zap.String("kind", updateKind(u)),
				zap.Int64("latency_ms", time.Since(start).Milliseconds()),
			}
			if from := updateUser(u); from != nil {
				fields = append(fields, zap.Int64("user_id", from.ID))
			}
			l.Info("update", fields...)
		}
	}
}

// Recovery 捕获单个 update 里的 panic，不影响其他用户
func Recovery(l *zap.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, u tgbotapi.Update) {
			defer func() {
				if err := recover(); err != nil {
					l.Error("panic while handling update",
						zap.String("request_id", RequestID(ctx)),
						zap.Int("update_id", u.UpdateID),
						zap.Any("panic", err),
						zap.Stack("stack"),
					)
				}
			}()
			next(ctx, u)
		}
	}
}

// UserLock 同一用户的 update 串行执行；没有发送者的 update 不加锁
func UserLock(store *session.Store) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, u tgbotapi.Update) {
			if from := updateUser(u); from != nil {
				unlock := store.Lock(from.ID)
				defer unlock()
			}
			next(ctx, u)
		}
	}
}

func updateKind(u tgbotapi.Update) string {
	switch {
	case u.CallbackQuery != nil:
		return "callback"
	case u.Message != nil && u.Message.IsCommand():
		return "command"
	case u.Message != nil:
		return "text"
	default:
		return "other"
	}
}

func updateUser(u tgbotapi.Update) *tgbotapi.User {
	switch {
	case u.CallbackQuery != nil:
		return u.CallbackQuery.From
	case u.Message != nil:
		return u.Message.From
	default:
		return nil
	}
}
