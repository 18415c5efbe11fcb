package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New 按级别和格式创建 zap logger。
// format=json 输出生产环境 JSON，其余走开发模式的控制台格式。
func New(level zapcore.Level, format, service string) (*zap.Logger, error) {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	if service != "" {
		l = l.With(zap.String("service", service))
	}
	return l, nil
}

// BotLogger 把 tgbotapi 的 Printf/Println 日志接到 zap 上
type BotLogger struct {
	l *zap.SugaredLogger
}

func NewBotLogger(l *zap.Logger) *BotLogger {
	return &BotLogger{l: l.Named("tgbotapi").WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (b *BotLogger) Println(v ...interface{}) {
	b.l.Debug(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func (b *BotLogger) Printf(format string, v ...interface{}) {
	b.l.Debugf(strings.TrimSuffix(format, "\n"), v...)
}
