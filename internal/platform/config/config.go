package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// ErrMissingToken 启动时没有 TELEGRAM_BOT_TOKEN，进程不应继续。
var ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

// dotenv 文件按顺序加载，已存在的环境变量不会被覆盖
var dotenvFiles = []string{"bot.env", ".env"}

type Config struct {
	// Telegram
	Token       string        `env:"TELEGRAM_BOT_TOKEN"`
	APIEndpoint string        `env:"TELEGRAM_API_ENDPOINT" envDefault:"https://api.telegram.org/bot%s/%s"`
	Debug       bool          `env:"TELEGRAM_DEBUG" envDefault:"false"`
	PollTimeout time.Duration `env:"POLL_TIMEOUT" envDefault:"60s"`

	// 短链服务商
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`
	Providers       Providers

	// 0 表示待处理状态不按时间过期
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"0s"`

	// 日志配置信息
	LogLevel    zapcore.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string        `env:"LOG_FORMAT" envDefault:"console"`
	ServiceName string        `env:"SERVICE_NAME" envDefault:"shortbot"`

	// 管理端口：/metrics /healthz /version，默认关闭
	AdminEnabled    bool          `env:"ADMIN_ENABLED" envDefault:"false"`
	AdminAddr       string        `env:"ADMIN_ADDR" envDefault:"127.0.0.1:6060"`
	PprofEnabled    bool          `env:"PPROF_ENABLED" envDefault:"false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	TracingEnabled   bool   `env:"TRACING_ENABLED" envDefault:"false"`
	OtlpGrpcEndpoint string `env:"OTLP_GRPC_ENDPOINT" envDefault:"127.0.0.1:4317"`
	OtlpServiceName  string `env:"OTLP_SERVICE_NAME" envDefault:"shortbot"`
}

// Providers 各服务商的根地址，测试或预发环境可以改写
type Providers struct {
	ClckRu   string `env:"CLCK_RU_URL" envDefault:"https://clck.ru"`
	DaGd     string `env:"DA_GD_URL" envDefault:"https://da.gd"`
	OsdbLink string `env:"OSDB_LINK_URL" envDefault:"https://osdb.link"`
	IsGd     string `env:"IS_GD_URL" envDefault:"https://is.gd"`
	VGd      string `env:"V_GD_URL" envDefault:"https://v.gd"`
	TinyURL  string `env:"TINYURL_URL" envDefault:"https://tinyurl.com"`
}

// Load 读取 dotenv 文件和环境变量。
// 缺少 token 时返回 ErrMissingToken。
func Load() (Config, error) {
	for _, f := range dotenvFiles {
		_ = godotenv.Load(f)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Token = strings.TrimSpace(cfg.Token)
	if cfg.Token == "" {
		return Config{}, ErrMissingToken
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "json", "console":
		cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	default:
		cfg.LogFormat = "console"
	}

	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = 10 * time.Second
	}
	if cfg.SessionTTL < 0 {
		cfg.SessionTTL = 0
	}

	return cfg, nil
}
