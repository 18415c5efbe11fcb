package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"shortbot.local/internal/app/shortener/provider"
	"shortbot.local/internal/app/shortener/session"
	"shortbot.local/internal/app/shortener/stats"
	"shortbot.local/internal/app/shortener/tgbot"
	"shortbot.local/internal/platform/config"
	"shortbot.local/internal/platform/httpserver"
	"shortbot.local/internal/platform/logger"
	"shortbot.local/internal/platform/metrics"
	"shortbot.local/internal/platform/trace"
)

var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrMissingToken) {
		fmt.Fprintln(os.Stderr, "❌ Token tidak ditemukan! Pastikan file bot.env ada atau TELEGRAM_BOT_TOKEN di-set")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := tgbotapi.SetLogger(logger.NewBotLogger(log)); err != nil {
		return fmt.Errorf("set bot logger: %w", err)
	}

	if cfg.TracingEnabled {
		shutdown, err := trace.InitTrace(cfg.OtlpGrpcEndpoint, cfg.OtlpServiceName, version)
		if err != nil {
			log.Error("trace init failed", zap.Error(err))
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error("trace shutdown failed", zap.Error(err))
				}
			}()
		}
	} else {
		log.Warn("tracing disabled by config", zap.Bool("TRACING_ENABLED", false))
	}

	metrics.Init()

	// 外部服务商
	client := provider.NewClient(provider.Endpoints{
		ClckRu:   cfg.Providers.ClckRu,
		DaGd:     cfg.Providers.DaGd,
		OsdbLink: cfg.Providers.OsdbLink,
		IsGd:     cfg.Providers.IsGd,
		VGd:      cfg.Providers.VGd,
		TinyURL:  cfg.Providers.TinyURL,
	}, cfg.ProviderTimeout, nil, log)

	// Telegram：长轮询的 HTTP 超时要比轮询超时长。
	// token 在 URL 路径里，这个 client 不包 otelhttp，免得进到 span 属性。
	httpClient := &http.Client{Timeout: cfg.PollTimeout + 10*time.Second}
	api, err := tgbotapi.NewBotAPIWithClient(cfg.Token, cfg.APIEndpoint, httpClient)
	if err != nil {
		return fmt.Errorf("telegram login: %w", err)
	}
	api.Debug = cfg.Debug
	log.Info("authorized", zap.String("bot", api.Self.UserName))

	cmds := tgbot.Commands()
	if _, err := api.Request(tgbotapi.NewSetMyCommands(cmds...)); err != nil {
		log.Warn("register command menu failed", zap.Error(err))
	}

	bot := tgbot.New(api, client, session.New(cfg.SessionTTL), stats.New(time.Now()), log)

	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = "/" + c.Command
	}
	fmt.Println("🤖 Bot berjalan...")
	fmt.Println("📚 Command yang tersedia: " + strings.Join(names, ", "))

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(stopCtx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(cfg.PollTimeout / time.Second)
	updates := api.GetUpdatesChan(u)

	g.Go(func() error {
		bot.Run(gctx, updates)
		if gctx.Err() == nil {
			return errors.New("telegram updates channel closed")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		api.StopReceivingUpdates()
		return nil
	})

	if cfg.AdminEnabled {
		// 仅本机/内网
		var admin http.Handler = httpserver.NewAdminRouter(httpserver.BuildInfo{
			ServiceName: cfg.ServiceName,
			Version:     version,
			Commit:      commit,
			BuildTime:   buildTime,
		}, cfg.PprofEnabled)
		if cfg.TracingEnabled {
			admin = otelhttp.NewHandler(admin, "admin")
		}
		adminSrv := httpserver.New(cfg.AdminAddr, admin)
		log.Info("admin server listening", zap.String("addr", cfg.AdminAddr))

		g.Go(func() error {
			return httpserver.RunWithGracefulShutdownContext(gctx, adminSrv, cfg.ShutdownTimeout)
		})
	}

	err = g.Wait()
	log.Info("bot stopped")
	return err
}
