package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// once 保证只注册一次，重复注册同名指标会 panic
	once sync.Once

	// ShortenedTotal：成功生成的短链数。
	//
	// labels：
	// - provider：服务商 id，例如 is_gd
	// - flow：single / custom / batch
	ShortenedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortbot_shortened_total",
			Help: "Successful shortenings by provider and flow.",
		},
		[]string{"provider", "flow"},
	)

	// ProviderRequests：对外部服务商的调用次数。
	// outcome 只有 success / provider_error / no_result 三种。
	ProviderRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortbot_provider_requests_total",
			Help: "Outbound shortening calls by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)

	// ProviderRequestDuration：单次外部调用耗时
	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shortbot_provider_request_duration_seconds",
			Help:    "Outbound shortening call latency.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	// UpdatesTotal：收到的 Telegram update，kind 取 command / text / callback / other
	UpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortbot_updates_total",
			Help: "Inbound Telegram updates by kind.",
		},
		[]string{"kind"},
	)

	// UpdatesInflight：正在处理中的 update 数
	UpdatesInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "shortbot_updates_inflight",
			Help: "Current number of in-flight updates.",
		},
	)

	// DistinctUsers：进程启动以来见过的用户数
	DistinctUsers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "shortbot_distinct_users",
			Help: "Distinct Telegram users seen since start.",
		},
	)
)

// Init 注册指标：只允许注册一次
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			ShortenedTotal,
			ProviderRequests,
			ProviderRequestDuration,
			UpdatesTotal,
			UpdatesInflight,
			DistinctUsers,
		)
	})
}
