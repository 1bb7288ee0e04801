// Package metrics exposes Prometheus collectors for the HTTP API and the company directory.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Get2Core/fs-project/internal/feature/directory/domain/entity"
	"github.com/Get2Core/fs-project/internal/feature/directory/usecase"
)

const namespace = "fsproject"

// Metrics はプロセス専用のレジストリと収集器をまとめます。
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec

	builds         *prometheus.CounterVec
	buildDuration  prometheus.Histogram
	buildRejected  prometheus.Counter
	companies      *prometheus.GaugeVec
	generationLoad prometheus.Gauge
}

var _ usecase.BuildObserver = (*Metrics)(nil)

// New は収集器を登録した Metrics を作成します。
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 10},
		}, []string{"route"}),
		builds: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "builds_total",
			Help:      "Directory builds by result.",
		}, []string{"result"}),
		buildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "build_duration_seconds",
			Help:      "Directory build duration.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 8),
		}),
		buildRejected: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "rejected_rows_total",
			Help:      "Snapshot rows rejected as invalid.",
		}),
		companies: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "companies",
			Help:      "Companies in the served generation.",
		}, []string{"listing"}),
		generationLoad: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "generation_loaded_timestamp_seconds",
			Help:      "Unix time the served generation was loaded.",
		}),
	}
}

// Registry は収集器のレジストリを返します。
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler は /metrics 用のハンドラーです。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware はルート単位でリクエスト数とレイテンシを記録します。
// 未登録のパスは route="unmatched" にまとめます。
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// ObserveBuild はビルド結果を記録します。
func (m *Metrics) ObserveBuild(report entity.BuildReport, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.builds.WithLabelValues(result).Inc()
	m.buildDuration.Observe(report.Duration.Seconds())
	m.buildRejected.Add(float64(report.Rejected))
}

// ObserveGeneration は公開中の世代が切り替わったときに呼びます。
func (m *Metrics) ObserveGeneration(stats entity.DirectoryStats) {
	m.companies.WithLabelValues("listed").Set(float64(stats.Listed))
	m.companies.WithLabelValues("unlisted").Set(float64(stats.Unlisted))
	m.generationLoad.Set(float64(stats.LoadedAt.Unix()))
}
