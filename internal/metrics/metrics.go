package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "score"

var (
	// Registry 服务自身的 Prometheus 指标
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms ~ 5s
		},
		[]string{"method", "path"},
	)

	rankingRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ranking",
			Name:      "requests_total",
			Help:      "Weekly ranking queries by outcome.",
		},
		[]string{"outcome"},
	)

	nudgeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "nudge",
			Name:      "requests_total",
			Help:      "Nudge attempts by outcome.",
		},
		[]string{"outcome"},
	)

	digestRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "digest",
			Name:      "groups_total",
			Help:      "Groups processed by the weekly digest, by result.",
		},
		[]string{"result"},
	)

	digestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "digest",
			Name:      "run_duration_seconds",
			Help:      "Duration of weekly digest runs.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		rankingRequests,
		nudgeRequests,
		digestRuns,
		digestDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler 暴露 /metrics
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware HTTP 指标采集，path 使用路由模板避免高基数
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		httpRequests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordRanking 记录一次排名查询结果
func RecordRanking(outcome string) {
	rankingRequests.WithLabelValues(outcome).Inc()
}

// RecordNudge 记录一次提醒结果
func RecordNudge(outcome string) {
	nudgeRequests.WithLabelValues(outcome).Inc()
}

// RecordDigest 记录一次周榜任务
func RecordDigest(published, skipped, failed int, duration time.Duration) {
	digestRuns.WithLabelValues("published").Add(float64(published))
	digestRuns.WithLabelValues("skipped").Add(float64(skipped))
	digestRuns.WithLabelValues("failed").Add(float64(failed))
	digestDuration.Observe(duration.Seconds())
}
