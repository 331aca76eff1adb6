package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 通用 HTTP 指标
var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	articleViewsRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "article_views_recorded_total",
		Help: "Article view increments accepted by the view counter endpoint.",
	})
)

// Register 把指标注册到默认注册表，进程内只应调用一次。
func Register() {
	prometheus.MustRegister(httpInFlight, httpRequestsTotal, httpRequestDuration, articleViewsRecorded)
}

// Handler 返回暴露 /metrics 的 gin 处理器。
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// Instrument 统计每个请求的 RPS、时延与在途数。
// path 取路由模板（FullPath），避免按具体 ID 展开出高基数标签。
func Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		httpInFlight.Inc()
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpInFlight.Dec()
	}
}

// CountArticleView 记一次成功受理的文章浏览。
func CountArticleView() {
	articleViewsRecorded.Inc()
}
