// Package metrics 提供 Prometheus 指标收集功能
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标收集器
type Metrics struct {
	// HTTP 指标
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// 数据库指标
	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec

	// 业务指标
	bookingsTotal       *prometheus.CounterVec
	bookingTransitions  *prometheus.CounterVec
	reviewsTotal        *prometheus.CounterVec
	ratingRecomputes    prometheus.Counter
	vendorRegistrations prometheus.Counter
	vendorApprovals     *prometheus.CounterVec
	uploadsTotal        *prometheus.CounterVec
}

var defaultMetrics *Metrics

// Init 初始化指标收集器
func Init(namespace string) *Metrics {
	if namespace == "" {
		namespace = "island_tour"
	}

	m := &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		httpRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being processed",
			},
		),
		dbQueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_queries_total",
				Help:      "Total number of database queries",
			},
			[]string{"operation", "table"},
		),
		dbQueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_query_duration_seconds",
				Help:      "Database query duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation", "table"},
		),
		bookingsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bookings_total",
				Help:      "Total number of bookings created",
			},
			[]string{"location_type"},
		),
		bookingTransitions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_transitions_total",
				Help:      "Total number of booking status transitions",
			},
			[]string{"from", "to"},
		),
		reviewsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reviews_total",
				Help:      "Total number of reviews submitted",
			},
			[]string{"rating"},
		),
		ratingRecomputes: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rating_recomputes_total",
				Help:      "Total number of location rating recomputations",
			},
		),
		vendorRegistrations: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "vendor_registrations_total",
				Help:      "Total number of vendor registrations",
			},
		),
		vendorApprovals: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "vendor_approvals_total",
				Help:      "Total number of vendor approval decisions",
			},
			[]string{"decision"},
		),
		uploadsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "uploads_total",
				Help:      "Total number of image uploads",
			},
			[]string{"status"},
		),
	}

	defaultMetrics = m
	return m
}

// GetMetrics 获取默认指标收集器
func GetMetrics() *Metrics {
	if defaultMetrics == nil {
		return Init("")
	}
	return defaultMetrics
}

// Middleware 返回 Gin 中间件
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 跳过 metrics 端点本身
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		m.httpRequestsInFlight.Inc()

		c.Next()

		m.httpRequestsInFlight.Dec()
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}

		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}

// Handler 返回 Prometheus HTTP 处理器
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// RecordDBQuery 记录数据库查询
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration) {
	m.dbQueriesTotal.WithLabelValues(operation, table).Inc()
	m.dbQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordBooking 记录新建预订
func (m *Metrics) RecordBooking(locationType string) {
	m.bookingsTotal.WithLabelValues(locationType).Inc()
}

// RecordBookingTransition 记录预订状态流转
func (m *Metrics) RecordBookingTransition(from, to string) {
	m.bookingTransitions.WithLabelValues(from, to).Inc()
}

// RecordReview 记录评价提交
func (m *Metrics) RecordReview(rating int) {
	m.reviewsTotal.WithLabelValues(strconv.Itoa(rating)).Inc()
}

// RecordRatingRecompute 记录评分重算
func (m *Metrics) RecordRatingRecompute() {
	m.ratingRecomputes.Inc()
}

// RecordVendorRegistration 记录供应商注册
func (m *Metrics) RecordVendorRegistration() {
	m.vendorRegistrations.Inc()
}

// RecordVendorApproval 记录供应商审批决定
func (m *Metrics) RecordVendorApproval(decision string) {
	m.vendorApprovals.WithLabelValues(decision).Inc()
}

// RecordUpload 记录图片上传
func (m *Metrics) RecordUpload(status string) {
	m.uploadsTotal.WithLabelValues(status).Inc()
}

// RecordBookingTransitionGlobal 全局记录预订状态流转
func RecordBookingTransitionGlobal(from, to string) {
	GetMetrics().RecordBookingTransition(from, to)
}
