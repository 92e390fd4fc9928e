// Package observability 指标采集
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 讨论区动作的结果
const (
	OutcomeRedirect = "redirect"
	OutcomeRender   = "render"
	OutcomeFailed   = "failed"
)

// Collector holds all Prometheus metrics for the service
// 所有方法允许 nil 接收者，未启用指标时直接跳过
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Business metrics
	DiscussionActions *prometheus.CounterVec
	DiscussionViews   prometheus.Counter
}

// NewCollector creates a collector backed by its own registry
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		DiscussionActions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "discussion_actions_total",
				Help:      "Discussion pipeline actions by outcome",
			},
			[]string{"action", "outcome"},
		),
		DiscussionViews: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "discussion_views_total",
				Help:      "Total number of discussion detail views",
			},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.DiscussionActions,
		c.DiscussionViews,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Registry 返回底层 registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler 暴露 /metrics
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Middleware 记录 HTTP 请求数与耗时，route 使用 gin 的路由模板避免高基数
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if c == nil {
			ctx.Next()
			return
		}

		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordAction 记录一次讨论区动作的结果
func (c *Collector) RecordAction(action, outcome string) {
	if c == nil {
		return
	}
	c.DiscussionActions.WithLabelValues(action, outcome).Inc()
}

// RecordView 记录一次详情浏览
func (c *Collector) RecordView() {
	if c == nil {
		return
	}
	c.DiscussionViews.Inc()
}
