// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"edufeed/internal/common"
)

// Collector counts the things operators actually page on
type Collector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
	enrichments     prometheus.Counter
	videosGenerated *prometheus.CounterVec
	remindersTotal  prometheus.Counter
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edufeed_http_requests_total",
			Help: "HTTP requests by method and status code",
		}, []string{"method", "status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "edufeed_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		enrichments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "edufeed_enrichments_total",
			Help: "Completed item enrichment passes",
		}),
		videosGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edufeed_videos_generated_total",
			Help: "Video generation attempts by result",
		}, []string{"result"}),
		remindersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "edufeed_reminders_created_total",
			Help: "Deadline reminders created by the sweep",
		}),
	}

	reg.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.enrichments,
		c.videosGenerated,
		c.remindersTotal,
	)

	return c
}

func (c *Collector) RecordRequest(method string, statusCode int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.requestDuration.Observe(duration.Seconds())
}

func (c *Collector) RecordEnrichment() {
	c.enrichments.Inc()
}

func (c *Collector) RecordVideoResult(result string) {
	c.videosGenerated.WithLabelValues(result).Inc()
}

func (c *Collector) RecordRemindersCreated(count int) {
	c.remindersTotal.Add(float64(count))
}

// Handler exposes the registry on /metrics
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Middleware records every request passing through the router
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := common.NewStatusRecorder(w)

		next.ServeHTTP(rec, r)

		c.RecordRequest(r.Method, rec.Status, time.Since(start))
	})
}
