package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	HTTPRequests *prometheus.CounterVec // method, route, status
	HTTPDuration *prometheus.HistogramVec

	Reconstructions *prometheus.CounterVec // result: ok|parse_error
	CacheLookups    *prometheus.CounterVec // result: hit|miss|error

	FeedClients prometheus.Gauge

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}, []string{"route"}),
		Reconstructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timeline_reconstructions_total",
			Help: "Timeline reconstructions by result.",
		}, []string{"result"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "route_cache_lookups_total",
			Help: "Route cache lookups by result.",
		}, []string{"result"}),
		FeedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "feed_clients",
			Help: "Connected live timeline viewers.",
		}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "events_nats_published_total",
			Help: "Total NATS messages published.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "events_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "events_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
	}

	reg.MustRegister(
		c.HTTPRequests, c.HTTPDuration,
		c.Reconstructions, c.CacheLookups,
		c.FeedClients,
		c.NATSPublished, c.NATSPublishErrs, c.NATSConnected,
	)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

func (c *Collector) ObserveRequest(method, route string, status int, d time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(route).Observe(d.Seconds())
}

func (c *Collector) ReconstructionInc(ok bool) {
	if ok {
		c.Reconstructions.WithLabelValues("ok").Inc()
		return
	}
	c.Reconstructions.WithLabelValues("parse_error").Inc()
}

func (c *Collector) CacheLookupInc(result string) { c.CacheLookups.WithLabelValues(result).Inc() }

func (c *Collector) FeedClientsSet(n int) { c.FeedClients.Set(float64(n)) }

func (c *Collector) NATSPublishedInc()  { c.NATSPublished.Inc() }
func (c *Collector) NATSPublishErrInc() { c.NATSPublishErrs.Inc() }

func (c *Collector) NATSSetConnected(connected bool) {
	if connected {
		c.NATSConnected.Set(1)
		return
	}
	c.NATSConnected.Set(0)
}
