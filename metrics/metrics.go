package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	DirectionUpload   = "upload"
	DirectionDownload = "download"
)

// Metrics 每个server实例独立一份registry, nil时所有方法均为空操作
type Metrics struct {
	reg           *prometheus.Registry
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	transferBytes *prometheus.CounterVec
	inflight      prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	return &Metrics{
		reg: reg,
		requests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sdwebdav_requests_total",
				Help: "Total number of handled requests by method and status code",
			},
			[]string{"method", "code"},
		),
		latency: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sdwebdav_request_duration_seconds",
				Help:    "Request handling duration by method",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		transferBytes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sdwebdav_transfer_bytes_total",
				Help: "Total number of file bytes transferred by direction",
			},
			[]string{"direction"}, // "upload", "download"
		),
		inflight: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "sdwebdav_inflight_transfers",
				Help: "Number of transfers currently holding a slot",
			},
		),
	}
}

func (m *Metrics) RecordRequest(method string, code int, cost time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(code)).Inc()
	m.latency.WithLabelValues(method).Observe(cost.Seconds())
}

func (m *Metrics) RecordTransfer(direction string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.transferBytes.WithLabelValues(direction).Add(float64(n))
}

func (m *Metrics) TransferStart() {
	if m == nil {
		return
	}
	m.inflight.Inc()
}

func (m *Metrics) TransferEnd() {
	if m == nil {
		return
	}
	m.inflight.Dec()
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
