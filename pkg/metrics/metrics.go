package metrics

import (
	"net/http"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "otodoke"

// result label values
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	// LetterEncode 編碼次數, labels: scheme, result (ok / validation / error)
	LetterEncode = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "letter",
			Name:      "encode_total",
			Help:      "Number of letters encoded, by scheme and result.",
		},
		[]string{"scheme", "result"},
	)

	// LetterDecode 解碼次數, labels: scheme, result (ok / no_data / corrupt)
	LetterDecode = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "letter",
			Name:      "decode_total",
			Help:      "Number of letter fragments decoded, by scheme and result.",
		},
		[]string{"scheme", "result"},
	)

	// MessageLength 編碼時的訊息長度 (code points)
	MessageLength = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "letter",
			Name:      "message_length_chars",
			Help:      "Length of composed messages in characters.",
			Buckets:   []float64{50, 200, 500, 1000, 2000, 5000},
		},
	)

	// QRRender 每個 QR 服務的呼叫結果
	QRRender = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "qr",
			Name:      "render_total",
			Help:      "QR rendering attempts, by provider and result.",
		},
		[]string{"provider", "result"},
	)

	// QRRenderDuration 每個 QR 服務的回應時間
	QRRenderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "qr",
			Name:      "render_duration_seconds",
			Help:      "QR rendering latency, by provider.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	// AnalyticsFetch GA report 查詢, labels: source (cache / report), result
	AnalyticsFetch = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "fetch_total",
			Help:      "Scan counter lookups, by source and result.",
		},
		[]string{"source", "result"},
	)

	// RateLimited 被限流拒絕的請求
	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter, by route.",
		},
		[]string{"route"},
	)

	heapAlloc = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heap_alloc_bytes",
			Help:      "Current heap allocation in bytes.",
		},
		func() float64 {
			var stats runtime.MemStats
			runtime.ReadMemStats(&stats)
			return float64(stats.HeapAlloc)
		},
	)
)

func init() {
	prometheus.MustRegister(
		LetterEncode,
		LetterDecode,
		MessageLength,
		QRRender,
		QRRenderDuration,
		AnalyticsFetch,
		RateLimited,
		heapAlloc,
	)
}

// Handler prometheus scrape endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
