package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DocumentMetrics tracks budget document generation outcomes.
type DocumentMetrics struct {
	generationDuration *prometheus.HistogramVec
	generated          *prometheus.CounterVec
	logoFallbacks      prometheus.Counter
}

var (
	documentMetricsOnce sync.Once
	documentMetrics     *DocumentMetrics
)

// Document returns the process-wide document metrics, registering them on
// first use.
func Document(cfg Config) *DocumentMetrics {
	documentMetricsOnce.Do(func() {
		documentMetrics = newDocumentMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return documentMetrics
}

func ResetDocumentMetricsForTest() {
	documentMetricsOnce = sync.Once{}
	documentMetrics = nil
}

func newDocumentMetrics(registerer prometheus.Registerer, cfg Config) *DocumentMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "oliver"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	generationDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "oliver_document_generation_duration_seconds",
			Help:        "Wall time spent composing a budget document.",
			Buckets:     []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			ConstLabels: constLabels,
		},
		[]string{"format"}, // pdf | png
	)

	generated := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "oliver_documents_generated_total",
			Help:        "Total budget documents generated.",
			ConstLabels: constLabels,
		},
		[]string{"format", "result"}, // result: success | failed
	)

	logoFallbacks := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:        "oliver_logo_fallbacks_total",
			Help:        "Generations that fell back to the placeholder logo.",
			ConstLabels: constLabels,
		},
	)

	registerer.MustRegister(generationDuration, generated, logoFallbacks)

	return &DocumentMetrics{
		generationDuration: generationDuration,
		generated:          generated,
		logoFallbacks:      logoFallbacks,
	}
}

func (m *DocumentMetrics) ObserveGeneration(format string, duration time.Duration) {
	if m == nil {
		return
	}
	m.generationDuration.WithLabelValues(format).Observe(duration.Seconds())
}

func (m *DocumentMetrics) IncGenerated(format, result string) {
	if m == nil {
		return
	}
	m.generated.WithLabelValues(format, result).Inc()
}

func (m *DocumentMetrics) IncLogoFallback() {
	if m == nil {
		return
	}
	m.logoFallbacks.Inc()
}
