package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts domain events next to the HTTP metrics of the middleware.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	adviceGenerated *prometheus.CounterVec
	detections      *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		adviceGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nutritrack_advice_generated_total",
				Help: "Generated nutrition advice by type and source (llm or fallback).",
			},
			[]string{"type", "source"},
		),
		detections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nutritrack_detections_total",
				Help: "Image detections by the detector that answered.",
			},
			[]string{"detector"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.adviceGenerated, m.detections)
	}
	return m
}

func (m *Metrics) adviceDone(adviceType, source string) {
	if m == nil {
		return
	}
	m.adviceGenerated.WithLabelValues(adviceType, source).Inc()
}

func (m *Metrics) detected(detector string) {
	if m == nil {
		return
	}
	m.detections.WithLabelValues(detector).Inc()
}
