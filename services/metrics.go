package services

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeCreated   = "created"
	outcomeExisting  = "existing"
	outcomeInvalid   = "invalid"
	outcomeLimit     = "limit"
	outcomeExhausted = "exhausted"
	outcomeError     = "error"

	outcomeHit  = "hit"
	outcomeMiss = "miss"
)

// Metrics groups the collectors updated by a Shortener.
type Metrics struct {
	ShortenTotal *prometheus.CounterVec
	ResolveTotal *prometheus.CounterVec
	Stored       prometheus.Gauge
}

// NewMetrics creates the shortener collectors and registers them on reg.
// A nil reg leaves them unregistered, which is what tests usually want.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ShortenTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shortener_shorten_total",
				Help: "Shorten calls by outcome.",
			},
			[]string{"outcome"},
		),
		ResolveTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shortener_resolve_total",
				Help: "Resolve calls by outcome.",
			},
			[]string{"outcome"},
		),
		Stored: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "shortener_urls_stored",
				Help: "Number of URLs currently stored.",
			},
		),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.ShortenTotal, m.ResolveTotal, m.Stored} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
