package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/tienda-b2b-api/internal/domain/taxid"
)

// Metrics agrupa las métricas Prometheus de validación fiscal y precios.
type Metrics struct {
	Verdicts        *prometheus.CounterVec
	RegistryLatency *prometheus.HistogramVec
	Resolutions     *prometheus.CounterVec
}

// New crea y registra las métricas en reg (prometheus.DefaultRegisterer en producción).
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Verdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taxid_verdicts_total",
			Help: "Veredictos de validación de identificadores fiscales por jurisdicción y motivo",
		}, []string{"jurisdiction", "reason"}),
		RegistryLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taxid_registry_request_seconds",
			Help:    "Duración de las consultas al registro VIES",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 3, 5, 8},
		}, []string{"outcome"}),
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pricing_resolutions_total",
			Help: "Resoluciones de precio por regla aplicada (retail = sin regla)",
		}, []string{"tier"}),
	}
}

// ObserveVerdict cuenta un veredicto; los válidos se registran con motivo "OK".
func (m *Metrics) ObserveVerdict(v taxid.Verdict) {
	reason := string(v.FailureReason)
	if v.Valid {
		reason = "OK"
	}
	m.Verdicts.WithLabelValues(string(v.Jurisdiction), reason).Inc()
}

// ObserveResolution cuenta una resolución de precio.
func (m *Metrics) ObserveResolution(tier string) {
	m.Resolutions.WithLabelValues(tier).Inc()
}

// instrumentedRegistry mide la latencia del registro sin alterar su resultado.
type instrumentedRegistry struct {
	next taxid.RegistryClient
	m    *Metrics
}

// InstrumentRegistry envuelve un RegistryClient con el histograma de latencia.
func InstrumentRegistry(next taxid.RegistryClient, m *Metrics) taxid.RegistryClient {
	return &instrumentedRegistry{next: next, m: m}
}

func (r *instrumentedRegistry) Check(ctx context.Context, countryCode, number string) (string, error) {
	start := time.Now()
	body, err := r.next.Check(ctx, countryCode, number)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.m.RegistryLatency.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	return body, err
}
