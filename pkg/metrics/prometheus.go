package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	roundsTotal      *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	sessionsCreated  prometheus.Counter
	simulationsTotal prometheus.Counter
	matchScores      prometheus.Histogram
	generatorLatency prometheus.Histogram
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		roundsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "investguide_rounds_total",
				Help: "Advisory round submissions by outcome",
			},
			[]string{"outcome"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "investguide_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		sessionsCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "investguide_sessions_created_total",
				Help: "Total advisory sessions created",
			},
		),
		simulationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "investguide_simulations_total",
				Help: "Total growth simulations run",
			},
		),
		matchScores: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "investguide_match_score",
				Help:    "Match scores of strategies returned to users",
				Buckets: []float64{0, 1, 2, 3, 4},
			},
		),
		generatorLatency: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "investguide_generator_duration_seconds",
				Help:    "Latency of text-generation round-trips",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordRound records a round submission outcome.
func (r *Recorder) RecordRound(outcome string) {
	r.roundsTotal.WithLabelValues(outcome).Inc()
}

// RecordGeneratorLatency records a generator round-trip duration in seconds.
func (r *Recorder) RecordGeneratorLatency(seconds float64) {
	r.generatorLatency.Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordMatchScore records one strategy match score.
func (r *Recorder) RecordMatchScore(score int) {
	r.matchScores.Observe(float64(score))
}

// RecordSessionCreated records a new session.
func (r *Recorder) RecordSessionCreated() {
	r.sessionsCreated.Inc()
}

// RecordSimulation records a completed growth simulation.
func (r *Recorder) RecordSimulation() {
	r.simulationsTotal.Inc()
}
