package leaderboard

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts finished games and submissions.
type Metrics struct {
	finished    *prometheus.CounterVec
	submissions *prometheus.CounterVec
	metric      *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcade",
			Name:      "games_finished_total",
			Help:      "Games that reached a terminal state.",
		}, []string{"game", "outcome"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcade",
			Name:      "score_submissions_total",
			Help:      "Leaderboard submissions by result.",
		}, []string{"game", "result"}),
		metric: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "arcade",
			Name:      "score_metric",
			Help:      "Submitted points or seconds.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"game"}),
	}
	reg.MustRegister(m.finished, m.submissions, m.metric)
	return m
}

func (m *Metrics) gameFinished(game, outcome string) {
	if m == nil {
		return
	}
	m.finished.WithLabelValues(game, outcome).Inc()
}

func (m *Metrics) submitted(game, result string, metric int) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(game, result).Inc()
	if result != resultRejected {
		m.metric.WithLabelValues(game).Observe(float64(metric))
	}
}
