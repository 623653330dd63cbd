package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	streakPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "streak_service",
		Subsystem: "persistence",
		Name:      "last_record_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent streak record persisted to Postgres.",
	})
	milestoneCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "streak_service",
		Subsystem: "engine",
		Name:      "milestones_reached_total",
		Help:      "Number of milestone notifications fired, labeled by milestone length.",
	}, []string{"milestone"})
	brokenCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "streak_service",
		Subsystem: "engine",
		Name:      "streaks_broken_total",
		Help:      "Number of streaks archived after a gap of more than one day.",
	})
)

func init() {
	prometheus.MustRegister(streakPersistGauge, milestoneCounter, brokenCounter)
}

// RecordStreakPersisted updates the persistence watermark gauge.
func RecordStreakPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	streakPersistGauge.Set(float64(ts.Unix()))
}

// RecordMilestone counts a fired milestone notification.
func RecordMilestone(milestone string) {
	milestoneCounter.WithLabelValues(milestone).Inc()
}

// RecordStreakBroken counts an archived streak.
func RecordStreakBroken() {
	brokenCounter.Inc()
}
