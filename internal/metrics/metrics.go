package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters exposed on /metrics.
var (
	LogsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "timetracking_logs_recorded_total",
		Help: "Check-time events accepted into the log.",
	})
	TimesheetsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "timetracking_timesheets_computed_total",
		Help: "Timesheet derivations served.",
	})
	PresenceQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "timetracking_presence_queries_total",
		Help: "Presence snapshots computed.",
	})
	SnapshotRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "timetracking_presence_snapshot_refreshes_total",
		Help: "Worker refreshes of the cached presence set.",
	})
)
