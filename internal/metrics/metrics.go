package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the domain counters for staging and cleanup.
type Metrics struct {
	FilesStaged     *prometheus.CounterVec
	CleanupEnqueued *prometheus.CounterVec
	FilesDeleted    *prometheus.CounterVec
	DeleteFailures  *prometheus.CounterVec
}

// New creates the counters and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		FilesStaged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "filearray_files_staged_total",
			Help: "Files written to storage while saving a record.",
		}, []string{"kind"}),
		CleanupEnqueued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "filearray_cleanup_jobs_enqueued_total",
			Help: "Deferred deletion jobs handed to the queue.",
		}, []string{"kind"}),
		FilesDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "filearray_files_deleted_total",
			Help: "Files removed from storage.",
		}, []string{"reason"}),
		DeleteFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "filearray_file_delete_failures_total",
			Help: "Storage deletions that failed.",
		}, []string{"reason"}),
	}
	for _, c := range []prometheus.Collector{m.FilesStaged, m.CleanupEnqueued, m.FilesDeleted, m.DeleteFailures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Nop returns metrics registered on a throwaway registry, for callers that do not export them.
func Nop() *Metrics {
	m, _ := New(prometheus.NewRegistry())
	return m
}
