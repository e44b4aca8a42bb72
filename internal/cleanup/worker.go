package cleanup

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"filearray/internal/metrics"
)

// Deleter is the part of the storage backend the worker needs.
type Deleter interface {
	Delete(ctx context.Context, key string) error
}

// Source yields queued jobs.
type Source interface {
	Dequeue(ctx context.Context, timeout time.Duration) (*Job, error)
}

// Worker drains the cleanup queue. Deletions are best-effort: a failing path is logged and
// counted, then the worker moves on. Nothing is retried or reported back.
type Worker struct {
	src         Source
	store       Deleter
	log         *zap.Logger
	metrics     *metrics.Metrics
	limiter     *rate.Limiter
	pollTimeout time.Duration
}

// NewWorker builds a Worker. deletesPerSec <= 0 disables throttling.
func NewWorker(src Source, store Deleter, log *zap.Logger, m *metrics.Metrics, deletesPerSec float64, pollTimeout time.Duration) *Worker {
	limit := rate.Inf
	if deletesPerSec > 0 {
		limit = rate.Limit(deletesPerSec)
	}
	if pollTimeout <= 0 {
		pollTimeout = 5 * time.Second
	}
	if m == nil {
		m = metrics.Nop()
	}
	return &Worker{
		src:         src,
		store:       store,
		log:         log.With(zap.String("component", "cleanup_worker")),
		metrics:     m,
		limiter:     rate.NewLimiter(limit, 1),
		pollTimeout: pollTimeout,
	}
}

// Run processes jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.log.Info("cleanup_worker_started")
	for {
		if ctx.Err() != nil {
			w.log.Info("cleanup_worker_stopped")
			return nil
		}

		job, err := w.src.Dequeue(ctx, w.pollTimeout)
		switch {
		case err == nil && job == nil:
			continue
		case errors.Is(err, ErrMalformedJob):
			w.log.Warn("cleanup_job_dropped", zap.Error(err))
			continue
		case err != nil:
			if ctx.Err() != nil {
				continue
			}
			w.log.Error("cleanup_dequeue_failed", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}

		w.Process(ctx, job)
	}
}

// Process deletes every path of job, in order.
func (w *Worker) Process(ctx context.Context, job *Job) {
	start := time.Now()
	failed := 0
	for _, p := range job.Paths {
		if err := w.limiter.Wait(ctx); err != nil {
			w.log.Warn("cleanup_job_interrupted", zap.String("job_id", job.ID), zap.Error(err))
			return
		}
		if err := w.store.Delete(ctx, p); err != nil {
			failed++
			w.metrics.DeleteFailures.WithLabelValues("superseded").Inc()
			w.log.Warn("cleanup_delete_failed",
				zap.String("job_id", job.ID),
				zap.String("path", p),
				zap.Error(err),
			)
			continue
		}
		w.metrics.FilesDeleted.WithLabelValues("superseded").Inc()
	}
	w.log.Info("cleanup_job_done",
		zap.String("job_id", job.ID),
		zap.Int("paths", len(job.Paths)),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)),
	)
}
