package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"filearray/internal/cleanup"
	"filearray/internal/metrics"
	"filearray/internal/storage"
)

var workerMetricsAddr string

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Delete superseded files queued by the admin API",
	Long: `Consume the cleanup queue and delete, best effort, every storage path of each job.

A path that cannot be deleted is logged and counted; jobs are never retried.`,
	RunE: runWorker,
}

func init() {
	workerCmd.Flags().StringVar(&workerMetricsAddr, "metrics-addr", ":9102", "address serving /metrics (empty disables)")
}

func runWorker(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		appLog.Error("storage_init_failed", zap.Error(err))
		return err
	}

	rdb := newRedis(cfg.Redis)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		appLog.Error("redis_ping_failed", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		return err
	}

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return err
	}
	if workerMetricsAddr != "" {
		srv := &http.Server{Addr: workerMetricsAddr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLog.Error("metrics_listen_failed", zap.Error(err))
			}
		}()
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	queue := cleanup.NewRedisQueue(rdb, cfg.Cleanup.QueueKey)
	w := cleanup.NewWorker(queue, objStore, appLog, m,
		cfg.Cleanup.DeletesPerSecond,
		time.Duration(cfg.Cleanup.PollTimeoutSec)*time.Second,
	)

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
