package cli

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"filearray/docs"
	"filearray/internal/cleanup"
	"filearray/internal/database"
	"filearray/internal/database/migration"
	handlers "filearray/internal/http/handler"
	"filearray/internal/http/middleware"
	"filearray/internal/metrics"
	"filearray/internal/model"
	"filearray/internal/otel"
	"filearray/internal/sanitize"
	"filearray/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.Tracing, appLog)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database, appLog)
	if err != nil {
		appLog.Error("db_connect_failed", zap.Error(err))
		return err
	}
	defer db.Close()

	fields := model.Fields(cfg.Upload.PathPrefix)
	if err := migration.EnsureMigrated(ctx, db, appLog, fields, cfg.Database.Host); err != nil {
		return err
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		appLog.Error("storage_init_failed", zap.Error(err))
		return err
	}

	rdb := newRedis(cfg.Redis)
	defer rdb.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		return err
	}
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	admins := buildAdmins(cfg.Upload, fields, adminDeps{
		db:         db,
		store:      objStore,
		sanitizer:  sanitize.New(objStore, cfg.Upload.SuffixAlphabet, cfg.Upload.SuffixLength),
		dispatcher: cleanup.NewRedisQueue(rdb, cfg.Cleanup.QueueKey),
		metrics:    m,
		log:        appLog,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.BodyLimitMB << 20,
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(appLog))
	app.Use(promMW.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, objStore, admins, appLog)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	addr := ":" + cfg.Port
	appLog.Info("http_listening", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		appLog.Error("http_listen_failed", zap.Error(err))
		return err
	}
	return nil
}
