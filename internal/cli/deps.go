package cli

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"filearray/internal/cleanup"
	"filearray/internal/config"
	handlers "filearray/internal/http/handler"
	"filearray/internal/metrics"
	"filearray/internal/model"
	"filearray/internal/repository/postgres"
	"filearray/internal/service"
	"filearray/internal/storage"
	"filearray/internal/upload"
)

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newRedis(c config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	})
}

// fieldConfig derives the upload field settings of one record kind.
func fieldConfig(c config.UploadConfig, f model.ArrayField) upload.FieldConfig {
	src := upload.SourceUpload
	if c.UseURL {
		src = upload.SourceURL
	}
	return upload.FieldConfig{
		Name:           upload.DefaultFieldName,
		Source:         src,
		Kind:           f.Element,
		Required:       c.Required,
		Label:          f.Label,
		HelpText:       f.HelpText,
		MaxNameLength:  c.MaxNameLength,
		AllowEmptyFile: c.AllowEmptyFile,
		MaxImagePixels: c.MaxImagePixels,
		MaxFetchBytes:  int64(c.MaxFetchMB) << 20,
	}
}

// adminDeps is what every record kind shares.
type adminDeps struct {
	db         *sql.DB
	store      storage.Storage
	sanitizer  service.Sanitizer
	dispatcher cleanup.Dispatcher
	metrics    *metrics.Metrics
	log        *zap.Logger
}

// buildAdmins wires one service and one adapter per declared array field.
func buildAdmins(c config.UploadConfig, fields map[model.Kind]model.ArrayField, d adminDeps) map[model.Kind]handlers.Admin {
	client := upload.NewHTTPClient(time.Duration(c.FetchTimeoutSec) * time.Second)

	admins := make(map[model.Kind]handlers.Admin, len(fields))
	for kind, f := range fields {
		svc := service.NewArrayService(f, service.Deps{
			Store:      d.store,
			Repo:       postgres.NewRecordPostgres(d.db, f),
			Sanitizer:  d.sanitizer,
			Dispatcher: d.dispatcher,
			Metrics:    d.metrics,
			Log:        d.log,
		})
		admins[kind] = handlers.Admin{
			Service: svc,
			Adapter: upload.NewAdapter(fieldConfig(c, f), client),
		}
	}
	return admins
}
