package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"filearray/internal/model"
)

// Step is one named schema statement.
type Step struct {
	Name string
	SQL  string
}

// Steps returns the schema steps for the declared array fields, ordered by kind name.
func Steps(fields map[model.Kind]model.ArrayField) []Step {
	steps := []Step{
		{
			Name: "create_extension_uuid_ossp",
			SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		},
	}
	for _, kind := range []model.Kind{model.KindFiles, model.KindImages} {
		f, ok := fields[kind]
		if !ok {
			continue
		}
		steps = append(steps,
			Step{
				Name: "create_table_" + f.Table,
				SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  %s         TEXT[]      NOT NULL DEFAULT '{}',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`, f.Table, f.Column),
			},
			Step{
				Name: "create_index_" + f.Table + "_created_at",
				SQL:  fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_created_at ON %s (created_at);`, f.Table, f.Table),
			},
		)
	}
	return steps
}

// EnsureMigrated runs the schema steps unless every declared table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, fields map[model.Kind]model.ArrayField, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	missing := false
	for _, f := range fields {
		var exists bool
		query := "SELECT to_regclass($1) IS NOT NULL"
		if err := db.QueryRowContext(ctx, query, "public."+f.Table).Scan(&exists); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
			return fmt.Errorf("failed to check table %s: %w", f.Table, err)
		}
		if !exists {
			missing = true
		}
	}

	if !missing {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("reason", "schema already exists, skipping migration"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range Steps(fields) {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
