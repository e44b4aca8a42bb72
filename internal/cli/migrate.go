package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"filearray/internal/database"
	"filearray/internal/database/migration"
	"filearray/internal/model"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the record tables if they do not exist",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database, appLog)
	if err != nil {
		appLog.Error("db_connect_failed", zap.Error(err))
		return err
	}
	defer db.Close()

	return migration.EnsureMigrated(ctx, db, appLog, model.Fields(cfg.Upload.PathPrefix), cfg.Database.Host)
}
