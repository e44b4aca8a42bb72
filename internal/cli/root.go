package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"filearray/internal/config"
	"filearray/internal/logger"
)

const serviceName = "filearray"

var (
	// Loaded once by the root command before any subcommand runs.
	cfg    *config.AppConfig
	appLog *zap.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   serviceName,
	Short: "Admin API for records holding arrays of uploaded files",
	Long: "filearray serves the admin endpoints that upload, replace and delete arrays of files\n" +
		"kept in S3-compatible storage, and runs the worker that removes superseded files.",
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: flushLogs,
	SilenceUsage:       true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(migrateCmd)
}

func initializeApp(cmd *cobra.Command, args []string) error {
	cfg = config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}

	appLog, err = logger.New(cfg.Log, loc)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	appLog = appLog.With(zap.String("service", serviceName), zap.String("command", cmd.Name()))
	return nil
}

func flushLogs(cmd *cobra.Command, args []string) error {
	if appLog != nil {
		_ = appLog.Sync()
	}
	return nil
}
