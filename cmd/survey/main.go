package main

import (
	"fmt"
	"os"

	"github.com/godilite/survey-stats/internal/config"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose bool
	dbPath  string

	cfg    *config.Config
	logger *zap.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "survey",
		Short: "Descriptive statistics for six-point Likert questionnaires",
		Long: `survey computes descriptive statistics over questionnaire responses
coded SS, S, CS, CTS, TS and STS for questions Q1..Q17.

Responses are read from .xlsx or .csv files, or from datasets previously
stored with "survey import".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewProductionConfig()
			zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default $DB_PATH)")

	root.AddCommand(
		newAnswerCmd(),
		newReportCmd(),
		newImportCmd(),
		newDatasetsCmd(),
	)
	return root
}

func main() {
	_ = godotenv.Load(".env")
	cfg = config.LoadFromEnv()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
