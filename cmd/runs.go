package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	runsTable string
	runsLimit int
)

// runsCmd shows the processing run ledger.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the processing run ledger",
	Long: `Show per-table aggregates over the run ledger plus the most recent runs.

Examples:
  netflix-etl runs
  netflix-etl runs --table actors_titles --limit 5`,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&runsTable, "table", "", "Only show runs targeting this table")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 10, "Max recent runs to show")
	RootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, l, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	service, err := newService(cfg, l, db)
	if err != nil {
		return err
	}

	summary, err := service.RunSummary()
	if err != nil {
		return err
	}
	for _, s := range summary {
		l.Info("Table summary",
			zap.String("table", s.TableName),
			zap.Int("runs", s.TotalRuns),
			zap.Int("completed", s.CompletedRuns),
			zap.Int("failed", s.FailedRuns),
			zap.Int("total_processed", s.TotalProcessed),
			zap.Int("total_created", s.TotalCreated),
			zap.Timep("last_run", s.LastRunTime))
	}
	if len(summary) == 0 {
		l.Info("No processing runs recorded yet")
		return nil
	}

	runs, err := service.LatestRuns(runsTable, runsLimit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fields := []zap.Field{
			zap.Uint("run_id", r.StatusID),
			zap.String("table", r.TableName),
			zap.String("status", r.Status),
			zap.Int("processed", r.RecordsProcessed),
			zap.Int("created", r.RecordsCreated),
			zap.Int("skipped", r.RecordsSkipped),
			zap.Int("failed", r.RecordsFailed),
			zap.Time("start", r.StartTime),
		}
		if r.ErrorMessage != nil {
			fields = append(fields, zap.String("error", *r.ErrorMessage))
		}
		l.Info("Run", fields...)
	}
	return nil
}
