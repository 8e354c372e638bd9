package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	processRole      string
	processBatchSize int
)

// processCmd runs the reconciliation pipeline over unprocessed staging rows.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Reconcile staged credits into relationship rows",
	Long: `Process all unprocessed staging rows for a credit role.

Each row resolves its title and credit name (creating missing people and
role rows), and inserts the relationship unless it already exists. Rows are
processed in batches; an interrupted run resumes from the processed flags,
so re-running is always safe.

Examples:
  netflix-etl process --role actors
  netflix-etl process --role directors --batch-size 1000`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVar(&processRole, "role", "actors", "Credit role (actors, directors)")
	processCmd.Flags().IntVar(&processBatchSize, "batch-size", 0, "Rows per batch (0 = configured default)")

	RootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, l, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	service, err := newService(cfg, l, db)
	if err != nil {
		return err
	}

	l.Info("Starting credit reconciliation", zap.String("role", processRole))

	summary, err := service.Process(cmd.Context(), processRole, processBatchSize)
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	l.Info("Credit reconciliation complete",
		zap.String("role", processRole),
		zap.Int("batches", summary.Batches),
		zap.Int("processed", summary.Processed),
		zap.Int("created", summary.Created),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))

	if summary.Failed > 0 {
		l.Warn("Some rows failed and remain unprocessed; re-run process to retry",
			zap.Int("failed", summary.Failed))
	}
	return nil
}
