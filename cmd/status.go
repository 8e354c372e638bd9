package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var statusRole string

// statusCmd reports staging progress for a credit role.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show staging progress for a credit role",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusRole, "role", "actors", "Credit role (actors, directors)")
	RootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, l, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	service, err := newService(cfg, l, db)
	if err != nil {
		return err
	}

	status, err := service.StagingStatus(statusRole)
	if err != nil {
		return err
	}

	if !status.Exists {
		l.Warn("Staging table does not exist yet; run 'staging build' first",
			zap.String("table", status.Table))
		return nil
	}

	progress := 100.0
	if status.Total > 0 {
		progress = float64(status.Processed) / float64(status.Total) * 100
	}
	l.Info("Staging status",
		zap.String("role", status.Role),
		zap.String("table", status.Table),
		zap.Int("total", status.Total),
		zap.Int("processed", status.Processed),
		zap.Int("remaining", status.Remaining),
		zap.String("progress", fmt.Sprintf("%.1f%%", progress)))
	return nil
}
