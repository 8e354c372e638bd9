package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	stagingRole string
	stagingYes  bool
)

// stagingCmd is the parent command for staging table operations.
var stagingCmd = &cobra.Command{
	Use:   "staging",
	Short: "Manage the credit staging tables",
	Long: `Manage the per-role staging tables extracted from the catalog export.
A staging build truncates and rebuilds the table, resetting all processed flags.`,
}

// stagingBuildCmd rebuilds a role's staging table from the export.
var stagingBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Rebuild a role's staging table from the export (destructive)",
	Long: `Rebuild the staging table for a credit role.

The export's credit strings are split into one staging row per
(title, name) pair. The existing staging table is dropped first, so any
processing progress recorded in it is discarded.

Examples:
  # Rebuild actor staging with interactive confirmation
  netflix-etl staging build --role actors

  # Rebuild director staging non-interactively
  netflix-etl staging build --role directors --yes`,
	RunE: runStagingBuild,
}

func init() {
	stagingBuildCmd.Flags().StringVar(&stagingRole, "role", "actors", "Credit role (actors, directors)")
	stagingBuildCmd.Flags().BoolVar(&stagingYes, "yes", false, "Auto-confirm the rebuild (non-interactive)")

	stagingCmd.AddCommand(stagingBuildCmd)
	RootCmd.AddCommand(stagingCmd)
}

func runStagingBuild(cmd *cobra.Command, args []string) error {
	cfg, l, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	service, err := newService(cfg, l, db)
	if err != nil {
		return err
	}

	if !confirmRebuild() {
		l.Warn("Staging rebuild cancelled. No changes were made.")
		return nil
	}

	l.Info("Rebuilding staging table",
		zap.String("role", stagingRole),
		zap.String("source", cfg.Pipeline.Source))

	count, err := service.BuildStaging(cmd.Context(), stagingRole)
	if err != nil {
		return fmt.Errorf("staging build failed: %w", err)
	}

	l.Info("Staging rebuild complete",
		zap.String("role", stagingRole),
		zap.Int("staging_rows", count))
	return nil
}

// confirmRebuild prompts the user for confirmation or uses the --yes flag.
func confirmRebuild() bool {
	if stagingYes {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Rebuilding drops the staging table and its processed flags. Type 'yes' to continue: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
