package cli

import (
	"github.com/spf13/cobra"

	"github.com/smartstore/smartstore-etl/internal/logging"
	"github.com/smartstore/smartstore-etl/internal/prepare"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Prepare raw extracts and reload the warehouse",
	Long: `Run the full pipeline end to end: clean all raw extracts into
prepared datasets, then perform one transactional warehouse reload.

Example:
  smartstore-etl run --data-dir ./data`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateLoad(); err != nil {
		return err
	}

	stage := prepare.New(cfg.RawDir(), cfg.PreparedDir())
	if err := stage.Run(); err != nil {
		return err
	}

	if err := reloadWarehouse(cmd.Context()); err != nil {
		return err
	}

	logging.Info().Msg("Pipeline complete")
	return nil
}
