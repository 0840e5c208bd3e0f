package cli

import (
	"github.com/spf13/cobra"

	"github.com/smartstore/smartstore-etl/internal/logging"
	"github.com/smartstore/smartstore-etl/internal/prepare"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Clean raw extracts into prepared datasets",
	Long: `Run the cleaning stage for all four entities: remove duplicate rows,
handle missing values, and standardize date formats. Reads from
<data-dir>/raw and writes <entity>_data_prepared.csv files to
<data-dir>/prepared. A missing raw extract is reported and skipped.`,
	RunE: runPrepare,
}

func runPrepare(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Info().
		Str("raw", cfg.RawDir()).
		Str("prepared", cfg.PreparedDir()).
		Msg("Preparing datasets")

	stage := prepare.New(cfg.RawDir(), cfg.PreparedDir())
	if err := stage.Run(); err != nil {
		return err
	}

	logging.Info().Msg("Data preparation complete")
	return nil
}
