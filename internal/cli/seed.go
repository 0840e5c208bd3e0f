package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartstore/smartstore-etl/internal/datagen"
	"github.com/smartstore/smartstore-etl/internal/logging"
)

var (
	seedCustomers int
	seedProducts  int
	seedCampaigns int
	seedSales     int
	seedStores    int
	seedSeed      uint64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate raw extracts for the prepare stage",
	Long: `Generate fake raw extracts (customers, products, campaigns, sales)
under <data-dir>/raw. The extracts deliberately contain duplicate rows,
blank fields, and mixed date formats so the prepare stage has realistic
cleaning work.

Example:
  smartstore-etl seed --customers 500 --sales 10000 --seed 42`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedCustomers, "customers", 0,
		"number of raw customer rows")
	seedCmd.Flags().IntVar(&seedProducts, "products", 0,
		"number of raw product rows")
	seedCmd.Flags().IntVar(&seedCampaigns, "campaigns", 0,
		"number of raw campaign rows")
	seedCmd.Flags().IntVar(&seedSales, "sales", 0,
		"number of raw sales rows")
	seedCmd.Flags().IntVar(&seedStores, "stores", 0,
		"number of distinct store identifiers in sales rows")
	seedCmd.Flags().Uint64Var(&seedSeed, "seed", 0,
		"RNG seed for reproducible extracts (0 = random)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if seedCustomers > 0 {
		cfg.Seed.Customers = seedCustomers
	}
	if seedProducts > 0 {
		cfg.Seed.Products = seedProducts
	}
	if seedCampaigns > 0 {
		cfg.Seed.Campaigns = seedCampaigns
	}
	if seedSales > 0 {
		cfg.Seed.Sales = seedSales
	}
	if seedStores > 0 {
		cfg.Seed.Stores = seedStores
	}
	if seedSeed != 0 {
		cfg.Seed.Seed = seedSeed
	}

	if err := cfg.ValidateSeed(); err != nil {
		return err
	}

	logging.Info().
		Str("dir", cfg.RawDir()).
		Int("customers", cfg.Seed.Customers).
		Int("products", cfg.Seed.Products).
		Int("campaigns", cfg.Seed.Campaigns).
		Int("sales", cfg.Seed.Sales).
		Msg("Generating raw extracts")

	gen := datagen.NewGenerator(cfg.Seed.Seed)
	if err := gen.WriteRawExtracts(cfg.RawDir(), datagen.Config{
		Customers: cfg.Seed.Customers,
		Products:  cfg.Seed.Products,
		Campaigns: cfg.Seed.Campaigns,
		Sales:     cfg.Seed.Sales,
		Stores:    cfg.Seed.Stores,
		Seed:      cfg.Seed.Seed,
	}); err != nil {
		return fmt.Errorf("failed to generate raw extracts: %w", err)
	}

	logging.Info().Msg("Raw extracts complete")
	return nil
}
