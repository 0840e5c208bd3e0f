package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/smartstore/smartstore-etl/internal/dataset"
	"github.com/smartstore/smartstore-etl/internal/logging"
	"github.com/smartstore/smartstore-etl/internal/warehouse"
)

var loadBatchSize int

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Reload the warehouse from prepared datasets",
	Long: `Perform one full, transactional warehouse refresh: ensure the star
schema exists, purge all rows, and load the customer, product, store, and
sales tables from <data-dir>/prepared. The store dimension is derived from
the distinct StoreID values in the sales dataset.

The reload is all-or-nothing: any failure rolls back and leaves the
warehouse at its prior committed snapshot.`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().IntVar(&loadBatchSize, "batch-size", 0,
		"rows per batched insert statement")
}

func runLoad(cmd *cobra.Command, args []string) error {
	if loadBatchSize > 0 {
		cfg.Load.BatchSize = loadBatchSize
	}
	if err := cfg.ValidateLoad(); err != nil {
		return err
	}
	return reloadWarehouse(cmd.Context())
}

// reloadWarehouse reads the prepared datasets and performs one reload.
// Shared by the load and run commands.
func reloadWarehouse(ctx context.Context) error {
	customers, err := readPrepared("customers_data_prepared.csv", "customers")
	if err != nil {
		return err
	}
	products, err := readPrepared("products_data_prepared.csv", "products")
	if err != nil {
		return err
	}
	sales, err := readPrepared("sales_data_prepared.csv", "sales")
	if err != nil {
		return err
	}

	wh, err := warehouse.Open(cfg.Warehouse(),
		warehouse.WithBatchSize(cfg.Load.BatchSize))
	if err != nil {
		return fmt.Errorf("failed to open warehouse: %w", err)
	}
	defer wh.Close()

	logging.Info().Str("path", wh.Path()).Msg("Starting warehouse reload")

	if _, err := wh.Reload(ctx, warehouse.Sources{
		Customers: customers,
		Products:  products,
		Sales:     sales,
	}); err != nil {
		return fmt.Errorf("warehouse reload failed: %w", err)
	}
	return nil
}

// readPrepared reads a prepared dataset. A missing file degrades to an
// empty dataset; the reload proceeds with whatever is present.
func readPrepared(fileName, name string) (*dataset.Dataset, error) {
	path := filepath.Join(cfg.PreparedDir(), fileName)
	ds, err := dataset.ReadCSV(path, name)
	if err != nil {
		if dataset.IsNotExist(err) {
			logging.Warn().Str("path", path).Msg("Prepared dataset not found, loading empty")
			return dataset.New(name), nil
		}
		return nil, err
	}
	logging.Info().Str("dataset", name).Int("rows", ds.Len()).Msg("Read prepared dataset")
	return ds, nil
}
