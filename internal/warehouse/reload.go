//-------------------------------------------------------------------------
//
// Smart Store ETL
//
// Copyright (c) 2025 - 2026, the smartstore-etl authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/smartstore/smartstore-etl/internal/dataset"
	"github.com/smartstore/smartstore-etl/internal/logging"
)

// Sources holds the prepared datasets consumed by a reload. The store
// dimension has no source of its own; it is derived from Sales.
type Sources struct {
	Customers *dataset.Dataset
	Products  *dataset.Dataset
	Sales     *dataset.Dataset
}

// Counts holds the number of rows inserted per table during a reload.
type Counts struct {
	Customers int64
	Products  int64
	Stores    int64
	Sales     int64
}

// Reload performs one full-refresh cycle: ensure schema, then under a
// single transaction purge existing rows (fact first), load each dimension,
// load the fact table, commit. Any failure rolls the whole cycle back and
// leaves the warehouse at its prior committed snapshot. The schema is
// created outside the transaction so it survives a rollback on a fresh
// warehouse.
func (w *Warehouse) Reload(ctx context.Context, src Sources) (Counts, error) {
	var counts Counts

	if err := EnsureSchema(ctx, w.db); err != nil {
		return counts, err
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return counts, fmt.Errorf("begin reload: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logging.Error().Err(rbErr).Msg("Rollback failed")
		}
	}()

	if err := purge(ctx, tx); err != nil {
		return counts, err
	}

	// Dimensions before facts: fact rows reference dimension keys and the
	// schema enforces the foreign keys.
	if counts.Customers, err = w.loadCustomers(ctx, tx, src.Customers); err != nil {
		return counts, err
	}
	logging.Info().Int64("rows", counts.Customers).Msg("Loaded dim_customer")

	if counts.Products, err = w.loadProducts(ctx, tx, src.Products); err != nil {
		return counts, err
	}
	logging.Info().Int64("rows", counts.Products).Msg("Loaded dim_product")

	if counts.Stores, err = w.loadStores(ctx, tx, src.Sales); err != nil {
		return counts, err
	}
	logging.Info().Int64("rows", counts.Stores).Msg("Loaded dim_store")

	if counts.Sales, err = w.loadSales(ctx, tx, src.Sales); err != nil {
		return counts, err
	}
	logging.Info().Int64("rows", counts.Sales).Msg("Loaded fact_sales")

	if err := tx.Commit(); err != nil {
		return counts, fmt.Errorf("commit reload: %w", err)
	}
	committed = true

	logging.Info().
		Int64("customers", counts.Customers).
		Int64("products", counts.Products).
		Int64("stores", counts.Stores).
		Int64("sales", counts.Sales).
		Msg("Warehouse reload complete")
	return counts, nil
}

// purge deletes all rows, fact table first so the foreign keys never see a
// dangling reference.
func purge(ctx context.Context, db DB) error {
	for _, table := range []string{"fact_sales", "dim_customer", "dim_product", "dim_store"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("purge %s: %w", table, err)
		}
	}
	return nil
}
