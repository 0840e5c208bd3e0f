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
	"fmt"
	"strings"

	"github.com/smartstore/smartstore-etl/internal/dataset"
)

// Column mappings from prepared field names to warehouse column names.
// Order matters: rows are inserted field-aligned with these.
var (
	customerFields = []string{"CustomerID", "Name", "Region", "JoinDate", "LoyaltyPoints", "CustomerSegment", "StandardDateTime"}
	customerCols   = []string{"customer_id", "name", "region", "join_date", "loyalty_points", "customer_segment", "standard_date_time"}

	productFields = []string{"ProductID", "ProductName", "Category", "UnitPrice", "StockQuantity", "Subcategory"}
	productCols   = []string{"product_id", "product_name", "category", "unit_price", "stock_quantity", "subcategory"}

	salesFields = []string{"TransactionID", "SaleDate", "CustomerID", "ProductID", "StoreID", "CampaignID", "SaleAmount", "DiscountPercent", "PaymentType"}
	salesCols   = []string{"transaction_id", "sale_date", "customer_id", "product_id", "store_id", "campaign_id", "sale_amount", "discount_percent", "payment_type"}

	storeCols = []string{"store_id", "store_name"}
)

// loadCustomers maps the prepared customers dataset into dim_customer.
func (w *Warehouse) loadCustomers(ctx context.Context, db DB, ds *dataset.Dataset) (int64, error) {
	if ds == nil || ds.Len() == 0 {
		return 0, nil
	}
	projected, err := ds.Project(customerFields, customerCols)
	if err != nil {
		return 0, err
	}
	return w.insertRows(ctx, db, "dim_customer", customerCols, projected.Rows)
}

// loadProducts maps the prepared products dataset into dim_product.
func (w *Warehouse) loadProducts(ctx context.Context, db DB, ds *dataset.Dataset) (int64, error) {
	if ds == nil || ds.Len() == 0 {
		return 0, nil
	}
	projected, err := ds.Project(productFields, productCols)
	if err != nil {
		return 0, err
	}
	return w.insertRows(ctx, db, "dim_product", productCols, projected.Rows)
}

// loadStores derives dim_store from the sales dataset: one row per distinct
// StoreID, with a synthesized display name.
func (w *Warehouse) loadStores(ctx context.Context, db DB, sales *dataset.Dataset) (int64, error) {
	if sales == nil || sales.Len() == 0 {
		return 0, nil
	}
	ids, err := sales.Distinct("StoreID")
	if err != nil {
		return 0, err
	}

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{id, "Store " + id})
	}
	return w.insertRows(ctx, db, "dim_store", storeCols, rows)
}

// loadSales maps the prepared sales dataset into fact_sales. The dataset is
// accepted as delivered; no range or existence checks beyond the schema's
// foreign keys.
func (w *Warehouse) loadSales(ctx context.Context, db DB, ds *dataset.Dataset) (int64, error) {
	if ds == nil || ds.Len() == 0 {
		return 0, nil
	}
	projected, err := ds.Project(salesFields, salesCols)
	if err != nil {
		return 0, err
	}
	return w.insertRows(ctx, db, "fact_sales", salesCols, projected.Rows)
}

// insertRows bulk-inserts field-aligned rows into a table using batched
// multi-row INSERT statements. Values are bound as text; SQLite column
// affinity converts numeric columns. Any failure (duplicate key, foreign key
// violation) is returned unretried.
func (w *Warehouse) insertRows(ctx context.Context, db DB, table string, columns []string, rows [][]string) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	placeholder := "(" + strings.Repeat("?, ", len(columns)-1) + "?)"
	prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES ",
		table, strings.Join(columns, ", "))

	var inserted int64
	for start := 0; start < len(rows); start += w.batchSize {
		end := min(start+w.batchSize, len(rows))
		batch := rows[start:end]

		placeholders := make([]string, len(batch))
		args := make([]any, 0, len(batch)*len(columns))
		for i, row := range batch {
			if len(row) != len(columns) {
				return inserted, fmt.Errorf("insert %s: row %d has %d fields, want %d",
					table, start+i, len(row), len(columns))
			}
			placeholders[i] = placeholder
			for _, v := range row {
				args = append(args, v)
			}
		}

		res, err := db.ExecContext(ctx, prefix+strings.Join(placeholders, ", "), args...)
		if err != nil {
			return inserted, fmt.Errorf("insert %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("insert %s: %w", table, err)
		}
		inserted += n
	}
	return inserted, nil
}
