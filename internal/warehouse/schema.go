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
)

// Schema SQL for the star schema: three dimension tables and one fact table.
// Idempotent; never drops or alters existing tables.
const createSchemaSQL = `
-- Customer Dimension
CREATE TABLE IF NOT EXISTS dim_customer (
    customer_id        INTEGER PRIMARY KEY,
    name               TEXT,
    region             TEXT,
    join_date          TEXT,
    loyalty_points     INTEGER,
    customer_segment   TEXT,
    standard_date_time TEXT
);

-- Product Dimension
CREATE TABLE IF NOT EXISTS dim_product (
    product_id     INTEGER PRIMARY KEY,
    product_name   TEXT,
    category       TEXT,
    unit_price     REAL,
    stock_quantity INTEGER,
    subcategory    TEXT
);

-- Store Dimension (derived from sales data, no dedicated source file)
CREATE TABLE IF NOT EXISTS dim_store (
    store_id   INTEGER PRIMARY KEY,
    store_name TEXT DEFAULT 'Unknown'
);

-- Sales Fact
CREATE TABLE IF NOT EXISTS fact_sales (
    transaction_id   INTEGER PRIMARY KEY,
    sale_date        TEXT,
    customer_id      INTEGER,
    product_id       INTEGER,
    store_id         INTEGER,
    campaign_id      INTEGER,
    sale_amount      REAL,
    discount_percent REAL,
    payment_type     TEXT,
    FOREIGN KEY (customer_id) REFERENCES dim_customer (customer_id),
    FOREIGN KEY (product_id) REFERENCES dim_product (product_id),
    FOREIGN KEY (store_id) REFERENCES dim_store (store_id)
);
`

// EnsureSchema creates the warehouse tables if they do not already exist.
// Safe to call on every run.
func EnsureSchema(ctx context.Context, db DB) error {
	if _, err := db.ExecContext(ctx, createSchemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
