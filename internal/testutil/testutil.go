//-------------------------------------------------------------------------
//
// Smart Store ETL
//
// Copyright (c) 2025 - 2026, the smartstore-etl authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package testutil provides fixtures and helpers for warehouse tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/smartstore/smartstore-etl/internal/dataset"
	"github.com/smartstore/smartstore-etl/internal/warehouse"
)

// TempWarehouse opens a warehouse in a per-test temporary directory and
// closes it when the test finishes.
func TempWarehouse(t *testing.T, opts ...warehouse.Option) *warehouse.Warehouse {
	t.Helper()

	path := filepath.Join(t.TempDir(), "smart_store.db")
	wh, err := warehouse.Open(path, opts...)
	if err != nil {
		t.Fatalf("Failed to open test warehouse: %v", err)
	}
	t.Cleanup(func() {
		if err := wh.Close(); err != nil {
			t.Errorf("Failed to close test warehouse: %v", err)
		}
	})
	return wh
}

// Customers builds a prepared customers dataset from field-aligned rows.
func Customers(rows ...[]string) *dataset.Dataset {
	return fixture("customers", []string{
		"CustomerID", "Name", "Region", "JoinDate", "LoyaltyPoints",
		"CustomerSegment", "StandardDateTime",
	}, rows)
}

// Products builds a prepared products dataset from field-aligned rows.
func Products(rows ...[]string) *dataset.Dataset {
	return fixture("products", []string{
		"ProductID", "ProductName", "Category", "UnitPrice", "StockQuantity",
		"Subcategory",
	}, rows)
}

// Sales builds a prepared sales dataset from field-aligned rows.
func Sales(rows ...[]string) *dataset.Dataset {
	return fixture("sales", []string{
		"TransactionID", "SaleDate", "CustomerID", "ProductID", "StoreID",
		"CampaignID", "SaleAmount", "DiscountPercent", "PaymentType",
	}, rows)
}

func fixture(name string, columns []string, rows [][]string) *dataset.Dataset {
	ds := dataset.New(name, columns...)
	ds.Rows = rows
	return ds
}
