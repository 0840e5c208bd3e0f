//-------------------------------------------------------------------------
//
// Smart Store ETL
//
// Copyright (c) 2025 - 2026, the smartstore-etl authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package prepare

import (
	"github.com/smartstore/smartstore-etl/internal/dataset"
)

// Prepared product dataset contract.
var productColumns = []string{
	"ProductID", "ProductName", "Category", "UnitPrice", "StockQuantity",
	"Subcategory",
}

// PrepareProducts cleans the raw product extract: deduplicates on ProductID
// and fills missing values. Products carry no date columns.
func (s *Stage) PrepareProducts() (*dataset.Dataset, error) {
	raw, err := s.readRaw("products_data.csv", "products")
	if err != nil {
		return nil, err
	}
	if raw.Len() == 0 {
		return raw, nil
	}

	ds, err := dedupe(raw, "ProductID")
	if err != nil {
		return nil, err
	}

	fillMissing(ds, map[string]string{
		"Subcategory":   "General",
		"StockQuantity": "0",
	})

	out, err := ds.Project(productColumns, productColumns)
	if err != nil {
		return nil, err
	}

	if err := s.writePrepared("products_data_prepared.csv", out); err != nil {
		return nil, err
	}
	return out, nil
}
