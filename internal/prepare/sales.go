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

// Prepared sales dataset contract.
var salesColumns = []string{
	"TransactionID", "SaleDate", "CustomerID", "ProductID", "StoreID",
	"CampaignID", "SaleAmount", "DiscountPercent", "PaymentType",
}

// PrepareSales cleans the raw sales extract: deduplicates on TransactionID,
// fills missing values, and standardizes SaleDate.
func (s *Stage) PrepareSales() (*dataset.Dataset, error) {
	raw, err := s.readRaw("sales_data.csv", "sales")
	if err != nil {
		return nil, err
	}
	if raw.Len() == 0 {
		return raw, nil
	}

	ds, err := dedupe(raw, "TransactionID")
	if err != nil {
		return nil, err
	}

	fillMissing(ds, map[string]string{
		"CampaignID":      "0",
		"DiscountPercent": "0",
		"PaymentType":     "Unknown",
	})
	standardizeDates(ds, "SaleDate")

	out, err := ds.Project(salesColumns, salesColumns)
	if err != nil {
		return nil, err
	}

	if err := s.writePrepared("sales_data_prepared.csv", out); err != nil {
		return nil, err
	}
	return out, nil
}
