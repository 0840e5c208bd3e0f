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
	"time"

	"github.com/smartstore/smartstore-etl/internal/dataset"
)

// Prepared customer dataset contract.
var customerColumns = []string{
	"CustomerID", "Name", "Region", "JoinDate", "LoyaltyPoints",
	"CustomerSegment", "StandardDateTime",
}

// PrepareCustomers cleans the raw customer extract: deduplicates on
// CustomerID, fills missing values, standardizes JoinDate, and derives the
// StandardDateTime column from it.
func (s *Stage) PrepareCustomers() (*dataset.Dataset, error) {
	raw, err := s.readRaw("customers_data.csv", "customers")
	if err != nil {
		return nil, err
	}
	if raw.Len() == 0 {
		return raw, nil
	}

	ds, err := dedupe(raw, "CustomerID")
	if err != nil {
		return nil, err
	}

	fillMissing(ds, map[string]string{
		"Region":          "Unknown",
		"CustomerSegment": "Standard",
		"LoyaltyPoints":   "0",
	})
	standardizeDates(ds, "JoinDate")

	// Project into contract order, then derive the StandardDateTime column
	// as a midnight timestamp on the standardized join date.
	source := customerColumns[:len(customerColumns)-1]
	projected, err := ds.Project(source, source)
	if err != nil {
		return nil, err
	}

	out := dataset.New("customers", customerColumns...)
	join := projected.Column("JoinDate")
	for _, row := range projected.Rows {
		// Rows whose join date could not be standardized get an empty
		// derived column instead of a malformed timestamp.
		derived := ""
		if _, err := time.Parse(ISODate, row[join]); err == nil {
			derived = row[join] + "T00:00:00"
		}
		out.Rows = append(out.Rows, append(row, derived))
	}

	if err := s.writePrepared("customers_data_prepared.csv", out); err != nil {
		return nil, err
	}
	return out, nil
}
