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
	"strings"

	"github.com/smartstore/smartstore-etl/internal/dataset"
)

// PrepareCampaigns cleans the raw campaign extract. Campaign data feeds no
// warehouse table of its own; the prepared file exists for downstream use
// and the fact table carries only the campaign identifier. Column names are
// canonicalized to lower case.
func (s *Stage) PrepareCampaigns() (*dataset.Dataset, error) {
	raw, err := s.readRaw("campaigns_data.csv", "campaigns")
	if err != nil {
		return nil, err
	}
	if raw.Len() == 0 {
		return raw, nil
	}

	for i, c := range raw.Columns {
		raw.Columns[i] = strings.ToLower(strings.TrimSpace(c))
	}

	ds, err := dedupe(raw, "campaignid")
	if err != nil {
		return nil, err
	}

	standardizeDates(ds, "startdate", "enddate")

	if err := s.writePrepared("campaigns_data_prepared.csv", ds); err != nil {
		return nil, err
	}
	return ds, nil
}
