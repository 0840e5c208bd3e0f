//-------------------------------------------------------------------------
//
// Smart Store ETL
//
// Copyright (c) 2025 - 2026, the smartstore-etl authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package prepare implements the cleaning stage: it reads raw tabular
// extracts, removes duplicates, handles missing values, standardizes date
// formats, and writes the prepared datasets the warehouse loader consumes.
package prepare

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/smartstore/smartstore-etl/internal/dataset"
	"github.com/smartstore/smartstore-etl/internal/logging"
)

// ISODate is the canonical date format of prepared datasets.
const ISODate = "2006-01-02"

// StandardDateTime is the canonical timestamp format of prepared datasets.
const StandardDateTime = "2006-01-02T15:04:05"

// Date layouts accepted in raw extracts.
var rawDateLayouts = []string{
	ISODate,
	"2006-01-02 15:04:05",
	StandardDateTime,
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
	"January 2, 2006",
}

// Stage runs the per-entity cleaning transforms. Each transform is an
// independent row-wise pass with no shared state.
type Stage struct {
	rawDir      string
	preparedDir string
}

// New returns a Stage reading raw extracts from rawDir and writing prepared
// datasets to preparedDir.
func New(rawDir, preparedDir string) *Stage {
	return &Stage{rawDir: rawDir, preparedDir: preparedDir}
}

// Run prepares all four entities. A missing raw extract is reported and
// skipped; any other failure aborts.
func (s *Stage) Run() error {
	steps := []struct {
		name string
		fn   func() (*dataset.Dataset, error)
	}{
		{"customers", s.PrepareCustomers},
		{"products", s.PrepareProducts},
		{"sales", s.PrepareSales},
		{"campaigns", s.PrepareCampaigns},
	}

	for _, step := range steps {
		if _, err := step.fn(); err != nil {
			return fmt.Errorf("prepare %s: %w", step.name, err)
		}
	}
	return nil
}

// readRaw reads a raw extract. A missing file is logged and returned as an
// empty dataset rather than failing the whole cleaning run.
func (s *Stage) readRaw(fileName, name string) (*dataset.Dataset, error) {
	path := filepath.Join(s.rawDir, fileName)
	ds, err := dataset.ReadCSV(path, name)
	if err != nil {
		if dataset.IsNotExist(err) {
			logging.Warn().Str("path", path).Msg("Raw extract not found")
			return dataset.New(name), nil
		}
		return nil, err
	}
	logging.Info().Str("dataset", name).Int("rows", ds.Len()).Msg("Read raw extract")
	return ds, nil
}

// writePrepared saves a prepared dataset. Empty datasets are not written so
// a degraded run leaves no stale prepared file behind the loader could
// mistake for fresh data.
func (s *Stage) writePrepared(fileName string, ds *dataset.Dataset) error {
	if ds.Len() == 0 {
		logging.Warn().Str("dataset", ds.Name).Msg("No rows prepared, skipping write")
		return nil
	}
	path := filepath.Join(s.preparedDir, fileName)
	if err := dataset.WriteCSV(path, ds); err != nil {
		return err
	}
	logging.Info().Str("dataset", ds.Name).Str("path", path).Int("rows", ds.Len()).Msg("Saved prepared data")
	return nil
}

// dedupe drops rows whose key field duplicates an earlier row, keeping the
// first occurrence. Rows with an empty key are dropped.
func dedupe(ds *dataset.Dataset, keyField string) (*dataset.Dataset, error) {
	col := ds.Column(keyField)
	if col < 0 {
		return nil, fmt.Errorf("dataset %s: no key column %q", ds.Name, keyField)
	}

	seen := make(map[string]struct{}, len(ds.Rows))
	out := dataset.New(ds.Name, ds.Columns...)
	var dropped int
	for _, row := range ds.Rows {
		key := row[col]
		if key == "" {
			dropped++
			continue
		}
		if _, ok := seen[key]; ok {
			dropped++
			continue
		}
		seen[key] = struct{}{}
		out.Rows = append(out.Rows, row)
	}

	if dropped > 0 {
		logging.Info().
			Str("dataset", ds.Name).
			Str("key", keyField).
			Int("dropped", dropped).
			Msg("Removed duplicate rows")
	}
	return out, nil
}

// fillMissing replaces empty values with per-field defaults, in place.
func fillMissing(ds *dataset.Dataset, defaults map[string]string) {
	for field, def := range defaults {
		col := ds.Column(field)
		if col < 0 {
			continue
		}
		var filled int
		for _, row := range ds.Rows {
			if row[col] == "" {
				row[col] = def
				filled++
			}
		}
		if filled > 0 {
			logging.Debug().
				Str("dataset", ds.Name).
				Str("field", field).
				Int("filled", filled).
				Msg("Filled missing values")
		}
	}
}

// standardizeDates rewrites the named date fields to ISO form, in place.
// Unparseable values are left untouched and counted.
func standardizeDates(ds *dataset.Dataset, fields ...string) {
	for _, field := range fields {
		col := ds.Column(field)
		if col < 0 {
			continue
		}
		var bad int
		for _, row := range ds.Rows {
			if row[col] == "" {
				continue
			}
			t, err := parseRawDate(row[col])
			if err != nil {
				bad++
				continue
			}
			row[col] = t.Format(ISODate)
		}
		if bad > 0 {
			logging.Warn().
				Str("dataset", ds.Name).
				Str("field", field).
				Int("unparseable", bad).
				Msg("Some date values could not be standardized")
		}
	}
}

// parseRawDate parses a raw date value against the accepted layouts.
func parseRawDate(s string) (time.Time, error) {
	for _, layout := range rawDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
