//-------------------------------------------------------------------------
//
// Smart Store ETL
//
// Copyright (c) 2025 - 2026, the smartstore-etl authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ReadCSV reads a dataset from a CSV file. The first record is the header.
// Header names are trimmed of surrounding whitespace. A missing file is
// reported as an error wrapping fs.ErrNotExist so callers can degrade to an
// empty dataset.
func ReadCSV(path, name string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return New(name), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", name, err)
	}

	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	ds := New(name, header...)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s row %d: %w", name, ds.Len()+1, err)
		}
		ds.Rows = append(ds.Rows, record)
	}
	return ds, nil
}

// IsNotExist reports whether err came from a missing source file.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// WriteCSV writes a dataset to a CSV file, creating parent directories as
// needed. The header record is written first.
func WriteCSV(path string, ds *Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write %s: %w", ds.Name, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", ds.Name, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(ds.Columns); err != nil {
		f.Close()
		return fmt.Errorf("write %s header: %w", ds.Name, err)
	}
	for i, row := range ds.Rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write %s row %d: %w", ds.Name, i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", ds.Name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", ds.Name, err)
	}
	return nil
}
