//-------------------------------------------------------------------------
//
// Smart Store ETL
//
// Copyright (c) 2025 - 2026, the smartstore-etl authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package dataset defines the tabular dataset passed between the prepare
// stage and the warehouse loader: an ordered sequence of records with a
// fixed, named, flat field set.
package dataset

import (
	"fmt"
	"slices"
)

// Dataset is an in-memory tabular dataset. Rows are field-aligned with
// Columns; all values are strings as read from CSV.
type Dataset struct {
	// Name identifies the dataset in logs and errors (e.g. "customers").
	Name string

	// Columns holds the field names in order.
	Columns []string

	// Rows holds one field-aligned slice per record.
	Rows [][]string
}

// New returns an empty dataset with the given name and columns.
func New(name string, columns ...string) *Dataset {
	return &Dataset{Name: name, Columns: slices.Clone(columns)}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Column returns the index of the named column, or -1 if absent.
func (d *Dataset) Column(name string) int {
	return slices.Index(d.Columns, name)
}

// HasColumn reports whether the named column exists.
func (d *Dataset) HasColumn(name string) bool {
	return d.Column(name) >= 0
}

// Get returns the value of the named field in row i.
func (d *Dataset) Get(i int, field string) (string, error) {
	col := d.Column(field)
	if col < 0 {
		return "", fmt.Errorf("dataset %s: no column %q", d.Name, field)
	}
	if i < 0 || i >= len(d.Rows) {
		return "", fmt.Errorf("dataset %s: row %d out of range", d.Name, i)
	}
	return d.Rows[i][col], nil
}

// Append adds a record. The row must be field-aligned with Columns.
func (d *Dataset) Append(row []string) error {
	if len(row) != len(d.Columns) {
		return fmt.Errorf("dataset %s: row has %d fields, want %d",
			d.Name, len(row), len(d.Columns))
	}
	d.Rows = append(d.Rows, row)
	return nil
}

// Project returns the rows of the named source fields, in order, relabeled
// under the given canonical names. Every source field must exist and the two
// slices must be the same length. Rows are freshly allocated; the receiver
// is not modified.
func (d *Dataset) Project(fields, names []string) (*Dataset, error) {
	if len(fields) != len(names) {
		return nil, fmt.Errorf("dataset %s: %d fields but %d names",
			d.Name, len(fields), len(names))
	}

	idx := make([]int, len(fields))
	for i, f := range fields {
		col := d.Column(f)
		if col < 0 {
			return nil, fmt.Errorf("dataset %s: no column %q", d.Name, f)
		}
		idx[i] = col
	}

	out := New(d.Name, names...)
	out.Rows = make([][]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		projected := make([]string, len(idx))
		for i, col := range idx {
			projected[i] = row[col]
		}
		out.Rows = append(out.Rows, projected)
	}
	return out, nil
}

// Distinct returns the distinct values of the named field. Only uniqueness
// is guaranteed; values are returned in order of first appearance.
func (d *Dataset) Distinct(field string) ([]string, error) {
	col := d.Column(field)
	if col < 0 {
		return nil, fmt.Errorf("dataset %s: no column %q", d.Name, field)
	}

	seen := make(map[string]struct{}, len(d.Rows))
	values := make([]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		v := row[col]
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values, nil
}
