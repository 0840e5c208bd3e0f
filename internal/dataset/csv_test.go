package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "sales.csv")

	ds := New("sales", "TransactionID", "Amount")
	ds.Rows = [][]string{
		{"1", "10.00"},
		{"2", "20.00"},
	}

	if err := WriteCSV(path, ds); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	got, err := ReadCSV(path, "sales")
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	if len(got.Columns) != 2 || got.Columns[0] != "TransactionID" {
		t.Errorf("Unexpected columns: %v", got.Columns)
	}
	if got.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", got.Len())
	}
	if got.Rows[1][1] != "20.00" {
		t.Errorf("Unexpected row: %v", got.Rows[1])
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"), "sales")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !IsNotExist(err) {
		t.Errorf("Expected IsNotExist true, got error: %v", err)
	}
}

func TestReadCSVTrimsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := " CustomerID , Name \n1,Ada\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	ds, err := ReadCSV(path, "customers")
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if ds.Columns[0] != "CustomerID" || ds.Columns[1] != "Name" {
		t.Errorf("Expected trimmed headers, got %v", ds.Columns)
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	ds, err := ReadCSV(path, "customers")
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if ds.Len() != 0 || len(ds.Columns) != 0 {
		t.Errorf("Expected empty dataset, got %d columns, %d rows",
			len(ds.Columns), ds.Len())
	}
}
