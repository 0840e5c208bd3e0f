package dataset

import (
	"testing"
)

func sample() *Dataset {
	ds := New("sales", "TransactionID", "StoreID", "Amount")
	ds.Rows = [][]string{
		{"1", "3", "10.00"},
		{"2", "1", "20.00"},
		{"3", "3", "30.00"},
		{"4", "2", "40.00"},
	}
	return ds
}

func TestColumn(t *testing.T) {
	ds := sample()

	if got := ds.Column("StoreID"); got != 1 {
		t.Errorf("Expected column index 1, got %d", got)
	}
	if got := ds.Column("Missing"); got != -1 {
		t.Errorf("Expected -1 for missing column, got %d", got)
	}
	if !ds.HasColumn("Amount") {
		t.Error("Expected HasColumn(Amount) true")
	}
}

func TestGet(t *testing.T) {
	ds := sample()

	v, err := ds.Get(2, "Amount")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v != "30.00" {
		t.Errorf("Expected '30.00', got %q", v)
	}

	if _, err := ds.Get(0, "Nope"); err == nil {
		t.Error("Expected error for missing column")
	}
	if _, err := ds.Get(99, "Amount"); err == nil {
		t.Error("Expected error for out-of-range row")
	}
}

func TestAppend(t *testing.T) {
	ds := New("t", "a", "b")

	if err := ds.Append([]string{"1", "2"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := ds.Append([]string{"1"}); err == nil {
		t.Error("Expected error for misaligned row")
	}
	if ds.Len() != 1 {
		t.Errorf("Expected 1 row, got %d", ds.Len())
	}
}

func TestProject(t *testing.T) {
	ds := sample()

	out, err := ds.Project(
		[]string{"TransactionID", "Amount"},
		[]string{"transaction_id", "amount"})
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	if len(out.Columns) != 2 || out.Columns[0] != "transaction_id" || out.Columns[1] != "amount" {
		t.Errorf("Unexpected columns: %v", out.Columns)
	}
	if out.Len() != ds.Len() {
		t.Errorf("Expected %d rows, got %d", ds.Len(), out.Len())
	}
	if out.Rows[3][0] != "4" || out.Rows[3][1] != "40.00" {
		t.Errorf("Unexpected projected row: %v", out.Rows[3])
	}

	// Source must be untouched
	if len(ds.Columns) != 3 {
		t.Errorf("Source columns modified: %v", ds.Columns)
	}
}

func TestProjectErrors(t *testing.T) {
	ds := sample()

	tests := []struct {
		name   string
		fields []string
		names  []string
	}{
		{"missing field", []string{"Nope"}, []string{"nope"}},
		{"length mismatch", []string{"Amount"}, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ds.Project(tt.fields, tt.names); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestDistinct(t *testing.T) {
	ds := sample()

	values, err := ds.Distinct("StoreID")
	if err != nil {
		t.Fatalf("Distinct failed: %v", err)
	}

	want := []string{"3", "1", "2"}
	if len(values) != len(want) {
		t.Fatalf("Expected %d distinct values, got %d", len(want), len(values))
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("Distinct[%d]: expected %q, got %q", i, want[i], values[i])
		}
	}

	if _, err := ds.Distinct("Nope"); err == nil {
		t.Error("Expected error for missing column")
	}
}
