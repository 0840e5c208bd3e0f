package warehouse_test

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/smartstore/smartstore-etl/internal/dataset"
	"github.com/smartstore/smartstore-etl/internal/testutil"
	"github.com/smartstore/smartstore-etl/internal/warehouse"
)

func testSources() warehouse.Sources {
	return warehouse.Sources{
		Customers: testutil.Customers(
			[]string{"1", "Ada Lovelace", "West", "2023-01-05", "120", "Gold", "2023-01-05T00:00:00"},
			[]string{"2", "Alan Turing", "East", "2022-06-01", "40", "Silver", "2022-06-01T00:00:00"},
			[]string{"3", "Grace Hopper", "North", "2021-11-20", "310", "Gold", "2021-11-20T00:00:00"},
		),
		Products: testutil.Products(
			[]string{"10", "Laptop", "Electronics", "999.99", "25", "Computers"},
			[]string{"11", "Desk Lamp", "Home", "24.50", "140", "Lighting"},
		),
		Sales: testutil.Sales(
			[]string{"100", "2024-01-10", "1", "10", "3", "5", "999.99", "10.0", "Credit"},
			[]string{"101", "2024-01-11", "2", "11", "1", "0", "24.50", "0.0", "Cash"},
			[]string{"102", "2024-01-12", "3", "10", "3", "5", "899.99", "5.0", "Debit"},
			[]string{"103", "2024-01-13", "1", "11", "2", "0", "24.50", "0.0", "Cash"},
		),
	}
}

func mustReload(t *testing.T, wh *warehouse.Warehouse, src warehouse.Sources) warehouse.Counts {
	t.Helper()
	counts, err := wh.Reload(context.Background(), src)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	return counts
}

func mustCount(t *testing.T, wh *warehouse.Warehouse, table string) int64 {
	t.Helper()
	n, err := wh.RowCount(context.Background(), table)
	if err != nil {
		t.Fatalf("RowCount(%s) failed: %v", table, err)
	}
	return n
}

// tableDump returns every row of a table as a sorted, stringified snapshot.
func tableDump(t *testing.T, wh *warehouse.Warehouse, table, orderBy string) []string {
	t.Helper()

	rows, err := wh.DB().Query(fmt.Sprintf("SELECT * FROM %s ORDER BY %s", table, orderBy))
	if err != nil {
		t.Fatalf("Query %s failed: %v", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}

	var dump []string
	for rows.Next() {
		values := make([]any, len(cols))
		for i := range values {
			values[i] = new(sql.NullString)
		}
		if err := rows.Scan(values...); err != nil {
			t.Fatalf("Scan %s failed: %v", table, err)
		}
		fields := make([]string, len(values))
		for i, v := range values {
			fields[i] = v.(*sql.NullString).String
		}
		dump = append(dump, strings.Join(fields, "|"))
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Rows %s failed: %v", table, err)
	}
	return dump
}

func TestReloadRowCounts(t *testing.T) {
	wh := testutil.TempWarehouse(t)
	src := testSources()

	counts := mustReload(t, wh, src)

	// Dimension counts equal the distinct-key counts of the prepared
	// datasets; fact count equals the sales row count; store count equals
	// the distinct StoreID count.
	if counts.Customers != 3 {
		t.Errorf("Expected 3 customers, got %d", counts.Customers)
	}
	if counts.Products != 2 {
		t.Errorf("Expected 2 products, got %d", counts.Products)
	}
	if counts.Stores != 3 {
		t.Errorf("Expected 3 stores, got %d", counts.Stores)
	}
	if counts.Sales != 4 {
		t.Errorf("Expected 4 sales, got %d", counts.Sales)
	}

	for table, want := range map[string]int64{
		"dim_customer": 3,
		"dim_product":  2,
		"dim_store":    3,
		"fact_sales":   4,
	} {
		if got := mustCount(t, wh, table); got != want {
			t.Errorf("Expected %d rows in %s, got %d", want, table, got)
		}
	}
}

func TestReloadIdempotent(t *testing.T) {
	wh := testutil.TempWarehouse(t)
	src := testSources()

	first := mustReload(t, wh, src)
	firstDump := map[string][]string{
		"dim_customer": tableDump(t, wh, "dim_customer", "customer_id"),
		"dim_product":  tableDump(t, wh, "dim_product", "product_id"),
		"dim_store":    tableDump(t, wh, "dim_store", "store_id"),
		"fact_sales":   tableDump(t, wh, "fact_sales", "transaction_id"),
	}

	second := mustReload(t, wh, src)
	if first != second {
		t.Errorf("Expected identical counts across reloads, got %+v then %+v", first, second)
	}

	for table, before := range firstDump {
		orderBy := strings.TrimPrefix(table, "dim_") + "_id"
		if table == "fact_sales" {
			orderBy = "transaction_id"
		}
		after := tableDump(t, wh, table, orderBy)
		if len(before) != len(after) {
			t.Fatalf("%s: row count changed from %d to %d", table, len(before), len(after))
		}
		for i := range before {
			if before[i] != after[i] {
				t.Errorf("%s row %d changed: %q -> %q", table, i, before[i], after[i])
			}
		}
	}
}

func TestDerivedStoreDimension(t *testing.T) {
	wh := testutil.TempWarehouse(t)
	src := testSources()

	// StoreID values [3, 1, 3, 2] regardless of order must produce exactly
	// stores {1,2,3} with synthesized names.
	src.Sales = testutil.Sales(
		[]string{"100", "2024-01-10", "1", "10", "3", "0", "10.0", "0.0", "Cash"},
		[]string{"101", "2024-01-11", "1", "10", "1", "0", "10.0", "0.0", "Cash"},
		[]string{"102", "2024-01-12", "1", "10", "3", "0", "10.0", "0.0", "Cash"},
		[]string{"103", "2024-01-13", "1", "10", "2", "0", "10.0", "0.0", "Cash"},
	)

	mustReload(t, wh, src)

	want := []string{"1|Store 1", "2|Store 2", "3|Store 3"}
	got := tableDump(t, wh, "dim_store", "store_id")
	if len(got) != len(want) {
		t.Fatalf("Expected %d stores, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Store row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestColumnMappingFidelity(t *testing.T) {
	wh := testutil.TempWarehouse(t)
	src := testSources()
	src.Customers = testutil.Customers(
		[]string{"7", "Ada", "West", "2023-01-05", "120", "Gold", "2023-01-05T00:00:00"},
	)
	src.Sales = testutil.Sales(
		[]string{"100", "2024-01-10", "7", "10", "1", "0", "10.0", "0.0", "Cash"},
	)

	mustReload(t, wh, src)

	var (
		customerID    int64
		name          string
		region        string
		joinDate      string
		loyaltyPoints int64
		segment       string
	)
	err := wh.DB().QueryRow(`
        SELECT customer_id, name, region, join_date, loyalty_points, customer_segment
        FROM dim_customer WHERE customer_id = 7
    `).Scan(&customerID, &name, &region, &joinDate, &loyaltyPoints, &segment)
	if err != nil {
		t.Fatalf("Query dim_customer failed: %v", err)
	}

	if customerID != 7 {
		t.Errorf("Expected customer_id 7, got %d", customerID)
	}
	if name != "Ada" {
		t.Errorf("Expected name 'Ada', got %q", name)
	}
	if region != "West" {
		t.Errorf("Expected region 'West', got %q", region)
	}
	if joinDate != "2023-01-05" {
		t.Errorf("Expected join_date '2023-01-05', got %q", joinDate)
	}
	if loyaltyPoints != 120 {
		t.Errorf("Expected loyalty_points 120, got %d", loyaltyPoints)
	}
	if segment != "Gold" {
		t.Errorf("Expected customer_segment 'Gold', got %q", segment)
	}
}

func TestPurgeBeforeLoad(t *testing.T) {
	wh := testutil.TempWarehouse(t)

	mustReload(t, wh, testSources())

	// Second reload with an entirely different key space.
	next := warehouse.Sources{
		Customers: testutil.Customers(
			[]string{"50", "Edsger Dijkstra", "South", "2024-02-01", "10", "Bronze", "2024-02-01T00:00:00"},
		),
		Products: testutil.Products(
			[]string{"90", "Notebook", "Books", "3.20", "500", "Paper"},
		),
		Sales: testutil.Sales(
			[]string{"900", "2024-03-01", "50", "90", "7", "0", "3.20", "0.0", "Cash"},
		),
	}
	mustReload(t, wh, next)

	checks := []struct {
		table string
		query string
	}{
		{"dim_customer", "SELECT COUNT(*) FROM dim_customer WHERE customer_id < 50"},
		{"dim_product", "SELECT COUNT(*) FROM dim_product WHERE product_id < 90"},
		{"dim_store", "SELECT COUNT(*) FROM dim_store WHERE store_id <> 7"},
		{"fact_sales", "SELECT COUNT(*) FROM fact_sales WHERE transaction_id < 900"},
	}
	for _, c := range checks {
		var stale int64
		if err := wh.DB().QueryRow(c.query).Scan(&stale); err != nil {
			t.Fatalf("Query %s failed: %v", c.table, err)
		}
		if stale != 0 {
			t.Errorf("Expected no stale rows in %s, found %d", c.table, stale)
		}
	}
}

func TestReloadAtomicity(t *testing.T) {
	wh := testutil.TempWarehouse(t)
	src := testSources()

	mustReload(t, wh, src)
	before := tableDump(t, wh, "fact_sales", "transaction_id")

	// A duplicate transaction id violates the fact table's primary key
	// mid-load; the whole reload must roll back.
	bad := testSources()
	bad.Sales.Rows = append(bad.Sales.Rows,
		[]string{"100", "2024-05-01", "1", "10", "1", "0", "1.00", "0.0", "Cash"})

	if _, err := wh.Reload(context.Background(), bad); err == nil {
		t.Fatal("Expected reload with duplicate transaction id to fail")
	}

	after := tableDump(t, wh, "fact_sales", "transaction_id")
	if len(before) != len(after) {
		t.Fatalf("Expected pre-reload snapshot preserved, row count %d -> %d",
			len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("fact_sales row %d changed after failed reload: %q -> %q",
				i, before[i], after[i])
		}
	}
	for table, want := range map[string]int64{
		"dim_customer": 3,
		"dim_product":  2,
		"dim_store":    3,
	} {
		if got := mustCount(t, wh, table); got != want {
			t.Errorf("Expected %s preserved at %d rows, got %d", table, want, got)
		}
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	wh := testutil.TempWarehouse(t)
	src := testSources()

	// Customer 99 is not in the customer dimension.
	src.Sales.Rows = append(src.Sales.Rows,
		[]string{"104", "2024-01-14", "99", "10", "1", "0", "5.00", "0.0", "Cash"})

	if _, err := wh.Reload(context.Background(), src); err == nil {
		t.Fatal("Expected reload with dangling customer reference to fail")
	}

	// Nothing from the failed cycle is visible, but the schema itself
	// survives the rollback even on a fresh warehouse.
	for _, table := range []string{"dim_customer", "dim_product", "dim_store", "fact_sales"} {
		if got := mustCount(t, wh, table); got != 0 {
			t.Errorf("Expected empty %s after rollback, got %d rows", table, got)
		}
	}
}

func TestReloadEmptySources(t *testing.T) {
	wh := testutil.TempWarehouse(t)

	// A degraded load with missing datasets succeeds with zero rows.
	counts := mustReload(t, wh, warehouse.Sources{
		Customers: dataset.New("customers"),
		Products:  dataset.New("products"),
		Sales:     dataset.New("sales"),
	})
	if counts != (warehouse.Counts{}) {
		t.Errorf("Expected zero counts, got %+v", counts)
	}

	for _, table := range []string{"dim_customer", "dim_product", "dim_store", "fact_sales"} {
		if got := mustCount(t, wh, table); got != 0 {
			t.Errorf("Expected %s empty, got %d rows", table, got)
		}
	}
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	wh := testutil.TempWarehouse(t)
	ctx := context.Background()

	if err := wh.Ensure(ctx); err != nil {
		t.Fatalf("First Ensure failed: %v", err)
	}
	if err := wh.Ensure(ctx); err != nil {
		t.Fatalf("Second Ensure failed: %v", err)
	}

	// Tables exist and are queryable.
	for _, table := range []string{"dim_customer", "dim_product", "dim_store", "fact_sales"} {
		if _, err := wh.RowCount(ctx, table); err != nil {
			t.Errorf("Expected %s to exist: %v", table, err)
		}
	}
}
