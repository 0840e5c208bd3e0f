//-------------------------------------------------------------------------
//
// Smart Store ETL
//
// Copyright (c) 2025 - 2026, the smartstore-etl authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package datagen

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/smartstore/smartstore-etl/internal/dataset"
	"github.com/smartstore/smartstore-etl/internal/logging"
)

// Reference data for raw extracts.
var (
	regions      = []string{"North", "South", "East", "West", "Central"}
	segments     = []string{"Gold", "Silver", "Bronze", "Standard"}
	categories   = []string{"Electronics", "Clothing", "Home", "Garden", "Sports", "Toys", "Books", "Food"}
	paymentTypes = []string{"Credit", "Debit", "Cash", "Voucher", "Transfer"}

	// Raw extracts arrive with inconsistent date formats on purpose; the
	// prepare stage standardizes them.
	messyDateLayouts = []string{"2006-01-02", "01/02/2006", "2006/01/02"}
)

// Config controls how many raw rows each extract gets.
type Config struct {
	Customers int
	Products  int
	Campaigns int
	Sales     int
	Stores    int
	Seed      uint64
}

// Generator fabricates the four raw extracts the prepare stage consumes.
// A small fraction of rows is duplicated and some fields are left blank so
// the cleaning transforms have realistic work to do.
type Generator struct {
	faker *Faker
}

// NewGenerator creates a generator. Seed 0 derives a seed from the clock.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		return &Generator{faker: NewFaker()}
	}
	return &Generator{faker: NewFakerWithSeed(seed)}
}

// WriteRawExtracts writes customers, products, campaigns, and sales extracts
// to dir as CSV.
func (g *Generator) WriteRawExtracts(dir string, cfg Config) error {
	extracts := []struct {
		file string
		ds   *dataset.Dataset
	}{
		{"customers_data.csv", g.Customers(cfg.Customers)},
		{"products_data.csv", g.Products(cfg.Products)},
		{"campaigns_data.csv", g.Campaigns(cfg.Campaigns)},
		{"sales_data.csv", g.Sales(cfg)},
	}

	for _, e := range extracts {
		path := filepath.Join(dir, e.file)
		if err := dataset.WriteCSV(path, e.ds); err != nil {
			return err
		}
		logging.Info().
			Str("path", path).
			Int("rows", e.ds.Len()).
			Msg("Wrote raw extract")
	}
	return nil
}

// Customers generates a raw customer extract with identifiers 1..n.
func (g *Generator) Customers(n int) *dataset.Dataset {
	ds := dataset.New("customers",
		"CustomerID", "Name", "Region", "JoinDate", "LoyaltyPoints", "CustomerSegment")

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	for id := 1; id <= n; id++ {
		region := Choose(g.faker, regions)
		if g.faker.Int(1, 25) == 1 {
			region = ""
		}
		segment := Choose(g.faker, segments)
		if g.faker.Int(1, 25) == 1 {
			segment = ""
		}
		ds.Rows = append(ds.Rows, []string{
			strconv.Itoa(id),
			g.faker.Name(),
			region,
			g.messyDate(start, end),
			strconv.Itoa(g.faker.Int(0, 5000)),
			segment,
		})
	}
	g.duplicateSome(ds)
	return ds
}

// Products generates a raw product extract with identifiers 1..n.
func (g *Generator) Products(n int) *dataset.Dataset {
	ds := dataset.New("products",
		"ProductID", "ProductName", "Category", "UnitPrice", "StockQuantity", "Subcategory")

	for id := 1; id <= n; id++ {
		subcategory := g.faker.ProductCategory()
		if g.faker.Int(1, 20) == 1 {
			subcategory = ""
		}
		ds.Rows = append(ds.Rows, []string{
			strconv.Itoa(id),
			g.faker.ProductName(),
			Choose(g.faker, categories),
			fmt.Sprintf("%.2f", g.faker.Price(1, 500)),
			strconv.Itoa(g.faker.Int(0, 1000)),
			subcategory,
		})
	}
	g.duplicateSome(ds)
	return ds
}

// Campaigns generates a raw campaign extract with identifiers 1..n.
func (g *Generator) Campaigns(n int) *dataset.Dataset {
	ds := dataset.New("campaigns",
		"CampaignID", "CampaignName", "StartDate", "EndDate", "Description")

	for id := 1; id <= n; id++ {
		start := g.faker.DateRange(
			time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
		end := start.AddDate(0, 0, g.faker.Int(7, 90))
		ds.Rows = append(ds.Rows, []string{
			strconv.Itoa(id),
			g.faker.BuzzWord() + " " + Choose(g.faker, categories),
			g.messyDateAt(start),
			g.messyDateAt(end),
			g.faker.Sentence(8),
		})
	}
	g.duplicateSome(ds)
	return ds
}

// Sales generates a raw sales extract whose customer, product, and campaign
// references stay within the ranges of the other extracts, so the warehouse
// foreign keys hold after preparation.
func (g *Generator) Sales(cfg Config) *dataset.Dataset {
	ds := dataset.New("sales",
		"TransactionID", "SaleDate", "CustomerID", "ProductID", "StoreID",
		"CampaignID", "SaleAmount", "DiscountPercent", "PaymentType")

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	for id := 1; id <= cfg.Sales; id++ {
		payment := Choose(g.faker, paymentTypes)
		if g.faker.Int(1, 30) == 1 {
			payment = ""
		}
		ds.Rows = append(ds.Rows, []string{
			strconv.Itoa(id),
			g.messyDate(start, end),
			strconv.Itoa(g.faker.Int(1, cfg.Customers)),
			strconv.Itoa(g.faker.Int(1, cfg.Products)),
			strconv.Itoa(g.faker.Int(1, cfg.Stores)),
			strconv.Itoa(g.faker.Int(0, cfg.Campaigns)),
			fmt.Sprintf("%.2f", g.faker.Price(1, 2000)),
			fmt.Sprintf("%.1f", g.faker.Float64(0, 40)),
			payment,
		})
	}
	g.duplicateSome(ds)
	return ds
}

// messyDate formats a random date in one of the raw layouts.
func (g *Generator) messyDate(start, end time.Time) string {
	return g.messyDateAt(g.faker.DateRange(start, end))
}

func (g *Generator) messyDateAt(t time.Time) string {
	return t.Format(Choose(g.faker, messyDateLayouts))
}

// duplicateSome re-appends roughly 3% of rows so the prepare stage has
// duplicates to remove.
func (g *Generator) duplicateSome(ds *dataset.Dataset) {
	n := ds.Len()
	if n == 0 {
		return
	}
	for i := 0; i < max(1, n/33); i++ {
		ds.Rows = append(ds.Rows, ds.Rows[g.faker.Int(0, n-1)])
	}
}
