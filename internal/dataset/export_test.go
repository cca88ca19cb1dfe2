package dataset

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/anshulguptads/Executive-Command-Center/internal/model"
)

func TestWriteSalesSchema(t *testing.T) {
	rows := []model.SalesRecord{
		{
			Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), DateValid: true,
			Region: "Dubai", StoreID: "LULU-01", SKU: "SKU1", SKUCategory: "Fresh Food",
			UnitPrice: 9.5, UnitsSold: 12, SalesRevenue: 114, BasketSize: 2.4,
			Footfall: 340, WebOrders: 14, MobileOrders: 9, StockOnHand: 80,
			StaffCount: 6, Discount: 0.1, CompetitorPrice: 9.9, PromoFlag: true,
		},
		{Region: "Abu Dhabi"},
	}
	var buf bytes.Buffer
	if err := WriteSales(&buf, rows); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	parsed, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV did not parse: %v", err)
	}
	if len(parsed) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(parsed))
	}
	if strings.Join(parsed[0], ",") != strings.Join(SalesHeader, ",") {
		t.Fatalf("header schema wrong: %v", parsed[0])
	}
	if parsed[1][0] != "2024-03-01" || parsed[1][16] != "1" {
		t.Fatalf("first row wrong: %v", parsed[1])
	}
	if parsed[2][0] != "" || parsed[2][16] != "0" {
		t.Fatalf("invalid date must export empty, promo false as 0: %v", parsed[2])
	}
}

func TestWritePersonasSchema(t *testing.T) {
	rows := []model.PersonaRecord{
		{
			CustomerID: "C001", Name: "Aisha", City: "Dubai", LoyaltySegment: "Gold",
			AvgSpendAED: 220.5, VisitFrequency: 3, TypicalBasketSize: 2.5,
			CategoryPreference: "Fresh Food", AppEngagement: "High", PreferredVisitDay: "Friday",
			LastVisit: time.Date(2024, 2, 20, 0, 0, 0, 0, time.Local), LastVisitValid: true,
		},
	}
	var buf bytes.Buffer
	if err := WritePersonas(&buf, rows); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	parsed, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV did not parse: %v", err)
	}
	if strings.Join(parsed[0], ",") != strings.Join(PersonaHeader, ",") {
		t.Fatalf("header schema wrong: %v", parsed[0])
	}
	if parsed[1][4] != "220.5" || parsed[1][10] != "2024-02-20" {
		t.Fatalf("persona row wrong: %v", parsed[1])
	}
}

func TestSalesExportRoundTrip(t *testing.T) {
	original := []model.SalesRecord{
		{
			Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), DateValid: true,
			Region: "Dubai", StoreID: "LULU-01", SKU: "SKU1", SKUCategory: "Fresh Food",
			UnitPrice: 9.5, UnitsSold: 12, SalesRevenue: 114, BasketSize: 2.4,
			Footfall: 340, WebOrders: 14, MobileOrders: 9, StockOnHand: 80,
			StaffCount: 6, Discount: 0.1, CompetitorPrice: 9.9, PromoFlag: true,
		},
	}
	path := filepath.Join(t.TempDir(), "export.csv")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := WriteSales(file, original); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	loaded, stats, err := LoadSales(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stats.Rows != 1 || stats.InvalidDates != 0 {
		t.Fatalf("unexpected reload stats: %+v", stats)
	}
	got := loaded[0]
	want := original[0]
	if !got.Date.Equal(want.Date) || got.Region != want.Region || got.SKU != want.SKU {
		t.Fatalf("roundtrip mismatch: got %+v want %+v", got, want)
	}
	if got.UnitPrice != want.UnitPrice || got.SalesRevenue != want.SalesRevenue || got.PromoFlag != want.PromoFlag {
		t.Fatalf("roundtrip measures mismatch: got %+v want %+v", got, want)
	}
}
