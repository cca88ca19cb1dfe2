package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp csv: %v", err)
	}
	return path
}

func TestLoadSales(t *testing.T) {
	path := writeTempCSV(t, "sales.csv",
		"Date,Region,Store_ID,SKU,SKU_Category,Unit_Price,Units_Sold,Sales_Revenue,Basket_Size,Footfall,Web_Orders,Mobile_Orders,Stock_On_Hand,Staff_Count,Discount,Competitor_Price,Promo_Flag\n"+
			"2024-03-01,Dubai,LULU-01,SKU1,Fresh Food,9.5,12,114,2.4,340,14,9,80,6,0.1,9.9,1\n"+
			"not-a-date,Abu Dhabi,LULU-02,SKU2,Grocery,4,30,120,1.8,210,3,1,40,4,0,4.2,0\n")
	records, stats, err := LoadSales(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if stats.Rows != 2 || stats.InvalidDates != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	first := records[0]
	if !first.DateValid || !first.Date.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("first row date wrong: %v valid=%v", first.Date, first.DateValid)
	}
	if first.Region != "Dubai" || first.StoreID != "LULU-01" || first.SKUCategory != "Fresh Food" {
		t.Fatalf("first row dimensions wrong: %+v", first)
	}
	if first.UnitPrice != 9.5 || first.UnitsSold != 12 || first.SalesRevenue != 114 {
		t.Fatalf("first row measures wrong: %+v", first)
	}
	if !first.PromoFlag {
		t.Fatalf("promo flag 1 should parse true")
	}
	second := records[1]
	if second.DateValid {
		t.Fatalf("unparseable date should keep the row with DateValid=false")
	}
	if second.PromoFlag {
		t.Fatalf("promo flag 0 should parse false")
	}
}

func TestLoadSalesHeaderVariants(t *testing.T) {
	path := writeTempCSV(t, "sales.csv",
		"date,REGION,store id,sku,Sku-Category,unit_price,units_sold,sales_revenue\n"+
			"2024-01-05,Sharjah,S9,K1,Grocery,2.5,4,10\n")
	records, _, err := LoadSales(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	rec := records[0]
	if rec.Region != "Sharjah" || rec.StoreID != "S9" || rec.SKUCategory != "Grocery" {
		t.Fatalf("header normalization failed: %+v", rec)
	}
	if rec.UnitPrice != 2.5 || rec.UnitsSold != 4 || rec.SalesRevenue != 10 {
		t.Fatalf("measures wrong under variant headers: %+v", rec)
	}
}

func TestLoadSalesMissingColumnsDefaulted(t *testing.T) {
	path := writeTempCSV(t, "sales.csv",
		"Date,Sales_Revenue\n"+
			"2024-01-01,55\n")
	records, _, err := LoadSales(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	rec := records[0]
	if rec.Region != "Unknown" || rec.StoreID != "Unknown" || rec.SKUCategory != "Unknown" {
		t.Fatalf("missing dimensions should default to Unknown: %+v", rec)
	}
	if rec.UnitsSold != 0 || rec.Footfall != 0 || rec.PromoFlag {
		t.Fatalf("missing measures should default to zero: %+v", rec)
	}
	if rec.SalesRevenue != 55 {
		t.Fatalf("present column should still parse: %+v", rec)
	}
}

func TestLoadSalesEmptyFile(t *testing.T) {
	path := writeTempCSV(t, "sales.csv", "")
	if _, _, err := LoadSales(path); err == nil {
		t.Fatalf("a file without a header row must fail")
	}
}

func TestLoadSalesMissingFile(t *testing.T) {
	if _, _, err := LoadSales(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadPersonas(t *testing.T) {
	path := writeTempCSV(t, "personas.csv",
		"Customer_ID,Name,City,Loyalty_Segment,Avg_Spend_AED,Visit_Frequency,Typical_Basket_Size,Category_Preference,App_Engagement,Preferred_Visit_Day,Last_Visit_Date\n"+
			"C001,Aisha,Dubai,Gold,220.5,3,2.5,Fresh Food,High,Friday,2024-02-20\n"+
			"C002,Omar,,Bronze,40,1,1,,,,\n")
	records, stats, err := LoadPersonas(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if stats.Rows != 2 || stats.InvalidDates != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	first := records[0]
	if first.CustomerID != "C001" || first.LoyaltySegment != "Gold" || first.AvgSpendAED != 220.5 {
		t.Fatalf("first persona wrong: %+v", first)
	}
	if !first.LastVisitValid {
		t.Fatalf("valid last visit should parse")
	}
	second := records[1]
	if second.City != "Unknown" || second.CategoryPreference != "Unknown" || second.PreferredVisitDay != "Unknown" {
		t.Fatalf("blank categoricals should default to Unknown: %+v", second)
	}
	if second.LastVisitValid {
		t.Fatalf("blank last visit should be invalid")
	}
}

func TestNormalizeColumn(t *testing.T) {
	cases := map[string]string{
		"Store_ID":       "storeid",
		" store id ":     "storeid",
		"SKU-Category":   "skucategory",
		"Avg_Spend_AED":  "avgspendaed",
		"PreferredVisit": "preferredvisit",
	}
	for in, want := range cases {
		if got := normalizeColumn(in); got != want {
			t.Fatalf("normalizeColumn(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFloatFieldStripsThousandsSeparators(t *testing.T) {
	cols := map[string]int{"salesrevenue": 0}
	if got := floatField([]string{"1,250.75"}, cols, "salesrevenue"); got != 1250.75 {
		t.Fatalf("expected 1250.75, got %v", got)
	}
}

func TestIntFieldAcceptsDecimals(t *testing.T) {
	cols := map[string]int{"footfall": 0}
	if got := intField([]string{"340.0"}, cols, "footfall"); got != 340 {
		t.Fatalf("expected 340, got %d", got)
	}
}
