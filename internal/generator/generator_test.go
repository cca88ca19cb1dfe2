package generator

import (
	"reflect"
	"testing"
)

func TestSalesShape(t *testing.T) {
	g := New(42)
	records := g.Sales(3, 2)
	// days * regions * stores * categories
	want := 3 * 4 * 2 * 5
	if len(records) != want {
		t.Fatalf("expected %d rows, got %d", want, len(records))
	}
	for _, rec := range records {
		if !rec.DateValid {
			t.Fatalf("generated rows must carry valid dates")
		}
		if rec.UnitsSold <= 0 || rec.SalesRevenue <= 0 {
			t.Fatalf("generated measures must be positive: %+v", rec)
		}
		if rec.Region == "" || rec.StoreID == "" || rec.SKUCategory == "" {
			t.Fatalf("generated dimensions must be set: %+v", rec)
		}
	}
}

func TestSalesDeterministicForSeed(t *testing.T) {
	a := New(7).Sales(2, 1)
	b := New(7).Sales(2, 1)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed must reproduce the same dataset")
	}
}

func TestSalesInvalidCounts(t *testing.T) {
	g := New(1)
	if rows := g.Sales(0, 2); rows != nil {
		t.Fatalf("zero days must generate nothing")
	}
	if rows := g.Sales(2, 0); rows != nil {
		t.Fatalf("zero stores must generate nothing")
	}
}

func TestPersonas(t *testing.T) {
	g := New(42)
	records := g.Personas(50)
	if len(records) != 50 {
		t.Fatalf("expected 50 personas, got %d", len(records))
	}
	seen := map[string]bool{}
	for _, rec := range records {
		if seen[rec.CustomerID] {
			t.Fatalf("duplicate customer id %s", rec.CustomerID)
		}
		seen[rec.CustomerID] = true
		if rec.AvgSpendAED <= 0 || rec.VisitFrequency <= 0 {
			t.Fatalf("generated persona measures must be positive: %+v", rec)
		}
		if rec.LoyaltySegment == "" || rec.AppEngagement == "" {
			t.Fatalf("generated persona dimensions must be set: %+v", rec)
		}
	}
	if got := g.Personas(0); got != nil {
		t.Fatalf("zero count must generate nothing")
	}
}
