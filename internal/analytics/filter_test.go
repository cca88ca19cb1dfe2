package analytics

import (
	"reflect"
	"testing"
	"time"

	"github.com/anshulguptads/Executive-Command-Center/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func salesFixture() []model.SalesRecord {
	return []model.SalesRecord{
		{
			Date: day(2024, 1, 1), DateValid: true,
			Region: "A", StoreID: "S1", SKU: "K1", SKUCategory: "C1",
			UnitPrice: 10, UnitsSold: 10, SalesRevenue: 100, BasketSize: 2,
			Footfall: 50, WebOrders: 5, MobileOrders: 5,
			StockOnHand: 3, StaffCount: 1,
		},
		{
			Date: day(2024, 1, 2), DateValid: true,
			Region: "A", StoreID: "S2", SKU: "K2", SKUCategory: "C2",
			UnitPrice: 10, UnitsSold: 20, SalesRevenue: 200, BasketSize: 4,
			Footfall: 100, WebOrders: 10, MobileOrders: 0,
			StockOnHand: 25, StaffCount: 2,
		},
		{
			Date: day(2024, 1, 3), DateValid: true,
			Region: "B", StoreID: "S3", SKU: "K3", SKUCategory: "C1",
			UnitPrice: 10, UnitsSold: 5, SalesRevenue: 50, BasketSize: 1,
			Footfall: 10, WebOrders: 0, MobileOrders: 1,
			StockOnHand: 10, StaffCount: 1,
		},
	}
}

func personaFixture() []model.PersonaRecord {
	return []model.PersonaRecord{
		{CustomerID: "P1", Name: "Aisha", City: "Dubai", LoyaltySegment: "Gold", AvgSpendAED: 100, VisitFrequency: 4, TypicalBasketSize: 2},
		{CustomerID: "P2", Name: "Omar", City: "Sharjah", LoyaltySegment: "Bronze", AvgSpendAED: 20, VisitFrequency: 1, TypicalBasketSize: 1},
		{CustomerID: "P3", Name: "Lena", City: "Dubai", LoyaltySegment: "Platinum", AvgSpendAED: 200, VisitFrequency: 2, TypicalBasketSize: 4},
	}
}

func TestApplyEmptySpecIsPassThrough(t *testing.T) {
	sales := salesFixture()
	personas := personaFixture()
	salesView, personaView := Apply(sales, personas, model.FilterSpec{})
	if len(salesView) != len(sales) {
		t.Fatalf("expected %d sales rows, got %d", len(sales), len(salesView))
	}
	if len(personaView) != len(personas) {
		t.Fatalf("expected %d personas, got %d", len(personas), len(personaView))
	}
}

func TestApplyPredicatesAndOrder(t *testing.T) {
	sales := salesFixture()
	spec := model.FilterSpec{
		Start:   dayPtr(2024, 1, 1),
		End:     dayPtr(2024, 1, 3),
		Regions: []string{"A"},
	}
	salesView, _ := Apply(sales, personaFixture(), spec)
	if len(salesView) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(salesView))
	}
	for _, rec := range salesView {
		if rec.Region != "A" {
			t.Fatalf("row with region %q leaked through region filter", rec.Region)
		}
	}
	if salesView[0].StoreID != "S1" || salesView[1].StoreID != "S2" {
		t.Fatalf("row order not preserved: %v, %v", salesView[0].StoreID, salesView[1].StoreID)
	}
}

func TestApplyIsDeterministic(t *testing.T) {
	sales := salesFixture()
	personas := personaFixture()
	spec := model.FilterSpec{Regions: []string{"A"}, Segments: []string{"Gold"}}
	s1, p1 := Apply(sales, personas, spec)
	s2, p2 := Apply(sales, personas, spec)
	if !reflect.DeepEqual(s1, s2) || !reflect.DeepEqual(p1, p2) {
		t.Fatalf("same spec and input produced different views")
	}
}

func TestApplyEmptySetEqualsFullSet(t *testing.T) {
	sales := salesFixture()
	personas := personaFixture()
	empty, _ := Apply(sales, personas, model.FilterSpec{})
	full, _ := Apply(sales, personas, model.FilterSpec{Regions: []string{"A", "B"}})
	if !reflect.DeepEqual(empty, full) {
		t.Fatalf("empty regions set should equal the set of all regions present")
	}
}

func TestApplyInvertedDateRangeIsEmpty(t *testing.T) {
	spec := model.FilterSpec{
		Start: dayPtr(2024, 1, 5),
		End:   dayPtr(2024, 1, 1),
	}
	salesView, _ := Apply(salesFixture(), personaFixture(), spec)
	if len(salesView) != 0 {
		t.Fatalf("inverted range should produce an empty view, got %d rows", len(salesView))
	}
}

func TestApplyExcludesInvalidDatesFromBoundedViews(t *testing.T) {
	sales := append(salesFixture(), model.SalesRecord{Region: "A", StoreID: "S9", SKUCategory: "C1"})
	bounded := model.FilterSpec{Start: dayPtr(2024, 1, 1), End: dayPtr(2024, 12, 31)}
	salesView, _ := Apply(sales, nil, bounded)
	for _, rec := range salesView {
		if !rec.DateValid {
			t.Fatalf("invalid-date row present in a date-bounded view")
		}
	}

	unbounded, _ := Apply(sales, nil, model.FilterSpec{})
	if len(unbounded) != len(sales) {
		t.Fatalf("unbounded spec should keep all %d rows, got %d", len(sales), len(unbounded))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	sales := salesFixture()
	personas := personaFixture()
	salesCopy := append([]model.SalesRecord(nil), sales...)
	personasCopy := append([]model.PersonaRecord(nil), personas...)
	Apply(sales, personas, model.FilterSpec{Regions: []string{"B"}, Segments: []string{"Gold"}})
	if !reflect.DeepEqual(sales, salesCopy) || !reflect.DeepEqual(personas, personasCopy) {
		t.Fatalf("Apply mutated its inputs")
	}
}

func TestApplySegmentFilter(t *testing.T) {
	_, personaView := Apply(nil, personaFixture(), model.FilterSpec{Segments: []string{"Gold", "Platinum"}})
	if len(personaView) != 2 {
		t.Fatalf("expected 2 personas, got %d", len(personaView))
	}
	for _, rec := range personaView {
		if rec.LoyaltySegment == "Bronze" {
			t.Fatalf("bronze persona leaked through segment filter")
		}
	}
}

func TestApplyDateBoundsInclusive(t *testing.T) {
	spec := model.FilterSpec{Start: dayPtr(2024, 1, 1), End: dayPtr(2024, 1, 1)}
	salesView, _ := Apply(salesFixture(), nil, spec)
	if len(salesView) != 1 || !salesView[0].Date.Equal(day(2024, 1, 1)) {
		t.Fatalf("bounds should be inclusive on both ends, got %d rows", len(salesView))
	}
}
