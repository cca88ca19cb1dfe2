package analytics

import (
	"math"
	"testing"

	"github.com/anshulguptads/Executive-Command-Center/internal/model"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSummarizeEmptyViewIsAllZero(t *testing.T) {
	kpi := Summarize(nil)
	if kpi != (model.KPISet{}) {
		t.Fatalf("expected zeroed KPI set, got %+v", kpi)
	}
}

func TestSummarizeScenario(t *testing.T) {
	view, _ := Apply(salesFixture(), nil, model.FilterSpec{Regions: []string{"A"}})
	if len(view) != 2 {
		t.Fatalf("expected 2 rows in view, got %d", len(view))
	}
	kpi := Summarize(view)
	if kpi.TotalRevenue != 300 {
		t.Fatalf("expected total revenue 300, got %v", kpi.TotalRevenue)
	}
	if kpi.TotalUnits != 30 {
		t.Fatalf("expected total units 30, got %d", kpi.TotalUnits)
	}
	if !almostEqual(kpi.AvgBasketSize, 3, 1e-9) {
		t.Fatalf("expected avg basket 3, got %v", kpi.AvgBasketSize)
	}
	if !almostEqual(kpi.AvgFootfall, 75, 1e-9) {
		t.Fatalf("expected avg footfall 75, got %v", kpi.AvgFootfall)
	}
	// (5+5+10+0) / (50+100) * 100
	if !almostEqual(kpi.DigitalConversionPct, 13.33, 0.01) {
		t.Fatalf("expected conversion proxy 13.33, got %v", kpi.DigitalConversionPct)
	}
}

func TestSummarizeZeroFootfallConversionIsZero(t *testing.T) {
	view := []model.SalesRecord{
		{SalesRevenue: 10, WebOrders: 3, MobileOrders: 2, Footfall: 0},
		{SalesRevenue: 20, WebOrders: 1, MobileOrders: 0, Footfall: 0},
	}
	kpi := Summarize(view)
	if kpi.DigitalConversionPct != 0 {
		t.Fatalf("expected conversion proxy 0 with zero footfall, got %v", kpi.DigitalConversionPct)
	}
	if math.IsNaN(kpi.DigitalConversionPct) || math.IsInf(kpi.DigitalConversionPct, 0) {
		t.Fatalf("conversion proxy must never be NaN or Inf")
	}
}
