package analytics

import (
	"testing"

	"github.com/anshulguptads/Executive-Command-Center/internal/model"
)

func TestFitLineExact(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{1, 3, 5, 7}
	slope, intercept, ok := FitLine(xs, ys)
	if !ok {
		t.Fatalf("expected a fit for collinear points")
	}
	if !almostEqual(slope, 2, 1e-9) || !almostEqual(intercept, 1, 1e-9) {
		t.Fatalf("expected y = 2x + 1, got slope=%v intercept=%v", slope, intercept)
	}
}

func TestFitLineDegenerate(t *testing.T) {
	if _, _, ok := FitLine([]float64{1}, []float64{2}); ok {
		t.Fatalf("a single point must not fit")
	}
	if _, _, ok := FitLine([]float64{3, 3, 3}, []float64{1, 2, 3}); ok {
		t.Fatalf("zero x variance must not fit")
	}
	if _, _, ok := FitLine([]float64{1, 2}, []float64{1}); ok {
		t.Fatalf("mismatched lengths must not fit")
	}
}

func TestTrendValues(t *testing.T) {
	values := []float64{10, 20, 30}
	trend := TrendValues(values)
	if len(trend) != len(values) {
		t.Fatalf("expected trend of length %d, got %d", len(values), len(trend))
	}
	for i, v := range values {
		if !almostEqual(trend[i], v, 1e-9) {
			t.Fatalf("collinear input should reproduce itself, index %d: %v != %v", i, trend[i], v)
		}
	}
	if TrendValues([]float64{5}) != nil {
		t.Fatalf("one point has no trend")
	}
}

func TestPricePoints(t *testing.T) {
	view := []model.SalesRecord{
		{UnitPrice: 9.5, UnitsSold: 12, SKUCategory: "Fresh"},
		{UnitPrice: 4.0, UnitsSold: 30, SKUCategory: "Grocery"},
	}
	points := PricePoints(view)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].UnitPrice != 9.5 || points[0].UnitsSold != 12 || points[0].Category != "Fresh" {
		t.Fatalf("first point wrong: %+v", points[0])
	}
}
