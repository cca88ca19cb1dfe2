package analytics

import "github.com/anshulguptads/Executive-Command-Center/internal/model"

// PricePoints extracts the (price, demand, category) tuples the price
// vs units view plots.
func PricePoints(view []model.SalesRecord) []model.PricePoint {
	out := make([]model.PricePoint, 0, len(view))
	for _, rec := range view {
		out = append(out, model.PricePoint{
			UnitPrice: rec.UnitPrice,
			UnitsSold: rec.UnitsSold,
			Category:  rec.SKUCategory,
		})
	}
	return out
}

// FitLine computes the least-squares line y = slope*x + intercept.
// It reports false when fewer than two points are given or x carries
// no variance.
func FitLine(xs, ys []float64) (slope, intercept float64, ok bool) {
	n := len(xs)
	if n < 2 || len(ys) != n {
		return 0, 0, false
	}
	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		cov += dx * (ys[i] - meanY)
		varX += dx * dx
	}
	if varX == 0 {
		return 0, 0, false
	}
	slope = cov / varX
	intercept = meanY - slope*meanX
	return slope, intercept, true
}

// TrendValues fits a line over the sequence indices of values and
// returns the fitted series, or nil when no fit exists. It backs the
// optional trend overlay on time-series plots.
func TrendValues(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	slope, intercept, ok := FitLine(xs, values)
	if !ok {
		return nil
	}
	out := make([]float64, len(values))
	for i := range out {
		out[i] = slope*float64(i) + intercept
	}
	return out
}
