package analytics

import "github.com/anshulguptads/Executive-Command-Center/internal/model"

// Summarize computes the executive KPI set over a filtered sales view.
// Every mean and ratio returns 0 on an empty view or a zero
// denominator; the presentation layer always receives renderable
// numbers.
func Summarize(view []model.SalesRecord) model.KPISet {
	if len(view) == 0 {
		return model.KPISet{}
	}

	var kpi model.KPISet
	var basketSum, priceSum float64
	var footfallSum, digitalSum int
	for _, rec := range view {
		kpi.TotalRevenue += rec.SalesRevenue
		kpi.TotalUnits += rec.UnitsSold
		basketSum += rec.BasketSize
		priceSum += rec.UnitPrice
		footfallSum += rec.Footfall
		digitalSum += rec.WebOrders + rec.MobileOrders
	}

	count := float64(len(view))
	kpi.AvgBasketSize = basketSum / count
	kpi.AvgUnitPrice = priceSum / count
	kpi.AvgFootfall = float64(footfallSum) / count
	if footfallSum > 0 {
		kpi.DigitalConversionPct = float64(digitalSum) / float64(footfallSum) * 100
	}
	return kpi
}
