package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/anshulguptads/Executive-Command-Center/internal/model"
)

// RevenueByDate sums revenue per calendar day, ordered ascending by
// date. Rows without a valid date carry no day and are skipped.
func RevenueByDate(view []model.SalesRecord) []model.DateRevenue {
	byDay := map[time.Time]float64{}
	for _, rec := range view {
		if !rec.DateValid {
			continue
		}
		byDay[dayOf(rec.Date)] += rec.SalesRevenue
	}
	out := make([]model.DateRevenue, 0, len(byDay))
	for day, revenue := range byDay {
		out = append(out, model.DateRevenue{Date: day, Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// RevenueByCategory sums revenue per SKU category, sorted descending
// by revenue.
func RevenueByCategory(view []model.SalesRecord) []model.CategoryRevenue {
	byCat := map[string]float64{}
	for _, rec := range view {
		byCat[rec.SKUCategory] += rec.SalesRevenue
	}
	out := make([]model.CategoryRevenue, 0, len(byCat))
	for cat, revenue := range byCat {
		out = append(out, model.CategoryRevenue{Category: cat, Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue == out[j].Revenue {
			return out[i].Category < out[j].Category
		}
		return out[i].Revenue > out[j].Revenue
	})
	return out
}

// RegionStorePerformance aggregates revenue, units, and footfall per
// (region, store) pair, sorted descending by revenue.
func RegionStorePerformance(view []model.SalesRecord) []model.StorePerformance {
	type key struct {
		region string
		store  string
	}
	byStore := map[key]*model.StorePerformance{}
	for _, rec := range view {
		k := key{region: rec.Region, store: rec.StoreID}
		perf, ok := byStore[k]
		if !ok {
			perf = &model.StorePerformance{Region: rec.Region, StoreID: rec.StoreID}
			byStore[k] = perf
		}
		perf.Revenue += rec.SalesRevenue
		perf.Units += rec.UnitsSold
		perf.Footfall += rec.Footfall
	}
	out := make([]model.StorePerformance, 0, len(byStore))
	for _, perf := range byStore {
		out = append(out, *perf)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue == out[j].Revenue {
			if out[i].Region == out[j].Region {
				return out[i].StoreID < out[j].StoreID
			}
			return out[i].Region < out[j].Region
		}
		return out[i].Revenue > out[j].Revenue
	})
	return out
}

// PromoComparison computes mean revenue for non-promo and promo rows.
// A group with no rows is omitted rather than fabricated; the non-promo
// group, when present, comes first.
func PromoComparison(view []model.SalesRecord) []model.PromoGroup {
	var sums [2]float64
	var counts [2]int
	for _, rec := range view {
		idx := 0
		if rec.PromoFlag {
			idx = 1
		}
		sums[idx] += rec.SalesRevenue
		counts[idx]++
	}
	labels := [2]string{"No Promo", "Promo"}
	out := make([]model.PromoGroup, 0, 2)
	for idx := 0; idx < 2; idx++ {
		if counts[idx] == 0 {
			continue
		}
		out = append(out, model.PromoGroup{
			Promo:      idx == 1,
			Label:      labels[idx],
			AvgRevenue: sums[idx] / float64(counts[idx]),
			Rows:       counts[idx],
		})
	}
	return out
}

// OperationalDrivers computes per-category means of footfall, staff,
// discount, and competitor price, rounded to two decimals for display,
// sorted ascending by category.
func OperationalDrivers(view []model.SalesRecord) []model.CategoryDrivers {
	type acc struct {
		footfall   float64
		staff      float64
		discount   float64
		competitor float64
		count      int
	}
	byCat := map[string]*acc{}
	for _, rec := range view {
		a, ok := byCat[rec.SKUCategory]
		if !ok {
			a = &acc{}
			byCat[rec.SKUCategory] = a
		}
		a.footfall += float64(rec.Footfall)
		a.staff += float64(rec.StaffCount)
		a.discount += rec.Discount
		a.competitor += rec.CompetitorPrice
		a.count++
	}
	out := make([]model.CategoryDrivers, 0, len(byCat))
	for cat, a := range byCat {
		n := float64(a.count)
		out = append(out, model.CategoryDrivers{
			Category:           cat,
			AvgFootfall:        round2(a.footfall / n),
			AvgStaff:           round2(a.staff / n),
			AvgDiscount:        round2(a.discount / n),
			AvgCompetitorPrice: round2(a.competitor / n),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Category < out[j].Category
	})
	return out
}

// highValueSegments gates the persona value index ranking.
var highValueSegments = map[string]struct{}{
	"Gold":     {},
	"Platinum": {},
}

// TopPersonas ranks Gold/Platinum personas by value index,
// avg_spend * (visit_frequency + 0.5 * typical_basket_size), sorted
// descending. A limit <= 0 returns the full ranking.
func TopPersonas(view []model.PersonaRecord, limit int) []model.HighValuePersona {
	out := make([]model.HighValuePersona, 0, len(view))
	for _, rec := range view {
		if _, ok := highValueSegments[rec.LoyaltySegment]; !ok {
			continue
		}
		spend := finiteOrZero(rec.AvgSpendAED)
		freq := finiteOrZero(rec.VisitFrequency)
		basket := finiteOrZero(rec.TypicalBasketSize)
		out = append(out, model.HighValuePersona{
			CustomerID:         rec.CustomerID,
			Name:               rec.Name,
			City:               rec.City,
			AvgSpendAED:        spend,
			VisitFrequency:     freq,
			TypicalBasketSize:  basket,
			CategoryPreference: rec.CategoryPreference,
			AppEngagement:      rec.AppEngagement,
			ValueIndex:         spend * (freq + 0.5*basket),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ValueIndex == out[j].ValueIndex {
			return out[i].CustomerID < out[j].CustomerID
		}
		return out[i].ValueIndex > out[j].ValueIndex
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// EngagementBySegment counts personas per (engagement, segment) pair,
// sorted by engagement then segment.
func EngagementBySegment(view []model.PersonaRecord) []model.SegmentEngagement {
	type key struct {
		engagement string
		segment    string
	}
	counts := map[key]int{}
	for _, rec := range view {
		counts[key{engagement: rec.AppEngagement, segment: rec.LoyaltySegment}]++
	}
	out := make([]model.SegmentEngagement, 0, len(counts))
	for k, n := range counts {
		out = append(out, model.SegmentEngagement{
			Engagement: k.engagement,
			Segment:    k.segment,
			Count:      n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Engagement == out[j].Engagement {
			return out[i].Segment < out[j].Segment
		}
		return out[i].Engagement < out[j].Engagement
	})
	return out
}

// VisitDayCounts counts personas per preferred visit day, sorted
// descending by count.
func VisitDayCounts(view []model.PersonaRecord) []model.LabelCount {
	counts := map[string]int{}
	for _, rec := range view {
		counts[rec.PreferredVisitDay]++
	}
	out := make([]model.LabelCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, model.LabelCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Label < out[j].Label
		}
		return out[i].Count > out[j].Count
	})
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
