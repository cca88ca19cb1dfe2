package analytics

import "github.com/anshulguptads/Executive-Command-Center/internal/model"

// AlertConfig holds the thresholds for the three alert rules.
type AlertConfig struct {
	RestockFactor float64
	StaffingRatio float64
	PromoQuantile float64
}

// DefaultAlertConfig returns the standard thresholds.
func DefaultAlertConfig() AlertConfig {
	return AlertConfig{
		RestockFactor: 0.6,
		StaffingRatio: 50,
		PromoQuantile: 0.25,
	}
}

// AlertResult is the full set of rows flagged by one rule. Display
// truncation is a presentation concern; the rule returns everything.
type AlertResult struct {
	Rows []model.SalesRecord
}

// Count reports the number of flagged rows.
func (r AlertResult) Count() int {
	return len(r.Rows)
}

// None reports whether the rule flagged nothing.
func (r AlertResult) None() bool {
	return len(r.Rows) == 0
}

// RestockAlerts flags rows whose stock on hand falls below
// RestockFactor times units sold. Division-free, always defined.
func RestockAlerts(view []model.SalesRecord, cfg AlertConfig) AlertResult {
	var flagged []model.SalesRecord
	for _, rec := range view {
		if float64(rec.StockOnHand) < float64(rec.UnitsSold)*cfg.RestockFactor {
			flagged = append(flagged, rec)
		}
	}
	return AlertResult{Rows: flagged}
}

// PromoSuggestions flags non-promo rows whose revenue falls below the
// PromoQuantile of revenue over the whole view. An empty view has no
// quantile and flags nothing.
func PromoSuggestions(view []model.SalesRecord, cfg AlertConfig) AlertResult {
	revenues := make([]float64, 0, len(view))
	for _, rec := range view {
		revenues = append(revenues, rec.SalesRevenue)
	}
	threshold, ok := Quantile(revenues, cfg.PromoQuantile)
	if !ok {
		return AlertResult{}
	}
	var flagged []model.SalesRecord
	for _, rec := range view {
		if !rec.PromoFlag && rec.SalesRevenue < threshold {
			flagged = append(flagged, rec)
		}
	}
	return AlertResult{Rows: flagged}
}

// StaffingAlerts flags rows where footfall per staff member exceeds
// StaffingRatio. Rows with zero staff are excluded from consideration
// rather than producing an undefined ratio.
func StaffingAlerts(view []model.SalesRecord, cfg AlertConfig) AlertResult {
	var flagged []model.SalesRecord
	for _, rec := range view {
		if rec.StaffCount <= 0 {
			continue
		}
		if float64(rec.Footfall)/float64(rec.StaffCount) > cfg.StaffingRatio {
			flagged = append(flagged, rec)
		}
	}
	return AlertResult{Rows: flagged}
}
