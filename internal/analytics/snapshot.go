package analytics

import "github.com/anshulguptads/Executive-Command-Center/internal/model"

// topPersonaLimit is the ranking depth for the high-value persona view.
const topPersonaLimit = 20

// Snapshot holds every derived output for one filter spec: the views,
// KPIs, rollups, and alert sets. It is computed in one pass per
// interaction and read-only afterwards, so the independent consumers
// can share it freely.
type Snapshot struct {
	Spec model.FilterSpec

	SalesView   []model.SalesRecord
	PersonaView []model.PersonaRecord

	KPIs model.KPISet

	RevenueByDate       []model.DateRevenue
	RevenueByCategory   []model.CategoryRevenue
	RegionStore         []model.StorePerformance
	PromoComparison     []model.PromoGroup
	Drivers             []model.CategoryDrivers
	TopPersonas         []model.HighValuePersona
	EngagementBySegment []model.SegmentEngagement
	VisitDays           []model.LabelCount
	PricePoints         []model.PricePoint

	Restock      AlertResult
	PromoSuggest AlertResult
	Staffing     AlertResult
}

// BuildSnapshot runs the full pipeline: filter both datasets, then fan
// out to the KPI aggregator, the rollups, and the alert rules. Pure
// given (datasets, spec, thresholds); an empty filtered view produces
// zeroed KPIs and empty result sets, never an error.
func BuildSnapshot(sales []model.SalesRecord, personas []model.PersonaRecord, spec model.FilterSpec, alerts AlertConfig) Snapshot {
	salesView, personaView := Apply(sales, personas, spec)
	return Snapshot{
		Spec:                spec,
		SalesView:           salesView,
		PersonaView:         personaView,
		KPIs:                Summarize(salesView),
		RevenueByDate:       RevenueByDate(salesView),
		RevenueByCategory:   RevenueByCategory(salesView),
		RegionStore:         RegionStorePerformance(salesView),
		PromoComparison:     PromoComparison(salesView),
		Drivers:             OperationalDrivers(salesView),
		TopPersonas:         TopPersonas(personaView, topPersonaLimit),
		EngagementBySegment: EngagementBySegment(personaView),
		VisitDays:           VisitDayCounts(personaView),
		PricePoints:         PricePoints(salesView),
		Restock:             RestockAlerts(salesView, alerts),
		PromoSuggest:        PromoSuggestions(salesView, alerts),
		Staffing:            StaffingAlerts(salesView, alerts),
	}
}
