// Package analytics contains the filter-and-aggregate pipeline:
// filtered views, KPI summaries, grouped rollups, and alert rules.
package analytics

import (
	"time"

	"github.com/anshulguptads/Executive-Command-Center/internal/model"
)

// Apply filters both datasets against the spec and returns derived
// views. Predicates are conjunctive; an empty dimension set means no
// restriction on that dimension. The views are fresh slices that
// preserve input row order; the inputs are never mutated. An inverted
// date range yields empty views rather than an error.
func Apply(sales []model.SalesRecord, personas []model.PersonaRecord, spec model.FilterSpec) ([]model.SalesRecord, []model.PersonaRecord) {
	regions := toSet(spec.Regions)
	stores := toSet(spec.Stores)
	categories := toSet(spec.Categories)
	segments := toSet(spec.Segments)

	salesView := make([]model.SalesRecord, 0, len(sales))
	for _, rec := range sales {
		if !dateInRange(rec.Date, rec.DateValid, spec.Start, spec.End) {
			continue
		}
		if !member(regions, rec.Region) {
			continue
		}
		if !member(stores, rec.StoreID) {
			continue
		}
		if !member(categories, rec.SKUCategory) {
			continue
		}
		salesView = append(salesView, rec)
	}

	personaView := make([]model.PersonaRecord, 0, len(personas))
	for _, rec := range personas {
		if !member(segments, rec.LoyaltySegment) {
			continue
		}
		personaView = append(personaView, rec)
	}

	return salesView, personaView
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// member treats a nil set as "no restriction".
func member(set map[string]struct{}, value string) bool {
	if set == nil {
		return true
	}
	_, ok := set[value]
	return ok
}

// dateInRange applies the inclusive date predicate at day granularity.
// With no bounds there is no date predicate; with any bound set, a row
// must carry a valid date to qualify.
func dateInRange(date time.Time, valid bool, start, end *time.Time) bool {
	if start == nil && end == nil {
		return true
	}
	if !valid {
		return false
	}
	day := dayOf(date)
	if start != nil && day.Before(dayOf(*start)) {
		return false
	}
	if end != nil && day.After(dayOf(*end)) {
		return false
	}
	return true
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
