package analytics

import (
	"fmt"
	"io"

	"github.com/anshulguptads/Executive-Command-Center/internal/model"
)

// alertDisplayCap limits alert tables for display; the full count is
// always reported alongside.
const alertDisplayCap = 50

// RenderKPIs prints the executive KPI block.
func RenderKPIs(w io.Writer, kpi model.KPISet) error {
	lines := []string{
		"Executive KPIs",
		fmt.Sprintf("Total Revenue (AED): %.0f", kpi.TotalRevenue),
		fmt.Sprintf("Total Units Sold: %d", kpi.TotalUnits),
		fmt.Sprintf("Avg Basket Size: %.2f", kpi.AvgBasketSize),
		fmt.Sprintf("Avg Unit Price (AED): %.2f", kpi.AvgUnitPrice),
		fmt.Sprintf("Avg Footfall / Day: %.0f", kpi.AvgFootfall),
		fmt.Sprintf("Digital Conversion Proxy (%%): %.2f", kpi.DigitalConversionPct),
		"",
	}
	return writeLines(w, lines)
}

// RenderRevenueTrend plots revenue over time with a linear trend
// overlay when one exists.
func RenderRevenueTrend(w io.Writer, points []model.DateRevenue, width, height int, useColor bool) error {
	if len(points) == 0 {
		return writeLines(w, []string{"No data for the selected filters.", ""})
	}
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Revenue
	}
	series := []Series{{Name: "Revenue", Values: values}}
	if trend := TrendValues(values); trend != nil {
		series = append(series, Series{Name: "Trend", Values: trend})
	}
	title := fmt.Sprintf("Revenue Over Time (%s to %s)",
		points[0].Date.Format("2006-01-02"),
		points[len(points)-1].Date.Format("2006-01-02"))
	return PlotSeriesWithColor(w, title, series, width, height, useColor)
}

// RenderCategoryMix prints the category revenue table.
func RenderCategoryMix(w io.Writer, rows []model.CategoryRevenue) error {
	if len(rows) == 0 {
		return writeLines(w, []string{"No data for the selected filters.", ""})
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{r.Category, fmt.Sprintf("%.2f", r.Revenue)})
	}
	return renderTitledTable(w, "Category Revenue Mix",
		[]string{"Category", "Revenue (AED)"}, table, map[int]bool{1: true})
}

// RenderRegionStore prints the region-store performance table.
func RenderRegionStore(w io.Writer, rows []model.StorePerformance) error {
	if len(rows) == 0 {
		return writeLines(w, []string{"No data for the selected filters.", ""})
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.Region,
			r.StoreID,
			fmt.Sprintf("%.2f", r.Revenue),
			fmt.Sprintf("%d", r.Units),
			fmt.Sprintf("%d", r.Footfall),
		})
	}
	return renderTitledTable(w, "Region-Store Performance",
		[]string{"Region", "Store", "Revenue", "Units", "Footfall"}, table,
		map[int]bool{2: true, 3: true, 4: true})
}

// RenderPromoComparison prints mean revenue per promo group. An absent
// group is simply not shown.
func RenderPromoComparison(w io.Writer, groups []model.PromoGroup) error {
	if len(groups) == 0 {
		return writeLines(w, []string{"No data to visualize.", ""})
	}
	table := make([][]string, 0, len(groups))
	for _, g := range groups {
		table = append(table, []string{
			g.Label,
			fmt.Sprintf("%.2f", g.AvgRevenue),
			fmt.Sprintf("%d", g.Rows),
		})
	}
	return renderTitledTable(w, "Average Revenue: Promo vs No Promo",
		[]string{"Group", "Avg Revenue", "Rows"}, table, map[int]bool{1: true, 2: true})
}

// RenderDrivers prints the operational drivers table.
func RenderDrivers(w io.Writer, rows []model.CategoryDrivers) error {
	if len(rows) == 0 {
		return writeLines(w, []string{"No data for the selected filters.", ""})
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.Category,
			fmt.Sprintf("%.2f", r.AvgFootfall),
			fmt.Sprintf("%.2f", r.AvgStaff),
			fmt.Sprintf("%.2f", r.AvgDiscount),
			fmt.Sprintf("%.2f", r.AvgCompetitorPrice),
		})
	}
	return renderTitledTable(w, "Operational Drivers",
		[]string{"Category", "Avg Footfall", "Avg Staff", "Avg Discount", "Avg Competitor Price"},
		table, map[int]bool{1: true, 2: true, 3: true, 4: true})
}

// RenderTopPersonas prints the high-value persona ranking.
func RenderTopPersonas(w io.Writer, rows []model.HighValuePersona) error {
	if len(rows) == 0 {
		return writeLines(w, []string{"No Gold/Platinum personas in current filters.", ""})
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.CustomerID,
			r.Name,
			r.City,
			fmt.Sprintf("%.2f", r.AvgSpendAED),
			fmt.Sprintf("%.2f", r.VisitFrequency),
			fmt.Sprintf("%.2f", r.TypicalBasketSize),
			r.CategoryPreference,
			r.AppEngagement,
			fmt.Sprintf("%.2f", r.ValueIndex),
		})
	}
	return renderTitledTable(w, "High-Value Personas (Gold/Platinum)",
		[]string{"Customer", "Name", "City", "Avg Spend", "Visits", "Basket", "Preference", "Engagement", "Value Index"},
		table, map[int]bool{3: true, 4: true, 5: true, 8: true})
}

// RenderPersonaBreakdown prints the engagement and visit day counts.
func RenderPersonaBreakdown(w io.Writer, engagement []model.SegmentEngagement, visitDays []model.LabelCount) error {
	if len(engagement) == 0 && len(visitDays) == 0 {
		return writeLines(w, []string{"No persona data for the selected filters.", ""})
	}
	if len(engagement) > 0 {
		table := make([][]string, 0, len(engagement))
		for _, r := range engagement {
			table = append(table, []string{r.Engagement, r.Segment, fmt.Sprintf("%d", r.Count)})
		}
		if err := renderTitledTable(w, "Engagement by Loyalty",
			[]string{"Engagement", "Segment", "Personas"}, table, map[int]bool{2: true}); err != nil {
			return err
		}
	}
	if len(visitDays) > 0 {
		table := make([][]string, 0, len(visitDays))
		for _, r := range visitDays {
			table = append(table, []string{r.Label, fmt.Sprintf("%d", r.Count)})
		}
		if err := renderTitledTable(w, "Preferred Visit Days",
			[]string{"Day", "Personas"}, table, map[int]bool{1: true}); err != nil {
			return err
		}
	}
	return nil
}

// RenderAlerts prints all three alert sections with counts, truncating
// row listings for display but never the counts.
func RenderAlerts(w io.Writer, restock, promoSuggest, staffing AlertResult) error {
	if err := renderRestock(w, restock); err != nil {
		return err
	}
	if err := renderPromoSuggestions(w, promoSuggest); err != nil {
		return err
	}
	return renderStaffing(w, staffing)
}

func renderRestock(w io.Writer, result AlertResult) error {
	if result.None() {
		return writeLines(w, []string{"No restock alerts. Inventory levels appear healthy against demand.", ""})
	}
	table := make([][]string, 0, minInt(result.Count(), alertDisplayCap))
	for _, rec := range capRows(result.Rows) {
		table = append(table, []string{
			formatDay(rec),
			rec.StoreID,
			rec.SKU,
			rec.SKUCategory,
			fmt.Sprintf("%d", rec.UnitsSold),
			fmt.Sprintf("%d", rec.StockOnHand),
			fmt.Sprintf("%.2f", rec.SalesRevenue),
		})
	}
	title := fmt.Sprintf("Restock Alerts: %d rows flagged%s", result.Count(), capNote(result.Count()))
	return renderTitledTable(w, title,
		[]string{"Date", "Store", "SKU", "Category", "Units", "Stock", "Revenue"},
		table, map[int]bool{4: true, 5: true, 6: true})
}

func renderPromoSuggestions(w io.Writer, result AlertResult) error {
	if result.None() {
		return writeLines(w, []string{"No immediate promo suggestions.", ""})
	}
	table := make([][]string, 0, minInt(result.Count(), alertDisplayCap))
	for _, rec := range capRows(result.Rows) {
		table = append(table, []string{
			formatDay(rec),
			rec.StoreID,
			rec.SKU,
			rec.SKUCategory,
			fmt.Sprintf("%.2f", rec.SalesRevenue),
			fmt.Sprintf("%.2f", rec.UnitPrice),
			fmt.Sprintf("%.2f", rec.Discount),
		})
	}
	title := fmt.Sprintf("Promo Suggestions: %d underperforming rows without promos%s", result.Count(), capNote(result.Count()))
	return renderTitledTable(w, title,
		[]string{"Date", "Store", "SKU", "Category", "Revenue", "Price", "Discount"},
		table, map[int]bool{4: true, 5: true, 6: true})
}

func renderStaffing(w io.Writer, result AlertResult) error {
	if result.None() {
		return writeLines(w, []string{"Staffing levels appear adequate for current footfall.", ""})
	}
	table := make([][]string, 0, minInt(result.Count(), alertDisplayCap))
	for _, rec := range capRows(result.Rows) {
		table = append(table, []string{
			formatDay(rec),
			rec.StoreID,
			rec.Region,
			fmt.Sprintf("%d", rec.Footfall),
			fmt.Sprintf("%d", rec.StaffCount),
			rec.SKUCategory,
		})
	}
	title := fmt.Sprintf("Staffing Alerts: %d rows where footfall per staff is high%s", result.Count(), capNote(result.Count()))
	return renderTitledTable(w, title,
		[]string{"Date", "Store", "Region", "Footfall", "Staff", "Category"},
		table, map[int]bool{3: true, 4: true})
}

// RenderReport prints the complete snapshot: KPIs, trend plot, rollup
// tables, persona views, and alerts.
func RenderReport(w io.Writer, snap Snapshot, width, plotHeight int, useColor bool) error {
	if err := RenderKPIs(w, snap.KPIs); err != nil {
		return err
	}
	plotWidth := 0
	if width > 0 {
		plotWidth = PlotWidthFor(width)
	}
	if err := RenderRevenueTrend(w, snap.RevenueByDate, plotWidth, plotHeight, useColor); err != nil {
		return err
	}
	if err := RenderCategoryMix(w, snap.RevenueByCategory); err != nil {
		return err
	}
	if err := RenderRegionStore(w, snap.RegionStore); err != nil {
		return err
	}
	if err := RenderPromoComparison(w, snap.PromoComparison); err != nil {
		return err
	}
	if err := RenderDrivers(w, snap.Drivers); err != nil {
		return err
	}
	if err := RenderTopPersonas(w, snap.TopPersonas); err != nil {
		return err
	}
	if err := RenderPersonaBreakdown(w, snap.EngagementBySegment, snap.VisitDays); err != nil {
		return err
	}
	return RenderAlerts(w, snap.Restock, snap.PromoSuggest, snap.Staffing)
}

func renderTitledTable(w io.Writer, title string, headers []string, rows [][]string, rightAlign map[int]bool) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func capRows(rows []model.SalesRecord) []model.SalesRecord {
	if len(rows) > alertDisplayCap {
		return rows[:alertDisplayCap]
	}
	return rows
}

func capNote(count int) string {
	if count > alertDisplayCap {
		return fmt.Sprintf(" (showing first %d)", alertDisplayCap)
	}
	return ""
}

func formatDay(rec model.SalesRecord) string {
	if !rec.DateValid {
		return "-"
	}
	return rec.Date.Format("2006-01-02")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
