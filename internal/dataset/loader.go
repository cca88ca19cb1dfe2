// Package dataset loads, sanitizes, and exports the tabular datasets.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/anshulguptads/Executive-Command-Center/internal/model"
)

// unknownLabel is the default for missing categorical dimension values.
const unknownLabel = "Unknown"

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2006/01/02",
}

// LoadStats summarizes sanitizer activity during a load.
type LoadStats struct {
	Rows         int
	InvalidDates int
}

// LoadSales reads the sales operations CSV. Missing columns are
// defaulted rather than rejected; rows with unparseable dates are kept
// with DateValid=false and counted in the returned stats.
func LoadSales(path string) ([]model.SalesRecord, LoadStats, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, LoadStats{}, err
	}
	cols := indexColumns(header)

	var stats LoadStats
	records := make([]model.SalesRecord, 0, len(rows))
	for _, row := range rows {
		rec := model.SalesRecord{
			Region:          categorical(row, cols, "region"),
			StoreID:         categorical(row, cols, "storeid"),
			SKU:             categorical(row, cols, "sku"),
			SKUCategory:     categorical(row, cols, "skucategory"),
			UnitPrice:       floatField(row, cols, "unitprice"),
			UnitsSold:       intField(row, cols, "unitssold"),
			SalesRevenue:    floatField(row, cols, "salesrevenue"),
			BasketSize:      floatField(row, cols, "basketsize"),
			Footfall:        intField(row, cols, "footfall"),
			WebOrders:       intField(row, cols, "weborders"),
			MobileOrders:    intField(row, cols, "mobileorders"),
			StockOnHand:     intField(row, cols, "stockonhand"),
			StaffCount:      intField(row, cols, "staffcount"),
			Discount:        floatField(row, cols, "discount"),
			CompetitorPrice: floatField(row, cols, "competitorprice"),
			PromoFlag:       boolField(row, cols, "promoflag"),
		}
		rec.Date, rec.DateValid = dateField(row, cols, "date")
		if !rec.DateValid {
			stats.InvalidDates++
		}
		records = append(records, rec)
	}
	stats.Rows = len(records)
	return records, stats, nil
}

// LoadPersonas reads the customer persona CSV with the same defaulting
// rules as LoadSales.
func LoadPersonas(path string) ([]model.PersonaRecord, LoadStats, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, LoadStats{}, err
	}
	cols := indexColumns(header)

	var stats LoadStats
	records := make([]model.PersonaRecord, 0, len(rows))
	for _, row := range rows {
		rec := model.PersonaRecord{
			CustomerID:         field(row, cols, "customerid"),
			Name:               field(row, cols, "name"),
			City:               categorical(row, cols, "city"),
			LoyaltySegment:     categorical(row, cols, "loyaltysegment"),
			AvgSpendAED:        floatField(row, cols, "avgspendaed"),
			VisitFrequency:     floatField(row, cols, "visitfrequency"),
			TypicalBasketSize:  floatField(row, cols, "typicalbasketsize"),
			CategoryPreference: categorical(row, cols, "categorypreference"),
			AppEngagement:      categorical(row, cols, "appengagement"),
			PreferredVisitDay:  categorical(row, cols, "preferredvisitday"),
		}
		rec.LastVisit, rec.LastVisitValid = dateField(row, cols, "lastvisitdate")
		if !rec.LastVisitValid {
			stats.InvalidDates++
		}
		records = append(records, rec)
	}
	stats.Rows = len(records)
	return records, stats, nil
}

func readCSV(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only dataset.
			_ = cerr
		}
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("dataset %s has no header row", path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// indexColumns maps normalized header names to column positions. The
// normalization makes lookup tolerant of case and separator styles
// ("Store_ID", "store id", "StoreID" all match).
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		key := normalizeColumn(name)
		if key == "" {
			continue
		}
		if _, ok := cols[key]; !ok {
			cols[key] = i
		}
	}
	return cols
}

func normalizeColumn(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if r == '_' || r == ' ' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func field(row []string, cols map[string]int, key string) string {
	idx, ok := cols[key]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func categorical(row []string, cols map[string]int, key string) string {
	v := field(row, cols, key)
	if v == "" {
		return unknownLabel
	}
	return v
}

func floatField(row []string, cols map[string]int, key string) float64 {
	v := field(row, cols, key)
	if v == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil {
		return 0
	}
	return parsed
}

func intField(row []string, cols map[string]int, key string) int {
	v := field(row, cols, key)
	if v == "" {
		return 0
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		// Some exports write integral counts as decimals.
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			return 0
		}
		return int(f)
	}
	return parsed
}

func boolField(row []string, cols map[string]int, key string) bool {
	v := strings.ToLower(field(row, cols, key))
	return v == "1" || v == "true" || v == "yes"
}

func dateField(row []string, cols map[string]int, key string) (time.Time, bool) {
	v := field(row, cols, key)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
