// Package model defines shared data structures.
package model

import "time"

// SalesRecord is one (date, store, SKU) observation from the sales
// operations dataset. Revenue and unit price are independently
// observed fields; nothing ties revenue to price*units.
type SalesRecord struct {
	Date            time.Time
	DateValid       bool
	Region          string
	StoreID         string
	SKU             string
	SKUCategory     string
	UnitPrice       float64
	UnitsSold       int
	SalesRevenue    float64
	BasketSize      float64
	Footfall        int
	WebOrders       int
	MobileOrders    int
	StockOnHand     int
	StaffCount      int
	Discount        float64
	CompetitorPrice float64
	PromoFlag       bool
}

// PersonaRecord is one customer row from the persona dataset.
type PersonaRecord struct {
	CustomerID         string
	Name               string
	City               string
	LoyaltySegment     string
	AvgSpendAED        float64
	VisitFrequency     float64
	TypicalBasketSize  float64
	CategoryPreference string
	AppEngagement      string
	PreferredVisitDay  string
	LastVisit          time.Time
	LastVisitValid     bool
}

// FilterSpec is the user-controlled query applied to both datasets.
// Nil date bounds mean unbounded on that side; empty dimension slices
// mean no restriction on that dimension. Constructed fresh per
// interaction and never mutated after being passed to Apply.
type FilterSpec struct {
	Start      *time.Time
	End        *time.Time
	Regions    []string
	Stores     []string
	Categories []string
	Segments   []string
}

// KPISet holds the six executive summary scalars. Every field is 0 on
// an empty view; none is ever NaN.
type KPISet struct {
	TotalRevenue         float64
	TotalUnits           int
	AvgBasketSize        float64
	AvgUnitPrice         float64
	AvgFootfall          float64
	DigitalConversionPct float64
}

// DateRevenue is one point of the revenue-over-time rollup.
type DateRevenue struct {
	Date    time.Time
	Revenue float64
}

// CategoryRevenue is one row of the category revenue mix.
type CategoryRevenue struct {
	Category string
	Revenue  float64
}

// StorePerformance aggregates one (region, store) pair.
type StorePerformance struct {
	Region   string
	StoreID  string
	Revenue  float64
	Units    int
	Footfall int
}

// PromoGroup compares mean revenue for promo vs non-promo rows.
type PromoGroup struct {
	Promo      bool
	Label      string
	AvgRevenue float64
	Rows       int
}

// CategoryDrivers holds per-category operational means, rounded to
// two decimals for display.
type CategoryDrivers struct {
	Category           string
	AvgFootfall        float64
	AvgStaff           float64
	AvgDiscount        float64
	AvgCompetitorPrice float64
}

// HighValuePersona is the projected ranking row for Gold/Platinum
// customers.
type HighValuePersona struct {
	CustomerID         string
	Name               string
	City               string
	AvgSpendAED        float64
	VisitFrequency     float64
	TypicalBasketSize  float64
	CategoryPreference string
	AppEngagement      string
	ValueIndex         float64
}

// LabelCount is a generic (label, count) breakdown row.
type LabelCount struct {
	Label string
	Count int
}

// SegmentEngagement counts personas per (engagement level, loyalty
// segment) pair.
type SegmentEngagement struct {
	Engagement string
	Segment    string
	Count      int
}

// PricePoint is one (price, demand, category) tuple for the price vs
// units scatter and its trend overlay.
type PricePoint struct {
	UnitPrice float64
	UnitsSold int
	Category  string
}
