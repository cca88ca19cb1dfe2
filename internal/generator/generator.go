// Package generator builds synthetic demo datasets.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/anshulguptads/Executive-Command-Center/internal/model"
)

var (
	regions    = []string{"Dubai", "Abu Dhabi", "Sharjah", "Al Ain"}
	categories = []string{"Fresh Food", "Grocery", "Electronics", "Fashion", "Household"}
	segments   = []string{"Bronze", "Silver", "Gold", "Platinum"}
	engagement = []string{"Low", "Medium", "High"}
	visitDays  = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	firstNames = []string{"Aisha", "Omar", "Lena", "Yusuf", "Fatima", "Hassan", "Mariam", "Khalid", "Noura", "Zainab"}
	lastNames  = []string{"Al Farsi", "Haddad", "Nasser", "Karim", "Saleh", "Rahman", "Bishara", "Qasim"}
)

// Generator produces randomized retail datasets for demos and local
// testing.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded deterministically, so the same seed
// reproduces the same datasets.
func New(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Sales generates one row per (day, store, category) over the given
// number of days ending today, with storesPerRegion stores in each
// region.
func (g *Generator) Sales(days, storesPerRegion int) []model.SalesRecord {
	if days <= 0 || storesPerRegion <= 0 {
		return nil
	}
	end := time.Now().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -(days - 1))

	var records []model.SalesRecord
	for d := 0; d < days; d++ {
		date := start.AddDate(0, 0, d)
		for _, region := range regions {
			for s := 0; s < storesPerRegion; s++ {
				storeID := fmt.Sprintf("LULU-%s-%02d", shortCode(region), s+1)
				footfall := 150 + g.rnd.Intn(400)
				staff := 3 + g.rnd.Intn(8)
				for _, category := range categories {
					unitPrice := 2 + g.rnd.Float64()*48
					units := 5 + g.rnd.Intn(60)
					discount := float64(g.rnd.Intn(4)) * 0.05
					promo := g.rnd.Float64() < 0.3
					revenue := unitPrice * float64(units) * (1 - discount)
					records = append(records, model.SalesRecord{
						Date:            date,
						DateValid:       true,
						Region:          region,
						StoreID:         storeID,
						SKU:             fmt.Sprintf("SKU-%04d", g.rnd.Intn(500)),
						SKUCategory:     category,
						UnitPrice:       round2(unitPrice),
						UnitsSold:       units,
						SalesRevenue:    round2(revenue),
						BasketSize:      round2(1.5 + g.rnd.Float64()*3),
						Footfall:        footfall,
						WebOrders:       g.rnd.Intn(footfall / 10),
						MobileOrders:    g.rnd.Intn(footfall / 10),
						StockOnHand:     g.rnd.Intn(units * 3),
						StaffCount:      staff,
						Discount:        discount,
						CompetitorPrice: round2(unitPrice * (0.9 + g.rnd.Float64()*0.2)),
						PromoFlag:       promo,
					})
				}
			}
		}
	}
	return records
}

// Personas generates the given number of customer personas.
func (g *Generator) Personas(count int) []model.PersonaRecord {
	if count <= 0 {
		return nil
	}
	records := make([]model.PersonaRecord, 0, count)
	for i := 0; i < count; i++ {
		segment := segments[g.rnd.Intn(len(segments))]
		spend := 30 + g.rnd.Float64()*70
		switch segment {
		case "Gold":
			spend = 120 + g.rnd.Float64()*120
		case "Platinum":
			spend = 200 + g.rnd.Float64()*250
		}
		records = append(records, model.PersonaRecord{
			CustomerID:         fmt.Sprintf("C%04d", i+1),
			Name:               g.pick(firstNames) + " " + g.pick(lastNames),
			City:               g.pick(regions),
			LoyaltySegment:     segment,
			AvgSpendAED:        round2(spend),
			VisitFrequency:     round2(0.5 + g.rnd.Float64()*5),
			TypicalBasketSize:  round2(1 + g.rnd.Float64()*4),
			CategoryPreference: g.pick(categories),
			AppEngagement:      g.pick(engagement),
			PreferredVisitDay:  g.pick(visitDays),
			LastVisit:          time.Now().AddDate(0, 0, -g.rnd.Intn(60)),
			LastVisitValid:     true,
		})
	}
	return records
}

func (g *Generator) pick(values []string) string {
	return values[g.rnd.Intn(len(values))]
}

func shortCode(region string) string {
	code := make([]rune, 0, 3)
	for _, r := range region {
		if r == ' ' {
			continue
		}
		code = append(code, r)
		if len(code) == 3 {
			break
		}
	}
	return string(code)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
