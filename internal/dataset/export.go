package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/anshulguptads/Executive-Command-Center/internal/model"
)

// SalesHeader is the canonical sales export schema, matching the
// original input column names.
var SalesHeader = []string{
	"Date", "Region", "Store_ID", "SKU", "SKU_Category",
	"Unit_Price", "Units_Sold", "Sales_Revenue", "Basket_Size",
	"Footfall", "Web_Orders", "Mobile_Orders", "Stock_On_Hand",
	"Staff_Count", "Discount", "Competitor_Price", "Promo_Flag",
}

// PersonaHeader is the canonical persona export schema.
var PersonaHeader = []string{
	"Customer_ID", "Name", "City", "Loyalty_Segment", "Avg_Spend_AED",
	"Visit_Frequency", "Typical_Basket_Size", "Category_Preference",
	"App_Engagement", "Preferred_Visit_Day", "Last_Visit_Date",
}

// WriteSales writes a filtered sales view as CSV with a header row.
func WriteSales(w io.Writer, rows []model.SalesRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SalesHeader); err != nil {
		return fmt.Errorf("failed to write sales header: %w", err)
	}
	for _, rec := range rows {
		date := ""
		if rec.DateValid {
			date = rec.Date.Format("2006-01-02")
		}
		promo := "0"
		if rec.PromoFlag {
			promo = "1"
		}
		row := []string{
			date,
			rec.Region,
			rec.StoreID,
			rec.SKU,
			rec.SKUCategory,
			formatFloat(rec.UnitPrice),
			strconv.Itoa(rec.UnitsSold),
			formatFloat(rec.SalesRevenue),
			formatFloat(rec.BasketSize),
			strconv.Itoa(rec.Footfall),
			strconv.Itoa(rec.WebOrders),
			strconv.Itoa(rec.MobileOrders),
			strconv.Itoa(rec.StockOnHand),
			strconv.Itoa(rec.StaffCount),
			formatFloat(rec.Discount),
			formatFloat(rec.CompetitorPrice),
			promo,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write sales row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush sales export: %w", err)
	}
	return nil
}

// WritePersonas writes a filtered persona view as CSV with a header row.
func WritePersonas(w io.Writer, rows []model.PersonaRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(PersonaHeader); err != nil {
		return fmt.Errorf("failed to write persona header: %w", err)
	}
	for _, rec := range rows {
		lastVisit := ""
		if rec.LastVisitValid {
			lastVisit = rec.LastVisit.Format("2006-01-02")
		}
		row := []string{
			rec.CustomerID,
			rec.Name,
			rec.City,
			rec.LoyaltySegment,
			formatFloat(rec.AvgSpendAED),
			formatFloat(rec.VisitFrequency),
			formatFloat(rec.TypicalBasketSize),
			rec.CategoryPreference,
			rec.AppEngagement,
			rec.PreferredVisitDay,
			lastVisit,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write persona row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush persona export: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
