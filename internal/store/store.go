// Package store handles the SQLite parsed-dataset cache.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/anshulguptads/Executive-Command-Center/internal/dataset"
	"github.com/anshulguptads/Executive-Command-Center/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store caches parsed dataset rows keyed by source file identity, so
// an unchanged CSV is not re-parsed on every launch. The cache holds
// derived data only; source files stay authoritative.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sources (
			key TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			size INTEGER NOT NULL,
			mtime INTEGER NOT NULL,
			kind TEXT NOT NULL,
			cached_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sales_rows (
			source_key TEXT NOT NULL,
			seq INTEGER NOT NULL,
			date TEXT NOT NULL,
			date_valid INTEGER NOT NULL,
			region TEXT NOT NULL,
			store_id TEXT NOT NULL,
			sku TEXT NOT NULL,
			sku_category TEXT NOT NULL,
			unit_price REAL NOT NULL,
			units_sold INTEGER NOT NULL,
			sales_revenue REAL NOT NULL,
			basket_size REAL NOT NULL,
			footfall INTEGER NOT NULL,
			web_orders INTEGER NOT NULL,
			mobile_orders INTEGER NOT NULL,
			stock_on_hand INTEGER NOT NULL,
			staff_count INTEGER NOT NULL,
			discount REAL NOT NULL,
			competitor_price REAL NOT NULL,
			promo_flag INTEGER NOT NULL,
			PRIMARY KEY (source_key, seq)
		);`,
		`CREATE TABLE IF NOT EXISTS persona_rows (
			source_key TEXT NOT NULL,
			seq INTEGER NOT NULL,
			customer_id TEXT NOT NULL,
			name TEXT NOT NULL,
			city TEXT NOT NULL,
			loyalty_segment TEXT NOT NULL,
			avg_spend_aed REAL NOT NULL,
			visit_frequency REAL NOT NULL,
			typical_basket_size REAL NOT NULL,
			category_preference TEXT NOT NULL,
			app_engagement TEXT NOT NULL,
			preferred_visit_day TEXT NOT NULL,
			last_visit TEXT NOT NULL,
			last_visit_valid INTEGER NOT NULL,
			PRIMARY KEY (source_key, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sources_path ON sources(path);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// GetSales returns the cached sales rows for a fingerprint, reporting
// whether the cache held them.
func (s *Store) GetSales(ctx context.Context, fp dataset.Fingerprint) ([]model.SalesRecord, bool, error) {
	ok, err := s.hasSource(ctx, fp, "sales")
	if err != nil || !ok {
		return nil, false, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, date_valid, region, store_id, sku, sku_category,
			unit_price, units_sold, sales_revenue, basket_size, footfall,
			web_orders, mobile_orders, stock_on_hand, staff_count,
			discount, competitor_price, promo_flag
		 FROM sales_rows WHERE source_key = ? ORDER BY seq ASC`, fp.Key())
	if err != nil {
		return nil, false, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.SalesRecord
	for rows.Next() {
		var rec model.SalesRecord
		var date string
		var dateValid, promo int
		if err := rows.Scan(&date, &dateValid, &rec.Region, &rec.StoreID, &rec.SKU, &rec.SKUCategory,
			&rec.UnitPrice, &rec.UnitsSold, &rec.SalesRevenue, &rec.BasketSize, &rec.Footfall,
			&rec.WebOrders, &rec.MobileOrders, &rec.StockOnHand, &rec.StaffCount,
			&rec.Discount, &rec.CompetitorPrice, &promo); err != nil {
			return nil, false, err
		}
		rec.DateValid = dateValid != 0
		rec.PromoFlag = promo != 0
		if rec.DateValid {
			parsed, err := time.Parse(time.RFC3339Nano, date)
			if err != nil {
				return nil, false, err
			}
			rec.Date = parsed
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return result, true, nil
}

// PutSales replaces the cached sales rows for a source file. Stale
// fingerprints of the same path are evicted in the same transaction.
func (s *Store) PutSales(ctx context.Context, fp dataset.Fingerprint, records []model.SalesRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if err = s.evictPath(ctx, tx, fp, "sales", "sales_rows"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sales_rows (source_key, seq, date, date_valid, region, store_id, sku, sku_category,
			unit_price, units_sold, sales_revenue, basket_size, footfall, web_orders, mobile_orders,
			stock_on_hand, staff_count, discount, competitor_price, promo_flag)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for seq, rec := range records {
		date := ""
		if rec.DateValid {
			date = rec.Date.Format(time.RFC3339Nano)
		}
		if _, err = stmt.ExecContext(ctx, fp.Key(), seq, date, boolInt(rec.DateValid),
			rec.Region, rec.StoreID, rec.SKU, rec.SKUCategory,
			rec.UnitPrice, rec.UnitsSold, rec.SalesRevenue, rec.BasketSize, rec.Footfall,
			rec.WebOrders, rec.MobileOrders, rec.StockOnHand, rec.StaffCount,
			rec.Discount, rec.CompetitorPrice, boolInt(rec.PromoFlag)); err != nil {
			return err
		}
	}

	err = tx.Commit()
	return err
}

// GetPersonas returns the cached persona rows for a fingerprint.
func (s *Store) GetPersonas(ctx context.Context, fp dataset.Fingerprint) ([]model.PersonaRecord, bool, error) {
	ok, err := s.hasSource(ctx, fp, "persona")
	if err != nil || !ok {
		return nil, false, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT customer_id, name, city, loyalty_segment, avg_spend_aed, visit_frequency,
			typical_basket_size, category_preference, app_engagement, preferred_visit_day,
			last_visit, last_visit_valid
		 FROM persona_rows WHERE source_key = ? ORDER BY seq ASC`, fp.Key())
	if err != nil {
		return nil, false, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.PersonaRecord
	for rows.Next() {
		var rec model.PersonaRecord
		var lastVisit string
		var lastVisitValid int
		if err := rows.Scan(&rec.CustomerID, &rec.Name, &rec.City, &rec.LoyaltySegment,
			&rec.AvgSpendAED, &rec.VisitFrequency, &rec.TypicalBasketSize,
			&rec.CategoryPreference, &rec.AppEngagement, &rec.PreferredVisitDay,
			&lastVisit, &lastVisitValid); err != nil {
			return nil, false, err
		}
		rec.LastVisitValid = lastVisitValid != 0
		if rec.LastVisitValid {
			parsed, err := time.Parse(time.RFC3339Nano, lastVisit)
			if err != nil {
				return nil, false, err
			}
			rec.LastVisit = parsed
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return result, true, nil
}

// PutPersonas replaces the cached persona rows for a source file.
func (s *Store) PutPersonas(ctx context.Context, fp dataset.Fingerprint, records []model.PersonaRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if err = s.evictPath(ctx, tx, fp, "persona", "persona_rows"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO persona_rows (source_key, seq, customer_id, name, city, loyalty_segment,
			avg_spend_aed, visit_frequency, typical_basket_size, category_preference,
			app_engagement, preferred_visit_day, last_visit, last_visit_valid)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for seq, rec := range records {
		lastVisit := ""
		if rec.LastVisitValid {
			lastVisit = rec.LastVisit.Format(time.RFC3339Nano)
		}
		if _, err = stmt.ExecContext(ctx, fp.Key(), seq, rec.CustomerID, rec.Name, rec.City,
			rec.LoyaltySegment, rec.AvgSpendAED, rec.VisitFrequency, rec.TypicalBasketSize,
			rec.CategoryPreference, rec.AppEngagement, rec.PreferredVisitDay,
			lastVisit, boolInt(rec.LastVisitValid)); err != nil {
			return err
		}
	}

	err = tx.Commit()
	return err
}

func (s *Store) hasSource(ctx context.Context, fp dataset.Fingerprint, kind string) (bool, error) {
	var key string
	err := s.db.QueryRowContext(ctx,
		`SELECT key FROM sources WHERE key = ? AND kind = ?`, fp.Key(), kind).Scan(&key)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// evictPath drops every cached fingerprint for the source path, then
// registers the new one.
func (s *Store) evictPath(ctx context.Context, tx *sql.Tx, fp dataset.Fingerprint, kind, rowsTable string) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM `+rowsTable+` WHERE source_key IN (SELECT key FROM sources WHERE path = ? AND kind = ?)`,
		fp.Path, kind); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM sources WHERE path = ? AND kind = ?`, fp.Path, kind); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sources (key, path, size, mtime, kind, cached_at) VALUES (?, ?, ?, ?, ?, ?)`,
		fp.Key(), fp.Path, fp.Size, fp.ModTime, kind, time.Now().Format(time.RFC3339Nano)); err != nil {
		return err
	}
	return nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
