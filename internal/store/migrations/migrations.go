// Package migrations creates and evolves the kiosk schema.
//
// Migrations are an explicit ordered table of (id, fn) pairs. IDs sort
// lexically in the order they must be applied. Each migration runs inside
// its own transaction and is recorded in schema_migrations; a failure rolls
// back that migration and aborts the whole run so the schema never ends up
// half-applied.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

type migrationFn func(ctx context.Context, tx *sql.Tx) error

type migration struct {
	id string
	fn migrationFn
}

var all = []migration{
	{"001_init", m001Init},
	{"002_add_rob", m002AddRob},
	{"003_add_parts_ean", m003AddPartsEAN},
	{"004_add_location_overrides", m004AddLocationOverrides},
	{"005_add_api_usage", m005AddAPIUsage},
}

// Run applies every pending migration in ID order. Safe to call on every
// startup; applied IDs are skipped via the schema_migrations ledger.
func Run(ctx context.Context, db *sql.DB) error {
	if err := ensureLedger(ctx, db); err != nil {
		return err
	}

	applied, err := appliedIDs(ctx, db)
	if err != nil {
		return err
	}

	pending := make([]migration, 0, len(all))
	for _, m := range all {
		if !applied[m.id] {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].id < pending[j].id })

	for _, m := range pending {
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.id, err)
		}
	}
	return nil
}

// IDs returns all known migration IDs in application order.
func IDs() []string {
	ids := make([]string, 0, len(all))
	for _, m := range all {
		ids = append(ids, m.id)
	}
	sort.Strings(ids)
	return ids
}

// Applied returns the set of migration IDs already recorded in the ledger.
func Applied(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	if err := ensureLedger(ctx, db); err != nil {
		return nil, err
	}
	return appliedIDs(ctx, db)
}

func apply(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := m.fn(ctx, tx); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (id) VALUES (?)`, m.id); err != nil {
		return err
	}
	return tx.Commit()
}

func ensureLedger(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`)
	return err
}

func appliedIDs(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT id FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		applied[id] = true
	}
	return applied, rows.Err()
}

func m001Init(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{`
		CREATE TABLE IF NOT EXISTS parts (
			number TEXT PRIMARY KEY,
			name TEXT,
			qa_grading TEXT,
			maker_code TEXT,
			makers_reference TEXT,
			unit TEXT,
			pref_vendor_code TEXT,
			order_status TEXT,
			default_location TEXT,
			stock_class TEXT,
			stock_class_description TEXT,
			reserved INTEGER,
			price_class TEXT,
			asset TEXT,
			hm TEXT,
			attachments TEXT,
			weight_unit TEXT,
			weight REAL,
			alternative_available TEXT,
			imported_at TEXT
		)`, `
		CREATE TABLE IF NOT EXISTS orders (
			number TEXT PRIMARY KEY,
			title TEXT,
			vendor TEXT,
			del_address TEXT,
			form_type TEXT,
			form_status TEXT,
			created TEXT,
			approved TEXT,
			ordered TEXT,
			confirmed TEXT,
			received TEXT,
			service_order TEXT,
			details TEXT,
			estimate_total REAL,
			created_by TEXT,
			approved_by TEXT,
			ordered_by TEXT,
			imported_at TEXT
		)`, `
		CREATE TABLE IF NOT EXISTS wishlist (
			part_number TEXT PRIMARY KEY,
			toggled_at TEXT,
			FOREIGN KEY(part_number) REFERENCES parts(number) ON DELETE CASCADE
		)`, `
		CREATE TABLE IF NOT EXISTS rob (
			part_number TEXT PRIMARY KEY,
			rob REAL NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY(part_number) REFERENCES parts(number) ON DELETE CASCADE
		)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// m002AddRob predates the rob table joining 001 on fresh installs; kept so
// ledgers from databases migrated before the consolidation stay valid.
func m002AddRob(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS rob (
			part_number TEXT PRIMARY KEY,
			rob REAL NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY(part_number) REFERENCES parts(number) ON DELETE CASCADE
		)`)
	return err
}

func m003AddPartsEAN(ctx context.Context, tx *sql.Tx) error {
	// ALTER TABLE has no IF NOT EXISTS, so check table_info first.
	rows, err := tx.QueryContext(ctx, `PRAGMA table_info(parts)`)
	if err != nil {
		return err
	}
	defer rows.Close()

	hasEAN := false
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return err
		}
		if strings.EqualFold(name, "ean") {
			hasEAN = true
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if hasEAN {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `ALTER TABLE parts ADD COLUMN ean TEXT`); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_parts_ean ON parts(ean)`)
	return err
}

func m004AddLocationOverrides(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS location_overrides (
			part_number TEXT PRIMARY KEY,
			new_location TEXT NOT NULL,
			note TEXT,
			updated_at TEXT NOT NULL,
			FOREIGN KEY(part_number) REFERENCES parts(number) ON DELETE CASCADE
		)`)
	return err
}

func m005AddAPIUsage(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS api_usage (
			bucket_start TEXT NOT NULL,
			method TEXT NOT NULL,
			route TEXT NOT NULL,
			total INTEGER NOT NULL,
			count_2xx INTEGER NOT NULL,
			count_4xx INTEGER NOT NULL,
			count_5xx INTEGER NOT NULL,
			sum_duration_ms INTEGER NOT NULL,
			max_duration_ms INTEGER NOT NULL,
			PRIMARY KEY(bucket_start, method, route)
		)`)
	return err
}
