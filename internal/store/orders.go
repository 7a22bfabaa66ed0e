package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roboard/spares-kiosk/internal/models"
)

// OrderStore handles the orders table. Orders are import-only master data;
// nothing else in the kiosk touches them.
type OrderStore struct {
	db *sql.DB
}

func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db}
}

// ReplaceAll deletes every order and inserts the given rows inside one
// transaction. Returns the number of rows inserted.
func (s *OrderStore) ReplaceAll(ctx context.Context, orders []models.Order) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM orders`); err != nil {
		return 0, fmt.Errorf("failed to clear orders: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO orders (
			number, title, vendor, del_address, form_type, form_status,
			created, approved, ordered, confirmed, received,
			service_order, details, estimate_total,
			created_by, approved_by, ordered_by, imported_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now().Format("2006-01-02T15:04:05")
	count := 0
	for _, o := range orders {
		_, err := stmt.ExecContext(ctx,
			o.Number, nullIfEmpty(o.Title), nullIfEmpty(o.Vendor),
			nullIfEmpty(o.DelAddress), nullIfEmpty(o.FormType),
			nullIfEmpty(o.FormStatus), nullIfEmpty(o.Created),
			nullIfEmpty(o.Approved), nullIfEmpty(o.Ordered),
			nullIfEmpty(o.Confirmed), nullIfEmpty(o.Received),
			nullIfEmpty(o.ServiceOrder), nullIfEmpty(o.Details),
			o.EstimateTotal, nullIfEmpty(o.CreatedBy),
			nullIfEmpty(o.ApprovedBy), nullIfEmpty(o.OrderedBy), now,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert order %q: %w", o.Number, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// Count returns the number of orders.
func (s *OrderStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}
