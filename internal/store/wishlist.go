package store

import (
	"context"
	"database/sql"

	"github.com/roboard/spares-kiosk/internal/models"
)

// WishlistStore handles reorder-list membership. Presence of a row is the
// membership; there is no wishlisted=false state.
type WishlistStore struct {
	db *sql.DB
}

func NewWishlistStore(db *sql.DB) *WishlistStore {
	return &WishlistStore{db: db}
}

// Toggle flips membership for a part inside one transaction and returns the
// resulting state: true if the part is now wishlisted.
func (s *WishlistStore) Toggle(ctx context.Context, partNumber string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, queryDeleteWishlistEntry, partNumber)
	if err != nil {
		return false, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	wishlisted := false
	if deleted == 0 {
		if _, err := tx.ExecContext(ctx, queryInsertWishlistEntry, partNumber); err != nil {
			return false, err
		}
		wishlisted = true
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return wishlisted, nil
}

// List returns all wishlisted parts with display metadata, ordered by
// default location then number.
func (s *WishlistStore) List(ctx context.Context) ([]models.WishlistRow, error) {
	rows, err := s.db.QueryContext(ctx, queryListWishlist)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.WishlistRow
	for rows.Next() {
		var (
			r          models.WishlistRow
			name       sql.NullString
			makersRef  sql.NullString
			defaultLoc sql.NullString
			vendor     sql.NullString
		)
		if err := rows.Scan(&r.Number, &name, &makersRef, &defaultLoc, &vendor); err != nil {
			return nil, err
		}
		r.Name = name.String
		r.MakersReference = makersRef.String
		r.DefaultLocation = defaultLoc.String
		r.PrefVendorCode = vendor.String
		results = append(results, r)
	}
	return results, rows.Err()
}

// Count returns the number of wishlist entries.
func (s *WishlistStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM wishlist`).Scan(&count)
	return count, err
}

// Clear deletes every wishlist entry.
func (s *WishlistStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM wishlist`)
	return err
}
