package store

import (
	"context"
	"database/sql"

	"github.com/roboard/spares-kiosk/internal/models"
)

// RobStore handles remaining-on-board records.
type RobStore struct {
	db *sql.DB
}

func NewRobStore(db *sql.DB) *RobStore {
	return &RobStore{db: db}
}

// Apply writes the given signed value per the set/delta contract and returns
// the resulting record. The write is one upsert statement; the floor clamp
// and the set-vs-delta choice happen inside it.
func (s *RobStore) Apply(ctx context.Context, partNumber string, value float64) (*models.RobRecord, error) {
	_, err := s.db.ExecContext(ctx, queryUpsertRob,
		partNumber, value, value, value, value)
	if err != nil {
		return nil, err
	}

	var rec models.RobRecord
	err = s.db.QueryRowContext(ctx, queryGetRob, partNumber).
		Scan(&rec.PartNumber, &rec.Rob, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get returns the record for a part, or sql.ErrNoRows if none exists.
func (s *RobStore) Get(ctx context.Context, partNumber string) (*models.RobRecord, error) {
	var rec models.RobRecord
	err := s.db.QueryRowContext(ctx, queryGetRob, partNumber).
		Scan(&rec.PartNumber, &rec.Rob, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns all ROB records joined with part metadata, ordered the way
// the kiosk displays them.
func (s *RobStore) List(ctx context.Context) ([]models.RobListRow, error) {
	rows, err := s.db.QueryContext(ctx, queryListRob)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.RobListRow
	for rows.Next() {
		var (
			r          models.RobListRow
			name       sql.NullString
			makersRef  sql.NullString
			defaultLoc sql.NullString
		)
		if err := rows.Scan(&r.Number, &name, &makersRef, &defaultLoc, &r.Rob, &r.UpdatedAt); err != nil {
			return nil, err
		}
		r.Name = name.String
		r.MakersReference = makersRef.String
		r.DefaultLocation = defaultLoc.String
		results = append(results, r)
	}
	return results, rows.Err()
}

// Count returns the number of ROB records.
func (s *RobStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rob`).Scan(&count)
	return count, err
}

// Clear deletes every ROB record.
func (s *RobStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM rob`)
	return err
}
