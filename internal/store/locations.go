package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/roboard/spares-kiosk/internal/models"
)

// LocationStore handles manual location overrides. Overrides are upsert-only
// and are never deleted by exports; they disappear only when a parts import
// drops the part they reference.
type LocationStore struct {
	db *sql.DB
}

func NewLocationStore(db *sql.DB) *LocationStore {
	return &LocationStore{db: db}
}

// Upsert inserts or replaces the override for a part and returns the stored
// row. An empty note is stored as NULL.
func (s *LocationStore) Upsert(ctx context.Context, partNumber, newLocation, note string) (*models.LocationOverride, error) {
	_, err := s.db.ExecContext(ctx, queryUpsertLocation,
		partNumber, newLocation, nullIfEmpty(note))
	if err != nil {
		return nil, err
	}

	var (
		override models.LocationOverride
		noteCol  sql.NullString
	)
	err = s.db.QueryRowContext(ctx, queryGetLocation, partNumber).
		Scan(&override.PartNumber, &override.NewLocation, &noteCol, &override.UpdatedAt)
	if err != nil {
		return nil, err
	}
	override.Note = noteCol.String
	return &override, nil
}

// List returns overrides joined with part metadata, newest first. A
// non-empty query filters by substring over part number, part name and the
// override location. Limit 0 means no limit.
func (s *LocationStore) List(ctx context.Context, query string, limit uint64) ([]models.LocationRow, error) {
	builder := sq.Select(
		"l.part_number", "p.name", "p.default_location",
		"l.new_location", "l.note", "l.updated_at",
	).From("location_overrides l").
		Join("parts p ON p.number = l.part_number").
		OrderBy("l.updated_at DESC", "l.part_number")

	if query != "" {
		pattern := like(query)
		builder = builder.Where(sq.Or{
			sq.Like{"l.part_number": pattern},
			sq.Like{"p.name": pattern},
			sq.Like{"l.new_location": pattern},
		})
	}
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.LocationRow
	for rows.Next() {
		var (
			r       models.LocationRow
			name    sql.NullString
			oldLoc  sql.NullString
			noteCol sql.NullString
		)
		if err := rows.Scan(&r.PartNumber, &name, &oldLoc, &r.NewLocation, &noteCol, &r.UpdatedAt); err != nil {
			return nil, err
		}
		r.Name = name.String
		r.OldLocation = oldLoc.String
		r.Note = noteCol.String
		results = append(results, r)
	}
	return results, rows.Err()
}

// Count returns the number of overrides.
func (s *LocationStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM location_overrides`).Scan(&count)
	return count, err
}

// Clear deletes every override. Only invoked when clearing after export is
// explicitly enabled for locations; the default keeps overrides across
// exports.
func (s *LocationStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM location_overrides`)
	return err
}
