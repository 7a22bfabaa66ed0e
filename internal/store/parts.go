package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"unicode"

	sq "github.com/Masterminds/squirrel"

	"github.com/roboard/spares-kiosk/internal/models"
)

// PartStore handles the parts table and the tokenized search over it.
type PartStore struct {
	db *sql.DB
}

func NewPartStore(db *sql.DB) *PartStore {
	return &PartStore{db: db}
}

// Exists reports whether a part with the given number is present.
func (s *PartStore) Exists(ctx context.Context, number string) (bool, error) {
	var found int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM parts WHERE number = ?`, number).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Search returns parts merged with their wishlist membership, ROB value and
// location override. With no filtering options it returns unfiltered rows
// up to the applied limit.
func (s *PartStore) Search(ctx context.Context, opts ...SearchOption) ([]models.PartSearchRow, error) {
	builder := sq.Select(
		"p.number", "p.name", "p.qa_grading", "p.maker_code", "p.makers_reference",
		"p.unit", "p.pref_vendor_code", "p.order_status", "p.default_location",
		"p.stock_class", "p.stock_class_description", "p.reserved", "p.price_class",
		"p.asset", "p.hm", "p.attachments", "p.weight_unit", "p.weight",
		"p.alternative_available", "p.ean", "p.imported_at",
		"EXISTS(SELECT 1 FROM wishlist w WHERE w.part_number = p.number) AS wishlisted",
		"r.rob", "r.updated_at AS rob_updated_at",
		"l.new_location AS overridden_location",
		"l.updated_at AS location_updated_at",
	).From("parts p").
		LeftJoin("rob r ON r.part_number = p.number").
		LeftJoin("location_overrides l ON l.part_number = p.number")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.PartSearchRow
	for rows.Next() {
		row, err := scanSearchRow(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ReplaceAll deletes every part and inserts the given rows inside one
// transaction. Duplicate numbers within the batch are ignored; the returned
// count is the number of rows actually inserted. Wishlist, ROB and override
// rows for part numbers absent from the new batch disappear via FK cascades.
func (s *PartStore) ReplaceAll(ctx context.Context, parts []models.Part) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM parts`); err != nil {
		return 0, fmt.Errorf("failed to clear parts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO parts (
			number, name, qa_grading, maker_code, makers_reference, unit,
			pref_vendor_code, order_status, default_location,
			stock_class, stock_class_description, reserved,
			price_class, asset, hm, attachments,
			weight_unit, weight, alternative_available, ean, imported_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now().Format("2006-01-02T15:04:05")
	inserted := 0
	for _, p := range parts {
		res, err := stmt.ExecContext(ctx,
			p.Number, nullIfEmpty(p.Name), nullIfEmpty(p.QAGrading),
			nullIfEmpty(p.MakerCode), nullIfEmpty(p.MakersReference),
			nullIfEmpty(p.Unit), nullIfEmpty(p.PrefVendorCode),
			nullIfEmpty(p.OrderStatus), nullIfEmpty(p.DefaultLocation),
			nullIfEmpty(p.StockClass), nullIfEmpty(p.StockClassDescription),
			p.Reserved, nullIfEmpty(p.PriceClass), nullIfEmpty(p.Asset),
			nullIfEmpty(p.HM), nullIfEmpty(p.Attachments),
			nullIfEmpty(p.WeightUnit), p.Weight,
			nullIfEmpty(p.AlternativeAvailable), nullIfEmpty(p.EAN), now,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert part %q: %w", p.Number, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// SearchOption modifies the search query builder. Options compose: every
// ByToken adds one AND-ed predicate, so all tokens must match.
type SearchOption func(sq.SelectBuilder) sq.SelectBuilder

// ByToken filters by a single token within the given field scope. For the
// "all" scope a token of five or more digits is additionally matched against
// the part number with its "." separators stripped, so numbers typed without
// formatting still hit.
func ByToken(field models.SearchField, token string) SearchOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(tokenPredicate(field, token))
	}
}

// BySingleField is the reduced match used by the legacy search variant:
// the whole query is one substring, the digit heuristic is off and location
// overrides are not consulted.
func BySingleField(field models.SearchField, query string) SearchOption {
	pattern := like(query)
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		switch field {
		case models.SearchFieldName:
			return b.Where(sq.Like{"p.name": pattern})
		case models.SearchFieldMakersRef:
			return b.Where(sq.Like{"p.makers_reference": pattern})
		case models.SearchFieldLocation:
			return b.Where(sq.Like{"p.default_location": pattern})
		case models.SearchFieldEAN:
			return b.Where(sq.Like{"p.ean": pattern})
		default:
			return b.Where(sq.Or{
				sq.Like{"p.number": pattern},
				sq.Like{"p.name": pattern},
				sq.Like{"p.makers_reference": pattern},
				sq.Like{"p.default_location": pattern},
				sq.Like{"p.ean": pattern},
			})
		}
	}
}

// OrderByEffectiveLocation sorts by the overridden location when present,
// falling back to the default, with the part number as stable tie-break.
func OrderByEffectiveLocation() SearchOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("COALESCE(l.new_location, p.default_location)", "p.number")
	}
}

// OrderByDefaultLocation sorts by the import-derived location only.
func OrderByDefaultLocation() SearchOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("p.default_location", "p.number")
	}
}

func WithLimit(limit uint64) SearchOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func tokenPredicate(field models.SearchField, token string) sq.Sqlizer {
	pattern := like(token)
	switch field {
	case models.SearchFieldName:
		return sq.Like{"p.name": pattern}
	case models.SearchFieldMakersRef:
		return sq.Like{"p.makers_reference": pattern}
	case models.SearchFieldEAN:
		return sq.Like{"p.ean": pattern}
	case models.SearchFieldLocation:
		// either side of the merge counts
		return sq.Or{
			sq.Like{"p.default_location": pattern},
			sq.Like{"l.new_location": pattern},
		}
	default:
		or := sq.Or{
			sq.Like{"p.number": pattern},
			sq.Like{"p.name": pattern},
			sq.Like{"p.makers_reference": pattern},
			sq.Like{"p.default_location": pattern},
			sq.Like{"l.new_location": pattern},
			sq.Like{"p.ean": pattern},
		}
		if isUnformattedNumber(token) {
			or = append(or, sq.Expr("REPLACE(p.number, '.', '') LIKE ?", pattern))
		}
		return or
	}
}

func like(s string) string {
	return "%" + s + "%"
}

// isUnformattedNumber reports whether a token looks like a part number typed
// without separators: digits only, at least five of them.
func isUnformattedNumber(token string) bool {
	if len(token) < 5 {
		return false
	}
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func scanSearchRow(rows *sql.Rows) (models.PartSearchRow, error) {
	var (
		row        models.PartSearchRow
		name       sql.NullString
		qaGrading  sql.NullString
		makerCode  sql.NullString
		makersRef  sql.NullString
		unit       sql.NullString
		vendorCode sql.NullString
		orderStat  sql.NullString
		defaultLoc sql.NullString
		stockClass sql.NullString
		stockDesc  sql.NullString
		reserved   sql.NullInt64
		priceClass sql.NullString
		asset      sql.NullString
		hm         sql.NullString
		attach     sql.NullString
		weightUnit sql.NullString
		weight     sql.NullFloat64
		altAvail   sql.NullString
		ean        sql.NullString
		importedAt sql.NullString
		wishlisted int
		rob        sql.NullFloat64
		robUpdated sql.NullString
		overLoc    sql.NullString
		locUpdated sql.NullString
	)

	err := rows.Scan(
		&row.Number, &name, &qaGrading, &makerCode, &makersRef,
		&unit, &vendorCode, &orderStat, &defaultLoc,
		&stockClass, &stockDesc, &reserved, &priceClass,
		&asset, &hm, &attach, &weightUnit, &weight,
		&altAvail, &ean, &importedAt,
		&wishlisted, &rob, &robUpdated, &overLoc, &locUpdated,
	)
	if err != nil {
		return row, err
	}

	row.Name = name.String
	row.QAGrading = qaGrading.String
	row.MakerCode = makerCode.String
	row.MakersReference = makersRef.String
	row.Unit = unit.String
	row.PrefVendorCode = vendorCode.String
	row.OrderStatus = orderStat.String
	row.DefaultLocation = defaultLoc.String
	row.StockClass = stockClass.String
	row.StockClassDescription = stockDesc.String
	row.Reserved = reserved.Int64
	row.PriceClass = priceClass.String
	row.Asset = asset.String
	row.HM = hm.String
	row.Attachments = attach.String
	row.WeightUnit = weightUnit.String
	if weight.Valid {
		row.Weight = &weight.Float64
	}
	row.AlternativeAvailable = altAvail.String
	row.EAN = ean.String
	row.ImportedAt = importedAt.String
	row.Wishlisted = wishlisted == 1
	if rob.Valid {
		row.Rob = &rob.Float64
	}
	if robUpdated.Valid {
		row.RobUpdatedAt = &robUpdated.String
	}
	if overLoc.Valid {
		row.OverriddenLocation = &overLoc.String
	}
	if locUpdated.Valid {
		row.LocationUpdatedAt = &locUpdated.String
	}
	return row, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
