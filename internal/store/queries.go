package store

// Rob queries
const (
	// queryUpsertRob applies set-vs-delta semantics in a single statement so
	// concurrent callers never observe a half-applied read-modify-write.
	// A non-negative value is stored absolutely; a negative value is added
	// to the current ROB (0 if absent). Both paths floor at 0.
	// Bind order: part_number, value, value, value, value.
	queryUpsertRob = `
		INSERT INTO rob (part_number, rob, updated_at)
		VALUES (?, MAX(0, ?), datetime('now'))
		ON CONFLICT (part_number) DO UPDATE SET
			rob = CASE WHEN ? >= 0 THEN MAX(0, ?) ELSE MAX(0, rob + ?) END,
			updated_at = datetime('now')`

	queryGetRob = `
		SELECT part_number, rob, updated_at
		FROM rob WHERE part_number = ?`

	queryListRob = `
		SELECT p.number, p.name, p.makers_reference, p.default_location,
			r.rob, r.updated_at
		FROM rob r
		JOIN parts p ON p.number = r.part_number
		ORDER BY p.default_location, p.number`
)

// Wishlist queries
const (
	queryDeleteWishlistEntry = `DELETE FROM wishlist WHERE part_number = ?`

	queryInsertWishlistEntry = `
		INSERT INTO wishlist (part_number, toggled_at)
		VALUES (?, datetime('now'))`

	queryListWishlist = `
		SELECT p.number, p.name, p.makers_reference, p.default_location,
			p.pref_vendor_code
		FROM wishlist w
		JOIN parts p ON p.number = w.part_number
		ORDER BY p.default_location, p.number`
)

// Location override queries
const (
	queryUpsertLocation = `
		INSERT INTO location_overrides (part_number, new_location, note, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT (part_number) DO UPDATE SET
			new_location = excluded.new_location,
			note = excluded.note,
			updated_at = datetime('now')`

	queryGetLocation = `
		SELECT part_number, new_location, note, updated_at
		FROM location_overrides WHERE part_number = ?`
)

// Metrics queries
const (
	// queryUpsertUsage merges a flushed in-memory bucket into its persisted
	// counterpart additively, so multiple flushes within one hour accumulate.
	queryUpsertUsage = `
		INSERT INTO api_usage (
			bucket_start, method, route,
			total, count_2xx, count_4xx, count_5xx,
			sum_duration_ms, max_duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (bucket_start, method, route) DO UPDATE SET
			total = total + excluded.total,
			count_2xx = count_2xx + excluded.count_2xx,
			count_4xx = count_4xx + excluded.count_4xx,
			count_5xx = count_5xx + excluded.count_5xx,
			sum_duration_ms = sum_duration_ms + excluded.sum_duration_ms,
			max_duration_ms = MAX(max_duration_ms, excluded.max_duration_ms)`
)
