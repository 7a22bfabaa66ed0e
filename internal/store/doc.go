// Package store implements the data access layer for the spares kiosk.
//
// Storage is a single sqlite file (modernc.org/sqlite over database/sql)
// with foreign keys enforced, so operator-entered rows cascade away when a
// parts import drops the part they reference.
//
// # Architecture Overview
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│                          Store (facade)                          │
//	├───────────┬──────────┬───────────┬─────────┬───────────┬─────────┤
//	│ PartStore │OrderStore│ Wishlist  │ RobStore│ Location  │ Metrics │
//	│           │          │ Store     │         │ Store     │ Store   │
//	│     ▼     │     ▼    │     ▼     │    ▼    │     ▼     │    ▼    │
//	│   parts   │  orders  │ wishlist  │   rob   │ location_ │ api_    │
//	│           │          │           │         │ overrides │ usage   │
//	└───────────┴──────────┴───────────┴─────────┴───────────┴─────────┘
//
// # Tables
//
//	┌────────────────────┬────────────────────────────────────────────────┐
//	│ Table              │ Purpose                                        │
//	├────────────────────┼────────────────────────────────────────────────┤
//	│ parts              │ Part master data, replaced wholesale on import │
//	│ orders             │ Order master data, replaced wholesale          │
//	│ wishlist           │ Reorder flags; row presence = membership       │
//	│ rob                │ Remaining-on-board quantity, one row per part  │
//	│ location_overrides │ Manual location corrections, upsert-only       │
//	│ api_usage          │ Hourly request counters (observability only)   │
//	│ schema_migrations  │ Forward-only migration ledger                  │
//	└────────────────────┴────────────────────────────────────────────────┘
//
// # Search Options
//
// PartStore.Search uses the functional options pattern. Each SearchOption
// modifies the squirrel SelectBuilder; predicates AND together, so every
// token the caller adds must match:
//
//	rows, err := store.Parts().Search(ctx,
//	    store.ByToken(models.SearchFieldAll, "bolt"),
//	    store.ByToken(models.SearchFieldAll, "steel"),
//	    store.OrderByEffectiveLocation(),
//	    store.WithLimit(50),
//	)
//
// Matching Options:
//
//   - ByToken(field, token)
//     One AND-ed substring predicate, scoped by field. For the location
//     scope either the default or the overridden location may match; for
//     the all scope a digits-only token of length ≥ 5 additionally matches
//     the part number with "." separators stripped.
//
//   - BySingleField(field, query)
//     The reduced legacy match: one substring, default location only, no
//     separator-stripping heuristic.
//
// Ordering / Limiting Options:
//
//   - OrderByEffectiveLocation(): COALESCE(override, default), number
//   - OrderByDefaultLocation(): default location, number
//   - WithLimit(n)
//
// # Design Patterns
//
// Single-Statement Upserts:
//   - rob and location_overrides guarantee one row per part via
//     INSERT ... ON CONFLICT (part_number) DO UPDATE. The ROB upsert also
//     folds the set-vs-delta decision and the non-negative clamp into the
//     statement, so there is no read-then-write race window.
//
// Replace-All Imports:
//   - PartStore.ReplaceAll and OrderStore.ReplaceAll delete and reinsert
//     inside one transaction; partial imports never become visible.
//
// Bound Values Only:
//   - All dynamic predicates are composed with squirrel and bound as
//     arguments; no query text is built from user input.
package store
