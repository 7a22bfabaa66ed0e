package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store provides access to all storage repositories.
type Store struct {
	db        *sql.DB
	parts     *PartStore
	orders    *OrderStore
	wishlist  *WishlistStore
	rob       *RobStore
	locations *LocationStore
	metrics   *MetricsStore
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:        db,
		parts:     NewPartStore(db),
		orders:    NewOrderStore(db),
		wishlist:  NewWishlistStore(db),
		rob:       NewRobStore(db),
		locations: NewLocationStore(db),
		metrics:   NewMetricsStore(db),
	}
}

func (s *Store) Parts() *PartStore {
	return s.parts
}

func (s *Store) Orders() *OrderStore {
	return s.orders
}

func (s *Store) Wishlist() *WishlistStore {
	return s.wishlist
}

func (s *Store) Rob() *RobStore {
	return s.rob
}

func (s *Store) Locations() *LocationStore {
	return s.locations
}

func (s *Store) Metrics() *MetricsStore {
	return s.metrics
}

func (s *Store) Close() error {
	return s.db.Close()
}

// NewDB opens the sqlite database at path (":memory:" for tests) with
// foreign keys enforced. The pool is capped at one connection: the kiosk is
// single-operator, and a single connection keeps :memory: databases shared
// across the pool and sidesteps most SQLITE_BUSY handling.
func NewDB(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %q: %w", path, err)
	}
	return db, nil
}
