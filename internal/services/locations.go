package services

import (
	"context"
	"strings"

	"github.com/roboard/spares-kiosk/internal/models"
	"github.com/roboard/spares-kiosk/internal/store"
	srvErrors "github.com/roboard/spares-kiosk/pkg/errors"
)

const (
	defaultLocationLimit = 200
	maxLocationLimit     = 500
)

// LocationService records manual location corrections. Overrides never touch
// the import-derived default location; the search engine merges them in at
// query time.
type LocationService struct {
	store *store.Store
}

func NewLocationService(st *store.Store) *LocationService {
	return &LocationService{store: st}
}

// Set upserts the override for a part. Part number and new location must be
// non-empty after trimming; the note is optional.
func (s *LocationService) Set(ctx context.Context, partNumber, newLocation, note string) (*models.LocationOverride, error) {
	partNumber = strings.TrimSpace(partNumber)
	newLocation = strings.TrimSpace(newLocation)
	note = strings.TrimSpace(note)

	if partNumber == "" {
		return nil, srvErrors.NewValidationError("part_number is required")
	}
	if newLocation == "" {
		return nil, srvErrors.NewValidationError("new_location is required")
	}

	exists, err := s.store.Parts().Exists(ctx, partNumber)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, srvErrors.NewPartNotFoundError(partNumber)
	}

	return s.store.Locations().Upsert(ctx, partNumber, newLocation, note)
}

// List returns overrides newest first, optionally filtered by a substring
// over part number, part name or the override location.
func (s *LocationService) List(ctx context.Context, query, limit string) ([]models.LocationRow, error) {
	clamped := clampLimit(limit, defaultLocationLimit, maxLocationLimit)
	return s.store.Locations().List(ctx, strings.TrimSpace(query), uint64(clamped))
}
