package services

import (
	"context"

	"github.com/roboard/spares-kiosk/internal/models"
	"github.com/roboard/spares-kiosk/internal/store"
	srvErrors "github.com/roboard/spares-kiosk/pkg/errors"
)

// RobService applies set/delta semantics to remaining-on-board quantities.
type RobService struct {
	store *store.Store
}

func NewRobService(st *store.Store) *RobService {
	return &RobService{store: st}
}

// Set writes a part's ROB. A non-negative value sets it absolutely; a
// negative value is a deduction from the current value (0 if none). The
// result never drops below 0. Overloading the sign lets the kiosk use one
// endpoint for both "count and set total" and "deduct N used".
func (s *RobService) Set(ctx context.Context, partNumber string, value float64) (*models.RobRecord, error) {
	exists, err := s.store.Parts().Exists(ctx, partNumber)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, srvErrors.NewPartNotFoundError(partNumber)
	}

	return s.store.Rob().Apply(ctx, partNumber, value)
}

// List returns all current ROB records with part metadata.
func (s *RobService) List(ctx context.Context) ([]models.RobListRow, error) {
	return s.store.Rob().List(ctx)
}
