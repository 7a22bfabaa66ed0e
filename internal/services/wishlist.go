package services

import (
	"context"

	"github.com/roboard/spares-kiosk/internal/models"
	"github.com/roboard/spares-kiosk/internal/store"
	srvErrors "github.com/roboard/spares-kiosk/pkg/errors"
)

// WishlistService flips reorder-list membership.
type WishlistService struct {
	store *store.Store
}

func NewWishlistService(st *store.Store) *WishlistService {
	return &WishlistService{store: st}
}

// Toggle flips wishlist membership for a part and reports the new state.
func (s *WishlistService) Toggle(ctx context.Context, partNumber string) (*models.WishlistStatus, error) {
	exists, err := s.store.Parts().Exists(ctx, partNumber)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, srvErrors.NewPartNotFoundError(partNumber)
	}

	wishlisted, err := s.store.Wishlist().Toggle(ctx, partNumber)
	if err != nil {
		return nil, err
	}
	return &models.WishlistStatus{PartNumber: partNumber, Wishlisted: wishlisted}, nil
}

// List returns all wishlisted parts with display metadata.
func (s *WishlistService) List(ctx context.Context) ([]models.WishlistRow, error) {
	return s.store.Wishlist().List(ctx)
}
