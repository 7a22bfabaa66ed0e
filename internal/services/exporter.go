package services

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/roboard/spares-kiosk/internal/config"
	"github.com/roboard/spares-kiosk/internal/export"
	"github.com/roboard/spares-kiosk/internal/models"
	"github.com/roboard/spares-kiosk/internal/store"
	"github.com/roboard/spares-kiosk/pkg/usb"
)

// ExportService writes the working tables to xlsx files (on removable media
// when available) and clears them afterwards where configured.
//
// The export-then-clear sequence is not atomic: a write landing between the
// count and the clear can be dropped or double-exported. Acceptable for a
// single-operator kiosk; not a guarantee to build on.
type ExportService struct {
	store *store.Store
	cfg   *config.Configuration
}

func NewExportService(st *store.Store, cfg *config.Configuration) *ExportService {
	return &ExportService{store: st, cfg: cfg}
}

// ExportWishlist writes the current wishlist to a timestamped file and, when
// clearing is enabled for wishlist (the default), deletes all entries.
func (s *ExportService) ExportWishlist(ctx context.Context) (*models.ExportResult, error) {
	dir, usbDetected := s.exportDir()

	count, err := s.store.Wishlist().Count(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Wishlist().List(ctx)
	if err != nil {
		return nil, err
	}
	file, err := export.WriteWishlist(dir, rows)
	if err != nil {
		return nil, err
	}

	cleared := false
	if s.cfg.Export.ClearWishlist {
		if err := s.store.Wishlist().Clear(ctx); err != nil {
			return nil, err
		}
		cleared = true
	}

	return &models.ExportResult{
		ExportedFile: file,
		ExportDir:    dir,
		USBDetected:  usbDetected,
		RowsExported: count,
		Cleared:      cleared,
	}, nil
}

// ExportRob writes the current ROB records to a timestamped file and, when
// clearing is enabled for ROB (the default), deletes them all.
func (s *ExportService) ExportRob(ctx context.Context) (*models.ExportResult, error) {
	dir, usbDetected := s.exportDir()

	count, err := s.store.Rob().Count(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Rob().List(ctx)
	if err != nil {
		return nil, err
	}
	file, err := export.WriteRob(dir, rows)
	if err != nil {
		return nil, err
	}

	cleared := false
	if s.cfg.Export.ClearRob {
		if err := s.store.Rob().Clear(ctx); err != nil {
			return nil, err
		}
		cleared = true
	}

	return &models.ExportResult{
		ExportedFile: file,
		ExportDir:    dir,
		USBDetected:  usbDetected,
		RowsExported: count,
		Cleared:      cleared,
	}, nil
}

// ExportLocations writes the current overrides to a timestamped file.
// Overrides persist across exports unless clearing is explicitly enabled.
func (s *ExportService) ExportLocations(ctx context.Context) (*models.ExportResult, error) {
	dir, usbDetected := s.exportDir()

	count, err := s.store.Locations().Count(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Locations().List(ctx, "", 0)
	if err != nil {
		return nil, err
	}
	file, err := export.WriteLocations(dir, rows)
	if err != nil {
		return nil, err
	}

	cleared := false
	if s.cfg.Export.ClearLocations {
		if err := s.store.Locations().Clear(ctx); err != nil {
			return nil, err
		}
		cleared = true
	}

	return &models.ExportResult{
		ExportedFile: file,
		ExportDir:    dir,
		USBDetected:  usbDetected,
		RowsExported: count,
		Cleared:      cleared,
	}, nil
}

// SnapshotWishlist writes the current wishlist to an xlsx file without
// clearing anything. Used as a safety net before destructive imports.
func (s *ExportService) SnapshotWishlist(ctx context.Context) (string, bool, error) {
	dir, usbDetected := s.exportDir()

	rows, err := s.store.Wishlist().List(ctx)
	if err != nil {
		return "", false, err
	}
	file, err := export.WriteWishlist(dir, rows)
	if err != nil {
		return "", false, err
	}
	return file, usbDetected, nil
}

// exportDir picks the destination: dev mode always exports locally; prod
// prefers a writable removable mount and falls back to the local root.
func (s *ExportService) exportDir() (string, bool) {
	if s.cfg.IsDev() {
		return filepath.Join(s.cfg.Export.DevLocalRoot, s.cfg.Export.Subdir), false
	}
	if mount, ok := usb.FindMount(s.cfg.Export.USBRoots); ok {
		return filepath.Join(mount, s.cfg.Export.Subdir), true
	}
	zap.S().Named("export").Infow("no removable media found, exporting locally",
		"dir", s.cfg.Export.ProdLocalRoot)
	return filepath.Join(s.cfg.Export.ProdLocalRoot, s.cfg.Export.Subdir), false
}
