// Package export writes operator-entered data to timestamped xlsx files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/roboard/spares-kiosk/internal/models"
)

// WriteWishlist writes the wishlist rows to wishlist_YYYYMMDD_HHMM.xlsx in
// dir, creating the directory if needed. Returns the file path.
func WriteWishlist(dir string, rows []models.WishlistRow) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("wishlist_%s.xlsx", time.Now().Format("20060102_1504")))

	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{
			r.Number, r.Name, r.MakersReference, r.DefaultLocation, r.PrefVendorCode,
		})
	}

	headers := []any{"Number", "Name", "Maker's Reference", "Default Location", "Vendor"}
	return path, writeSheet(path, "Wishlist", headers, records, 0)
}

// WriteRob writes the ROB rows to rob_YYYYMMDD_HHMM.xlsx in dir.
func WriteRob(dir string, rows []models.RobListRow) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("rob_%s.xlsx", time.Now().Format("20060102_1504")))

	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{
			r.Number, r.Name, r.MakersReference, r.DefaultLocation, r.Rob, r.UpdatedAt,
		})
	}

	headers := []any{"Number", "Name", "Maker's Reference", "Default Location", "ROB", "Updated At"}
	return path, writeSheet(path, "ROB", headers, records, 0)
}

// WriteLocations writes the location override rows to
// roboard_locations_YYYYMMDD-HHMMSS.xlsx in dir, with sized columns.
func WriteLocations(dir string, rows []models.LocationRow) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("roboard_locations_%s.xlsx", time.Now().Format("20060102-150405")))

	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{
			r.PartNumber, r.Name, r.OldLocation, r.NewLocation, r.Note, r.UpdatedAt,
		})
	}

	headers := []any{"part_number", "name", "old_location", "new_location", "note", "updated_at"}
	return path, writeSheet(path, "Locations", headers, records, 24)
}

func writeSheet(path, sheet string, headers []any, records [][]any, colWidth float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return err
		}
	}

	if colWidth > 0 {
		last, err := excelize.ColumnNumberToName(len(headers))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", last, colWidth); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
