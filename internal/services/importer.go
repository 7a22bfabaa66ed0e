package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/roboard/spares-kiosk/internal/models"
	"github.com/roboard/spares-kiosk/internal/store"
	srvErrors "github.com/roboard/spares-kiosk/pkg/errors"
)

// ImportService loads parts and orders master data from uploaded
// spreadsheets. Imports are full-replace: everything currently in the table
// is deleted before the new rows go in, inside one transaction.
type ImportService struct {
	store    *store.Store
	exporter *ExportService
}

func NewImportService(st *store.Store, exporter *ExportService) *ImportService {
	return &ImportService{store: st, exporter: exporter}
}

// ImportParts replaces all parts with the first worksheet of the given
// file. Deleting parts cascades away wishlist/ROB/override rows for part
// numbers that disappear, so the current wishlist is exported to removable
// media first; if that safety export fails, nothing is deleted.
func (s *ImportService) ImportParts(ctx context.Context, path string) (*models.PartsImportResult, error) {
	wishlistFile, usbDetected, err := s.exporter.SnapshotWishlist(ctx)
	if err != nil {
		return nil, err
	}

	sheet, rows, err := firstSheet(path)
	if err != nil {
		return nil, err
	}
	idx, err := headerIndex(rows)
	if err != nil {
		return nil, err
	}

	var parts []models.Part
	for _, row := range rows[1:] {
		number := cleanCell(cell(row, idx, "Number"))
		if number == "" {
			continue
		}
		get := func(col string) string {
			return cleanCell(cell(row, idx, col))
		}
		parts = append(parts, models.Part{
			Number:                number,
			Name:                  get("Name"),
			QAGrading:             get("QA Grading"),
			MakerCode:             get("Maker Code"),
			MakersReference:       get("Maker's Reference"),
			Unit:                  get("Unit"),
			PrefVendorCode:        get("Pref. Vendor Code"),
			OrderStatus:           get("Order status"),
			DefaultLocation:       get("Default Location"),
			StockClass:            get("Stock Class"),
			StockClassDescription: get("Stock Class Description"),
			Reserved:              toInt(get("Reserved")),
			PriceClass:            get("Price Class"),
			Asset:                 get("Asset"),
			HM:                    get("HM"),
			Attachments:           get("Attachments"),
			WeightUnit:            get("Weight Unit"),
			Weight:                toFloat(get("Weight")),
			AlternativeAvailable:  get("Alternative Available"),
			EAN:                   get("EAN"),
		})
	}

	inserted, err := s.store.Parts().ReplaceAll(ctx, parts)
	if err != nil {
		return nil, err
	}

	return &models.PartsImportResult{
		Kind:                  "parts",
		PartsImported:         inserted,
		RowsAttempted:         len(parts),
		RowsIgnoredDuplicates: len(parts) - inserted,
		SheetUsed:             sheet,
		USBDetected:           usbDetected,
		ExportedWishlistFile:  wishlistFile,
	}, nil
}

// ImportOrders replaces all orders with the first worksheet of the file.
func (s *ImportService) ImportOrders(ctx context.Context, path string) (*models.OrdersImportResult, error) {
	sheet, rows, err := firstSheet(path)
	if err != nil {
		return nil, err
	}
	idx, err := headerIndex(rows)
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	for _, row := range rows[1:] {
		number := cleanCell(cell(row, idx, "Number"))
		if number == "" {
			continue
		}
		get := func(col string) string {
			return cleanCell(cell(row, idx, col))
		}
		orders = append(orders, models.Order{
			Number:        number,
			Title:         get("Title"),
			Vendor:        get("Vendor"),
			DelAddress:    get("Del. Address"),
			FormType:      get("Form Type"),
			FormStatus:    get("Form Status"),
			Created:       get("Created"),
			Approved:      get("Approved"),
			Ordered:       get("Ordered"),
			Confirmed:     get("Confirmed"),
			Received:      get("Received"),
			ServiceOrder:  get("Service Order"),
			Details:       get("Details"),
			EstimateTotal: toFloat(get("Estimate Total")),
			CreatedBy:     get("Created by"),
			ApprovedBy:    get("Approved by"),
			OrderedBy:     get("Ordered by"),
		})
	}

	count, err := s.store.Orders().ReplaceAll(ctx, orders)
	if err != nil {
		return nil, err
	}

	return &models.OrdersImportResult{
		Kind:           "orders",
		OrdersImported: count,
		SheetUsed:      sheet,
	}, nil
}

// firstSheet always reads the first worksheet, whatever its name.
func firstSheet(path string) (string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", nil, srvErrors.NewValidationError("failed to open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, srvErrors.NewValidationError("workbook has no worksheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", nil, err
	}
	return sheet, rows, nil
}

// headerIndex maps trimmed header names from the first row to their column
// index. The Number column is required.
func headerIndex(rows [][]string) (map[string]int, error) {
	if len(rows) == 0 {
		return nil, srvErrors.NewValidationError("column 'Number' is required in the first sheet")
	}
	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		if name := strings.TrimSpace(h); name != "" {
			idx[name] = i
		}
	}
	if _, ok := idx["Number"]; !ok {
		return nil, srvErrors.NewValidationError("column 'Number' is required in the first sheet")
	}
	return idx, nil
}

func cell(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// cleanCell trims whitespace and drops the leading apostrophe Excel uses to
// force text cells.
func cleanCell(v string) string {
	s := strings.TrimSpace(v)
	return strings.TrimPrefix(s, "'")
}

// toFloat parses a numeric cell, tolerating EU comma decimals ("1,25").
// Unparseable garbage (unit labels and the like) becomes nil.
func toFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		f, err = strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return nil
		}
	}
	return &f
}

// toInt parses an integer cell, accepting float-formatted values ("1.0").
// Anything unparseable becomes 0.
func toInt(s string) int64 {
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f := toFloat(s); f != nil {
		return int64(*f)
	}
	return 0
}
