package models

// ExportResult describes an export-and-clear run.
type ExportResult struct {
	ExportedFile string `json:"exported_file"`
	ExportDir    string `json:"export_dir"`
	USBDetected  bool   `json:"usb_detected"`
	RowsExported int    `json:"rows_exported"`
	Cleared      bool   `json:"-"`
}

// PartsImportResult describes a full-replace parts import.
type PartsImportResult struct {
	Kind                  string `json:"kind"`
	PartsImported         int    `json:"parts_imported"`
	RowsAttempted         int    `json:"rows_attempted"`
	RowsIgnoredDuplicates int    `json:"rows_ignored_duplicates"`
	SheetUsed             string `json:"sheet_used"`
	USBDetected           bool   `json:"usb_detected"`
	ExportedWishlistFile  string `json:"exported_wishlist_file"`
}

// OrdersImportResult describes a full-replace orders import.
type OrdersImportResult struct {
	Kind           string `json:"kind"`
	OrdersImported int    `json:"orders_imported"`
	SheetUsed      string `json:"sheet_used"`
}
