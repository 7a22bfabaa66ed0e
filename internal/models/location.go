package models

// LocationOverride is a manual location correction layered over a part's
// import-derived default location. Upsert-only; one row per part.
type LocationOverride struct {
	PartNumber  string `json:"part_number"`
	NewLocation string `json:"new_location"`
	Note        string `json:"note"`
	UpdatedAt   string `json:"updated_at"`
}

// LocationRow is an override joined with part metadata for listing/export.
// OldLocation is the import-derived default the override corrects.
type LocationRow struct {
	PartNumber  string `json:"part_number"`
	Name        string `json:"name"`
	OldLocation string `json:"old_location"`
	NewLocation string `json:"new_location"`
	Note        string `json:"note"`
	UpdatedAt   string `json:"updated_at"`
}
