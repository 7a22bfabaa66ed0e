package models

// RobRecord is the remaining-on-board quantity for a part. At most one
// record exists per part; the value is never negative.
type RobRecord struct {
	PartNumber string  `json:"part_number"`
	Rob        float64 `json:"rob"`
	UpdatedAt  string  `json:"updated_at"`
}

// RobListRow is a ROB record joined with part metadata for listing/export.
type RobListRow struct {
	Number          string  `json:"number"`
	Name            string  `json:"name"`
	MakersReference string  `json:"makers_reference"`
	DefaultLocation string  `json:"default_location"`
	Rob             float64 `json:"rob"`
	UpdatedAt       string  `json:"updated_at"`
}
