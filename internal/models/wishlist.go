package models

// WishlistStatus reports the membership state of a part after a toggle.
type WishlistStatus struct {
	PartNumber string `json:"part_number"`
	Wishlisted bool   `json:"wishlisted"`
}

// WishlistRow is a wishlisted part joined with the metadata shown on the
// kiosk and written to the export file.
type WishlistRow struct {
	Number          string `json:"number"`
	Name            string `json:"name"`
	MakersReference string `json:"makers_reference"`
	DefaultLocation string `json:"default_location"`
	PrefVendorCode  string `json:"pref_vendor_code"`
}
