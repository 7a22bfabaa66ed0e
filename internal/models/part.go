package models

// Part is a spare part as imported from the parts spreadsheet. Rows are
// replaced wholesale on every import; DefaultLocation never changes between
// imports (manual corrections live in LocationOverride instead).
type Part struct {
	Number                string   `json:"number"`
	Name                  string   `json:"name"`
	QAGrading             string   `json:"qa_grading"`
	MakerCode             string   `json:"maker_code"`
	MakersReference       string   `json:"makers_reference"`
	Unit                  string   `json:"unit"`
	PrefVendorCode        string   `json:"pref_vendor_code"`
	OrderStatus           string   `json:"order_status"`
	DefaultLocation       string   `json:"default_location"`
	StockClass            string   `json:"stock_class"`
	StockClassDescription string   `json:"stock_class_description"`
	Reserved              int64    `json:"reserved"`
	PriceClass            string   `json:"price_class"`
	Asset                 string   `json:"asset"`
	HM                    string   `json:"hm"`
	Attachments           string   `json:"attachments"`
	WeightUnit            string   `json:"weight_unit"`
	Weight                *float64 `json:"weight"`
	AlternativeAvailable  string   `json:"alternative_available"`
	EAN                   string   `json:"ean"`
	ImportedAt            string   `json:"imported_at"`
}

// PartSearchRow is a search result: the part plus the operator-entered
// overlays merged in at query time.
type PartSearchRow struct {
	Part

	Wishlisted         bool     `json:"wishlisted"`
	Rob                *float64 `json:"rob"`
	RobUpdatedAt       *string  `json:"rob_updated_at"`
	OverriddenLocation *string  `json:"overridden_location"`
	LocationUpdatedAt  *string  `json:"location_updated_at"`
}

// EffectiveLocation is the overridden location if present, else the default.
func (r *PartSearchRow) EffectiveLocation() string {
	if r.OverriddenLocation != nil && *r.OverriddenLocation != "" {
		return *r.OverriddenLocation
	}
	return r.DefaultLocation
}
