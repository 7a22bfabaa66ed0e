package models

// Order is a purchase order row from the orders spreadsheet. Orders are
// independent of parts and are replaced wholesale on every import.
type Order struct {
	Number        string   `json:"number"`
	Title         string   `json:"title"`
	Vendor        string   `json:"vendor"`
	DelAddress    string   `json:"del_address"`
	FormType      string   `json:"form_type"`
	FormStatus    string   `json:"form_status"`
	Created       string   `json:"created"`
	Approved      string   `json:"approved"`
	Ordered       string   `json:"ordered"`
	Confirmed     string   `json:"confirmed"`
	Received      string   `json:"received"`
	ServiceOrder  string   `json:"service_order"`
	Details       string   `json:"details"`
	EstimateTotal *float64 `json:"estimate_total"`
	CreatedBy     string   `json:"created_by"`
	ApprovedBy    string   `json:"approved_by"`
	OrderedBy     string   `json:"ordered_by"`
	ImportedAt    string   `json:"imported_at"`
}
