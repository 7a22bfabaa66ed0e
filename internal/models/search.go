package models

// SearchField scopes which part columns a search token is matched against.
type SearchField string

const (
	SearchFieldAll       SearchField = "all"
	SearchFieldName      SearchField = "name"
	SearchFieldMakersRef SearchField = "makers_ref"
	SearchFieldLocation  SearchField = "location"
	SearchFieldEAN       SearchField = "ean"
)

// ParseSearchField normalizes a field selector. Anything outside the known
// set falls back to "all", mirroring the lenient query-param handling of
// the rest of the search surface.
func ParseSearchField(s string) SearchField {
	switch SearchField(s) {
	case SearchFieldName, SearchFieldMakersRef, SearchFieldLocation, SearchFieldEAN:
		return SearchField(s)
	default:
		return SearchFieldAll
	}
}
