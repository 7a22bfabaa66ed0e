package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/roboard/spares-kiosk/internal/models"
	"github.com/roboard/spares-kiosk/internal/store"
)

const (
	defaultSearchLimit = 50
	maxSearchLimit     = 200
)

// PartService implements the part search engine: tokenization, field
// scoping and limit clamping on top of the store's predicate options.
type PartService struct {
	store *store.Store
}

func NewPartService(st *store.Store) *PartService {
	return &PartService{store: st}
}

// SearchParams carries the raw query parameters. Field and Limit are
// normalized here, never rejected: an unknown field means "all", a
// malformed limit means the default.
type SearchParams struct {
	Query string
	Field string
	Limit string
}

// Search runs the tokenized search. The query splits on whitespace into
// tokens that must all match (AND); an empty query returns unfiltered rows
// up to the limit. Results carry the wishlist/ROB/override merge and are
// ordered by effective location, then part number.
func (s *PartService) Search(ctx context.Context, params SearchParams) ([]models.PartSearchRow, error) {
	field := models.ParseSearchField(strings.ToLower(strings.TrimSpace(params.Field)))
	limit := clampLimit(params.Limit, defaultSearchLimit, maxSearchLimit)

	var opts []store.SearchOption
	for _, token := range tokenize(params.Query) {
		opts = append(opts, store.ByToken(field, token))
	}
	opts = append(opts,
		store.OrderByEffectiveLocation(),
		store.WithLimit(uint64(limit)),
	)

	return s.store.Parts().Search(ctx, opts...)
}

// SimpleSearch is the reduced variant kept for legacy callers: the whole
// query is a single substring, the separator-stripping heuristic is off and
// location overrides do not participate in matching or ordering. Same
// engine, fewer options.
func (s *PartService) SimpleSearch(ctx context.Context, params SearchParams) ([]models.PartSearchRow, error) {
	field := models.ParseSearchField(strings.ToLower(strings.TrimSpace(params.Field)))
	limit := clampLimit(params.Limit, defaultSearchLimit, maxSearchLimit)

	var opts []store.SearchOption
	if q := strings.TrimSpace(params.Query); q != "" {
		opts = append(opts, store.BySingleField(field, q))
	}
	opts = append(opts,
		store.OrderByDefaultLocation(),
		store.WithLimit(uint64(limit)),
	)

	return s.store.Parts().Search(ctx, opts...)
}

// tokenize trims the query and splits it on whitespace. Empty or
// whitespace-only input yields no tokens.
func tokenize(query string) []string {
	return strings.Fields(query)
}

// clampLimit parses a raw limit parameter, falling back to def when it is
// missing or malformed, and clamps the result into [1, max].
func clampLimit(raw string, def, max int) int {
	limit := def
	if raw != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			limit = parsed
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > max {
		limit = max
	}
	return limit
}
