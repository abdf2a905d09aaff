package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/closet-cli/internal/core/domain"
	"github.com/custodia-labs/closet-cli/internal/core/ports/driven"
	"github.com/custodia-labs/closet-cli/internal/core/ports/driving"
	"github.com/custodia-labs/closet-cli/internal/logger"
)

// Ensure LookupService implements the interface.
var _ driving.LookupService = (*LookupService)(nil)

// LookupService answers search-bar queries through the catalogue backend.
type LookupService struct {
	catalog driven.CatalogAPI
}

// NewLookupService creates a new lookup service.
func NewLookupService(catalog driven.CatalogAPI) *LookupService {
	return &LookupService{catalog: catalog}
}

// Lookup trims query, asks the backend and returns the normalised payload.
// Cancellation is passed through unwrapped so callers can tell it apart
// from a failed request.
func (s *LookupService) Lookup(ctx context.Context, query string) (domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.SearchResult{}, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if s.catalog == nil {
		return domain.SearchResult{}, fmt.Errorf("catalogue: %w", domain.ErrNotConfigured)
	}

	logger.Debug("lookup %q", query)

	result, err := s.catalog.SearchBar(ctx, query)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Debug("lookup %q cancelled", query)
			return domain.SearchResult{}, err
		}
		return domain.SearchResult{}, fmt.Errorf("lookup %q: %w", query, err)
	}

	result = result.Normalise()
	logger.Debug("lookup %q: %d tags, %d items, %d brands",
		query, len(result.Tags), len(result.Items), len(result.Brands))

	return result, nil
}
