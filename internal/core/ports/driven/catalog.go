package driven

import (
	"context"

	"github.com/custodia-labs/closet-cli/internal/core/domain"
)

// CatalogAPI answers search-bar lookups.
type CatalogAPI interface {
	// SearchBar returns the tags, items and brands matching input.
	// Implementations must abort the underlying request when ctx is cancelled
	// and return an error that satisfies errors.Is(err, context.Canceled).
	SearchBar(ctx context.Context, input string) (domain.SearchResult, error)
}
