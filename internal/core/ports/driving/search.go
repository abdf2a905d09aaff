package driving

import (
	"context"

	"github.com/custodia-labs/closet-cli/internal/core/domain"
)

// LookupService provides search-bar lookups to external actors.
type LookupService interface {
	// Lookup returns the normalised result for query.
	// Empty or blank queries fail with domain.ErrInvalidInput.
	Lookup(ctx context.Context, query string) (domain.SearchResult, error)
}
