package driving

import (
	"context"

	"github.com/custodia-labs/closet-cli/internal/core/domain"
)

// ClosetService manages the user's closets.
type ClosetService interface {
	// List returns every closet.
	List(ctx context.Context) ([]domain.Closet, error)

	// Create adds an empty closet.
	Create(ctx context.Context, name string) error

	// Delete removes a closet.
	Delete(ctx context.Context, name string) error

	// AddItem saves an item into a closet.
	AddItem(ctx context.Context, closet string, item domain.ItemRef) error
}
