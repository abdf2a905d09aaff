package driven

import (
	"context"

	"github.com/custodia-labs/closet-cli/internal/core/domain"
)

// ClosetAPI issues closet requests against the backend.
// Every call is sent exactly once; implementations never retry.
type ClosetAPI interface {
	// ListClosets returns the signed-in user's closets.
	ListClosets(ctx context.Context) ([]domain.Closet, error)

	// CreateCloset creates an empty closet.
	CreateCloset(ctx context.Context, name string) error

	// DeleteCloset removes a closet and its items.
	DeleteCloset(ctx context.Context, name string) error

	// AddItem saves an item into the named closet.
	AddItem(ctx context.Context, closet string, item domain.ItemRef) error
}
