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

// Ensure ClosetService implements the interface.
var _ driving.ClosetService = (*ClosetService)(nil)

// ClosetService validates closet operations and forwards them to the backend.
// Each operation is issued exactly once. Failures are logged with the closet
// name and returned wrapped in domain.ErrRequestFailed.
type ClosetService struct {
	api driven.ClosetAPI
}

// NewClosetService creates a new closet service.
func NewClosetService(api driven.ClosetAPI) *ClosetService {
	return &ClosetService{api: api}
}

// List returns every closet.
func (s *ClosetService) List(ctx context.Context) ([]domain.Closet, error) {
	if s.api == nil {
		return nil, fmt.Errorf("closets: %w", domain.ErrNotConfigured)
	}

	closets, err := s.api.ListClosets(ctx)
	if err != nil {
		logger.Error(err, "list closets")
		return nil, wrapRequest("list closets", err)
	}
	if closets == nil {
		closets = []domain.Closet{}
	}
	return closets, nil
}

// Create adds an empty closet.
func (s *ClosetService) Create(ctx context.Context, name string) error {
	name, err := domain.ValidateClosetName(name)
	if err != nil {
		return fmt.Errorf("create closet: %w", err)
	}
	if s.api == nil {
		return fmt.Errorf("closets: %w", domain.ErrNotConfigured)
	}

	if err := s.api.CreateCloset(ctx, name); err != nil {
		logger.Error(err, "create closet %q", name)
		return wrapRequest(fmt.Sprintf("create closet %q", name), err)
	}
	logger.Info("created closet %q", name)
	return nil
}

// Delete removes a closet.
func (s *ClosetService) Delete(ctx context.Context, name string) error {
	name, err := domain.ValidateClosetName(name)
	if err != nil {
		return fmt.Errorf("delete closet: %w", err)
	}
	if s.api == nil {
		return fmt.Errorf("closets: %w", domain.ErrNotConfigured)
	}

	if err := s.api.DeleteCloset(ctx, name); err != nil {
		logger.Error(err, "delete closet %q", name)
		return wrapRequest(fmt.Sprintf("delete closet %q", name), err)
	}
	logger.Info("deleted closet %q", name)
	return nil
}

// AddItem saves an item into a closet.
func (s *ClosetService) AddItem(ctx context.Context, closet string, item domain.ItemRef) error {
	closet, err := domain.ValidateClosetName(closet)
	if err != nil {
		return fmt.Errorf("add item: %w", err)
	}
	item.Item = strings.TrimSpace(item.Item)
	item.Brand = strings.TrimSpace(item.Brand)
	if item.Item == "" {
		return fmt.Errorf("add item: %w: empty item", domain.ErrInvalidInput)
	}
	if s.api == nil {
		return fmt.Errorf("closets: %w", domain.ErrNotConfigured)
	}

	if err := s.api.AddItem(ctx, closet, item); err != nil {
		logger.Error(err, "add %q to closet %q", item.Label(), closet)
		return wrapRequest(fmt.Sprintf("add %q to closet %q", item.Label(), closet), err)
	}
	logger.Info("added %q to closet %q", item.Label(), closet)
	return nil
}

// wrapRequest tags backend failures with ErrRequestFailed, keeping the
// original error in the chain.
func wrapRequest(op string, err error) error {
	if errors.Is(err, domain.ErrRequestFailed) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrRequestFailed, err)
}
