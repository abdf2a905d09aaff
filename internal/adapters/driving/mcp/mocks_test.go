package mcp

import (
	"context"

	"github.com/custodia-labs/closet-cli/internal/core/domain"
)

// mockLookupService is a mock implementation of driving.LookupService.
type mockLookupService struct {
	result domain.SearchResult
	err    error
	query  string
}

func (m *mockLookupService) Lookup(_ context.Context, query string) (domain.SearchResult, error) {
	m.query = query
	return m.result, m.err
}

// mockClosetService is a mock implementation of driving.ClosetService.
type mockClosetService struct {
	closets []domain.Closet
	err     error

	created []string
	deleted []string
	added   []string
}

func (m *mockClosetService) List(_ context.Context) ([]domain.Closet, error) {
	return m.closets, m.err
}

func (m *mockClosetService) Create(_ context.Context, name string) error {
	m.created = append(m.created, name)
	return m.err
}

func (m *mockClosetService) Delete(_ context.Context, name string) error {
	m.deleted = append(m.deleted, name)
	return m.err
}

func (m *mockClosetService) AddItem(_ context.Context, closet string, item domain.ItemRef) error {
	m.added = append(m.added, closet+":"+item.Label())
	return m.err
}
