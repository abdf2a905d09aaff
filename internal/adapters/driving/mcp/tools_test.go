package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/closet-cli/internal/core/domain"
)

func newTestServer(t *testing.T, lookup *mockLookupService, closets *mockClosetService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Lookup: lookup, Closets: closets})
	require.NoError(t, err)
	return server
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns sections", func(t *testing.T) {
		lookup := &mockLookupService{result: domain.SearchResult{
			Tags:   []string{"shirts"},
			Items:  []string{"Acme Oxford shirt"},
			Brands: []string{"Acme"},
		}}
		server := newTestServer(t, lookup, &mockClosetService{})

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "shi"})

		require.NoError(t, err)
		assert.Equal(t, "shi", lookup.query)
		assert.Equal(t, 3, output.Count)
		assert.Equal(t, []string{"shirts"}, output.Tags)
		assert.Equal(t, []string{"Acme Oxford shirt"}, output.Items)
		assert.Equal(t, []string{"Acme"}, output.Brands)
	})

	t.Run("propagates lookup errors", func(t *testing.T) {
		lookup := &mockLookupService{err: domain.ErrInvalidInput}
		server := newTestServer(t, lookup, &mockClosetService{})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: " "})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleListClosets(t *testing.T) {
	closets := &mockClosetService{closets: []domain.Closet{
		{Name: "Summer", Items: []domain.ClosetItem{{Item: "Tee", Brand: "Acme"}, {Item: "Shorts"}}},
		{Name: "Work"},
	}}
	server := newTestServer(t, &mockLookupService{}, closets)

	_, output, err := server.handleListClosets(context.Background(), nil, ListClosetsInput{})

	require.NoError(t, err)
	require.Len(t, output.Closets, 2)
	assert.Equal(t, "Summer", output.Closets[0].Name)
	assert.Equal(t, []string{"Acme Tee", "Shorts"}, output.Closets[0].Items)
	assert.Empty(t, output.Closets[1].Items)
}

func TestServer_ClosetMutations(t *testing.T) {
	ctx := context.Background()
	closets := &mockClosetService{}
	server := newTestServer(t, &mockLookupService{}, closets)

	_, out, err := server.handleCreateCloset(ctx, nil, ClosetNameInput{Name: "Gym"})
	require.NoError(t, err)
	assert.Equal(t, "Created closet Gym", out.Message)

	_, out, err = server.handleAddToCloset(ctx, nil, AddToClosetInput{Closet: "Gym", Item: "Runner", Brand: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Added Acme Runner to Gym", out.Message)

	_, out, err = server.handleDeleteCloset(ctx, nil, ClosetNameInput{Name: "Gym"})
	require.NoError(t, err)
	assert.Equal(t, "Deleted closet Gym", out.Message)

	assert.Equal(t, []string{"Gym"}, closets.created)
	assert.Equal(t, []string{"Gym:Acme Runner"}, closets.added)
	assert.Equal(t, []string{"Gym"}, closets.deleted)
}

func TestServer_ClosetMutationErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("backend down")
	server := newTestServer(t, &mockLookupService{}, &mockClosetService{err: boom})

	_, _, err := server.handleCreateCloset(ctx, nil, ClosetNameInput{Name: "Gym"})
	assert.ErrorIs(t, err, boom)

	_, _, err = server.handleDeleteCloset(ctx, nil, ClosetNameInput{Name: "Gym"})
	assert.ErrorIs(t, err, boom)

	_, _, err = server.handleAddToCloset(ctx, nil, AddToClosetInput{Closet: "Gym", Item: "Runner"})
	assert.ErrorIs(t, err, boom)

	_, _, err = server.handleListClosets(ctx, nil, ListClosetsInput{})
	assert.ErrorIs(t, err, boom)
}
