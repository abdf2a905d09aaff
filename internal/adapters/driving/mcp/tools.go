package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/closet-cli/internal/core/domain"
)

// SearchInput is the input schema for the search_catalog tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"text typed into the search bar"`
}

// SearchOutput is the output schema for the search_catalog tool.
type SearchOutput struct {
	Tags   []string `json:"tags"`
	Items  []string `json:"items"`
	Brands []string `json:"brands"`
	Count  int      `json:"count"`
}

// ListClosetsInput is the (empty) input schema for list_closets.
type ListClosetsInput struct{}

// ListClosetsOutput is the output schema for list_closets.
type ListClosetsOutput struct {
	Closets []ClosetOutput `json:"closets"`
}

// ClosetOutput is one closet with its items.
type ClosetOutput struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// ClosetNameInput names a closet to create or delete.
type ClosetNameInput struct {
	Name string `json:"name" jsonschema:"closet name"`
}

// AddToClosetInput is the input schema for add_to_closet.
type AddToClosetInput struct {
	Closet string `json:"closet" jsonschema:"name of an existing closet"`
	Item   string `json:"item" jsonschema:"item name as returned by search_catalog"`
	Brand  string `json:"brand,omitempty" jsonschema:"brand of the item, if known"`
}

// MutationOutput reports the outcome of a closet change.
type MutationOutput struct {
	Message string `json:"message"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_catalog",
		Description: "Look up tags, items and brands matching a search-bar query",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_closets",
		Description: "List the user's closets and the items in each",
	}, s.handleListClosets)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_closet",
		Description: "Create an empty closet",
	}, s.handleCreateCloset)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_closet",
		Description: "Delete a closet and its items",
	}, s.handleDeleteCloset)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_to_closet",
		Description: "Add a catalogue item to a closet",
	}, s.handleAddToCloset)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	res, err := s.ports.Lookup.Lookup(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, SearchOutput{
		Tags:   res.Tags,
		Items:  res.Items,
		Brands: res.Brands,
		Count:  res.Count(),
	}, nil
}

func (s *Server) handleListClosets(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListClosetsInput,
) (*mcp.CallToolResult, ListClosetsOutput, error) {
	closets, err := s.ports.Closets.List(ctx)
	if err != nil {
		return nil, ListClosetsOutput{}, err
	}
	return nil, ListClosetsOutput{Closets: closetOutputs(closets)}, nil
}

func (s *Server) handleCreateCloset(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClosetNameInput,
) (*mcp.CallToolResult, MutationOutput, error) {
	if err := s.ports.Closets.Create(ctx, input.Name); err != nil {
		return nil, MutationOutput{}, err
	}
	return nil, MutationOutput{Message: fmt.Sprintf("Created closet %s", input.Name)}, nil
}

func (s *Server) handleDeleteCloset(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClosetNameInput,
) (*mcp.CallToolResult, MutationOutput, error) {
	if err := s.ports.Closets.Delete(ctx, input.Name); err != nil {
		return nil, MutationOutput{}, err
	}
	return nil, MutationOutput{Message: fmt.Sprintf("Deleted closet %s", input.Name)}, nil
}

func (s *Server) handleAddToCloset(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddToClosetInput,
) (*mcp.CallToolResult, MutationOutput, error) {
	item := domain.ItemRef{Item: input.Item, Brand: input.Brand}
	if err := s.ports.Closets.AddItem(ctx, input.Closet, item); err != nil {
		return nil, MutationOutput{}, err
	}
	return nil, MutationOutput{Message: fmt.Sprintf("Added %s to %s", item.Label(), input.Closet)}, nil
}

func closetOutputs(closets []domain.Closet) []ClosetOutput {
	out := make([]ClosetOutput, len(closets))
	for i, c := range closets {
		items := make([]string, len(c.Items))
		for j, it := range c.Items {
			items[j] = domain.ItemRef(it).Label()
		}
		out[i] = ClosetOutput{Name: c.Name, Items: items}
	}
	return out
}
