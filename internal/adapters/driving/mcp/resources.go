package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for closet resources.
	uriScheme = "closet://"

	closetsURI = uriScheme + "closets"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         closetsURI,
		Name:        "closets",
		Description: "The user's closets and their items",
		MIMEType:    "application/json",
	}, s.handleClosetsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: closetsURI + "/{name}",
		Name:        "closet",
		Description: "Items in one closet",
		MIMEType:    "application/json",
	}, s.handleClosetResource)
}

// handleClosetsResource returns every closet as JSON.
func (s *Server) handleClosetsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	closets, err := s.ports.Closets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing closets: %w", err)
	}
	return jsonResource(req.Params.URI, closetOutputs(closets))
}

// handleClosetResource returns a single closet by name.
func (s *Server) handleClosetResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractClosetName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	closets, err := s.ports.Closets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing closets: %w", err)
	}
	for _, c := range closetOutputs(closets) {
		if c.Name == name {
			return jsonResource(req.Params.URI, c)
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractClosetName extracts the name from closet://closets/{name}. The
// name may be percent-encoded.
func extractClosetName(uri string) string {
	const prefix = closetsURI + "/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	raw := strings.TrimPrefix(uri, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		return ""
	}
	name, err := url.PathUnescape(raw)
	if err != nil {
		return ""
	}
	return name
}
