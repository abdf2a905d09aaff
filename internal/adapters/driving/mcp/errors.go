// Package mcp provides an MCP (Model Context Protocol) server adapter for closet.
// It lets AI assistants search the catalogue and manage the user's closets.
package mcp

import "errors"

// ErrMissingLookupService is returned when the lookup service is not provided.
var ErrMissingLookupService = errors.New("mcp: lookup service is required")

// ErrMissingClosetService is returned when the closet service is not provided.
var ErrMissingClosetService = errors.New("mcp: closet service is required")
