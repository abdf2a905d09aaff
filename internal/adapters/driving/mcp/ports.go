package mcp

import (
	"github.com/custodia-labs/closet-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Lookup serves catalogue searches.
	Lookup driving.LookupService

	// Closets lists and edits the user's closets.
	Closets driving.ClosetService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Lookup == nil {
		return ErrMissingLookupService
	}
	if p.Closets == nil {
		return ErrMissingClosetService
	}
	return nil
}
