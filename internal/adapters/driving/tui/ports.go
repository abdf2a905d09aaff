// Package tui provides the interactive terminal user interface for closet.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/components/lookup"
	"github.com/custodia-labs/closet-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Lookup serves search-bar queries.
	Lookup driving.LookupService

	// Closets lists and edits the user's closets.
	Closets driving.ClosetService

	// Settings manages application settings.
	Settings driving.SettingsService

	// LookupConfig tunes the search bar. Zero values fall back to defaults.
	LookupConfig lookup.Config
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	lookupService driving.LookupService,
	closets driving.ClosetService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Lookup:   lookupService,
		Closets:  closets,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Lookup == nil {
		return ErrMissingLookupService
	}
	if p.Closets == nil {
		return ErrMissingClosetService
	}
	if p.Settings == nil {
		return ErrMissingSettingsService
	}
	return nil
}
