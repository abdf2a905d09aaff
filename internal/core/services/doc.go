// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go and hold no UI state; the TUI's lookup controller
// and the CLI both sit on top of the same LookupService.
package services
