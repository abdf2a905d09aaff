// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CatalogAPI: Search-bar lookups against the catalogue backend
//   - ClosetAPI: Closet listing and mutation on the catalogue backend
//   - ConfigStore: Application configuration
//
// Both backend ports are implemented by a single HTTP client in
// internal/adapters/driven/httpapi.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
