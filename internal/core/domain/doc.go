// Package domain defines the core business entities for closet.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchResult: The tags, items and brands matching a search-bar query
//   - Closet: A named collection of saved items
//   - Profile: The signed-in user's account details
//   - AppSettings: Backend endpoints, lookup tuning and profile settings
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
