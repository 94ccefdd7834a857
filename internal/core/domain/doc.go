// Package domain defines the core business entities for Recall.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Conversation: A chat thread with engagement metadata
//   - Message: A single chat message within a conversation
//   - Corpus: An immutable snapshot of conversations and messages
//   - SearchOptions / SearchResult: The search request/response contract
//   - FilterOptions: Facet predicates and sort order for chat lists
//   - SearchHistoryEntry: A remembered query with its hit count
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
