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
//   - ConversationStore: conversation/message persistence and corpus snapshots
//   - SearchEngine: in-memory matching, ranking, and snippet extraction
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - HistoryStore: persisted search history. Without it, history lives only
//     for the lifetime of the session.
//   - ExportLoader: chat export parsing for the load command.
//   - CorpusWatcher: filesystem change signals for live re-import.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
