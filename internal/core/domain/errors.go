package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorpusUnavailable indicates the corpus snapshot could not be
	// produced. Search calls fail without a corpus.
	ErrCorpusUnavailable = errors.New("corpus unavailable")

	// ErrInvalidScope indicates an unrecognised search scope.
	ErrInvalidScope = errors.New("invalid search scope")

	// ErrInvalidChatType indicates an unrecognised chat type filter.
	ErrInvalidChatType = errors.New("invalid chat type")

	// ErrInvalidSortKey indicates an unrecognised sort key.
	ErrInvalidSortKey = errors.New("invalid sort key")

	// ErrHistoryUnavailable indicates the history store is not configured.
	// Suggestions fall back to title completions only.
	ErrHistoryUnavailable = errors.New("history store unavailable")
)
