package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/recall-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// conversation and history store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.recall/data/recall.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".recall", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "recall.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ConversationStore returns a ConversationStore interface backed by this store.
func (s *Store) ConversationStore() driven.ConversationStore {
	return &conversationStore{store: s}
}

// HistoryStore returns a HistoryStore interface backed by this store.
func (s *Store) HistoryStore() driven.HistoryStore {
	return &historyStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Conversation Store ====================

// conversationStore implements driven.ConversationStore.
type conversationStore struct {
	store *Store
}

var _ driven.ConversationStore = (*conversationStore)(nil)

// SaveConversation stores or updates a conversation. Updates keep the
// conversation's original rowid, so the listing order is stable.
func (s *conversationStore) SaveConversation(ctx context.Context, conv *domain.Conversation) error {
	if conv == nil || conv.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO conversations (id, title, starred, incognito, folder_id, last_activity, message_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			starred = excluded.starred,
			incognito = excluded.incognito,
			folder_id = excluded.folder_id,
			last_activity = excluded.last_activity,
			message_count = excluded.message_count
	`, conv.ID, conv.Title, boolToInt(conv.Starred), boolToInt(conv.Incognito),
		nullString(conv.FolderID), formatNullableTime(conv.LastActivity), conv.MessageCount)

	if err != nil {
		return fmt.Errorf("saving conversation: %w", err)
	}
	return nil
}

// SaveMessages appends messages to a conversation and refreshes its
// last-activity timestamp and message count. Messages for a
// conversation the store has never seen are kept; the corpus surfaces
// them under the Unknown title.
func (s *conversationStore) SaveMessages(ctx context.Context, conversationID string, msgs []domain.Message) error {
	if conversationID == "" {
		return domain.ErrInvalidInput
	}
	if len(msgs) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	for i := range msgs {
		msg := &msgs[i]
		_, err := tx.ExecContext(ctx, `
			INSERT INTO messages (id, conversation_id, role, content, created_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				conversation_id = excluded.conversation_id,
				role = excluded.role,
				content = excluded.content,
				created_at = excluded.created_at
		`, msg.ID, conversationID, msg.Role.String(), msg.Content, formatNullableTime(msg.CreatedAt))
		if err != nil {
			return fmt.Errorf("saving message %s: %w", msg.ID, err)
		}
	}

	if err := refreshConversationMeta(ctx, tx, conversationID, msgs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing messages: %w", err)
	}
	return nil
}

// refreshConversationMeta recomputes message count and last activity
// for a conversation inside the save transaction. Timestamp comparison
// happens in Go, not SQL, because RFC3339 text with fractional seconds
// does not order lexicographically.
func refreshConversationMeta(ctx context.Context, tx *sql.Tx, conversationID string, msgs []domain.Message) error {
	var current sql.NullString
	err := tx.QueryRowContext(ctx,
		"SELECT last_activity FROM conversations WHERE id = ?", conversationID,
	).Scan(&current)
	if err == sql.ErrNoRows {
		return nil // Orphan messages: nothing to refresh.
	}
	if err != nil {
		return fmt.Errorf("reading conversation: %w", err)
	}

	lastActivity := parseNullableTime(current)
	for i := range msgs {
		if msgs[i].CreatedAt.After(lastActivity) {
			lastActivity = msgs[i].CreatedAt
		}
	}

	var count int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE conversation_id = ?", conversationID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("counting messages: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE conversations SET message_count = ?, last_activity = ? WHERE id = ?",
		count, formatNullableTime(lastActivity), conversationID)
	if err != nil {
		return fmt.Errorf("updating conversation: %w", err)
	}
	return nil
}

// GetConversation retrieves a conversation by ID.
func (s *conversationStore) GetConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, starred, incognito, folder_id, last_activity, message_count
		FROM conversations WHERE id = ?
	`, id)

	conv, err := scanConversation(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning conversation: %w", err)
	}
	return conv, nil
}

// GetMessages retrieves a conversation's messages in creation order.
func (s *conversationStore) GetMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, conversation_id, role, content, created_at
		FROM messages WHERE conversation_id = ? ORDER BY rowid
	`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.Message //nolint:prealloc // size unknown from query
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msgs = append(msgs, *msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}
	return msgs, nil
}

// ListConversations returns every conversation in storage order.
func (s *conversationStore) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, starred, incognito, folder_id, last_activity, message_count
		FROM conversations ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying conversations: %w", err)
	}
	defer rows.Close()

	var conversations []domain.Conversation //nolint:prealloc // size unknown from query
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning conversation: %w", err)
		}
		conversations = append(conversations, *conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversations: %w", err)
	}
	return conversations, nil
}

// DeleteConversation removes a conversation and its messages.
func (s *conversationStore) DeleteConversation(ctx context.Context, id string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE conversation_id = ?", id); err != nil {
		return fmt.Errorf("deleting messages: %w", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting conversation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	return nil
}

// Snapshot produces the immutable corpus view a search call reads.
// Row order follows insertion order on both tables, so the snapshot
// order matches the listing order used as the ranking tie-break.
func (s *conversationStore) Snapshot(ctx context.Context) (*domain.Corpus, error) {
	conversations, err := s.ListConversations(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, conversation_id, role, content, created_at
		FROM messages ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	corpus := &domain.Corpus{
		Conversations: conversations,
		Messages:      make(map[string][]domain.Message),
	}
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		corpus.Messages[msg.ConversationID] = append(corpus.Messages[msg.ConversationID], *msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}
	return corpus, nil
}

// ==================== History Store ====================

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// SaveHistory replaces the stored history with the given list, newest
// first. Position zero is the newest entry.
func (s *historyStore) SaveHistory(ctx context.Context, entries []domain.SearchHistoryEntry) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, "DELETE FROM search_history"); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}

	for i, entry := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO search_history (position, query, searched_at, result_count)
			VALUES (?, ?, ?, ?)
		`, i, entry.Query, formatNullableTime(entry.SearchedAt), entry.ResultCount)
		if err != nil {
			return fmt.Errorf("saving history entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing history: %w", err)
	}
	return nil
}

// LoadHistory returns the stored history, newest first.
func (s *historyStore) LoadHistory(ctx context.Context) ([]domain.SearchHistoryEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT query, searched_at, result_count
		FROM search_history ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []domain.SearchHistoryEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry domain.SearchHistoryEntry
		var searchedAt sql.NullString
		if err := rows.Scan(&entry.Query, &searchedAt, &entry.ResultCount); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		entry.SearchedAt = parseNullableTime(searchedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}

// ==================== Scan and format helpers ====================

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanConversation(row scanner) (*domain.Conversation, error) {
	var conv domain.Conversation
	var starred, incognito int
	var folderID, lastActivity sql.NullString

	if err := row.Scan(&conv.ID, &conv.Title, &starred, &incognito,
		&folderID, &lastActivity, &conv.MessageCount); err != nil {
		return nil, err
	}

	conv.Starred = starred != 0
	conv.Incognito = incognito != 0
	conv.FolderID = folderID.String
	conv.LastActivity = parseNullableTime(lastActivity)
	return &conv, nil
}

func scanMessage(row scanner) (*domain.Message, error) {
	var msg domain.Message
	var role string
	var createdAt sql.NullString

	if err := row.Scan(&msg.ID, &msg.ConversationID, &role, &msg.Content, &createdAt); err != nil {
		return nil, err
	}

	msg.Role = domain.MessageRole(role)
	msg.CreatedAt = parseNullableTime(createdAt)
	return &msg, nil
}

// formatNullableTime formats a time as RFC3339 UTC text, or nil for the
// zero value.
func formatNullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// parseNullableTime parses a nullable RFC3339 string to time.Time.
// Returns zero time if the string is empty or invalid.
func parseNullableTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return time.Time{} // Return zero time on parse error
	}
	return t
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
