package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sobiswriter/LegalLM/models"
)

// SQLiteStore implements Store using an in-memory SQLite database. The
// pool is pinned to a single connection so every query sees the same
// memory database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the in-memory store and creates the schema. Each
// store gets its own named memory database so separate instances never
// share state.
func NewSQLiteStore() (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:legallm-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		format TEXT NOT NULL,
		content TEXT NOT NULL,
		canonical_text TEXT NOT NULL DEFAULT '',
		rendered_html TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		document_id INTEGER NOT NULL,
		seq INTEGER NOT NULL,
		sender TEXT NOT NULL,
		content TEXT NOT NULL,
		FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_messages_document ON messages(document_id, seq);
	`
	_, err := s.db.Exec(schema)
	return err
}

// StoreDocument inserts a new document.
func (s *SQLiteStore) StoreDocument(ctx context.Context, doc *models.Document) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, name, format, content, canonical_text, rendered_html)
		VALUES (?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Name, string(doc.Format), doc.Content, doc.CanonicalText, doc.RenderedHTML)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *SQLiteStore) GetDocument(ctx context.Context, id int64) (*models.Document, error) {
	var doc models.Document
	var format string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, format, content, canonical_text, rendered_html
		FROM documents WHERE id = ?
	`, id).Scan(&doc.ID, &doc.Name, &format, &doc.Content, &doc.CanonicalText, &doc.RenderedHTML)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	doc.Format = models.Format(format)
	return &doc, nil
}

// SetExtraction records the canonical text once. The WHERE clause keeps
// canonical text immutable after the first successful extraction.
func (s *SQLiteStore) SetExtraction(ctx context.Context, id int64, text, renderedHTML string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE documents SET canonical_text = ?, rendered_html = ?
		WHERE id = ? AND canonical_text = ''
	`, text, renderedHTML, id)
	if err != nil {
		return fmt.Errorf("failed to update extraction: %w", err)
	}
	return nil
}

// ListDocuments returns all stored documents in upload order.
func (s *SQLiteStore) ListDocuments(ctx context.Context) ([]models.DocumentInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, format FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var infos []models.DocumentInfo
	for rows.Next() {
		var info models.DocumentInfo
		var format string
		if err := rows.Scan(&info.ID, &info.Name, &format); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		info.Format = models.Format(format)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteDocument removes a document and all associated messages.
func (s *SQLiteStore) DeleteDocument(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE document_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return tx.Commit()
}

// AppendMessage appends one conversation turn.
func (s *SQLiteStore) AppendMessage(ctx context.Context, docID int64, msg models.Message) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, document_id, seq, sender, content)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE document_id = ?), ?, ?)
	`, msg.ID, docID, docID, string(msg.Sender), msg.Content)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// GetMessages returns a document's conversation in append order.
func (s *SQLiteStore) GetMessages(ctx context.Context, docID int64) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sender, content FROM messages WHERE document_id = ? ORDER BY seq
	`, docID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var msgs []models.Message
	for rows.Next() {
		var msg models.Message
		var sender string
		if err := rows.Scan(&msg.ID, &sender, &msg.Content); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		msg.Sender = models.Sender(sender)
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

// ClearMessages empties a document's conversation.
func (s *SQLiteStore) ClearMessages(ctx context.Context, docID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE document_id = ?`, docID)
	if err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
