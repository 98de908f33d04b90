package storage

import (
	"context"
	"errors"

	"github.com/sobiswriter/LegalLM/models"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Store holds documents and their conversation threads for the lifetime
// of the process. Documents exist only for the session: the backing
// database runs in memory and dies with the process.
type Store interface {
	// StoreDocument inserts a new document.
	StoreDocument(ctx context.Context, doc *models.Document) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id int64) (*models.Document, error)

	// SetExtraction records the canonical text (and optional display
	// rendering) once extraction succeeds. Set-once: a second call for
	// the same document is ignored, keeping canonical text immutable.
	SetExtraction(ctx context.Context, id int64, text, renderedHTML string) error

	// ListDocuments returns all stored documents in upload order.
	ListDocuments(ctx context.Context) ([]models.DocumentInfo, error)

	// DeleteDocument removes a document and its messages.
	DeleteDocument(ctx context.Context, id int64) error

	// AppendMessage appends one turn to a document's conversation.
	AppendMessage(ctx context.Context, docID int64, msg models.Message) error

	// GetMessages returns a document's conversation in append order.
	GetMessages(ctx context.Context, docID int64) ([]models.Message, error)

	// ClearMessages empties a document's conversation.
	ClearMessages(ctx context.Context, docID int64) error

	// Close closes the database connection.
	Close() error
}
