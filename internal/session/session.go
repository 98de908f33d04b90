// Package session owns the workspace state: which document is selected,
// its conversation thread, and the loading flag that serializes
// operations. State lives in an explicit controller passed to each
// operation, not in ambient globals.
package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sobiswriter/LegalLM/internal/extract"
	"github.com/sobiswriter/LegalLM/internal/llm"
	"github.com/sobiswriter/LegalLM/internal/logger"
	"github.com/sobiswriter/LegalLM/internal/storage"
	"github.com/sobiswriter/LegalLM/models"
)

// ErrBusy is returned while a previous operation is still in flight.
// Operations serialize: one loading flag gates new operations until
// the previous completes.
var ErrBusy = errors.New("another operation is in progress")

// Controller coordinates uploads, analysis operations, and selection.
type Controller struct {
	mu       sync.Mutex
	store    storage.Store
	pipeline *extract.Pipeline
	model    llm.Client
	log      logger.Logger

	selected int64
	loading  bool
	lastID   int64
}

// NewController wires the controller's collaborators.
func NewController(store storage.Store, pipeline *extract.Pipeline, model llm.Client, log logger.Logger) *Controller {
	return &Controller{
		store:    store,
		pipeline: pipeline,
		model:    model,
		log:      log,
	}
}

// nextID assigns a unique upload-time identifier. Timestamp-based, with
// a monotonic bump for uploads landing in the same nanosecond.
func (c *Controller) nextID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := time.Now().UnixNano()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

// begin acquires the loading gate.
func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return ErrBusy
	}
	c.loading = true
	return nil
}

func (c *Controller) end() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

// Loading reports whether an operation is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Upload reads a file into the workspace: sniff, extract, validate,
// store, select, then seed the conversation with the document summary.
// Extraction failures surface as document-level errors; nothing is
// stored for an unprocessable document.
func (c *Controller) Upload(ctx context.Context, name string, data []byte) (*models.Document, error) {
	if err := c.begin(); err != nil {
		return nil, err
	}
	defer c.end()

	extraction, err := c.pipeline.Extract(ctx, name, data)
	if err != nil {
		c.log.Error("extraction failed for %q: %v", name, err)
		return nil, err
	}

	doc := &models.Document{
		ID:      c.nextID(),
		Name:    name,
		Format:  extraction.Format,
		Content: base64.StdEncoding.EncodeToString(data),
	}
	if err := c.store.StoreDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	if err := c.store.SetExtraction(ctx, doc.ID, extraction.Text, extraction.RenderedHTML); err != nil {
		return nil, fmt.Errorf("record extraction: %w", err)
	}
	doc.CanonicalText = extraction.Text
	doc.RenderedHTML = extraction.RenderedHTML

	c.mu.Lock()
	c.selected = doc.ID
	c.mu.Unlock()

	if err := c.seedSummary(ctx, doc); err != nil {
		return nil, err
	}

	c.log.Info("uploaded document %d (%s, %s, %d chars)", doc.ID, name, doc.Format, len(doc.CanonicalText))
	return doc, nil
}

// seedSummary opens the new document's thread with its generated
// summary. A model failure becomes an inline chat error, same as any
// other operation; a result landing after the selection moved on is
// dropped.
func (c *Controller) seedSummary(ctx context.Context, doc *models.Document) error {
	html, err := c.model.GenerateSummary(ctx, doc.CanonicalText, doc.Name)
	if err != nil {
		html = "<p>Sorry, something went wrong while analyzing the document. Please try again.</p>"
		c.log.Error("summary failed for document %d: %v", doc.ID, err)
	}

	if c.Selected() != doc.ID {
		c.log.Warn("discarding stale summary for document %d (selection moved on)", doc.ID)
		return nil
	}

	msg := models.Message{
		ID:      uuid.NewString(),
		Sender:  models.SenderAssistant,
		Content: html,
	}
	return c.store.AppendMessage(ctx, doc.ID, msg)
}

// Select makes a document the active one. Its own conversation thread
// replaces the previous document's messages in the view.
func (c *Controller) Select(ctx context.Context, id int64) (*models.Document, error) {
	doc, err := c.store.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.selected = id
	c.mu.Unlock()
	return doc, nil
}

// Selected returns the active document id (0 when none).
func (c *Controller) Selected() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Delete removes a document; the selection resets when it was active.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	if err := c.store.DeleteDocument(ctx, id); err != nil {
		return err
	}
	c.mu.Lock()
	if c.selected == id {
		c.selected = 0
	}
	c.mu.Unlock()
	return nil
}

// Summarize generates the document summary and appends it to the thread.
func (c *Controller) Summarize(ctx context.Context, docID int64) (*models.Message, error) {
	return c.runModelOp(ctx, docID, "", func(ctx context.Context, doc *models.Document) (string, error) {
		return c.model.GenerateSummary(ctx, doc.CanonicalText, doc.Name)
	})
}

// AnalyzeRisks runs the risk/clause analysis operation.
func (c *Controller) AnalyzeRisks(ctx context.Context, docID int64) (*models.Message, error) {
	return c.runModelOp(ctx, docID, "", func(ctx context.Context, doc *models.Document) (string, error) {
		return c.model.AnalyzeRisks(ctx, doc.CanonicalText)
	})
}

// Ask answers a question about the document. The user's turn is recorded
// before the model call.
func (c *Controller) Ask(ctx context.Context, docID int64, question string) (*models.Message, error) {
	return c.runModelOp(ctx, docID, question, func(ctx context.Context, doc *models.Document) (string, error) {
		return c.model.AnswerQuestion(ctx, doc.CanonicalText, question)
	})
}

// Define looks up a legal term in the document's context.
func (c *Controller) Define(ctx context.Context, docID int64, term string) (*models.Message, error) {
	return c.runModelOp(ctx, docID, term, func(ctx context.Context, doc *models.Document) (string, error) {
		return c.model.DefineTerm(ctx, doc.CanonicalText, term)
	})
}

// Messages returns the conversation for a document.
func (c *Controller) Messages(ctx context.Context, docID int64) ([]models.Message, error) {
	return c.store.GetMessages(ctx, docID)
}

// ClearThread empties a document's conversation, keeping the document.
func (c *Controller) ClearThread(ctx context.Context, docID int64) error {
	if _, err := c.store.GetDocument(ctx, docID); err != nil {
		return err
	}
	return c.store.ClearMessages(ctx, docID)
}

// runModelOp is the shared operation boundary: gate, record the user
// turn, call the model, and append the assistant turn. A model failure
// becomes an inline error message in the thread rather than an aborted
// session. A result arriving after the selection moved on is discarded
// so a stale response never lands in a newer document's view.
func (c *Controller) runModelOp(ctx context.Context, docID int64, userContent string, call func(context.Context, *models.Document) (string, error)) (*models.Message, error) {
	if err := c.begin(); err != nil {
		return nil, err
	}
	defer c.end()

	doc, err := c.store.GetDocument(ctx, docID)
	if err != nil {
		return nil, err
	}

	if userContent != "" {
		userMsg := models.Message{
			ID:      uuid.NewString(),
			Sender:  models.SenderUser,
			Content: userContent,
		}
		if err := c.store.AppendMessage(ctx, docID, userMsg); err != nil {
			return nil, err
		}
	}

	html, err := call(ctx, doc)
	if err != nil {
		// Inline chat error for this operation only.
		html = "<p>Sorry, something went wrong while analyzing the document. Please try again.</p>"
		c.log.Error("model operation failed for document %d: %v", docID, err)
	}

	if c.Selected() != docID {
		c.log.Warn("discarding stale result for document %d (selection moved on)", docID)
		return nil, nil
	}

	msg := models.Message{
		ID:      uuid.NewString(),
		Sender:  models.SenderAssistant,
		Content: html,
	}
	if err := c.store.AppendMessage(ctx, docID, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
