// handlers_highlight.go - Quote-location request handler
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sobiswriter/LegalLM/internal/citations"
	"github.com/sobiswriter/LegalLM/internal/highlight"
	"github.com/sobiswriter/LegalLM/internal/logger"
	"github.com/sobiswriter/LegalLM/internal/storage"
)

type locateRequest struct {
	Quote string `json:"quote"`
	// Marker-based lookup: resolve the quote from a citation marker in
	// a conversation message instead of passing it verbatim.
	MessageID string `json:"message_id,omitempty"`
	Marker    int    `json:"marker,omitempty"`
}

// HighlightHandlerImpl implements the HighlightHandler interface
type HighlightHandlerImpl struct {
	store  storage.Store
	engine *highlight.Engine
	log    logger.Logger
}

// NewHighlightHandler creates a new highlight handler instance
func NewHighlightHandler(store storage.Store, engine *highlight.Engine, log logger.Logger) HighlightHandler {
	return &HighlightHandlerImpl{store: store, engine: engine, log: log}
}

// HandleLocate resolves a quote against a document's rendering and
// returns the viewer action. An absent quote is not an error; it maps
// to a scroll-to-top action.
func (h *HighlightHandlerImpl) HandleLocate(c echo.Context) error {
	id, err := docID(c)
	if err != nil {
		return err
	}

	var req locateRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	doc, err := h.store.GetDocument(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return NewNotFoundError("document", c.Param("id"))
		}
		return NewInternalError("failed to load document", err)
	}

	quote := req.Quote
	if quote == "" && req.Marker > 0 && req.MessageID != "" {
		quote, err = h.markerQuote(c, id, req.MessageID, req.Marker)
		if err != nil {
			return err
		}
	}

	action := h.engine.Request(doc, quote)
	return c.JSON(http.StatusOK, action)
}

// markerQuote resolves a citation marker to its data-quote by re-reading
// the message it lives in.
func (h *HighlightHandlerImpl) markerQuote(c echo.Context, docID int64, messageID string, marker int) (string, error) {
	msgs, err := h.store.GetMessages(c.Request().Context(), docID)
	if err != nil {
		return "", NewInternalError("failed to load messages", err)
	}
	for _, msg := range msgs {
		if msg.ID == messageID {
			return citations.QuoteForMarker(msg.Content, marker), nil
		}
	}
	return "", NewNotFoundError("message", messageID)
}
