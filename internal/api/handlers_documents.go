// handlers_documents.go - Workspace document operation handlers
package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sobiswriter/LegalLM/internal/extract"
	"github.com/sobiswriter/LegalLM/internal/logger"
	"github.com/sobiswriter/LegalLM/internal/session"
	"github.com/sobiswriter/LegalLM/internal/storage"
	"github.com/sobiswriter/LegalLM/models"
)

// documentResponse is the wire shape for a workspace document. The raw
// file bytes stay server-side; the viewer gets text and rendering only.
type documentResponse struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	Format   models.Format `json:"format"`
	Text     string        `json:"text"`
	HTML     string        `json:"html,omitempty"`
	Selected bool          `json:"selected"`
}

// DocumentHandlerImpl implements the DocumentHandler interface
type DocumentHandlerImpl struct {
	ctrl  *session.Controller
	store storage.Store
	log   logger.Logger
}

// NewDocumentHandler creates a new document handler instance
func NewDocumentHandler(ctrl *session.Controller, store storage.Store, log logger.Logger) DocumentHandler {
	return &DocumentHandlerImpl{ctrl: ctrl, store: store, log: log}
}

func (h *DocumentHandlerImpl) toResponse(doc *models.Document) documentResponse {
	return documentResponse{
		ID:       doc.ID,
		Name:     doc.Name,
		Format:   doc.Format,
		Text:     doc.CanonicalText,
		HTML:     doc.RenderedHTML,
		Selected: h.ctrl.Selected() == doc.ID,
	}
}

// HandleUpload accepts a multipart file, runs extraction, and adds the
// document to the workspace as the selected document. The conversation
// thread opens with the generated summary; fetch it via the messages
// endpoint.
func (h *DocumentHandlerImpl) HandleUpload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return NewBadRequestError("no file provided", err)
	}

	src, err := fh.Open()
	if err != nil {
		return NewInternalError("failed to read file", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes))
	if err != nil {
		return NewInternalError("failed to read file", err)
	}

	doc, err := h.ctrl.Upload(c.Request().Context(), fh.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrBusy):
			return NewConflictError("another operation is in progress")
		case errors.Is(err, extract.ErrTooShort):
			return NewUnprocessableError(userCause(err))
		default:
			return NewInternalError("failed to extract text from file", err)
		}
	}

	return c.JSON(http.StatusCreated, h.toResponse(doc))
}

// HandleList returns all workspace documents in upload order.
func (h *DocumentHandlerImpl) HandleList(c echo.Context) error {
	infos, err := h.store.ListDocuments(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to list documents", err)
	}
	if infos == nil {
		infos = []models.DocumentInfo{}
	}
	return c.JSON(http.StatusOK, infos)
}

// HandleGet returns a single document with its canonical text.
func (h *DocumentHandlerImpl) HandleGet(c echo.Context) error {
	id, err := docID(c)
	if err != nil {
		return err
	}
	doc, err := h.store.GetDocument(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return NewNotFoundError("document", c.Param("id"))
		}
		return NewInternalError("failed to load document", err)
	}
	return c.JSON(http.StatusOK, h.toResponse(doc))
}

// HandleSelect makes a document the active one; its conversation thread
// replaces the previous document's messages in the view.
func (h *DocumentHandlerImpl) HandleSelect(c echo.Context) error {
	id, err := docID(c)
	if err != nil {
		return err
	}
	doc, err := h.ctrl.Select(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return NewNotFoundError("document", c.Param("id"))
		}
		return NewInternalError("failed to select document", err)
	}
	return c.JSON(http.StatusOK, h.toResponse(doc))
}

// HandleDelete removes a document and its conversation.
func (h *DocumentHandlerImpl) HandleDelete(c echo.Context) error {
	id, err := docID(c)
	if err != nil {
		return err
	}
	if err := h.ctrl.Delete(c.Request().Context(), id); err != nil {
		return NewInternalError("failed to delete document", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// docID parses the :id path parameter.
func docID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, NewBadRequestError("invalid document id", err)
	}
	return id, nil
}
