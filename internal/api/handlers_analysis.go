// handlers_analysis.go - Model-backed analysis operation handlers
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sobiswriter/LegalLM/internal/logger"
	"github.com/sobiswriter/LegalLM/internal/session"
	"github.com/sobiswriter/LegalLM/internal/storage"
	"github.com/sobiswriter/LegalLM/models"
)

type questionRequest struct {
	Question string `json:"question"`
}

type defineRequest struct {
	Term string `json:"term"`
}

// AnalysisHandlerImpl implements the AnalysisHandler interface
type AnalysisHandlerImpl struct {
	ctrl *session.Controller
	log  logger.Logger
}

// NewAnalysisHandler creates a new analysis handler instance
func NewAnalysisHandler(ctrl *session.Controller, log logger.Logger) AnalysisHandler {
	return &AnalysisHandlerImpl{ctrl: ctrl, log: log}
}

// HandleSummary generates the document summary turn.
func (h *AnalysisHandlerImpl) HandleSummary(c echo.Context) error {
	return h.respond(c, func(id int64) (*models.Message, error) {
		return h.ctrl.Summarize(c.Request().Context(), id)
	})
}

// HandleRisks runs the risk and clause analysis.
func (h *AnalysisHandlerImpl) HandleRisks(c echo.Context) error {
	return h.respond(c, func(id int64) (*models.Message, error) {
		return h.ctrl.AnalyzeRisks(c.Request().Context(), id)
	})
}

// HandleQuestion answers a free-form question about the document.
func (h *AnalysisHandlerImpl) HandleQuestion(c echo.Context) error {
	var req questionRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if strings.TrimSpace(req.Question) == "" {
		return NewBadRequestError("question is required", nil)
	}
	return h.respond(c, func(id int64) (*models.Message, error) {
		return h.ctrl.Ask(c.Request().Context(), id, req.Question)
	})
}

// HandleDefine explains a legal term in the document's context.
func (h *AnalysisHandlerImpl) HandleDefine(c echo.Context) error {
	var req defineRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if strings.TrimSpace(req.Term) == "" {
		return NewBadRequestError("term is required", nil)
	}
	return h.respond(c, func(id int64) (*models.Message, error) {
		return h.ctrl.Define(c.Request().Context(), id, req.Term)
	})
}

// HandleMessages returns a document's conversation in order.
func (h *AnalysisHandlerImpl) HandleMessages(c echo.Context) error {
	id, err := docID(c)
	if err != nil {
		return err
	}
	msgs, err := h.ctrl.Messages(c.Request().Context(), id)
	if err != nil {
		return NewInternalError("failed to load messages", err)
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	return c.JSON(http.StatusOK, msgs)
}

// HandleClearMessages empties a document's conversation thread.
func (h *AnalysisHandlerImpl) HandleClearMessages(c echo.Context) error {
	id, err := docID(c)
	if err != nil {
		return err
	}
	if err := h.ctrl.ClearThread(c.Request().Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return NewNotFoundError("document", c.Param("id"))
		}
		return NewInternalError("failed to clear messages", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// respond runs one analysis operation and maps its outcome. A nil
// message with a nil error means the result was superseded by a
// selection change and discarded.
func (h *AnalysisHandlerImpl) respond(c echo.Context, op func(int64) (*models.Message, error)) error {
	id, err := docID(c)
	if err != nil {
		return err
	}
	msg, err := op(id)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrBusy):
			return NewConflictError("another operation is in progress")
		case errors.Is(err, storage.ErrNotFound):
			return NewNotFoundError("document", c.Param("id"))
		default:
			return NewInternalError("analysis failed", err)
		}
	}
	if msg == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, msg)
}
