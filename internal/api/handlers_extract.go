// handlers_extract.go - Standalone text extraction endpoint
package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sobiswriter/LegalLM/internal/extract"
	"github.com/sobiswriter/LegalLM/internal/logger"
)

// maxUploadBytes bounds how much of an uploaded file is read.
const maxUploadBytes = 64 << 20

// userCause strips the taxonomy sentinel from an extraction error,
// leaving the human-readable cause for the response body.
func userCause(err error) string {
	s := err.Error()
	for _, sentinel := range []string{extract.ErrTooShort.Error(), extract.ErrFailed.Error()} {
		s = strings.TrimPrefix(s, sentinel+": ")
	}
	return s
}

// extractTextResponse carries the extraction output. Error responses on
// this route use a bare {"error": ...} body so existing callers keep
// working unchanged.
type extractTextResponse struct {
	Text  string `json:"text"`
	HTML  string `json:"html,omitempty"`
	Pages int    `json:"pages,omitempty"`
}

type extractErrorResponse struct {
	Error string `json:"error"`
}

// ExtractHandlerImpl implements the ExtractHandler interface
type ExtractHandlerImpl struct {
	pipeline *extract.Pipeline
	log      logger.Logger
}

// NewExtractHandler creates a new extraction handler instance
func NewExtractHandler(pipeline *extract.Pipeline, log logger.Logger) ExtractHandler {
	return &ExtractHandlerImpl{pipeline: pipeline, log: log}
}

// HandleExtractText accepts a multipart file and returns its canonical
// text. 400 when no file is attached, 422 when the file parsed but
// yielded too little text, 500 for everything else.
func (h *ExtractHandlerImpl) HandleExtractText(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, extractErrorResponse{Error: "No file provided"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, extractErrorResponse{Error: "Failed to extract text from file"})
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, extractErrorResponse{Error: "Failed to extract text from file"})
	}

	extraction, err := h.pipeline.Extract(c.Request().Context(), fh.Filename, data)
	if err != nil {
		if errors.Is(err, extract.ErrTooShort) {
			return c.JSON(http.StatusUnprocessableEntity, extractErrorResponse{Error: userCause(err)})
		}
		h.log.Error("extraction failed for %q: %v", fh.Filename, err)
		return c.JSON(http.StatusInternalServerError, extractErrorResponse{Error: "Failed to extract text from file"})
	}

	return c.JSON(http.StatusOK, extractTextResponse{
		Text:  extraction.Text,
		HTML:  extraction.RenderedHTML,
		Pages: extraction.PagesProcessed,
	})
}
