// handlers_extract_test.go - Tests for the standalone extraction endpoint
package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/sobiswriter/LegalLM/internal/extract"
	"github.com/sobiswriter/LegalLM/internal/logger"
)

func multipartFile(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	writer.Close()
	return body, writer.FormDataContentType()
}

func newExtractHandler() ExtractHandler {
	pipeline := extract.New(extract.Config{}, logger.NewNoOpLogger())
	return NewExtractHandler(pipeline, logger.NewNoOpLogger())
}

func TestExtractHandler_Success(t *testing.T) {
	e := echo.New()
	h := newExtractHandler()

	body, contentType := multipartFile(t, "contract.txt", []byte("This agreement covers delivery terms."))
	req := httptest.NewRequest(http.MethodPost, "/api/extract-text", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if assert.NoError(t, h.HandleExtractText(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp extractTextResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "This agreement covers delivery terms.", resp.Text)
	}
}

func TestExtractHandler_NoFile(t *testing.T) {
	e := echo.New()
	h := newExtractHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/extract-text", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if assert.NoError(t, h.HandleExtractText(c)) {
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "No file provided")
	}
}

func TestExtractHandler_TooShort(t *testing.T) {
	e := echo.New()
	h := newExtractHandler()

	body, contentType := multipartFile(t, "tiny.txt", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/extract-text", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if assert.NoError(t, h.HandleExtractText(c)) {
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp extractErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Error)
		assert.NotContains(t, resp.Error, "ExtractionTooShort")
	}
}

func TestExtractHandler_CorruptPDF(t *testing.T) {
	e := echo.New()
	h := newExtractHandler()

	body, contentType := multipartFile(t, "broken.pdf", []byte("%PDF-1.7 garbage"))
	req := httptest.NewRequest(http.MethodPost, "/api/extract-text", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if assert.NoError(t, h.HandleExtractText(c)) {
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to extract text from file")
	}
}
