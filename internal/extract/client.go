package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Client calls a remote extraction service over HTTP. Used when the
// pipeline and the caller run in different processes; the service speaks
// the same contract as the local /api/extract-text handler.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a client against the given extraction service base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 180 * time.Second},
	}
}

type extractTextResponse struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// ExtractText posts the file as a multipart upload and returns the
// extracted text. Status codes map back into the extraction taxonomy:
// 422 → ErrTooShort, anything else non-200 → ErrFailed.
func (c *Client) ExtractText(ctx context.Context, name string, data []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", failedErr("build multipart request", err)
	}
	if _, err := fw.Write(data); err != nil {
		return "", failedErr("build multipart request", err)
	}
	if err := mw.Close(); err != nil {
		return "", failedErr("build multipart request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/extract-text", &body)
	if err != nil {
		return "", failedErr("build request", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", failedErr("extraction service unreachable", err)
	}
	defer resp.Body.Close()

	var out extractTextResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 32<<20)).Decode(&out); err != nil {
		return "", failedErr("decode extraction response", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return out.Text, nil
	case http.StatusUnprocessableEntity:
		return "", fmt.Errorf("%w: %s", ErrTooShort, out.Error)
	default:
		return "", failedErr(fmt.Sprintf("extraction service returned %d: %s", resp.StatusCode, out.Error), nil)
	}
}
