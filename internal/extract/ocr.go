package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"time"

	_ "image/jpeg" // register decoders for embedded page images
)

// Rasterizer renders a single PDF page to a bitmap. Injectable so tests
// can substitute deterministic fixtures.
type Rasterizer interface {
	RenderPage(ctx context.Context, pdf []byte, pageNr int, scale float64) (image.Image, error)
}

// Recognizer runs optical character recognition over a bitmap.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// HTTPRecognizer sends page bitmaps to an OCR service as base64 PNG and
// reads back recognized text.
type HTTPRecognizer struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPRecognizer creates a recognizer against the given OCR service
// base URL.
func NewHTTPRecognizer(baseURL string) *HTTPRecognizer {
	return &HTTPRecognizer{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 120 * time.Second},
	}
}

type ocrRequest struct {
	Image  string `json:"image"` // base64-encoded PNG
	Format string `json:"format"`
}

type ocrResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// Recognize encodes the bitmap as PNG and posts it to the OCR service.
func (r *HTTPRecognizer) Recognize(ctx context.Context, img image.Image) (string, error) {
	if r.BaseURL == "" {
		return "", fmt.Errorf("%w: no OCR service configured", ErrOCR)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("%w: encode page bitmap: %v", ErrOCR, err)
	}

	body, err := json.Marshal(ocrRequest{
		Image:  base64.StdEncoding.EncodeToString(buf.Bytes()),
		Format: "png",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOCR, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/v1/ocr", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOCR, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOCR, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: ocr service returned %d: %s", ErrOCR, resp.StatusCode, bytes.TrimSpace(data))
	}

	var out ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode ocr response: %v", ErrOCR, err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrOCR, out.Error)
	}
	return out.Text, nil
}

// NoopRecognizer is used when no OCR service is configured. Recognition
// always yields empty text, which the pipeline treats as a page-local
// miss rather than a document failure.
type NoopRecognizer struct{}

func (NoopRecognizer) Recognize(context.Context, image.Image) (string, error) {
	return "", nil
}
