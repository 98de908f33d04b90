package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ImageRasterizer recovers a page bitmap from the page's embedded image
// XObjects. Scanned PDFs carry each page as a single full-page image, so
// for the pages that actually need OCR this is equivalent to rendering.
// The bitmap is upscaled to the requested scale before recognition.
type ImageRasterizer struct{}

// RenderPage extracts the largest image on the page and upscales it.
func (ImageRasterizer) RenderPage(_ context.Context, pdf []byte, pageNr int, scale float64) (image.Image, error) {
	conf := model.NewDefaultConfiguration()
	pages := []string{strconv.Itoa(pageNr)}

	extracted, err := api.ExtractImagesRaw(bytes.NewReader(pdf), pages, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: extract page images: %v", ErrOCR, err)
	}

	var best image.Image
	bestArea := 0
	for _, pageImages := range extracted {
		for _, pi := range pageImages {
			img, _, err := image.Decode(pi)
			if err != nil {
				continue
			}
			b := img.Bounds()
			if area := b.Dx() * b.Dy(); area > bestArea {
				best = img
				bestArea = area
			}
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: page %d has no decodable image content", ErrOCR, pageNr)
	}

	return upscale(best, scale), nil
}
