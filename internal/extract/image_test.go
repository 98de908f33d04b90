package extract

import (
	"image"
	"image/color"
	"testing"
)

func TestUpscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 20))
	got := upscale(src, 2.0)
	b := got.Bounds()
	if b.Dx() != 20 || b.Dy() != 40 {
		t.Errorf("upscale bounds = %dx%d, want 20x40", b.Dx(), b.Dy())
	}
}

func TestUpscale_NoopScale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	got := upscale(src, 1.0)
	b := got.Bounds()
	if b.Dx() != 10 || b.Dy() != 10 {
		t.Errorf("upscale(1.0) bounds = %dx%d, want 10x10", b.Dx(), b.Dy())
	}
}

func TestToContrastGray_StretchesRange(t *testing.T) {
	// Low-contrast source: values clustered around mid gray.
	src := image.NewGray(image.Rect(0, 0, 2, 1))
	src.SetGray(0, 0, color.Gray{Y: 100})
	src.SetGray(1, 0, color.Gray{Y: 150})

	got := toContrastGray(src)
	lo := got.GrayAt(0, 0).Y
	hi := got.GrayAt(1, 0).Y
	if lo >= hi {
		t.Fatalf("contrast stretch inverted values: %d >= %d", lo, hi)
	}
	if hi-lo <= 50 {
		t.Errorf("range not stretched: lo=%d hi=%d", lo, hi)
	}
}

func TestEnhanceForOCR_PreservesBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))
	got := enhanceForOCR(src)
	b := got.Bounds()
	if b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("enhanceForOCR bounds = %dx%d, want 16x16", b.Dx(), b.Dy())
	}
}
