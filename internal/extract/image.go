package extract

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// enhanceForOCR prepares a page bitmap for recognition: flatten to
// grayscale with contrast stretching, then sharpen. Upscaling happens in
// the rasterizer, which renders at the configured scale.
func enhanceForOCR(img image.Image) image.Image {
	return sharpen(toContrastGray(img))
}

// upscale resamples the image with Catmull-Rom interpolation.
func upscale(img image.Image, scale float64) image.Image {
	if scale == 1 {
		return img
	}
	b := img.Bounds()
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w < 1 || h < 1 {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

// toContrastGray converts to grayscale and stretches the luminance range
// to the full 0..255 band.
func toContrastGray(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	minL, maxL := uint8(255), uint8(0)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			l := color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			gray.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: l})
			if l < minL {
				minL = l
			}
			if l > maxL {
				maxL = l
			}
		}
	}

	if maxL <= minL {
		return gray
	}
	span := int(maxL) - int(minL)
	for i, l := range gray.Pix {
		gray.Pix[i] = uint8((int(l) - int(minL)) * 255 / span)
	}
	return gray
}

// sharpen applies a 3x3 unsharp kernel (center 5, cross -1).
func sharpen(gray *image.Gray) *image.Gray {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(b)
	copy(out.Pix, gray.Pix)

	at := func(x, y int) int {
		return int(gray.GrayAt(x, y).Y)
	}
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			v := 5*at(x, y) - at(x-1, y) - at(x+1, y) - at(x, y-1) - at(x, y+1)
			if v < 0 {
				v = 0
			}
			if v > 255 {
				v = 255
			}
			out.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return out
}
