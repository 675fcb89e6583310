package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// PrepareOptions controls how a strip is conditioned before it is handed to
// an OCR engine.
type PrepareOptions struct {
	// Contrast is the bild contrast change applied after grayscale
	// conversion. Zero leaves contrast untouched.
	Contrast float64

	// DarkThreshold is the mean CIE L* lightness (0-1) below which the strip
	// is treated as light-on-dark and inverted. Zero disables inversion.
	DarkThreshold float64

	// MinWidth upscales strips narrower than this many pixels, preserving
	// aspect ratio. Zero disables upscaling.
	MinWidth int
}

// DefaultPrepareOptions returns the settings used by the CLI and MCP server.
func DefaultPrepareOptions() PrepareOptions {
	return PrepareOptions{
		Contrast:      0.3,
		DarkThreshold: 0.45,
		MinWidth:      800,
	}
}

// PrepareForOCR returns a grayscale, contrast-adjusted copy of img suitable
// for text recognition. Banners frequently carry white copy on a dark or
// saturated background; Tesseract does noticeably better on dark-on-light
// text, so such strips are inverted.
//
// The source image is not modified.
func PrepareForOCR(img image.Image, opts PrepareOptions) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return img
	}

	dark := opts.DarkThreshold > 0 && MeanLightness(img) < opts.DarkThreshold

	var out image.Image = effect.Grayscale(img)
	if dark {
		out = effect.Invert(out)
	}
	if opts.Contrast != 0 {
		out = adjust.Contrast(out, opts.Contrast)
	}
	if opts.MinWidth > 0 && bounds.Dx() < opts.MinWidth {
		out = imaging.Resize(out, opts.MinWidth, 0, imaging.Lanczos)
	}
	return out
}

// MeanLightness returns the average CIE L* lightness of img in [0,1].
//
// Large images are sampled on a grid of at most ~64K points; the estimate is
// only used for a light/dark decision.
func MeanLightness(img image.Image) float64 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return 0
	}

	step := 1
	for (w/step)*(h/step) > 65536 {
		step++
	}

	var sum float64
	var n int
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				// Fully transparent pixels read as white paper.
				sum++
				n++
				continue
			}
			l, _, _ := c.Lab()
			sum += l
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
