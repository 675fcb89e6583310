package segment

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/bannercopy/internal/imaging"
)

// ErrInvalidGeometry is returned when an image has a non-positive width or
// height. It is the only failure mode of segmentation.
var ErrInvalidGeometry = errors.New("image width and height must be positive")

// bracket is one row of the strip-count table: images whose aspect ratio is
// at least minRatio get min(maxStrips, ceil(ratio/divisor)) strips.
type bracket struct {
	minRatio  float64
	divisor   float64
	maxStrips int
}

// brackets is ordered from the tallest images down. The constants are
// empirical.
var brackets = []bracket{
	{minRatio: 4.0, divisor: 0.8, maxStrips: 6},
	{minRatio: 2.5, divisor: 0.7, maxStrips: 4},
	{minRatio: 1.5, divisor: 0.6, maxStrips: 3},
}

// Bounds is the row range of one strip within its source image.
type Bounds struct {
	ID     int `json:"id"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Strip is a horizontal slice of a source image, the unit of OCR work.
type Strip struct {
	// ID is the 1-based position of the strip from the top. Display only.
	ID int `json:"id"`

	// Y is the offset of the strip's first row from the top of the source
	// image. Results are reassembled in Y order.
	Y int `json:"y"`

	// Width always equals the source width.
	Width int `json:"width"`

	// Height is the number of source rows the strip covers.
	Height int `json:"height"`

	// Pixels holds the strip's own copy of the source rows, with bounds
	// starting at (0,0).
	Pixels *image.NRGBA `json:"-"`
}

// Bounds returns the strip's row range.
func (s Strip) Bounds() Bounds {
	return Bounds{ID: s.ID, Y: s.Y, Width: s.Width, Height: s.Height}
}

// Count returns the number of strips an image of the given size is cut into.
func Count(width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: got %dx%d", ErrInvalidGeometry, width, height)
	}

	ratio := float64(height) / float64(width)
	for _, b := range brackets {
		if ratio >= b.minRatio {
			n := int(math.Ceil(ratio / b.divisor))
			if n > b.maxStrips {
				n = b.maxStrips
			}
			return n, nil
		}
	}
	return 1, nil
}

// Plan returns the row ranges of the strips for an image of the given size,
// ordered top to bottom. The ranges are contiguous, non-overlapping and cover
// [0, height) exactly.
//
// When height is smaller than the strip count every strip but the last is
// zero rows tall; the last one covers the whole image.
func Plan(width, height int) ([]Bounds, error) {
	count, err := Count(width, height)
	if err != nil {
		return nil, err
	}

	stripHeight := height / count
	plan := make([]Bounds, count)
	for i := range plan {
		y := i * stripHeight
		h := stripHeight
		if i == count-1 {
			h = height - y
		}
		plan[i] = Bounds{ID: i + 1, Y: y, Width: width, Height: h}
	}
	return plan, nil
}

// Split cuts img into strips according to Plan.
//
// It fails fast with ErrInvalidGeometry for an empty image and never returns a
// partial strip set. A zero-height strip gets an empty, non-nil Pixels image.
func Split(img image.Image) ([]Strip, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidGeometry)
	}
	bounds := img.Bounds()
	plan, err := Plan(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	strips := make([]Strip, len(plan))
	for i, p := range plan {
		pixels := image.NewNRGBA(image.Rect(0, 0, p.Width, 0))
		if p.Height > 0 {
			pixels, err = imaging.CropRows(img, p.Y, p.Height)
			if err != nil {
				return nil, fmt.Errorf("failed to crop strip %d: %w", p.ID, err)
			}
		}
		strips[i] = Strip{
			ID:     p.ID,
			Y:      p.Y,
			Width:  p.Width,
			Height: p.Height,
			Pixels: pixels,
		}
	}
	return strips, nil
}
