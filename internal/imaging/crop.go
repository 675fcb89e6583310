package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// CropRows copies a full-width horizontal band out of img.
//
// The band starts y rows below the top of the image and is height rows tall.
// The result is a new *image.NRGBA whose bounds start at (0,0); img itself is
// never modified.
func CropRows(img image.Image, y, height int) (*image.NRGBA, error) {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("cannot crop empty image %dx%d", bounds.Dx(), bounds.Dy())
	}
	if height <= 0 {
		return nil, fmt.Errorf("invalid crop height %d", height)
	}
	if y < 0 || y+height > bounds.Dy() {
		return nil, fmt.Errorf("crop rows [%d,%d) outside image height %d", y, y+height, bounds.Dy())
	}

	rect := image.Rect(bounds.Min.X, bounds.Min.Y+y, bounds.Max.X, bounds.Min.Y+y+height)
	return imaging.Crop(img, rect), nil
}

// EncodePNG encodes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeBase64PNG encodes img as a base64 PNG string, the form images take on
// the MCP transport.
func EncodeBase64PNG(img image.Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
