package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
)

// MaxUploadBytes is the largest image file accepted for processing (10 MiB).
const MaxUploadBytes = 10 * 1024 * 1024

var (
	// ErrTooLarge is returned when an upload exceeds MaxUploadBytes.
	ErrTooLarge = errors.New("image exceeds 10MB upload limit")

	// ErrNotImage is returned when the upload content cannot be decoded as
	// a supported image format.
	ErrNotImage = errors.New("file is not a supported image")
)

// Upload is a decoded source image together with the metadata needed to
// decide how it is segmented.
//
// The Image field is treated as immutable by every stage of the pipeline.
type Upload struct {
	// Image is the decoded pixel data.
	Image image.Image `json:"-"`

	// Path is the file the upload was read from. Empty for in-memory uploads.
	Path string `json:"path,omitempty"`

	// Format is the decoder name reported by image.Decode: "png", "jpeg" or "gif".
	Format string `json:"format"`

	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// SizeBytes is the encoded size of the upload.
	SizeBytes int64 `json:"size_bytes"`
}

// AspectRatio returns height divided by width, the value segmentation is
// keyed on. It returns 0 for an image with no width.
func (u *Upload) AspectRatio() float64 {
	if u.Width <= 0 {
		return 0
	}
	return float64(u.Height) / float64(u.Width)
}

// LoadUpload reads and decodes an image file.
//
// Parameters:
//   - path: Absolute or relative file path. Supported formats are PNG, JPEG
//     and GIF; the format is detected from the file contents, not the extension.
//
// Returns:
//   - *Upload: The decoded image and its metadata.
//   - error: ErrTooLarge if the file exceeds MaxUploadBytes, ErrNotImage if the
//     contents are not a decodable image, or a wrapped I/O error.
func LoadUpload(path string) (*Upload, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, ErrNotImage)
	}
	if stat.Size() > MaxUploadBytes {
		return nil, fmt.Errorf("%s is %d bytes: %w", path, stat.Size(), ErrTooLarge)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	upload, err := DecodeUpload(f, stat.Size())
	if err != nil {
		return nil, err
	}
	upload.Path = path
	return upload, nil
}

// DecodeUpload decodes an image from r. The size argument is the number of
// bytes the caller expects to read; pass -1 when it is unknown and the reader
// is bounded to MaxUploadBytes+1 instead.
func DecodeUpload(r io.Reader, size int64) (*Upload, error) {
	if size > MaxUploadBytes {
		return nil, fmt.Errorf("upload is %d bytes: %w", size, ErrTooLarge)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, ErrTooLarge
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	bounds := img.Bounds()
	return &Upload{
		Image:     img,
		Format:    format,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		SizeBytes: int64(len(data)),
	}, nil
}
