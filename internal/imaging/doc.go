// Package imaging provides the image handling used by the banner pipeline.
//
// This package loads uploaded images, cuts full-width row bands out of them
// and conditions those bands for OCR. All operations work with standard Go
// image.Image types and use a coordinate system where (0,0) is at the top-left
// corner, X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based and relative to the
// image's Bounds().Min:
//   - Y: vertical offset from the top row (0 = topmost pixel row)
//   - Row ranges are half-open: [y, y+height)
//
// # Immutability
//
// No function in this package mutates its input image. CropRows copies the
// requested rows into a new *image.NRGBA and PrepareForOCR returns a new
// image, so strips can be processed concurrently without synchronization.
//
// # Uploads
//
// LoadUpload and DecodeUpload enforce the 10 MiB upload limit and detect the
// format from the file contents. Supported formats are PNG, JPEG and GIF.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Row ranges outside the image height or with non-positive height
//   - Files over MaxUploadBytes (ErrTooLarge)
//   - Content that is not a decodable image (ErrNotImage)
//   - Encoding errors during PNG output
package imaging
