// Package ocr provides Optical Character Recognition (OCR) using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2) behind the
// recognize.OCR interface so the banner pipeline can run it once per strip.
// Images are passed to Tesseract as in-memory PNG bytes; no temporary files
// are written.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-kor tesseract-ocr-eng
//   - Other languages: tesseract-ocr-<lang> packages
//
// # Supported Languages
//
// The default language set is Korean plus English ("kor", "eng"). Other
// languages can be configured using their Tesseract language codes:
//   - "kor" - Korean
//   - "eng" - English
//   - "jpn" - Japanese
//   - "chi_sim" - Chinese (Simplified)
//   - See Tesseract documentation for full list
//
// # Cancellation
//
// Tesseract calls cannot be interrupted. When the context passed to Recognize
// carries a deadline, the call runs in a goroutine and Recognize returns
// ctx.Err() as soon as the context ends; the pipeline treats that the same as
// any other OCR failure for the strip.
//
// # Error Handling
//
// Recognize returns errors for:
//   - Unsupported or missing language data
//   - Tesseract initialization failures
//   - PNG encoding failures
//   - Context cancellation or deadline
package ocr
