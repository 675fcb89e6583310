// Package segment decides how a tall image is cut into horizontal strips for
// OCR and produces those strips.
//
// Tesseract loses accuracy on very tall inputs such as scrolling banners and
// long product detail images, so an image is split into between one and six
// full-width strips depending on its aspect ratio (height / width):
//
//	ratio < 1.5          1 strip (no split)
//	1.5 <= ratio < 2.5   min(3, ceil(ratio/0.6))
//	2.5 <= ratio < 4.0   min(4, ceil(ratio/0.7))
//	ratio >= 4.0         min(6, ceil(ratio/0.8))
//
// Every strip but the last is floor(height/count) rows tall; the last strip
// absorbs the remainder so the strips tile the source rows exactly once.
// Strips are numbered 1..count from the top, so ID order and Y order coincide.
//
// Count and Plan are pure functions of the image geometry. Split additionally
// copies each strip's pixels out of the source; the source is never modified.
package segment
