// Package recognize runs OCR over the strips of a segmented image and
// reassembles the per-strip text into one document.
//
// # Pipeline
//
//	image -> segment.Split -> OCR per strip -> []Result -> Merge -> combined text
//
// Run and SegmentAndRecognize drive the whole pipeline; Recognize and Merge
// are exposed separately for callers that already hold strips or results.
//
// # Failure Model
//
// Only an image with invalid geometry fails a run. An OCR error, panic or
// timeout on one strip is logged and recorded as empty text for that strip;
// the other strips are unaffected. Recognize always returns exactly one
// Result per input strip, in input order.
//
// When no strip yields text, Merge returns NoTextSentinel rather than an
// empty string, so callers can tell "nothing extracted" from "not run".
//
// # Concurrency
//
// Strips are recognized one at a time by default so progress reports advance
// in order. WithWorkers raises the number of concurrent OCR calls. Merge sorts
// by each result's Y offset, so completion order never affects the output.
//
// No state is kept between runs: each Run returns a Workflow owned by the
// caller.
package recognize
