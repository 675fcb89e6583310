package recognize

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/bannercopy/internal/segment"
)

// OCR is the text recognition capability consumed by the pipeline. It is
// called once per strip and may be called concurrently when WithWorkers is
// greater than one.
type OCR interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// OCRFunc adapts a function to the OCR interface.
type OCRFunc func(ctx context.Context, img image.Image) (string, error)

// Recognize calls f(ctx, img).
func (f OCRFunc) Recognize(ctx context.Context, img image.Image) (string, error) {
	return f(ctx, img)
}

// ErrNoEngine is recorded on every result when Recognize is called without an
// OCR implementation.
var ErrNoEngine = errors.New("no OCR engine configured")

// Result pairs a strip with the text recognized in it.
type Result struct {
	// StripID is the 1-based strip number, used for labels.
	StripID int `json:"strip_id"`

	// Y is the source offset of the strip; results are merged in Y order.
	Y int `json:"y"`

	// Text is the recognized text, or "" when OCR failed.
	Text string `json:"text"`

	// Err records why OCR failed for this strip. It is diagnostic only.
	Err error `json:"-"`
}

// Failed reports whether OCR failed for this strip.
func (r Result) Failed() bool {
	return r.Err != nil
}

// ProgressFunc receives a report each time a strip's OCR call resolves.
// done counts resolved strips including this one; calls are serialized.
type ProgressFunc func(done, total, stripID int)

// PreprocessFunc transforms a strip's pixels before OCR.
type PreprocessFunc func(img image.Image) image.Image

// DefaultLabel prefixes each strip's text in the merged document.
const DefaultLabel = "Segment"

type options struct {
	workers      int
	stripTimeout time.Duration
	progress     ProgressFunc
	preprocess   PreprocessFunc
	label        string
}

// Option configures Run, Recognize and Merge.
type Option func(*options)

// WithWorkers sets how many strips are recognized concurrently. Values below
// one are treated as one.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithStripTimeout bounds each OCR call. A call that exceeds it counts as a
// failure for that strip. Zero disables the bound.
//
// The timeout only stops the wait; an engine that cannot be interrupted keeps
// running. ocr.Tesseract caps such leftover runs with Config.MaxInFlight.
func WithStripTimeout(d time.Duration) Option {
	return func(o *options) { o.stripTimeout = d }
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) { o.progress = fn }
}

// WithPreprocess registers a pixel transform applied before each OCR call.
func WithPreprocess(fn PreprocessFunc) Option {
	return func(o *options) { o.preprocess = fn }
}

// WithLabel sets the strip label used by Merge.
func WithLabel(label string) Option {
	return func(o *options) {
		if strings.TrimSpace(label) != "" {
			o.label = label
		}
	}
}

func newOptions(opts []Option) options {
	o := options{workers: 1, label: DefaultLabel}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}

// Recognize runs engine over every strip and returns one Result per strip in
// the same order as strips. It never fails: per-strip errors are logged and
// recorded on the corresponding Result with empty text.
func Recognize(ctx context.Context, strips []segment.Strip, engine OCR, opts ...Option) []Result {
	o := newOptions(opts)
	results := make([]Result, len(strips))

	var mu sync.Mutex
	done := 0

	var g errgroup.Group
	g.SetLimit(o.workers)
	for i := range strips {
		g.Go(func() error {
			results[i] = recognizeStrip(ctx, strips[i], engine, o)
			if o.progress != nil {
				mu.Lock()
				done++
				o.progress(done, len(strips), strips[i].ID)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func recognizeStrip(ctx context.Context, strip segment.Strip, engine OCR, o options) Result {
	result := Result{StripID: strip.ID, Y: strip.Y}

	text, err := callOCR(ctx, strip, engine, o)
	if err != nil {
		log.Printf("recognize: strip %d (y=%d) OCR failed: %v", strip.ID, strip.Y, err)
		result.Err = err
		return result
	}

	result.Text = text
	return result
}

func callOCR(ctx context.Context, strip segment.Strip, engine OCR, o options) (text string, err error) {
	if engine == nil {
		return "", ErrNoEngine
	}
	if strip.Pixels == nil {
		return "", fmt.Errorf("strip %d has no pixel data", strip.ID)
	}
	if strip.Height == 0 {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("OCR panic: %v", r)
		}
	}()

	var img image.Image = strip.Pixels
	if o.preprocess != nil {
		img = o.preprocess(img)
	}

	if o.stripTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.stripTimeout)
		defer cancel()
	}

	return engine.Recognize(ctx, img)
}
