package ocr

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/bannercopy/internal/imaging"
)

// DefaultLanguages is the Tesseract language set used when none is configured.
// Ad creatives in the target market mix Korean and English copy.
var DefaultLanguages = []string{"kor", "eng"}

// Config configures a Tesseract engine.
type Config struct {
	// Languages are Tesseract language codes, e.g. "kor", "eng", "jpn".
	// The matching traineddata files must be installed.
	Languages []string

	// TessdataPrefix overrides the directory Tesseract loads traineddata
	// from. Empty uses the system default (TESSDATA_PREFIX).
	TessdataPrefix string

	// PageSegMode overrides Tesseract's page segmentation mode. Zero keeps
	// the engine default.
	PageSegMode gosseract.PageSegMode

	// MaxInFlight caps concurrent Tesseract runs, counting runs whose caller
	// already gave up on a deadline. Zero uses runtime.NumCPU().
	MaxInFlight int
}

// Tesseract recognizes text with a local Tesseract install via gosseract.
//
// A new gosseract client is created per call, so a single Tesseract value
// is safe for concurrent use.
type Tesseract struct {
	cfg Config

	// slots holds one token per running Tesseract call.
	slots chan struct{}

	// run performs the OCR; replaced in tests.
	run func(data []byte) (string, error)
}

// NewTesseract creates an engine. Missing languages fall back to
// DefaultLanguages.
func NewTesseract(cfg Config) *Tesseract {
	if len(cfg.Languages) == 0 {
		cfg.Languages = append([]string(nil), DefaultLanguages...)
	}
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = runtime.NumCPU()
	}
	t := &Tesseract{
		cfg:   cfg,
		slots: make(chan struct{}, cfg.MaxInFlight),
	}
	t.run = t.recognizeBytes
	return t
}

// Languages returns the configured language codes.
func (t *Tesseract) Languages() []string {
	return append([]string(nil), t.cfg.Languages...)
}

// Recognize performs OCR on img and returns the trimmed text.
//
// Tesseract itself cannot be interrupted; when ctx ends first, Recognize
// returns ctx.Err() and the OCR call finishes in the background. Such a call
// keeps its slot until it finishes, so at most MaxInFlight runs exist at once
// and later calls wait for a free slot or for their own ctx to end.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := imaging.EncodePNG(img)
	if err != nil {
		return "", err
	}

	select {
	case t.slots <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	if _, ok := ctx.Deadline(); !ok {
		defer func() { <-t.slots }()
		return t.run(data)
	}

	type result struct {
		text string
		err  error
	}
	resCh := make(chan result, 1)
	go func() {
		defer func() { <-t.slots }()
		text, err := t.run(data)
		resCh <- result{text, err}
	}()

	select {
	case r := <-resCh:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// recognizeBytes runs Tesseract over an encoded image.
func (t *Tesseract) recognizeBytes(data []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if t.cfg.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.cfg.TessdataPrefix); err != nil {
			return "", fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}

	if err := client.SetLanguage(t.cfg.Languages...); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	if t.cfg.PageSegMode != 0 {
		if err := client.SetPageSegMode(t.cfg.PageSegMode); err != nil {
			return "", fmt.Errorf("failed to set page segmentation mode: %w", err)
		}
	}

	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// EngineInfo describes the OCR subsystem.
type EngineInfo struct {
	Available      bool     `json:"available"`
	Version        string   `json:"version,omitempty"`
	Error          string   `json:"error,omitempty"`
	Backend        string   `json:"backend"`
	Languages      []string `json:"languages"`
	TessdataPrefix string   `json:"tessdata_prefix,omitempty"`
}

// Info reports whether Tesseract can be used with the configured languages.
//
// Availability is probed by recognizing a tiny blank image, which makes
// Tesseract load every configured language.
func (t *Tesseract) Info() EngineInfo {
	info := EngineInfo{
		Backend:        "gosseract",
		Languages:      t.Languages(),
		TessdataPrefix: t.cfg.TessdataPrefix,
	}

	client := gosseract.NewClient()
	info.Version = client.Version()
	client.Close()

	probe := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range probe.Pix {
		probe.Pix[i] = 0xff
	}
	if _, err := t.Recognize(context.Background(), probe); err != nil {
		info.Error = err.Error()
		return info
	}

	info.Available = true
	return info
}
