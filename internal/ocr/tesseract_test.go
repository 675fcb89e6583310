package ocr

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/bannercopy/internal/recognize"
)

// drawText draws text on an image using basicfont
func drawText(img *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// renderLines renders one line of text per band of bandHeight rows and then
// scales the result up so Tesseract can read basicfont glyphs.
func renderLines(lines []string, bandHeight, scale int) *image.RGBA {
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}
	width := maxLen*7 + 40
	height := bandHeight * len(lines)

	small := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	for i, line := range lines {
		drawText(small, 20, i*bandHeight+bandHeight/2+5, line, color.Black)
	}

	img := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := small.At(x, y)
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.Set(x*scale+dx, y*scale+dy, c)
				}
			}
		}
	}
	return img
}

// englishEngine returns an eng-only engine, skipping the test when Tesseract
// or its English data is not installed.
func englishEngine(t *testing.T) *Tesseract {
	t.Helper()

	engine := NewTesseract(Config{Languages: []string{"eng"}})
	if info := engine.Info(); !info.Available {
		t.Skipf("Tesseract not available: %s", info.Error)
	}
	return engine
}

func TestNewTesseract_DefaultLanguages(t *testing.T) {
	engine := NewTesseract(Config{})

	got := engine.Languages()
	if strings.Join(got, "+") != "kor+eng" {
		t.Errorf("Languages: got %v, want [kor eng]", got)
	}

	// The returned slice is a copy.
	got[0] = "xxx"
	if engine.Languages()[0] != "kor" {
		t.Error("Languages exposed internal slice")
	}
}

func TestNewTesseract_DoesNotAliasDefaults(t *testing.T) {
	engine := NewTesseract(Config{})
	engine.cfg.Languages[0] = "jpn"

	if DefaultLanguages[0] != "kor" {
		t.Errorf("DefaultLanguages modified: %v", DefaultLanguages)
	}
}

func TestRecognize_CancelledContext(t *testing.T) {
	engine := NewTesseract(Config{Languages: []string{"eng"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Recognize(ctx, image.NewGray(image.Rect(0, 0, 4, 4)))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error: got %v, want context.Canceled", err)
	}
}

func TestRecognize_RealText(t *testing.T) {
	engine := englishEngine(t)

	img := renderLines([]string{"HELLO WORLD"}, 40, 4)

	text, err := engine.Recognize(context.Background(), img)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if !strings.Contains(strings.ToUpper(text), "HELLO") {
		t.Errorf("text: got %q, want it to contain HELLO", text)
	}
	if text != strings.TrimSpace(text) {
		t.Errorf("text not trimmed: %q", text)
	}
}

func TestRecognize_WithDeadline(t *testing.T) {
	engine := englishEngine(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	text, err := engine.Recognize(ctx, renderLines([]string{"SALE"}, 40, 4))
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if !strings.Contains(strings.ToUpper(text), "SALE") {
		t.Errorf("text: got %q, want it to contain SALE", text)
	}
}

func TestRecognize_BlankImage(t *testing.T) {
	engine := englishEngine(t)

	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	text, err := engine.Recognize(context.Background(), img)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if text != "" {
		t.Logf("blank image produced %q", text)
	}
}

func TestRecognize_InvalidLanguage(t *testing.T) {
	englishEngine(t)

	engine := NewTesseract(Config{Languages: []string{"invalid_language_code_xyz"}})
	_, err := engine.Recognize(context.Background(), renderLines([]string{"TEXT"}, 40, 2))
	if err == nil {
		t.Error("Recognize should fail for a language without traineddata")
	}
}

func TestInfo_ReportsBackend(t *testing.T) {
	info := NewTesseract(Config{Languages: []string{"eng"}}).Info()

	if info.Backend != "gosseract" {
		t.Errorf("Backend: got %s, want gosseract", info.Backend)
	}
	if !info.Available && info.Error == "" {
		t.Error("unavailable engine should report an error")
	}
}

func TestTesseract_InPipeline(t *testing.T) {
	engine := englishEngine(t)

	// Six 40-row bands on a 117px wide canvas give a ratio of ~2, so the
	// image is split into three strips with two lines each.
	lines := []string{"FIRST LINE", "SECOND LINE", "THIRD LINE", "FOURTH LINE", "FIFTH LINE", "SIXTH LINE"}
	img := renderLines(lines, 40, 4)
	if ratio := float64(img.Bounds().Dy()) / float64(img.Bounds().Dx()); ratio < 1.5 {
		t.Fatalf("test image ratio %.2f does not trigger segmentation", ratio)
	}

	combined, err := recognize.SegmentAndRecognize(context.Background(), img, engine)
	if err != nil {
		t.Fatalf("SegmentAndRecognize failed: %v", err)
	}

	upper := strings.ToUpper(combined)
	first := strings.Index(upper, "FIRST")
	sixth := strings.Index(upper, "SIXTH")
	if first < 0 || sixth < 0 {
		t.Skipf("OCR did not read the rendered lines reliably: %q", combined)
	}
	if first > sixth {
		t.Errorf("text out of order: %q", combined)
	}
}

func TestNewTesseract_DefaultMaxInFlight(t *testing.T) {
	engine := NewTesseract(Config{})
	if engine.cfg.MaxInFlight <= 0 {
		t.Errorf("MaxInFlight: got %d, want > 0", engine.cfg.MaxInFlight)
	}
	if cap(engine.slots) != engine.cfg.MaxInFlight {
		t.Errorf("slots: got %d, want %d", cap(engine.slots), engine.cfg.MaxInFlight)
	}
}

func TestRecognize_TimedOutRunsHoldSlots(t *testing.T) {
	engine := NewTesseract(Config{Languages: []string{"eng"}, MaxInFlight: 1})

	release := make(chan struct{})
	var calls atomic.Int32
	engine.run = func([]byte) (string, error) {
		if calls.Add(1) == 1 {
			<-release
		}
		return "done", nil
	}
	img := image.NewGray(image.Rect(0, 0, 4, 4))

	// The first call times out while its run is still blocked.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := engine.Recognize(ctx, img); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("first call: got %v, want context.DeadlineExceeded", err)
	}

	// The abandoned run still holds the only slot, so no second run starts.
	ctx2, cancel2 := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel2()
	if _, err := engine.Recognize(ctx2, img); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("second call: got %v, want context.DeadlineExceeded", err)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("runs started: got %d, want 1", n)
	}

	close(release)

	text, err := engine.Recognize(context.Background(), img)
	if err != nil {
		t.Fatalf("Recognize after release failed: %v", err)
	}
	if text != "done" {
		t.Errorf("text: got %q, want %q", text, "done")
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("runs started: got %d, want 2", n)
	}
}
