package recognize

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/bannercopy/internal/segment"
)

// newBandedImage fills row y with gray level y, so a fake OCR engine can tell
// which strip it was handed from the first pixel. Heights must stay <= 256.
func newBandedImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		v := uint8(y)
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

func stripY(img image.Image) int {
	b := img.Bounds()
	return int(color.GrayModel.Convert(img.At(b.Min.X, b.Min.Y)).(color.Gray).Y)
}

// fakeOCR answers with the text registered for the strip's Y offset, or
// fails when the registered text is an error.
type fakeOCR struct {
	byY map[int]any
}

func (f fakeOCR) Recognize(_ context.Context, img image.Image) (string, error) {
	switch v := f.byY[stripY(img)].(type) {
	case string:
		return v, nil
	case error:
		return "", v
	default:
		return "", nil
	}
}

func TestRecognize_OneResultPerStripInInputOrder(t *testing.T) {
	strips, err := segment.Split(newBandedImage(100, 180)) // 3 strips: y 0, 60, 120
	require.NoError(t, err)
	require.Len(t, strips, 3)

	engine := fakeOCR{byY: map[int]any{0: "top", 60: "middle", 120: "bottom"}}
	results := Recognize(context.Background(), strips, engine)

	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, strips[i].ID, r.StripID)
		assert.Equal(t, strips[i].Y, r.Y)
		assert.False(t, r.Failed())
	}
	assert.Equal(t, "top", results[0].Text)
	assert.Equal(t, "middle", results[1].Text)
	assert.Equal(t, "bottom", results[2].Text)
}

func TestRecognize_FailureIsIsolated(t *testing.T) {
	strips, err := segment.Split(newBandedImage(100, 180))
	require.NoError(t, err)

	boom := errors.New("engine unavailable")
	engine := fakeOCR{byY: map[int]any{0: "first", 60: boom, 120: "third"}}
	results := Recognize(context.Background(), strips, engine)

	require.Len(t, results, 3)
	assert.Equal(t, "", results[1].Text)
	assert.ErrorIs(t, results[1].Err, boom)

	combined := Merge(results)
	assert.Equal(t, "Segment 1\nfirst\n\nSegment 3\nthird", combined)
	assert.NotContains(t, combined, "Segment 2")
}

func TestRecognize_NilEngine(t *testing.T) {
	strips, err := segment.Split(newBandedImage(100, 180))
	require.NoError(t, err)

	results := Recognize(context.Background(), strips, nil)

	require.Len(t, results, 3)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, ErrNoEngine)
		assert.Empty(t, r.Text)
	}
}

func TestRecognize_PanicBecomesFailure(t *testing.T) {
	strips, err := segment.Split(newBandedImage(100, 180))
	require.NoError(t, err)

	engine := OCRFunc(func(_ context.Context, img image.Image) (string, error) {
		if stripY(img) == 60 {
			panic("bad strip")
		}
		return "ok", nil
	})
	results := Recognize(context.Background(), strips, engine)

	require.Len(t, results, 3)
	assert.Equal(t, "ok", results[0].Text)
	assert.Error(t, results[1].Err)
	assert.Equal(t, "ok", results[2].Text)
}

func TestRecognize_StripTimeout(t *testing.T) {
	strips, err := segment.Split(newBandedImage(100, 180))
	require.NoError(t, err)

	engine := OCRFunc(func(ctx context.Context, img image.Image) (string, error) {
		if stripY(img) == 0 {
			<-ctx.Done()
			return "", ctx.Err()
		}
		return "fast", nil
	})
	results := Recognize(context.Background(), strips, engine, WithStripTimeout(10*time.Millisecond))

	assert.ErrorIs(t, results[0].Err, context.DeadlineExceeded)
	assert.Empty(t, results[0].Text)
	assert.Equal(t, "fast", results[1].Text)
	assert.Equal(t, "fast", results[2].Text)
}

func TestRecognize_CancelledContext(t *testing.T) {
	strips, err := segment.Split(newBandedImage(100, 180))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	engine := OCRFunc(func(context.Context, image.Image) (string, error) {
		calls.Add(1)
		return "never", nil
	})
	results := Recognize(ctx, strips, engine)

	require.Len(t, results, 3)
	assert.Zero(t, calls.Load())
	assert.Equal(t, NoTextSentinel, Merge(results))
}

func TestRecognize_ConcurrentWorkersKeepOrder(t *testing.T) {
	strips, err := segment.Split(newBandedImage(40, 240)) // ratio 6 -> 6 strips of 40 rows
	require.NoError(t, err)
	require.Len(t, strips, 6)

	var inFlight, maxInFlight atomic.Int32
	engine := OCRFunc(func(_ context.Context, img image.Image) (string, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		y := stripY(img)
		// Top strips finish last.
		time.Sleep(time.Duration(240-y) * 100 * time.Microsecond)
		return string(rune('A' + y/40)), nil
	})

	results := Recognize(context.Background(), strips, engine, WithWorkers(3))

	assert.LessOrEqual(t, maxInFlight.Load(), int32(3))
	assert.Equal(t,
		"Segment 1\nA\n\nSegment 2\nB\n\nSegment 3\nC\n\nSegment 4\nD\n\nSegment 5\nE\n\nSegment 6\nF",
		Merge(results))
}

func TestRecognize_Progress(t *testing.T) {
	strips, err := segment.Split(newBandedImage(100, 180))
	require.NoError(t, err)

	var mu sync.Mutex
	var dones, ids []int
	progress := func(done, total, stripID int) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 3, total)
		dones = append(dones, done)
		ids = append(ids, stripID)
	}

	Recognize(context.Background(), strips, fakeOCR{}, WithProgress(progress))

	assert.Equal(t, []int{1, 2, 3}, dones)
	assert.Equal(t, []int{1, 2, 3}, ids)
}

func TestRecognize_Preprocess(t *testing.T) {
	strips, err := segment.Split(newBandedImage(100, 100))
	require.NoError(t, err)

	var seen image.Rectangle
	engine := OCRFunc(func(_ context.Context, img image.Image) (string, error) {
		seen = img.Bounds()
		return "x", nil
	})
	shrink := func(img image.Image) image.Image {
		return image.NewGray(image.Rect(0, 0, 10, 10))
	}

	Recognize(context.Background(), strips, engine, WithPreprocess(shrink))

	assert.Equal(t, image.Rect(0, 0, 10, 10), seen)
}

func TestRecognize_MissingPixels(t *testing.T) {
	strips := []segment.Strip{{ID: 1, Y: 0, Width: 10, Height: 10}}

	results := Recognize(context.Background(), strips, fakeOCR{})

	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}
