package pipeline

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/bannercopy/internal/config"
	"github.com/ironsheep/bannercopy/internal/llm"
	"github.com/ironsheep/bannercopy/internal/recognize"
)

type widthRecorder struct {
	mu     sync.Mutex
	widths []int
}

func (w *widthRecorder) Recognize(_ context.Context, img image.Image) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.widths = append(w.widths, img.Bounds().Dx())
	return "SALE", nil
}

// chatFunc adapts a function to llm.Provider.
type chatFunc func(req llm.ChatRequest) (string, error)

func (f chatFunc) Name() string { return "func" }

func (f chatFunc) ChatCompletion(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	content, err := f(req)
	if err != nil {
		return nil, err
	}
	return &llm.ChatResponse{Content: content}, nil
}

func solid(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.OCR.Preprocess = false
	cfg.OCR.SegmentLabel = "구간"
	return cfg
}

func TestExtract(t *testing.T) {
	rec := &widthRecorder{}
	svc := New(testConfig(), rec, nil, nil)

	var reported []int
	wf, err := svc.Extract(context.Background(), solid(100, 200), func(done, total, stripID int) {
		reported = append(reported, done)
	})
	require.NoError(t, err)

	require.Len(t, wf.Strips, 3)
	assert.Equal(t, "구간 1\nSALE\n\n구간 2\nSALE\n\n구간 3\nSALE", wf.Combined)
	assert.Equal(t, []int{100, 100, 100}, rec.widths)
	assert.Equal(t, []int{1, 2, 3}, reported)
}

func TestExtract_Preprocess(t *testing.T) {
	cfg := testConfig()
	cfg.OCR.Preprocess = true
	rec := &widthRecorder{}

	_, err := New(cfg, rec, nil, nil).Extract(context.Background(), solid(100, 50), nil)
	require.NoError(t, err)

	assert.Equal(t, []int{800}, rec.widths, "narrow strips are upscaled before OCR")
}

func TestExtract_InvalidImage(t *testing.T) {
	_, err := New(testConfig(), &widthRecorder{}, nil, nil).Extract(context.Background(), image.NewNRGBA(image.Rect(0, 0, 0, 0)), nil)
	assert.Error(t, err)
}

func TestNoProvider(t *testing.T) {
	svc := New(testConfig(), &widthRecorder{}, nil, nil)
	assert.False(t, svc.LLMAvailable())

	_, err := svc.Analyze(context.Background(), "text")
	assert.ErrorIs(t, err, llm.ErrNoAPIKey)

	_, err = svc.Generate(context.Background(), GenerateRequest{Text: "text", Platforms: []string{"naver"}})
	assert.ErrorIs(t, err, llm.ErrNoAPIKey)

	custom := errors.New("provider misconfigured")
	_, err = New(testConfig(), &widthRecorder{}, nil, custom).Analyze(context.Background(), "text")
	assert.ErrorIs(t, err, custom)
}

func TestGenerate_WithAnalysis(t *testing.T) {
	var mu sync.Mutex
	var prompts []string
	provider := chatFunc(func(req llm.ChatRequest) (string, error) {
		mu.Lock()
		prompts = append(prompts, req.Messages[0].Content)
		mu.Unlock()
		if req.MaxTokens == 800 {
			return "제품명: 토너\n핵심가치: 진정 효과", nil
		}
		return "제목: 진정 토너\n설명: 하루 종일 촉촉", nil
	})
	svc := New(testConfig(), &widthRecorder{}, provider, nil)
	require.True(t, svc.LLMAvailable())

	res, err := svc.Generate(context.Background(), GenerateRequest{
		Text:      "토너 세일",
		Platforms: []string{"naver"},
	})
	require.NoError(t, err)

	require.NotNil(t, res.Report)
	assert.Equal(t, "토너", res.Report.ProductName)
	require.Len(t, res.Copies.Platforms, 1)
	assert.Equal(t, "진정 토너", res.Copies.Platforms[0].Copies[0].Title)

	require.Len(t, prompts, 4)
	assert.Contains(t, prompts[1], "진정 효과", "copy prompts carry the analysis")
}

func TestGenerate_AnalysisFailureIsNotFatal(t *testing.T) {
	provider := chatFunc(func(req llm.ChatRequest) (string, error) {
		if req.MaxTokens == 800 {
			return "", errors.New("analysis unavailable")
		}
		return "제목: t\n설명: d", nil
	})

	res, err := New(testConfig(), &widthRecorder{}, provider, nil).Generate(context.Background(), GenerateRequest{
		Text:      "text",
		Platforms: []string{"meta", "kakao"},
	})
	require.NoError(t, err)

	assert.Nil(t, res.Report)
	assert.Len(t, res.Copies.Platforms, 2)
	assert.Zero(t, res.Copies.Failures())
}

func TestGenerate_SkipAnalysis(t *testing.T) {
	calls := 0
	provider := chatFunc(func(req llm.ChatRequest) (string, error) {
		calls++
		assert.NotEqual(t, 800, req.MaxTokens)
		return "제목: t\n설명: d", nil
	})

	res, err := New(testConfig(), &widthRecorder{}, provider, nil).Generate(context.Background(), GenerateRequest{
		Text:         "text",
		Platforms:    []string{"google"},
		SkipAnalysis: true,
	})
	require.NoError(t, err)

	assert.Nil(t, res.Report)
	assert.Equal(t, 3, calls)
}

func TestGenerate_UnknownPlatform(t *testing.T) {
	provider := chatFunc(func(llm.ChatRequest) (string, error) { return "", nil })

	_, err := New(testConfig(), &widthRecorder{}, provider, nil).Generate(context.Background(), GenerateRequest{
		Text:         "text",
		Platforms:    []string{"friendster"},
		SkipAnalysis: true,
	})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "friendster"))
}

func TestRecognizeOptions_Defaults(t *testing.T) {
	cfg := config.Default()
	svc := New(cfg, recognize.OCRFunc(func(context.Context, image.Image) (string, error) { return "x", nil }), nil, nil)

	// workers, label, timeout and preprocess
	assert.Len(t, svc.RecognizeOptions(nil), 4)
	assert.Len(t, svc.RecognizeOptions(func(int, int, int) {}), 5)
}
