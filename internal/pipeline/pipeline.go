package pipeline

import (
	"context"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/ironsheep/bannercopy/internal/analysis"
	"github.com/ironsheep/bannercopy/internal/config"
	"github.com/ironsheep/bannercopy/internal/copygen"
	"github.com/ironsheep/bannercopy/internal/imaging"
	"github.com/ironsheep/bannercopy/internal/llm"
	"github.com/ironsheep/bannercopy/internal/recognize"
)

// Service runs the banner pipeline with one configuration. It holds no
// per-request state, so a single Service serves concurrent callers.
type Service struct {
	cfg      *config.Config
	engine   recognize.OCR
	provider llm.Provider

	// providerErr explains why provider is nil.
	providerErr error
}

// New creates a Service. provider may be nil, in which case analysis and
// copy generation fail with providerErr (or llm.ErrNoAPIKey when nil).
func New(cfg *config.Config, engine recognize.OCR, provider llm.Provider, providerErr error) *Service {
	if provider == nil && providerErr == nil {
		providerErr = llm.ErrNoAPIKey
	}
	return &Service{
		cfg:         cfg,
		engine:      engine,
		provider:    provider,
		providerErr: providerErr,
	}
}

// Config returns the configuration the service was built with.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// LLMAvailable reports whether analysis and copy generation can run.
func (s *Service) LLMAvailable() bool {
	return s.provider != nil
}

// LLMErr returns why analysis and copy generation are unavailable, or nil.
func (s *Service) LLMErr() error {
	if s.provider != nil {
		return nil
	}
	return s.providerErr
}

// RecognizeOptions translates the OCR configuration into recognize options.
func (s *Service) RecognizeOptions(progress recognize.ProgressFunc) []recognize.Option {
	opts := []recognize.Option{
		recognize.WithWorkers(s.cfg.OCR.Workers),
		recognize.WithLabel(s.cfg.OCR.SegmentLabel),
	}
	if s.cfg.OCR.TimeoutSec > 0 {
		opts = append(opts, recognize.WithStripTimeout(time.Duration(s.cfg.OCR.TimeoutSec)*time.Second))
	}
	if s.cfg.OCR.Preprocess {
		prep := imaging.DefaultPrepareOptions()
		opts = append(opts, recognize.WithPreprocess(func(img image.Image) image.Image {
			return imaging.PrepareForOCR(img, prep)
		}))
	}
	if progress != nil {
		opts = append(opts, recognize.WithProgress(progress))
	}
	return opts
}

// Extract segments img and recognizes its text.
func (s *Service) Extract(ctx context.Context, img image.Image, progress recognize.ProgressFunc) (*recognize.Workflow, error) {
	return recognize.Run(ctx, img, s.engine, s.RecognizeOptions(progress)...)
}

// Analyze runs the marketing analysis over text.
func (s *Service) Analyze(ctx context.Context, text string) (*analysis.Report, error) {
	if s.provider == nil {
		return nil, s.providerErr
	}
	return analysis.NewAnalyzer(s.provider).Analyze(ctx, text)
}

// GenerateRequest describes one copy generation run.
type GenerateRequest struct {
	Text         string
	Platforms    []string
	Requirements string

	// SkipAnalysis generates copy without the marketing analysis context.
	SkipAnalysis bool

	Progress copygen.ProgressFunc
}

// GenerateResult is the analysis (when it ran and succeeded) plus the copies.
type GenerateResult struct {
	Report *analysis.Report `json:"analysis,omitempty"`
	Copies *copygen.Result  `json:"copies"`
}

// Generate writes platform copy for req.Text. The analysis step is best
// effort: a failure is logged and generation continues without it.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if s.provider == nil {
		return nil, s.providerErr
	}

	res := &GenerateResult{}
	if !req.SkipAnalysis {
		report, err := s.Analyze(ctx, req.Text)
		if err != nil {
			log.Printf("pipeline: analysis skipped: %v", err)
		} else {
			res.Report = report
		}
	}

	var opts []copygen.Option
	if req.Progress != nil {
		opts = append(opts, copygen.WithProgress(req.Progress))
	}
	copies, err := copygen.NewGenerator(s.provider, opts...).Generate(ctx, req.Text, req.Platforms, req.Requirements, res.Report)
	if err != nil {
		return nil, fmt.Errorf("copy generation failed: %w", err)
	}
	res.Copies = copies
	return res, nil
}
