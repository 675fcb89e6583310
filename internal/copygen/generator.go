package copygen

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ironsheep/bannercopy/internal/analysis"
	"github.com/ironsheep/bannercopy/internal/llm"
)

// MaxTokens bounds each copy response.
const MaxTokens = 300

var (
	// ErrNoPlatforms is returned when no platform was requested.
	ErrNoPlatforms = errors.New("at least one platform is required")

	// ErrNoText is returned when there is no banner text to write copy for.
	ErrNoText = errors.New("no text to generate copy from")
)

// PlatformCopies holds the copies written for one platform, one per
// variation in variation order.
type PlatformCopies struct {
	Platform Platform `json:"platform"`
	Copies   []Copy   `json:"copies"`
}

// Result is the output of one generation run, in request order.
type Result struct {
	Platforms []PlatformCopies `json:"platforms"`
}

// Failures counts placeholder copies across all platforms.
func (r *Result) Failures() int {
	n := 0
	for _, pc := range r.Platforms {
		for _, c := range pc.Copies {
			if c.Failed() {
				n++
			}
		}
	}
	return n
}

// ProgressFunc is called after each copy resolves.
type ProgressFunc func(done, total int, platform string, variation string)

// Generator writes ad copy through an llm.Provider.
type Generator struct {
	provider llm.Provider
	progress ProgressFunc
}

// Option configures a Generator.
type Option func(*Generator)

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(g *Generator) { g.progress = fn }
}

// NewGenerator creates a Generator backed by provider.
func NewGenerator(provider llm.Provider, opts ...Option) *Generator {
	g := &Generator{provider: provider}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate writes one copy per variation for each requested platform.
//
// Platform keys are validated before any request is made. A failed chat call
// does not abort the run: that slot gets a placeholder copy carrying the
// error. report and requirements are optional context for the prompt.
// Cancelling ctx stops the run and returns ctx's error.
func (g *Generator) Generate(ctx context.Context, text string, platformKeys []string, requirements string, report *analysis.Report) (*Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoText
	}
	if len(platformKeys) == 0 {
		return nil, ErrNoPlatforms
	}
	targets, err := Resolve(platformKeys)
	if err != nil {
		return nil, err
	}

	vars := Variations()
	total := len(targets) * len(vars)
	done := 0

	result := &Result{Platforms: make([]PlatformCopies, 0, len(targets))}
	for _, p := range targets {
		pc := PlatformCopies{Platform: p, Copies: make([]Copy, 0, len(vars))}
		for _, v := range vars {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			c, err := g.generateOne(ctx, p, v, text, requirements, report)
			if err != nil {
				log.Printf("copygen: %s/%s generation failed: %v", p.Key, v.Name, err)
				c = failedCopy(p, v, err)
			}
			pc.Copies = append(pc.Copies, c)

			done++
			if g.progress != nil {
				g.progress(done, total, p.Key, v.Name)
			}
		}
		result.Platforms = append(result.Platforms, pc)
	}
	return result, nil
}

func (g *Generator) generateOne(ctx context.Context, p Platform, v Variation, text, requirements string, report *analysis.Report) (Copy, error) {
	resp, err := g.provider.ChatCompletion(ctx, llm.ChatRequest{
		Messages:    []llm.Message{llm.User(Prompt(p, v, text, requirements, report))},
		Temperature: v.Temperature,
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		return Copy{}, fmt.Errorf("chat completion: %w", err)
	}

	title, description := ParseCopy(strings.TrimSpace(resp.Content), v)
	return newCopy(p, v, title, description), nil
}
