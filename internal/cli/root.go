package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/ironsheep/bannercopy/internal/config"
	"github.com/ironsheep/bannercopy/internal/llm"
	"github.com/ironsheep/bannercopy/internal/ocr"
	"github.com/ironsheep/bannercopy/internal/pipeline"
	"github.com/ironsheep/bannercopy/internal/recognize"
)

// Version information, set from main.
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

var (
	cfgFile    string
	verbose    bool
	jsonOutput bool

	cfg *config.Config
)

// engine is the OCR backend plus its self-report.
type engine interface {
	recognize.OCR
	Info() ocr.EngineInfo
}

// Constructors for the external backends. Tests swap these out.
var (
	newEngine = func(c *config.Config) engine {
		return ocr.NewTesseract(ocr.Config{
			Languages:      c.OCR.Languages,
			TessdataPrefix: c.OCR.TessdataPrefix,
		})
	}
	newProvider = func(c config.LLMConfig) (llm.Provider, error) {
		return llm.New(c)
	}
)

var rootCmd = &cobra.Command{
	Use:   "bannercopy",
	Short: "Extract banner text and write platform ad copy",
	Long: `bannercopy cuts a banner image into horizontal strips, runs OCR on each
strip, merges the text top to bottom and can turn it into a marketing
analysis and ad copy for Naver, Meta, Google and Kakao.

Analysis and copy generation need OPENAI_API_KEY (or ANTHROPIC_API_KEY with
BANNERCOPY_LLM_PROVIDER=anthropic). Settings are read from a TOML file
(--config or BANNERCOPY_CONFIG), a .env file and the environment.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output results as JSON")
}

// SetVersionInfo records build metadata for the version command and the MCP
// handshake.
func SetVersionInfo(v, built, commit string) {
	version, buildTime, gitCommit = v, built, commit
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(config.LoadOptions{ConfigFile: cfgFile})
	if err != nil {
		return err
	}
	if verbose {
		c.LogLevel = "debug"
	}
	cfg = c

	if cfg.Debug() {
		log.Printf("bannercopy %s (built %s, commit %s)", version, buildTime, gitCommit)
		log.Printf("config: sources=%v ocr=%v workers=%d timeout=%ds llm=%s/%s key=%s",
			cfg.Sources, cfg.OCR.Languages, cfg.OCR.Workers, cfg.OCR.TimeoutSec,
			cfg.LLM.Provider, cfg.LLM.Model, config.RedactKey(cfg.LLM.APIKey()))
	}
	return nil
}

// newService builds the pipeline for the loaded configuration. A missing
// API key is not an error here; only commands that need the LLM fail.
func newService() (*pipeline.Service, engine) {
	eng := newEngine(cfg)

	provider, err := newProvider(cfg.LLM)
	if err != nil {
		if cfg.Debug() {
			log.Printf("llm disabled: %v", err)
		}
		provider = nil
	}
	return pipeline.New(cfg, eng, provider, err), eng
}

// debugf logs only when debug logging is enabled.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug() {
		log.Printf(format, args...)
	}
}

// requireLLM fails fast when no provider could be built.
func requireLLM(svc *pipeline.Service) error {
	if err := svc.LLMErr(); err != nil {
		return fmt.Errorf("this command needs an LLM: %w", err)
	}
	return nil
}

func isStdin(arg string) bool {
	return arg == "-"
}
