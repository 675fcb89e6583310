package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/ironsheep/bannercopy/internal/imaging"
	"github.com/ironsheep/bannercopy/internal/pipeline"
	"github.com/ironsheep/bannercopy/internal/recognize"
)

var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Extract text from a banner image",
	Long: `Cuts the image into horizontal strips based on its height/width ratio,
runs OCR on each strip and prints the text merged top to bottom, one labelled
block per strip. Strips that fail OCR are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

// extractSummary is the JSON form of an extraction.
type extractSummary struct {
	WorkflowID   string             `json:"workflow_id"`
	Path         string             `json:"path"`
	Format       string             `json:"format"`
	Width        int                `json:"width"`
	Height       int                `json:"height"`
	StripCount   int                `json:"strip_count"`
	Text         string             `json:"text"`
	Extracted    bool               `json:"extracted"`
	FailedStrips []int              `json:"failed_strips,omitempty"`
	Results      []recognize.Result `json:"results"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	svc, _ := newService()

	upload, wf, err := extractFile(cmd, svc, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, extractSummary{
			WorkflowID:   wf.ID,
			Path:         upload.Path,
			Format:       upload.Format,
			Width:        wf.Width,
			Height:       wf.Height,
			StripCount:   len(wf.Strips),
			Text:         wf.Combined,
			Extracted:    wf.Extracted(),
			FailedStrips: wf.FailedStrips(),
			Results:      wf.Results,
		})
	}

	fmt.Fprintln(out, wf.Combined)
	return nil
}

// extractFile loads path and runs text extraction, logging progress when
// debug logging is on.
func extractFile(cmd *cobra.Command, svc *pipeline.Service, path string) (*imaging.Upload, *recognize.Workflow, error) {
	upload, err := imaging.LoadUpload(path)
	if err != nil {
		return nil, nil, err
	}
	debugf("loaded %s: %dx%d %s, %d bytes, ratio %.2f",
		path, upload.Width, upload.Height, upload.Format, upload.SizeBytes, upload.AspectRatio())

	wf, err := svc.Extract(cmd.Context(), upload.Image, func(done, total, stripID int) {
		debugf("OCR %d/%d (strip %d)", done, total, stripID)
	})
	if err != nil {
		return nil, nil, err
	}
	if !wf.Extracted() {
		log.Printf("no text recognized in %s", path)
	}
	return upload, wf, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
