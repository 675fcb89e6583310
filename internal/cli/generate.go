package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/bannercopy/internal/copygen"
	"github.com/ironsheep/bannercopy/internal/pipeline"
)

var (
	generatePlatforms    string
	generateRequirements string
	generateTextFile     string
	generateSkipAnalysis bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <image|->",
	Short: "Write ad copy for a banner",
	Long: `Extracts the banner's text, runs the marketing analysis and writes a title
and description for every selected platform in three variations (safe,
optimized, bold). Each copy is checked against the platform's character
limits.

Examples:
  bannercopy generate banner.png --platform naver,kakao
  bannercopy generate - --platform meta < banner.txt
  bannercopy generate --text-file banner.txt --requirements "20대 여성 타겟"`,
	Args: textSourceArgs(&generateTextFile),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generatePlatforms, "platform", "p", platformList(), "comma-separated target platforms")
	generateCmd.Flags().StringVarP(&generateRequirements, "requirements", "r", "", "extra instructions for the copywriter")
	generateCmd.Flags().StringVar(&generateTextFile, "text-file", "", "read banner text from a file instead of an image")
	generateCmd.Flags().BoolVar(&generateSkipAnalysis, "skip-analysis", false, "write copy without the marketing analysis")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	svc, _ := newService()
	if err := requireLLM(svc); err != nil {
		return err
	}
	// Validate platforms before spending an OCR pass.
	platforms := splitPlatforms(generatePlatforms)
	if len(platforms) == 0 {
		return copygen.ErrNoPlatforms
	}
	if _, err := copygen.Resolve(platforms); err != nil {
		return err
	}

	text, err := bannerText(cmd, svc, args, generateTextFile)
	if err != nil {
		return err
	}

	res, err := svc.Generate(cmd.Context(), pipeline.GenerateRequest{
		Text:         text,
		Platforms:    platforms,
		Requirements: generateRequirements,
		SkipAnalysis: generateSkipAnalysis,
		Progress: func(done, total int, platform, variation string) {
			debugf("copy %d/%d (%s %s)", done, total, platform, variation)
		},
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, res)
	}

	if res.Report != nil {
		printReport(out, res.Report)
		fmt.Fprintln(out)
	}
	printCopies(out, res.Copies)
	if n := res.Copies.Failures(); n > 0 {
		fmt.Fprintf(out, "\n%s\n", overStyle.Render(fmt.Sprintf("%d copy request(s) failed", n)))
	}
	return nil
}

func printCopies(w io.Writer, res *copygen.Result) {
	for i, pc := range res.Platforms {
		if i > 0 {
			fmt.Fprintln(w)
		}
		p := pc.Platform
		fmt.Fprintf(w, "%s %s\n", platformStyle(p).Render(p.Name),
			labelStyle.Render(fmt.Sprintf("title ≤%d, description ≤%d", p.TitleLimit, p.DescriptionLimit)))

		for _, c := range pc.Copies {
			fmt.Fprintf(w, "\n%s\n", titleStyle.Render(fmt.Sprintf("#%d %s", c.VariationID, c.Variation)))
			fmt.Fprintf(w, "  %s %s  %s\n", labelStyle.Render("Title"), c.Title, lengthBadge(c.TitleRunes, p.TitleLimit))
			fmt.Fprintf(w, "  %s %s  %s\n", labelStyle.Render("Description"), c.Description,
				lengthBadge(c.DescriptionRunes, p.DescriptionLimit))
		}
	}
}

// platformList is the default --platform value.
func platformList() string {
	return strings.Join(copygen.Keys(), ",")
}

func splitPlatforms(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
