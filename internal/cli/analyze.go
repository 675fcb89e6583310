package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/bannercopy/internal/analysis"
	"github.com/ironsheep/bannercopy/internal/pipeline"
)

var analyzeTextFile string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image|->",
	Short: "Produce a marketing analysis of a banner",
	Long: `Extracts the banner's text (or reads it from stdin when the argument is
"-", or from --text-file) and asks the configured LLM for a marketing
analysis: product, core value, target customer, appeals, call to action,
pricing and keywords.`,
	Args: textSourceArgs(&analyzeTextFile),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeTextFile, "text-file", "", "read banner text from a file instead of an image")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	svc, _ := newService()
	if err := requireLLM(svc); err != nil {
		return err
	}

	text, err := bannerText(cmd, svc, args, analyzeTextFile)
	if err != nil {
		return err
	}

	report, err := svc.Analyze(cmd.Context(), text)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	printReport(cmd.OutOrStdout(), report)
	return nil
}

// textSourceArgs accepts one positional argument, or none when textFile is
// set.
func textSourceArgs(textFile *string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if *textFile != "" {
			return cobra.MaximumNArgs(0)(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	}
}

// bannerText returns the text to work on: the contents of textFile, stdin
// for "-", or the text extracted from the image argument.
func bannerText(cmd *cobra.Command, svc *pipeline.Service, args []string, textFile string) (string, error) {
	var text string
	switch {
	case textFile != "":
		data, err := os.ReadFile(textFile)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		text = string(data)
	case isStdin(args[0]):
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	default:
		_, wf, err := extractFile(cmd, svc, args[0])
		if err != nil {
			return "", err
		}
		if !wf.Extracted() {
			return "", fmt.Errorf("no text recognized in %s", args[0])
		}
		text = wf.Combined
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", analysis.ErrNoText
	}
	return text, nil
}

func printReport(w io.Writer, r *analysis.Report) {
	fmt.Fprintln(w, titleStyle.Render("Marketing analysis"))
	fmt.Fprintln(w)

	rows := []struct{ label, value string }{
		{"Product", r.ProductName},
		{"Core value", r.CoreValue},
		{"Target customer", r.TargetCustomer},
		{"Problem solved", r.ProblemSolved},
		{"Differentiator", r.Differentiator},
		{"Emotional appeal", r.EmotionalAppeal},
		{"Logical appeal", r.LogicalAppeal},
		{"Call to action", r.CallToAction},
	}
	if r.PricingStrategy != nil {
		rows = append(rows, struct{ label, value string }{"Pricing", *r.PricingStrategy})
	}
	rows = append(rows, struct{ label, value string }{"Keywords", strings.Join(r.Keywords, ", ")})

	for _, row := range rows {
		fmt.Fprintln(w, labelStyle.Render(row.label))
		fmt.Fprintln(w, sectionStyle.Render(row.value))
	}
}
