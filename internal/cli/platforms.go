package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/bannercopy/internal/copygen"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List supported ad platforms and their limits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(out, struct {
				Platforms  []copygen.Platform  `json:"platforms"`
				Variations []copygen.Variation `json:"variations"`
			}{copygen.Platforms(), copygen.Variations()})
		}

		for _, p := range copygen.Platforms() {
			fmt.Fprintf(out, "%-7s %s  title ≤%-3d description ≤%-3d %s\n",
				p.Key, platformStyle(p).Render(p.Name), p.TitleLimit, p.DescriptionLimit, p.Color)
		}
		fmt.Fprintln(out)
		for _, v := range copygen.Variations() {
			fmt.Fprintf(out, "#%d %s (temperature %.1f): %s\n", v.ID, v.Name, v.Temperature, v.Strategy)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(platformsCmd)
}
