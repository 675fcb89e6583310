package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number and OCR engine status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		eng := newEngine(cfg)
		info := eng.Info()

		out := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(out, map[string]interface{}{
				"version":    version,
				"build_time": buildTime,
				"git_commit": gitCommit,
				"ocr":        info,
			})
		}

		fmt.Fprintf(out, "bannercopy %s\n", version)
		fmt.Fprintf(out, "  Build time: %s\n", buildTime)
		fmt.Fprintf(out, "  Git commit: %s\n", gitCommit)
		if info.Available {
			fmt.Fprintf(out, "  OCR:        %s %s (%s)\n", info.Backend, info.Version, strings.Join(info.Languages, "+"))
		} else {
			fmt.Fprintf(out, "  OCR:        unavailable: %s\n", info.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
