package cli

import (
	"fmt"

	"github.com/aipo-io/cli/internal/common"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "AI Prompt Optimizer CLI %s\n", common.GetVersion())
		fmt.Fprintf(out, "API: %s\n", cfg.API.GetURL())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
