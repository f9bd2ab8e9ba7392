package cmd

import (
	"fmt"

	"panebar/internal/version"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Long:        `Print the version, commit hash, and build date of panebar.`,
	Annotations: map[string]string{"config": "skip"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get().Full())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
