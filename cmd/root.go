package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pesection",
	Short: "Inspect and extract PE sections",
	Long: `pesection works on the section table of a Portable Executable file.

It reads section headers directly from the file, so it keeps working on
truncated or otherwise malformed binaries that stricter parsers reject.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
