package main

import (
	"os"

	"github.com/spf13/cobra"

	"sable/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sable",
	Short: "Sable front-end debug toolchain",
	Long:  `Inspection tools for the Sable front end: lowered SIL types and parser state`,
}

func main() {
	rootCmd.Version = version.Plain()

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
