package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "worker",
	Short:         "Background jobs for the DocuSphere storefront",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	rootCmd.AddCommand(digestCmd, scheduleCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
