// Command payequity analyzes pay equity compliance reports from files or as
// an HTTP service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "payequity",
	Short:         "Pay equity compliance analysis",
	Long:          "payequity checks a jurisdiction's job classes for compliance with comparable-worth pay equity rules.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
