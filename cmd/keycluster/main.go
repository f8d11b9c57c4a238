package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/keycluster"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "keycluster",
	Short: "Find approximate duplicates in a column of values",
	Long: "keycluster groups values that likely denote the same entity,\n" +
		"by exact key (binning) or by distance within a radius (knn).",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(clusterCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(distanceCmd)
	rootCmd.AddCommand(functionsCmd)
	rootCmd.Version = version
}

// exitCode maps configuration errors to 2 and input errors to 3.
func exitCode(err error) int {
	switch {
	case errors.Is(err, keycluster.ErrConfiguration):
		return 2
	case errors.Is(err, keycluster.ErrInput):
		return 3
	default:
		return 1
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
