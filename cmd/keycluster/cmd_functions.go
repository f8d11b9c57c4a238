package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/keycluster"
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the available keyers and distance functions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg := keycluster.DefaultRegistry()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "binning:  %s\n", strings.Join(reg.KeyerNames(), ", "))
		fmt.Fprintf(out, "knn:      %s\n", strings.Join(reg.DistanceNames(), ", "))
		return nil
	},
}
