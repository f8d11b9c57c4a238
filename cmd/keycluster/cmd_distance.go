package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/keycluster"
	"github.com/hupe1980/keycluster/distance"
)

var distanceFlags struct {
	function string
}

var distanceCmd = &cobra.Command{
	Use:   "distance A B",
	Short: "Print the distance between two values",
	Args:  cobra.ExactArgs(2),
	RunE:  runDistance,
}

func init() {
	distanceCmd.Flags().StringVar(&distanceFlags.function, "function", distance.MetricPPM.String(), "Distance function name")
}

func runDistance(cmd *cobra.Command, args []string) error {
	d, err := keycluster.DefaultRegistry().Distance(distanceFlags.function)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%.4f\n", d(args[0], args[1]))
	return nil
}
