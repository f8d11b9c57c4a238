package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/keycluster"
	"github.com/hupe1980/keycluster/keyer"
)

var keyFlags struct {
	function  string
	ngramSize int
}

var keyCmd = &cobra.Command{
	Use:   "key VALUE...",
	Short: "Print the key of each value",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runKey,
}

func init() {
	f := keyCmd.Flags()
	f.StringVar(&keyFlags.function, "function", string(keyer.NameFingerprint), "Keyer name")
	f.IntVar(&keyFlags.ngramSize, "ngram-size", 0, "Gram size for ngram-fingerprint (0 = default)")
}

func runKey(cmd *cobra.Command, args []string) error {
	k, err := keycluster.DefaultRegistry().Keyer(keyFlags.function)
	if err != nil {
		return err
	}

	var params []any
	if cmd.Flags().Changed("ngram-size") {
		params = append(params, keyFlags.ngramSize)
	}
	fn, err := keyer.Bind(k, params...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, v := range args {
		fmt.Fprintf(out, "%s\t%s\n", v, fn(v))
	}
	return nil
}
