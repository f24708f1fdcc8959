package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfielding/kripke-nfh/nfh"
)

func (a *app) validateCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Parse and validate an automaton without checking anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			aut, err := nfh.LoadDefinitionFile(args[0])
			if err != nil {
				return err
			}
			if quiet {
				fmt.Fprintf(a.stdout, "%s: ok\n", args[0])
				return nil
			}
			fmt.Fprintf(a.stdout, "%s: ok\n%s", args[0], aut)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print ok")
	return cmd
}
