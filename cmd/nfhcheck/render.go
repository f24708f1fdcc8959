package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfielding/kripke-nfh/nfh"
)

func (a *app) renderCmd() *cobra.Command {
	var nfhPath, format string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an automaton as Mermaid, Graphviz DOT or the text format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			aut, err := nfh.LoadDefinitionFile(nfhPath)
			if err != nil {
				return err
			}
			switch format {
			case "mermaid":
				return nfh.WriteMermaid(a.stdout, aut)
			case "dot":
				return nfh.WriteDOT(a.stdout, aut)
			case "text":
				return nfh.Format(a.stdout, aut)
			default:
				return fmt.Errorf("%w: unknown --format %q", errUsage, format)
			}
		},
	}
	cmd.Flags().StringVar(&nfhPath, "nfh", "", "automaton file (.txt, .json, .yaml)")
	cmd.Flags().StringVar(&format, "format", "mermaid", "mermaid, dot or text")
	_ = cmd.MarkFlagRequired("nfh")
	return cmd
}
