package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rfielding/kripke-nfh/models"
	"github.com/rfielding/kripke-nfh/nfh"
)

func (a *app) modelsCmd() *cobra.Command {
	var (
		sf     searchFlags
		report bool
	)
	cmd := &cobra.Command{
		Use:   "models [NAME]",
		Short: "List built-in models or run one on its sample hyperwords",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
				for _, m := range models.All() {
					fmt.Fprintf(tw, "%s\t%s\n", m.Name(), m.Description())
				}
				return tw.Flush()
			}

			m, ok := models.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w: unknown model %q", errUsage, args[0])
			}
			opts, err := a.searchOptions(&sf)
			if err != nil {
				return err
			}
			results, err := models.Check(cmd.Context(), m, opts...)
			if err != nil {
				return err
			}

			worst := nfh.Accepted
			for _, r := range results {
				switch {
				case r.Outcome.Verdict == nfh.Inconclusive:
					worst = nfh.Inconclusive
				case !r.Matches():
					worst = worse(worst, nfh.Rejected)
				}
			}
			a.exitCode = exitCodeFor(worst)

			if report {
				aut, err := models.Build(m)
				if err != nil {
					return err
				}
				md, err := models.GenerateReport(m, aut, results)
				if err != nil {
					return err
				}
				fmt.Fprint(a.stdout, md)
				return nil
			}

			fmt.Fprintf(a.stdout, "%s: %s\n", m.Name(), m.Description())
			for _, r := range results {
				status := "ok"
				if !r.Matches() {
					status = "MISMATCH"
				}
				fmt.Fprintf(a.stdout, "  %s  want %s  got %s  %s\n",
					nfh.NewHyperword(r.Sample.Words...), r.Sample.Want, r.Outcome.Verdict, status)
			}
			return nil
		},
	}
	sf.register(cmd)
	cmd.Flags().BoolVar(&report, "report", false, "print a markdown report with the automaton diagram")
	return cmd
}
