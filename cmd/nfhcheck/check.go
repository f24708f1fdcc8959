package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rfielding/kripke-nfh/nfh"
)

type report struct {
	Verdict   string          `json:"verdict"`
	Witnesses []witnessReport `json:"witnesses,omitempty"`
	Undecided [][]string      `json:"undecided,omitempty"`
}

type witnessReport struct {
	ID         string   `json:"id"`
	Assignment []string `json:"assignment"`
	Start      string   `json:"start"`
	Steps      []string `json:"steps"`
	Final      string   `json:"final"`
	Expanded   int      `json:"expanded"`
}

func newReport(out nfh.Outcome) report {
	r := report{Verdict: out.Verdict.String()}
	for _, w := range out.Witnesses {
		wr := witnessReport{
			ID:         w.ID,
			Assignment: []string(w.Assignment),
			Start:      string(w.Start),
			Steps:      make([]string, 0, len(w.Transitions)),
			Final:      string(w.FinalState()),
			Expanded:   w.Stats.Expanded,
		}
		for _, t := range w.Transitions {
			wr.Steps = append(wr.Steps, t.String())
		}
		r.Witnesses = append(r.Witnesses, wr)
	}
	for _, u := range out.Undecided {
		r.Undecided = append(r.Undecided, []string(u))
	}
	return r
}

func (a *app) checkCmd() *cobra.Command {
	var (
		sf        searchFlags
		nfhPath   string
		wordsPath string
		format    string
		render    string
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check one hyperword against an automaton",
		Long: `Loads an automaton and a hyperword and decides membership.

Exit status: 0 accepted, 1 rejected, 2 inconclusive (a search timed out),
3 usage or load error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			aut, err := nfh.LoadDefinitionFile(nfhPath)
			if err != nil {
				return err
			}
			h, err := nfh.LoadHyperwordFile(wordsPath)
			if err != nil {
				return err
			}
			if sf.start != "" && !aut.HasState(nfh.State(sf.start)) {
				return fmt.Errorf("%w: --start %q is not a state", errUsage, sf.start)
			}
			opts, err := a.searchOptions(&sf)
			if err != nil {
				return err
			}

			out := nfh.CheckMembership(cmd.Context(), aut, h, opts...)
			a.exitCode = exitCodeFor(out.Verdict)

			switch format {
			case "json":
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(newReport(out))
			case "text":
				return writeOutcome(a.stdout, out, render)
			default:
				return fmt.Errorf("%w: unknown --format %q", errUsage, format)
			}
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVar(&nfhPath, "nfh", "", "automaton file (.txt, .json, .yaml)")
	cmd.Flags().StringVar(&wordsPath, "hyperword", "", "hyperword file (.txt, .json, .yaml)")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	cmd.Flags().StringVar(&render, "render", "text", "witness rendering for text output: none, text or mermaid")
	_ = cmd.MarkFlagRequired("nfh")
	_ = cmd.MarkFlagRequired("hyperword")
	return cmd
}

func writeOutcome(w io.Writer, out nfh.Outcome, render string) error {
	fmt.Fprintf(w, "verdict: %s\n", out)
	for _, u := range out.Undecided {
		fmt.Fprintf(w, "undecided: %s\n", u)
	}
	for _, run := range out.Witnesses {
		switch render {
		case "none":
			return nil
		case "text":
			fmt.Fprintf(w, "\n%s", run.Render())
		case "mermaid":
			fmt.Fprintln(w)
			if err := nfh.WriteRunMermaid(w, run); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: unknown --render %q", errUsage, render)
		}
	}
	return nil
}
