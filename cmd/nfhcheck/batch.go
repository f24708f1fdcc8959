package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rfielding/kripke-nfh/nfh"
)

func (a *app) batchCmd() *cobra.Command {
	var (
		sf       searchFlags
		nfhPath  string
		parallel int
	)
	cmd := &cobra.Command{
		Use:   "batch --nfh FILE HYPERWORD...",
		Short: "Check several hyperwords concurrently",
		Long: `Checks every hyperword file against one automaton, printing one verdict
line per file in argument order. The exit status is the worst verdict:
inconclusive over rejected over accepted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			aut, err := nfh.LoadDefinitionFile(nfhPath)
			if err != nil {
				return err
			}
			opts, err := a.searchOptions(&sf)
			if err != nil {
				return err
			}
			if parallel <= 0 {
				parallel = a.cfg.Batch.Parallel
			}

			outcomes := make([]nfh.Outcome, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(parallel)
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					h, err := nfh.LoadHyperwordFile(path)
					if err != nil {
						return err
					}
					outcomes[i] = nfh.CheckMembership(ctx, aut, h, opts...)
					a.logger.Debug("batch item checked",
						zap.String("hyperword", path),
						zap.Stringer("verdict", outcomes[i].Verdict))
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			worst := nfh.Accepted
			for i, out := range outcomes {
				fmt.Fprintf(a.stdout, "%s: %s\n", args[i], out)
				worst = worse(worst, out.Verdict)
			}
			a.exitCode = exitCodeFor(worst)
			return nil
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVar(&nfhPath, "nfh", "", "automaton file (.txt, .json, .yaml)")
	cmd.Flags().IntVar(&parallel, "parallel", 0, "concurrent checks (default from config)")
	_ = cmd.MarkFlagRequired("nfh")
	return cmd
}

// worse orders verdicts Accepted < Rejected < Inconclusive.
func worse(a, b nfh.Verdict) nfh.Verdict {
	rank := func(v nfh.Verdict) int {
		switch v {
		case nfh.Accepted:
			return 0
		case nfh.Rejected:
			return 1
		default:
			return 2
		}
	}
	if rank(b) > rank(a) {
		return b
	}
	return a
}
