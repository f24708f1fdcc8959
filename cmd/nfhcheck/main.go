// Command nfhcheck decides hyperword membership for NFH automata.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rfielding/kripke-nfh/internal/config"
	"github.com/rfielding/kripke-nfh/internal/logging"
	"github.com/rfielding/kripke-nfh/internal/telemetry"
	"github.com/rfielding/kripke-nfh/nfh"
)

const version = "0.3.0"

// Exit codes.
const (
	exitAccepted     = 0
	exitRejected     = 1
	exitInconclusive = 2
	exitError        = 3
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	configPath  string
	verbose     bool
	showMetrics bool
	trace       bool

	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *nfh.Metrics
	shutdown func(context.Context) error

	stdout, stderr io.Writer
	exitCode       int
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.finish()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return a.exitCode
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nfhcheck",
		Short: "Hyperproperty membership checker for NFH automata",
		Long: `nfhcheck decides whether a nondeterministic finite hyperautomaton (NFH)
accepts a finite set of words under its quantifier prefix.

An NFH reads k words in parallel; '#' in a transition leaves that track
untouched for the step. Each quantifier binds one track to a word of the
hyperword, Exists needing some binding and ForAll every binding.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "nfhcheck.yaml", "config file (missing file uses defaults)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&a.showMetrics, "metrics", false, "print a metrics table after the command")
	pf.BoolVar(&a.trace, "trace", false, "print OpenTelemetry spans to stderr")

	root.AddCommand(
		a.checkCmd(),
		a.batchCmd(),
		a.validateCmd(),
		a.renderCmd(),
		a.modelsCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger, err = logging.New(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}

	a.registry = prometheus.NewRegistry()
	a.metrics = nfh.NewMetrics(a.registry)

	if a.trace {
		a.shutdown, err = telemetry.InitTracer(a.stderr, version)
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
	}
	return nil
}

// finish flushes telemetry. It runs whether or not the command failed.
func (a *app) finish() {
	if a.showMetrics && a.registry != nil {
		table, err := telemetry.GenerateMetricsTable(a.registry)
		if err != nil {
			fmt.Fprintf(a.stderr, "metrics: %v\n", err)
		} else {
			fmt.Fprintf(a.stdout, "\n%s", table)
		}
	}
	if a.shutdown != nil {
		if err := a.shutdown(context.Background()); err != nil {
			fmt.Fprintf(a.stderr, "trace shutdown: %v\n", err)
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// searchFlags are the per-command overrides of the configured search.
type searchFlags struct {
	timeout   string
	noTimeout bool
	noMemo    bool
	sync      bool
	start     string
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.timeout, "timeout", "", "per-search timeout, e.g. 5s (default from config)")
	cmd.Flags().BoolVar(&f.noTimeout, "no-timeout", false, "search without a deadline")
	cmd.Flags().BoolVar(&f.noMemo, "no-memo", false, "disable memoization of resolved keys")
	cmd.Flags().BoolVar(&f.sync, "sync", false, "synchronous mode: '#' only past the end of a word")
	cmd.Flags().StringVar(&f.start, "start", "", "search from this state only")
}

func (a *app) searchOptions(f *searchFlags) ([]nfh.Option, error) {
	cfg := *a.cfg
	if f.timeout != "" {
		cfg.Search.Timeout = f.timeout
	}
	if f.noTimeout {
		cfg.Search.DisableTimeout = true
	}
	if f.noMemo {
		cfg.Search.DisableMemo = true
	}
	if f.sync {
		cfg.Search.Mode = nfh.Synchronous.String()
	}
	opts, err := cfg.SearchOptions()
	if err != nil {
		return nil, err
	}
	if f.start != "" {
		opts = append(opts, nfh.WithStartState(nfh.State(f.start)))
	}
	return append(opts, nfh.WithLogger(a.logger), nfh.WithMetrics(a.metrics)), nil
}

func exitCodeFor(v nfh.Verdict) int {
	switch v {
	case nfh.Accepted:
		return exitAccepted
	case nfh.Rejected:
		return exitRejected
	case nfh.Inconclusive:
		return exitInconclusive
	default:
		return exitError
	}
}

var errUsage = errors.New("usage")
