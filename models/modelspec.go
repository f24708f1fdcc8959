// Package models holds small built-in hyperproperty automata with sample
// hyperwords, used by the CLI and as regression fixtures.
package models

import (
	"context"
	"fmt"
	"sort"

	"github.com/rfielding/kripke-nfh/nfh"
)

// Sample is one hyperword to check against a model with its expected verdict.
type Sample struct {
	Words []string
	Want  nfh.Verdict
}

// ModelSpec is the small API that built-in models implement.
type ModelSpec interface {
	Name() string
	Description() string
	Definition() nfh.Definition
	Samples() []Sample
}

// Result pairs a sample with the outcome the checker produced for it.
type Result struct {
	Sample  Sample
	Outcome nfh.Outcome
}

// Matches reports whether the produced verdict is the expected one.
func (r Result) Matches() bool { return r.Outcome.Verdict == r.Sample.Want }

var registry = map[string]ModelSpec{}

func register(m ModelSpec) {
	if _, dup := registry[m.Name()]; dup {
		panic("models: duplicate model " + m.Name())
	}
	registry[m.Name()] = m
}

func init() {
	register(Concat{})
	register(Substring{})
	register(Alternation{})
	register(Alternation{Pruned: true})
	register(Noninterference{})
}

// All returns the registered models sorted by name.
func All() []ModelSpec {
	out := make([]ModelSpec, 0, len(registry))
	for _, m := range registry {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Lookup finds a model by name.
func Lookup(name string) (ModelSpec, bool) {
	m, ok := registry[name]
	return m, ok
}

// Build constructs the automaton of m.
func Build(m ModelSpec) (*nfh.NFH, error) {
	a, err := nfh.New(m.Definition())
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", m.Name(), err)
	}
	return a, nil
}

// Check runs every sample of m and returns the outcomes in sample order.
func Check(ctx context.Context, m ModelSpec, opts ...nfh.Option) ([]Result, error) {
	a, err := Build(m)
	if err != nil {
		return nil, err
	}
	samples := m.Samples()
	results := make([]Result, len(samples))
	for i, s := range samples {
		results[i] = Result{
			Sample:  s,
			Outcome: nfh.CheckMembership(ctx, a, nfh.NewHyperword(s.Words...), opts...),
		}
	}
	return results, nil
}

func states(names ...string) []nfh.State {
	out := make([]nfh.State, len(names))
	for i, n := range names {
		out[i] = nfh.State(n)
	}
	return out
}

func tr(from string, to string, syms ...string) nfh.Transition {
	return nfh.Transition{From: nfh.State(from), Symbols: nfh.Vec(syms...), To: nfh.State(to)}
}
