package models

import "github.com/rfielding/kripke-nfh/nfh"

// Noninterference reads two equal-length traces in lockstep. Letters a and b
// are low-observable outputs, x and y are high (secret) inputs. Two traces
// agree when every position is either the same low letter or two high
// letters, so secrets never show through the low channel.
type Noninterference struct{}

func (Noninterference) Name() string { return "noninterference" }

func (Noninterference) Description() string {
	return "A x A y. x and y are low-equivalent; secrets x|y never change the a|b observations"
}

func (Noninterference) Definition() nfh.Definition {
	def := nfh.Definition{
		States:    states("q"),
		Initial:   states("q"),
		Accepting: states("q"),
		K:         2,
		Alphabet:  []rune{'a', 'b', 'x', 'y'},
		Alpha:     []nfh.Quantifier{nfh.ForAll, nfh.ForAll},
		Delta: []nfh.Transition{
			tr("q", "q", "a", "a"),
			tr("q", "q", "b", "b"),
		},
	}
	for _, h1 := range []string{"x", "y"} {
		for _, h2 := range []string{"x", "y"} {
			def.Delta = append(def.Delta, tr("q", "q", h1, h2))
		}
	}
	return def
}

func (Noninterference) Samples() []Sample {
	return []Sample{
		{Words: []string{"axb", "ayb"}, Want: nfh.Accepted},
		{Words: []string{"axb", "aya"}, Want: nfh.Rejected},
		{Words: []string{"ax", "axb"}, Want: nfh.Rejected},
	}
}
