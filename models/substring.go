package models

import "github.com/rfielding/kripke-nfh/nfh"

// Substring is a single-track automaton guessing where "aba" starts.
type Substring struct{}

func (Substring) Name() string { return "substring" }

func (Substring) Description() string {
	return `A x. x contains "aba"; every word of the hyperword matches (a|b)*aba(a|b)*`
}

func (Substring) Definition() nfh.Definition {
	return nfh.Definition{
		States:    states("q0", "q1", "q2", "q3"),
		Initial:   states("q0"),
		Accepting: states("q3"),
		K:         1,
		Alphabet:  []rune{'a', 'b'},
		Alpha:     []nfh.Quantifier{nfh.ForAll},
		Delta: []nfh.Transition{
			tr("q0", "q0", "a"),
			tr("q0", "q0", "b"),
			tr("q0", "q1", "a"),
			tr("q1", "q2", "b"),
			tr("q2", "q3", "a"),
			tr("q3", "q3", "a"),
			tr("q3", "q3", "b"),
		},
	}
}

func (Substring) Samples() []Sample {
	return []Sample{
		{Words: []string{"bbababb", "ababa"}, Want: nfh.Accepted},
		{Words: []string{"bbababb", "aabbb"}, Want: nfh.Rejected},
		{Words: []string{}, Want: nfh.Accepted},
	}
}
