package models

import "github.com/rfielding/kripke-nfh/nfh"

// Alternation relates single-letter words. The full relation holds every
// pair except (b, b); the pruned one also drops (a, b), which flips the
// verdict of E x A y while A x E y still holds.
type Alternation struct {
	Pruned bool
}

func (m Alternation) Name() string {
	if m.Pruned {
		return "alternation-pruned"
	}
	return "alternation"
}

func (m Alternation) Description() string {
	if m.Pruned {
		return "E x A y. R(x, y) with R = {(a,a), (b,a)}; no x relates to every y"
	}
	return "A x E y. R(x, y) with R = {(a,a), (a,b), (b,a)}"
}

func (m Alternation) Definition() nfh.Definition {
	def := nfh.Definition{
		States:    states("q0", "q1"),
		Initial:   states("q0"),
		Accepting: states("q1"),
		K:         2,
		Alphabet:  []rune{'a', 'b'},
		Alpha:     []nfh.Quantifier{nfh.ForAll, nfh.Exists},
		Delta: []nfh.Transition{
			tr("q0", "q1", "a", "a"),
			tr("q0", "q1", "b", "a"),
		},
	}
	if m.Pruned {
		def.Alpha = []nfh.Quantifier{nfh.Exists, nfh.ForAll}
	} else {
		def.Delta = append(def.Delta, tr("q0", "q1", "a", "b"))
	}
	return def
}

func (m Alternation) Samples() []Sample {
	if m.Pruned {
		return []Sample{
			{Words: []string{"a", "b"}, Want: nfh.Rejected},
			{Words: []string{"a"}, Want: nfh.Accepted},
		}
	}
	return []Sample{
		{Words: []string{"a", "b"}, Want: nfh.Accepted},
		{Words: []string{"b"}, Want: nfh.Rejected},
	}
}
