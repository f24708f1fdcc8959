package models

import "github.com/rfielding/kripke-nfh/nfh"

// Concat accepts (x, y, z) when z is x followed by y. Track 2 idles while x
// is copied into z, then track 1 idles while y is.
type Concat struct{}

func (Concat) Name() string { return "concat" }

func (Concat) Description() string {
	return "E x E y E z. z = xy over {a, b}; the hyperword holds some concatenation of two of its words"
}

func (Concat) Definition() nfh.Definition {
	def := nfh.Definition{
		States:    states("q_x", "q_y", "q_acc"),
		Initial:   states("q_x"),
		Accepting: states("q_acc"),
		K:         3,
		Alphabet:  []rune{'a', 'b'},
		Alpha:     []nfh.Quantifier{nfh.Exists, nfh.Exists, nfh.Exists},
	}
	for _, c := range []string{"a", "b"} {
		def.Delta = append(def.Delta,
			tr("q_x", "q_x", c, "#", c),
			tr("q_x", "q_y", "#", c, c),
			tr("q_y", "q_y", "#", c, c),
		)
	}
	def.Delta = append(def.Delta, tr("q_y", "q_acc", "#", "#", "#"))
	return def
}

func (Concat) Samples() []Sample {
	return []Sample{
		{Words: []string{"a", "b", "ab"}, Want: nfh.Accepted},
		{Words: []string{"a", "b"}, Want: nfh.Rejected},
		{Words: []string{"ab", "ba"}, Want: nfh.Rejected},
	}
}
