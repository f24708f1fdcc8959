package nfh

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleA() Definition {
	return Definition{
		States:    []State{"q0", "q1"},
		Initial:   []State{"q0"},
		Accepting: []State{"q1"},
		K:         1,
		Alphabet:  []rune{'a'},
		Delta:     []Transition{{From: "q0", Symbols: Vec("a"), To: "q1"}},
		Alpha:     []Quantifier{Exists},
	}
}

func transitionStrings(ts []Transition) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}

func TestNewValid(t *testing.T) {
	a, err := New(singleA())
	require.NoError(t, err)

	assert.Equal(t, 1, a.K())
	assert.Equal(t, []State{"q0", "q1"}, a.States())
	assert.Equal(t, []State{"q0"}, a.InitialStates())
	assert.Equal(t, []State{"q1"}, a.AcceptingStates())
	assert.Equal(t, []Quantifier{Exists}, a.Alpha())
	assert.True(t, a.IsAccepting("q1"))
	assert.False(t, a.IsAccepting("q0"))
	assert.True(t, a.IsInitial("q0"))
}

func TestNewConstructionErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Definition)
		want   error
		field  string
	}{
		{"no states", func(d *Definition) { d.States = nil }, ErrNoStates, "states"},
		{"k zero", func(d *Definition) { d.K = 0 }, ErrInvalidK, "k"},
		{"k negative", func(d *Definition) { d.K = -1 }, ErrInvalidK, "k"},
		{"alpha short", func(d *Definition) { d.Alpha = nil }, ErrAlphaLength, "alpha"},
		{"alpha long", func(d *Definition) { d.Alpha = []Quantifier{Exists, ForAll} }, ErrAlphaLength, "alpha"},
		{"alpha invalid", func(d *Definition) { d.Alpha = []Quantifier{Quantifier(9)} }, ErrInvalidQuantifier, "alpha[0]"},
		{"no initial", func(d *Definition) { d.Initial = nil }, ErrNoInitialStates, "initial"},
		{"initial not a state", func(d *Definition) { d.Initial = []State{"q9"} }, ErrUnknownState, "initial"},
		{"no accepting", func(d *Definition) { d.Accepting = nil }, ErrNoAcceptingStates, "accepting"},
		{"accepting not a state", func(d *Definition) { d.Accepting = []State{"q2"} }, ErrUnknownState, "accepting"},
		{"idle in alphabet", func(d *Definition) { d.Alphabet = []rune{'a', '#'} }, ErrIdleInAlphabet, "alphabet"},
		{"unknown source", func(d *Definition) { d.Delta[0].From = "x" }, ErrUnknownState, "delta[0]"},
		{"unknown target", func(d *Definition) { d.Delta[0].To = "x" }, ErrUnknownState, "delta[0]"},
		{"vector too long", func(d *Definition) { d.Delta[0].Symbols = Vec("a", "a") }, ErrVectorLength, "delta[0]"},
		{"symbol not in alphabet", func(d *Definition) { d.Delta[0].Symbols = Vec("b") }, ErrSymbolNotInAlphabet, "delta[0]"},
		{"zero symbol", func(d *Definition) { d.Delta[0].Symbols = Vector{{}} }, ErrSymbolNotInAlphabet, "delta[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := singleA()
			tt.mutate(&def)

			a, err := New(def)
			assert.Nil(t, a)
			require.ErrorIs(t, err, tt.want)

			var ce *ConstructionError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.field, ce.Field)

			// Validate agrees with New.
			assert.ErrorIs(t, Validate(def), tt.want)
		})
	}
}

func TestEmptyAlphabetIsValid(t *testing.T) {
	_, err := New(Definition{
		States:    []State{"q0"},
		Initial:   []State{"q0"},
		Accepting: []State{"q0"},
		K:         1,
		Alpha:     []Quantifier{Exists},
	})
	assert.NoError(t, err)
}

func TestIndexHasEntryPerState(t *testing.T) {
	def := singleA()
	def.States = append(def.States, "orphan")
	a, err := New(def)
	require.NoError(t, err)

	require.Len(t, a.index, 3)
	for _, q := range a.States() {
		_, ok := a.index[q]
		assert.True(t, ok, "missing index entry for %s", q)
	}
	assert.Empty(t, a.Outgoing("orphan"))
	assert.Empty(t, a.Outgoing("q1"))
	assert.Len(t, a.Outgoing("q0"), 1)
}

func TestNewDeduplicates(t *testing.T) {
	def := singleA()
	def.States = []State{"q0", "q1", "q0"}
	def.Alphabet = []rune{'a', 'a'}
	def.Delta = append(def.Delta, Transition{From: "q0", Symbols: Vec("a"), To: "q1"})

	a, err := New(def)
	require.NoError(t, err)
	assert.Equal(t, []State{"q0", "q1"}, a.States())
	assert.Equal(t, []rune{'a'}, a.Alphabet())
	assert.Len(t, a.Delta(), 1)
}

func TestNFHIsImmutable(t *testing.T) {
	def := singleA()
	a, err := New(def)
	require.NoError(t, err)

	// Mutating the input definition does not reach the automaton.
	def.Delta[0].Symbols[0] = Idle
	def.States[0] = "changed"

	// Nor does mutating accessor results.
	out := a.Outgoing("q0")
	out[0].To = "q0"
	d := a.Delta()
	d[0].Symbols[0] = Idle

	want := []string{"q0 --(a)--> q1"}
	if diff := cmp.Diff(want, transitionStrings(a.Delta())); diff != "" {
		t.Errorf("delta changed (-want +got):\n%s", diff)
	}
	assert.Equal(t, []State{"q0", "q1"}, a.States())
}

func TestDefinitionRebuilds(t *testing.T) {
	a, err := New(singleA())
	require.NoError(t, err)

	b, err := New(a.Definition())
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
}

func TestParseQuantifier(t *testing.T) {
	for tok, want := range map[string]Quantifier{
		"E": Exists, "e": Exists, "∃": Exists, "exists": Exists,
		"A": ForAll, "a": ForAll, "∀": ForAll, "ForAll": ForAll,
	} {
		got, err := ParseQuantifier(tok)
		require.NoError(t, err, tok)
		assert.Equal(t, want, got, tok)
	}

	_, err := ParseQuantifier("X")
	assert.ErrorIs(t, err, ErrInvalidQuantifier)
}

func TestParseSymbol(t *testing.T) {
	s, err := ParseSymbol("#")
	require.NoError(t, err)
	assert.True(t, s.IsIdle())

	s, err = ParseSymbol("é")
	require.NoError(t, err)
	r, ok := s.Rune()
	assert.True(t, ok)
	assert.Equal(t, 'é', r)

	for _, bad := range []string{"", "ab", "##"} {
		_, err := ParseSymbol(bad)
		assert.Error(t, err, bad)
	}
	assert.False(t, Symbol{}.IsValid())
	assert.Equal(t, "(a,#,b)", Vec("a", "#", "b").String())
}
