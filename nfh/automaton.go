package nfh

import (
	"fmt"
	"strings"
)

// State is an opaque automaton state identifier.
type State string

// Transition reads Symbols (one per track) while moving From -> To.
type Transition struct {
	From    State
	Symbols Vector
	To      State
}

func (t Transition) String() string {
	return fmt.Sprintf("%s --%s--> %s", t.From, t.Symbols, t.To)
}

func (t Transition) clone() Transition {
	t.Symbols = append(Vector(nil), t.Symbols...)
	return t
}

func (t Transition) key() string {
	return string(t.From) + "\x00" + t.Symbols.String() + "\x00" + string(t.To)
}

// Definition is the raw input to New. It is not validated until New or
// Validate is called, and New copies everything it keeps.
type Definition struct {
	States    []State
	Initial   []State
	Accepting []State
	K         int
	Alphabet  []rune
	Delta     []Transition
	Alpha     []Quantifier
}

// NFH is a validated nondeterministic finite automaton over K synchronized
// tracks with a quantifier prefix. It is immutable and safe for concurrent use.
type NFH struct {
	states    []State
	stateSet  StateSet
	initial   []State
	accepting StateSet
	k         int
	alphabet  []rune
	delta     []Transition
	alpha     []Quantifier

	// index holds one entry per state, possibly empty.
	index   map[State][]Transition
	ordinal map[State]int
}

// New validates def and builds the transition index. Any invariant violation
// yields a *ConstructionError and a nil automaton.
func New(def Definition) (*NFH, error) {
	if err := Validate(def); err != nil {
		return nil, err
	}

	a := &NFH{
		stateSet:  NewStateSet(),
		accepting: NewStateSet(),
		k:         def.K,
		alpha:     append([]Quantifier(nil), def.Alpha...),
	}
	for _, q := range def.States {
		if !a.stateSet.Has(q) {
			a.stateSet.Add(q)
			a.states = append(a.states, q)
		}
	}
	seenInit := NewStateSet()
	for _, q := range def.Initial {
		if !seenInit.Has(q) {
			seenInit.Add(q)
			a.initial = append(a.initial, q)
		}
	}
	for _, q := range def.Accepting {
		a.accepting.Add(q)
	}
	seenLetter := make(map[rune]bool, len(def.Alphabet))
	for _, r := range def.Alphabet {
		if !seenLetter[r] {
			seenLetter[r] = true
			a.alphabet = append(a.alphabet, r)
		}
	}

	a.index = make(map[State][]Transition, len(a.states))
	a.ordinal = make(map[State]int, len(a.states))
	for i, q := range a.states {
		a.index[q] = nil
		a.ordinal[q] = i
	}
	seenTrans := make(map[string]bool, len(def.Delta))
	for _, t := range def.Delta {
		key := t.key()
		if seenTrans[key] {
			continue
		}
		seenTrans[key] = true
		t = t.clone()
		a.delta = append(a.delta, t)
		a.index[t.From] = append(a.index[t.From], t)
	}
	return a, nil
}

// Validate checks every automaton invariant of def without building it.
func Validate(def Definition) error {
	if len(def.States) == 0 {
		return constructionErr("states", ErrNoStates, "")
	}
	states := NewStateSet(def.States...)

	if def.K <= 0 {
		return constructionErr("k", ErrInvalidK, "got %d", def.K)
	}
	if len(def.Alpha) != def.K {
		return constructionErr("alpha", ErrAlphaLength, "got %d, k is %d", len(def.Alpha), def.K)
	}
	for i, q := range def.Alpha {
		if !q.IsValid() {
			return constructionErr(fmt.Sprintf("alpha[%d]", i), ErrInvalidQuantifier, "%v", q)
		}
	}

	if len(def.Initial) == 0 {
		return constructionErr("initial", ErrNoInitialStates, "")
	}
	for _, q := range def.Initial {
		if !states.Has(q) {
			return constructionErr("initial", ErrUnknownState, "%q", q)
		}
	}
	if len(def.Accepting) == 0 {
		return constructionErr("accepting", ErrNoAcceptingStates, "")
	}
	for _, q := range def.Accepting {
		if !states.Has(q) {
			return constructionErr("accepting", ErrUnknownState, "%q", q)
		}
	}

	letters := make(map[rune]bool, len(def.Alphabet))
	for _, r := range def.Alphabet {
		if r == IdleMarker {
			return constructionErr("alphabet", ErrIdleInAlphabet, "%q", string(r))
		}
		letters[r] = true
	}

	for i, t := range def.Delta {
		field := fmt.Sprintf("delta[%d]", i)
		if !states.Has(t.From) {
			return constructionErr(field, ErrUnknownState, "source %q", t.From)
		}
		if !states.Has(t.To) {
			return constructionErr(field, ErrUnknownState, "target %q", t.To)
		}
		if len(t.Symbols) != def.K {
			return constructionErr(field, ErrVectorLength, "got %d, k is %d", len(t.Symbols), def.K)
		}
		for _, s := range t.Symbols {
			if s.IsIdle() {
				continue
			}
			r, ok := s.Rune()
			if !ok || !letters[r] {
				return constructionErr(field, ErrSymbolNotInAlphabet, "%s", s)
			}
		}
	}
	return nil
}

// K returns the number of tracks.
func (a *NFH) K() int { return a.k }

// States returns the states in declaration order.
func (a *NFH) States() []State { return append([]State(nil), a.states...) }

// InitialStates returns the initial states in declaration order.
func (a *NFH) InitialStates() []State { return append([]State(nil), a.initial...) }

// AcceptingStates returns the accepting states in declaration order.
func (a *NFH) AcceptingStates() []State {
	out := make([]State, 0, a.accepting.Len())
	for _, q := range a.states {
		if a.accepting.Has(q) {
			out = append(out, q)
		}
	}
	return out
}

func (a *NFH) Alphabet() []rune { return append([]rune(nil), a.alphabet...) }
func (a *NFH) Alpha() []Quantifier { return append([]Quantifier(nil), a.alpha...) }
func (a *NFH) HasState(q State) bool { return a.stateSet.Has(q) }
func (a *NFH) IsAccepting(q State) bool { return a.accepting.Has(q) }

// IsInitial reports whether q is an initial state.
func (a *NFH) IsInitial(q State) bool {
	for _, s := range a.initial {
		if s == q {
			return true
		}
	}
	return false
}

// Delta returns a copy of the deduplicated transitions.
func (a *NFH) Delta() []Transition {
	out := make([]Transition, len(a.delta))
	for i, t := range a.delta {
		out[i] = t.clone()
	}
	return out
}

// Outgoing returns a copy of the transitions leaving q. Unknown states have
// no transitions.
func (a *NFH) Outgoing(q State) []Transition {
	ts := a.index[q]
	out := make([]Transition, len(ts))
	for i, t := range ts {
		out[i] = t.clone()
	}
	return out
}

// outgoing is the zero-copy lookup used by the search.
func (a *NFH) outgoing(q State) []Transition { return a.index[q] }

// Definition returns a Definition that rebuilds an equal automaton.
func (a *NFH) Definition() Definition {
	return Definition{
		States:    a.States(),
		Initial:   a.InitialStates(),
		Accepting: a.AcceptingStates(),
		K:         a.k,
		Alphabet:  a.Alphabet(),
		Delta:     a.Delta(),
		Alpha:     a.Alpha(),
	}
}

func (a *NFH) String() string {
	var sb strings.Builder
	sb.WriteString("NFH:\n")
	fmt.Fprintf(&sb, "  k: %d\n", a.k)
	fmt.Fprintf(&sb, "  alpha: %v\n", a.alpha)
	fmt.Fprintf(&sb, "  states: %v\n", a.states)
	fmt.Fprintf(&sb, "  initial: %v\n", a.InitialStates())
	fmt.Fprintf(&sb, "  accepting: %v\n", a.AcceptingStates())
	fmt.Fprintf(&sb, "  alphabet: %q\n", string(a.alphabet))
	sb.WriteString("  delta:\n")
	for _, t := range a.delta {
		fmt.Fprintf(&sb, "    %s\n", t)
	}
	return sb.String()
}
