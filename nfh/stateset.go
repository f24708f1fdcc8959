package nfh

import "sort"

// StateSet is a set of automaton states.
type StateSet map[State]struct{}

func NewStateSet(states ...State) StateSet {
	s := make(StateSet, len(states))
	for _, q := range states {
		s.Add(q)
	}
	return s
}

func (s StateSet) Has(q State) bool {
	_, ok := s[q]
	return ok
}

func (s StateSet) Add(q State) { s[q] = struct{}{} }
func (s StateSet) Len() int { return len(s) }

// Sorted returns the members in lexical order.
func (s StateSet) Sorted() []State {
	out := make([]State, 0, len(s))
	for q := range s {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SubsetOf reports whether every member of s is in other.
func (s StateSet) SubsetOf(other StateSet) bool {
	for q := range s {
		if !other.Has(q) {
			return false
		}
	}
	return true
}
