package nfh

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidWitness is returned by Run.Replay when a run does not justify
// acceptance.
var ErrInvalidWitness = errors.New("invalid witness")

// SearchStats describes the work done by one run search.
type SearchStats struct {
	Expanded  int           // keys whose outgoing transitions were enumerated
	Tried     int           // applicable transitions followed
	MemoHits  int           // children skipped because already resolved
	CycleHits int           // children skipped because already on the current path
	MaxDepth  int           // deepest explicit stack
	Elapsed   time.Duration // wall-clock time of the search
}

// Run is an accepting run found for one assignment.
type Run struct {
	ID          string
	Assignment  Assignment
	Start       State
	Transitions []Transition
	Stats       SearchStats
}

// Step is one transition of a run with the track cursors after it.
type Step struct {
	Index      int
	Transition Transition
	Cursors    []int
}

// FinalState is the state reached after the last transition.
func (r *Run) FinalState() State {
	if len(r.Transitions) == 0 {
		return r.Start
	}
	return r.Transitions[len(r.Transitions)-1].To
}

// Steps replays cursor advancement over the run.
func (r *Run) Steps() []Step {
	cur := make([]int, len(r.Assignment))
	steps := make([]Step, len(r.Transitions))
	for i, t := range r.Transitions {
		advanceInPlace(cur, t.Symbols)
		steps[i] = Step{
			Index:      i + 1,
			Transition: t,
			Cursors:    append([]int(nil), cur...),
		}
	}
	return steps
}

// Render returns a step-by-step trace of the run.
func (r *Run) Render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s on %s (start: %s)\n", r.ID, r.Assignment, r.Start)
	for _, st := range r.Steps() {
		t := st.Transition
		fmt.Fprintf(&sb, "Step %d: State %s --%s--> State %s  cursors %v\n",
			st.Index, t.From, t.Symbols, t.To, st.Cursors)
	}
	fmt.Fprintf(&sb, "Final State: %s\n", r.FinalState())
	return sb.String()
}

// Replay re-executes the run against a from every cursor at zero and checks
// that each transition exists and applies, that consecutive transitions
// chain, and that the run ends accepting with every track consumed.
func (r *Run) Replay(a *NFH) error {
	if len(r.Assignment) != a.K() {
		return fmt.Errorf("%w: %d words for k=%d", ErrInvalidWitness, len(r.Assignment), a.K())
	}
	if !a.IsInitial(r.Start) {
		return fmt.Errorf("%w: start %q is not initial", ErrInvalidWitness, r.Start)
	}
	words := toRunes(r.Assignment)
	cur := make([]int, len(words))
	state := r.Start
	for i, t := range r.Transitions {
		if t.From != state {
			return fmt.Errorf("%w: step %d leaves %q but run is in %q", ErrInvalidWitness, i+1, t.From, state)
		}
		if !a.hasTransition(t) {
			return fmt.Errorf("%w: step %d: %s is not in delta", ErrInvalidWitness, i+1, t)
		}
		if !applicable(words, cur, t.Symbols, Asynchronous) {
			return fmt.Errorf("%w: step %d: %s does not match cursors %v", ErrInvalidWitness, i+1, t.Symbols, cur)
		}
		advanceInPlace(cur, t.Symbols)
		state = t.To
	}
	if !a.IsAccepting(state) {
		return fmt.Errorf("%w: final state %q is not accepting", ErrInvalidWitness, state)
	}
	for i, w := range words {
		if cur[i] != len(w) {
			return fmt.Errorf("%w: track %d stopped at %d of %d", ErrInvalidWitness, i, cur[i], len(w))
		}
	}
	return nil
}

func (a *NFH) hasTransition(t Transition) bool {
	for _, u := range a.outgoing(t.From) {
		if u.To == t.To && u.Symbols.Equal(t.Symbols) {
			return true
		}
	}
	return false
}

func toRunes(asg Assignment) [][]rune {
	words := make([][]rune, len(asg))
	for i, w := range asg {
		words[i] = []rune(w)
	}
	return words
}

// applicable reports whether symbols can be read at cursors cur. A letter
// must equal the next character of its track; past end-of-word only idle
// matches. In Synchronous mode idle additionally requires end-of-word.
func applicable(words [][]rune, cur []int, symbols Vector, mode Mode) bool {
	for i, s := range symbols {
		if s.IsIdle() {
			if mode == Synchronous && cur[i] < len(words[i]) {
				return false
			}
			continue
		}
		r, _ := s.Rune()
		if cur[i] >= len(words[i]) || words[i][cur[i]] != r {
			return false
		}
	}
	return true
}

func advanceInPlace(cur []int, symbols Vector) {
	for i, s := range symbols {
		if !s.IsIdle() {
			cur[i]++
		}
	}
}
