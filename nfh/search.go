package nfh

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ctxPollInterval is how many search steps pass between context polls.
const ctxPollInterval = 1024

var errDeadline = errors.New("search deadline exceeded")

// SearchResult is the outcome of RunManager.Search. Run is set only when
// Verdict is Accepted.
type SearchResult struct {
	Verdict Verdict
	Run     *Run
	Stats   SearchStats
}

// RunManager decides whether an automaton has an accepting run over one
// fixed assignment. A clean acceptance ends in an accepting state with every
// track fully consumed.
type RunManager struct {
	a          *NFH
	assignment Assignment
	words      [][]rune
	opts       searchOptions
}

// NewRunManager binds assignment to the tracks of a.
func NewRunManager(a *NFH, assignment Assignment, opts ...Option) (*RunManager, error) {
	if len(assignment) != a.K() {
		return nil, fmt.Errorf("%w: got %d, k is %d", ErrAssignmentLength, len(assignment), a.K())
	}
	o := buildOptions(opts)
	if o.hasStart && !a.HasState(o.start) {
		return nil, fmt.Errorf("start state %q: %w", o.start, ErrUnknownState)
	}
	asg := append(Assignment(nil), assignment...)
	return &RunManager{
		a:          a,
		assignment: asg,
		words:      toRunes(asg),
		opts:       o,
	}, nil
}

// Assignment returns the words bound to the tracks.
func (m *RunManager) Assignment() Assignment {
	return append(Assignment(nil), m.assignment...)
}

// Search runs a fresh depth-first search. Memo and path tables live only for
// this call, so a RunManager may be searched repeatedly and concurrently.
func (m *RunManager) Search(ctx context.Context) SearchResult {
	ctx, span := m.opts.tracer.Start(ctx, "nfh.search", trace.WithAttributes(
		attribute.String("nfh.assignment", m.assignment.String()),
		attribute.Bool("nfh.memo", !m.opts.noMemo),
		attribute.String("nfh.mode", m.opts.mode.String()),
	))
	defer span.End()

	s := newSearch(ctx, m)
	res := SearchResult{Verdict: Rejected}

	starts := m.a.initial
	if m.opts.hasStart {
		starts = []State{m.opts.start}
	}
	for _, q := range starts {
		ok, err := s.explore(q)
		if err != nil {
			res.Verdict = Inconclusive
			span.SetStatus(codes.Error, err.Error())
			break
		}
		if ok {
			res.Verdict = Accepted
			res.Run = &Run{
				ID:          uuid.New().String(),
				Assignment:  m.Assignment(),
				Start:       q,
				Transitions: s.path(q),
			}
			break
		}
	}

	s.stats.Elapsed = time.Since(s.began)
	res.Stats = s.stats
	if res.Run != nil {
		res.Run.Stats = s.stats
	}

	span.SetAttributes(
		attribute.String("nfh.verdict", res.Verdict.String()),
		attribute.Int("nfh.keys_expanded", s.stats.Expanded),
	)
	m.opts.metrics.observeSearch(res)
	m.opts.logger.Debug("run search finished",
		zap.Stringer("assignment", m.assignment),
		zap.Stringer("verdict", res.Verdict),
		zap.Int("expanded", s.stats.Expanded),
		zap.Int("memo_hits", s.stats.MemoHits),
		zap.Int("max_depth", s.stats.MaxDepth),
		zap.Duration("elapsed", s.stats.Elapsed),
	)
	return res
}

// search holds the tables of one Search call.
type search struct {
	ctx         context.Context
	a           *NFH
	words       [][]rune
	mode        Mode
	memo        bool
	began       time.Time
	deadline    time.Time
	hasDeadline bool
	steps       int

	// resolved holds keys whose subtree was exhausted without success.
	resolved map[string]bool
	// onPath holds keys on the current DFS stack.
	onPath map[string]bool
	// winner records the transition that led toward acceptance.
	winner map[string]Transition

	stats SearchStats
	buf   []byte
}

type frame struct {
	key     string
	cursors []int
	moves   []Transition
	next    int
}

func newSearch(ctx context.Context, m *RunManager) *search {
	s := &search{
		ctx:      ctx,
		a:        m.a,
		words:    m.words,
		mode:     m.opts.mode,
		memo:     !m.opts.noMemo,
		began:    time.Now(),
		resolved: make(map[string]bool),
		onPath:   make(map[string]bool),
		winner:   make(map[string]Transition),
	}
	if !m.opts.noTimeout {
		s.deadline = s.began.Add(m.opts.timeout)
		s.hasDeadline = true
	}
	if d, ok := ctx.Deadline(); ok && (!s.hasDeadline || d.Before(s.deadline)) {
		s.deadline = d
		s.hasDeadline = true
	}
	return s
}

// tick is called once per search step.
func (s *search) tick() error {
	s.steps++
	if s.hasDeadline && !time.Now().Before(s.deadline) {
		return errDeadline
	}
	if s.steps%ctxPollInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (s *search) key(q State, cur []int) string {
	b := binary.AppendUvarint(s.buf[:0], uint64(s.a.ordinal[q]))
	for _, c := range cur {
		b = binary.AppendUvarint(b, uint64(c))
	}
	s.buf = b
	return string(b)
}

func (s *search) clean(q State, cur []int) bool {
	if !s.a.IsAccepting(q) {
		return false
	}
	for i, w := range s.words {
		if cur[i] != len(w) {
			return false
		}
	}
	return true
}

func (s *search) expand(key string, q State, cur []int) *frame {
	s.stats.Expanded++
	f := &frame{key: key, cursors: cur}
	for _, t := range s.a.outgoing(q) {
		if applicable(s.words, cur, t.Symbols, s.mode) {
			f.moves = append(f.moves, t)
		}
	}
	return f
}

// explore runs an iterative depth-first search from start with all cursors
// at zero. On success every frame on the stack records its chosen move in
// s.winner.
func (s *search) explore(start State) (bool, error) {
	if err := s.tick(); err != nil {
		return false, err
	}
	cur := make([]int, len(s.words))
	if s.clean(start, cur) {
		return true, nil
	}
	rootKey := s.key(start, cur)
	if s.resolved[rootKey] {
		s.stats.MemoHits++
		return false, nil
	}

	stack := []*frame{s.expand(rootKey, start, cur)}
	s.onPath[rootKey] = true
	if s.stats.MaxDepth == 0 {
		s.stats.MaxDepth = 1
	}
	for len(stack) > 0 {
		if err := s.tick(); err != nil {
			return false, err
		}
		top := stack[len(stack)-1]
		if top.next == len(top.moves) {
			stack = stack[:len(stack)-1]
			delete(s.onPath, top.key)
			if s.memo {
				s.resolved[top.key] = true
			}
			continue
		}

		t := top.moves[top.next]
		top.next++
		s.stats.Tried++

		next := append([]int(nil), top.cursors...)
		advanceInPlace(next, t.Symbols)
		key := s.key(t.To, next)
		if s.onPath[key] {
			s.stats.CycleHits++
			continue
		}
		if s.resolved[key] {
			s.stats.MemoHits++
			continue
		}
		if s.clean(t.To, next) {
			for _, f := range stack {
				s.winner[f.key] = f.moves[f.next-1]
			}
			return true, nil
		}

		stack = append(stack, s.expand(key, t.To, next))
		s.onPath[key] = true
		if len(stack) > s.stats.MaxDepth {
			s.stats.MaxDepth = len(stack)
		}
	}
	return false, nil
}

// path rebuilds the accepting run by following recorded winners forward
// from start until a key has none.
func (s *search) path(start State) []Transition {
	var out []Transition
	cur := make([]int, len(s.words))
	key := s.key(start, cur)
	for {
		t, ok := s.winner[key]
		if !ok {
			return out
		}
		out = append(out, t)
		advanceInPlace(cur, t.Symbols)
		key = s.key(t.To, cur)
	}
}
