package nfh

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by ConstructionError.
var (
	ErrNoStates            = errors.New("automaton must have at least one state")
	ErrNoInitialStates     = errors.New("automaton must have at least one initial state")
	ErrNoAcceptingStates   = errors.New("automaton must have at least one accepting state")
	ErrUnknownState        = errors.New("state is not declared")
	ErrInvalidK            = errors.New("k must be positive")
	ErrAlphaLength         = errors.New("alpha must have exactly k quantifiers")
	ErrInvalidQuantifier   = errors.New("invalid quantifier")
	ErrIdleInAlphabet      = errors.New("alphabet contains the reserved idle marker")
	ErrVectorLength        = errors.New("transition vector length differs from k")
	ErrSymbolNotInAlphabet = errors.New("transition symbol is not in the alphabet")
)

// ErrAssignmentLength is returned by NewRunManager when the assignment does
// not bind exactly k words.
var ErrAssignmentLength = errors.New("assignment must bind exactly k words")

// ConstructionError reports a definition that violates an automaton invariant.
// No automaton is returned alongside it.
type ConstructionError struct {
	Field string
	Err   error
}

func (e *ConstructionError) Error() string {
	if e.Field == "" {
		return "nfh: " + e.Err.Error()
	}
	return fmt.Sprintf("nfh: %s: %v", e.Field, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

func constructionErr(field string, err error, format string, args ...any) error {
	if format != "" {
		err = fmt.Errorf("%w: "+format, append([]any{err}, args...)...)
	}
	return &ConstructionError{Field: field, Err: err}
}

// ParseError reports a malformed textual or structured definition.
type ParseError struct {
	Source string
	Line   int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	loc := e.Source
	if e.Line > 0 {
		if loc == "" {
			loc = "line"
		} else {
			loc += ": line"
		}
		loc = fmt.Sprintf("%s %d", loc, e.Line)
	}
	msg := e.Msg
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg += ": " + e.Err.Error()
		}
	}
	if loc == "" {
		return "parse: " + msg
	}
	return fmt.Sprintf("parse: %s: %s", loc, msg)
}

func (e *ParseError) Unwrap() error { return e.Err }
