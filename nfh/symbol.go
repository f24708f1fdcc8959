package nfh

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// IdleMarker is the textual form of the idle symbol. It is reserved and may
// not appear in an alphabet.
const IdleMarker = '#'

// Symbol is one component of a transition vector: either a letter from the
// alphabet or Idle. The zero value is invalid.
type Symbol struct {
	letter rune
	kind   symbolKind
}

type symbolKind uint8

const (
	kindInvalid symbolKind = iota
	kindLetter
	kindIdle
)

// Idle leaves its track untouched for one step.
var Idle = Symbol{kind: kindIdle}

// Letter returns the symbol that consumes r from its track.
func Letter(r rune) Symbol {
	return Symbol{letter: r, kind: kindLetter}
}

// IsIdle reports whether s is the idle symbol.
func (s Symbol) IsIdle() bool { return s.kind == kindIdle }

// IsValid reports whether s was built with Letter or is Idle.
func (s Symbol) IsValid() bool { return s.kind != kindInvalid }

// Rune returns the letter carried by s; ok is false for Idle.
func (s Symbol) Rune() (r rune, ok bool) {
	if s.kind != kindLetter {
		return 0, false
	}
	return s.letter, true
}

func (s Symbol) String() string {
	switch s.kind {
	case kindIdle:
		return string(IdleMarker)
	case kindLetter:
		return string(s.letter)
	default:
		return "<invalid>"
	}
}

// ParseSymbol reads one token of a transition line. "#" is Idle; any other
// token must be a single rune.
func ParseSymbol(tok string) (Symbol, error) {
	if tok == string(IdleMarker) {
		return Idle, nil
	}
	r, size := utf8.DecodeRuneInString(tok)
	if size == 0 || size != len(tok) || r == utf8.RuneError {
		return Symbol{}, fmt.Errorf("symbol %q must be a single character or %q", tok, string(IdleMarker))
	}
	return Letter(r), nil
}

// Vector is the symbol tuple of a transition, one entry per track.
type Vector []Symbol

// Vec builds a vector from tokens in the textual format. It panics on a bad
// token and is meant for literals in tests and built-in models.
func Vec(tokens ...string) Vector {
	v := make(Vector, len(tokens))
	for i, tok := range tokens {
		s, err := ParseSymbol(tok)
		if err != nil {
			panic(err)
		}
		v[i] = s
	}
	return v
}

func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, s := range v {
		parts[i] = s.String()
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// Equal reports whether v and o have the same symbols in the same order.
func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// Quantifier binds one track to the hyperword. The zero value is invalid.
type Quantifier uint8

const (
	Exists Quantifier = iota + 1
	ForAll
)

// IsValid reports whether q is Exists or ForAll.
func (q Quantifier) IsValid() bool { return q == Exists || q == ForAll }

func (q Quantifier) String() string {
	switch q {
	case Exists:
		return "E"
	case ForAll:
		return "A"
	default:
		return fmt.Sprintf("Quantifier(%d)", uint8(q))
	}
}

// ParseQuantifier accepts E, A, ∃, ∀, exists and forall.
func ParseQuantifier(tok string) (Quantifier, error) {
	switch strings.ToLower(strings.TrimSpace(tok)) {
	case "e", "∃", "exists":
		return Exists, nil
	case "a", "∀", "forall":
		return ForAll, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidQuantifier, tok)
}
