package nfh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var requiredKeys = []string{"k", "alpha", "states", "initial", "accepting", "alphabet"}

var keyAliases = map[string]string{
	"initial states":   "initial",
	"initial_states":   "initial",
	"accepting states": "accepting",
	"accepting_states": "accepting",
	"quantifiers":      "alpha",
}

// ParseString parses the textual definition format and builds the automaton.
func ParseString(text string) (*NFH, error) {
	return Parse(strings.NewReader(text))
}

// Parse reads the textual definition format:
//
//	k: 2
//	alpha: A E
//	states: q0 q1
//	initial: q0
//	accepting: q1
//	alphabet: a b
//	delta:
//	q0 a # q1
//
// Values may be separated by spaces or commas. Lines starting with # or //
// are comments. Each delta line has exactly k+2 fields and # is the idle
// symbol.
func Parse(r io.Reader) (*NFH, error) {
	def, err := ParseDefinition(r)
	if err != nil {
		return nil, err
	}
	return New(def)
}

type headerValue struct {
	line  int
	value string
}

type deltaLine struct {
	line int
	text string
}

// ParseDefinition parses the textual format without validating automaton
// invariants other than quantifier names.
func ParseDefinition(r io.Reader) (Definition, error) {
	headers := make(map[string]headerValue)
	var delta []deltaLine
	inDelta := false

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || isComment(line) {
			continue
		}
		if inDelta {
			delta = append(delta, deltaLine{line: lineNo, text: line})
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return Definition{}, &ParseError{Line: lineNo, Msg: fmt.Sprintf("expected \"key: value\", got %q", line)}
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if alias, ok := keyAliases[key]; ok {
			key = alias
		}
		if key == "delta" {
			inDelta = true
			continue
		}
		headers[key] = headerValue{line: lineNo, value: strings.TrimSpace(value)}
	}
	if err := sc.Err(); err != nil {
		return Definition{}, &ParseError{Msg: "read failed", Err: err}
	}

	for _, req := range requiredKeys {
		if _, ok := headers[req]; !ok {
			return Definition{}, &ParseError{Msg: "missing required field: " + req}
		}
	}

	kv := headers["k"]
	k, err := strconv.Atoi(kv.value)
	if err != nil {
		return Definition{}, &ParseError{Line: kv.line, Msg: fmt.Sprintf("k must be an integer, got %q", kv.value)}
	}

	def := Definition{K: k}
	for _, tok := range splitValues(headers["alpha"].value) {
		q, err := ParseQuantifier(tok)
		if err != nil {
			return Definition{}, &ConstructionError{Field: "alpha", Err: err}
		}
		def.Alpha = append(def.Alpha, q)
	}
	def.States = toStates(splitValues(headers["states"].value))
	def.Initial = toStates(splitValues(headers["initial"].value))
	def.Accepting = toStates(splitValues(headers["accepting"].value))

	av := headers["alphabet"]
	for _, tok := range splitValues(av.value) {
		r, size := utf8.DecodeRuneInString(tok)
		if size != len(tok) {
			return Definition{}, &ParseError{Line: av.line, Msg: fmt.Sprintf("alphabet symbol %q must be a single character", tok)}
		}
		def.Alphabet = append(def.Alphabet, r)
	}

	for _, dl := range delta {
		parts := splitValues(dl.text)
		if len(parts) != k+2 {
			return Definition{}, &ParseError{
				Line: dl.line,
				Msg:  fmt.Sprintf("invalid transition %q: expected %d fields, got %d", dl.text, k+2, len(parts)),
			}
		}
		symbols := make(Vector, k)
		for i, tok := range parts[1 : len(parts)-1] {
			s, err := ParseSymbol(tok)
			if err != nil {
				return Definition{}, &ParseError{Line: dl.line, Err: err}
			}
			symbols[i] = s
		}
		def.Delta = append(def.Delta, Transition{
			From:    State(parts[0]),
			Symbols: symbols,
			To:      State(parts[len(parts)-1]),
		})
	}
	return def, nil
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//")
}

func splitValues(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

func toStates(toks []string) []State {
	out := make([]State, len(toks))
	for i, t := range toks {
		out[i] = State(t)
	}
	return out
}

// Format writes a in the textual definition format accepted by Parse.
func Format(w io.Writer, a *NFH) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "k: %d\n", a.K())
	alpha := make([]string, 0, a.K())
	for _, q := range a.Alpha() {
		alpha = append(alpha, q.String())
	}
	fmt.Fprintf(bw, "alpha: %s\n", strings.Join(alpha, " "))
	fmt.Fprintf(bw, "states: %s\n", joinStates(a.States()))
	fmt.Fprintf(bw, "initial: %s\n", joinStates(a.InitialStates()))
	fmt.Fprintf(bw, "accepting: %s\n", joinStates(a.AcceptingStates()))
	letters := make([]string, 0)
	for _, r := range a.Alphabet() {
		letters = append(letters, string(r))
	}
	fmt.Fprintf(bw, "alphabet: %s\n", strings.Join(letters, " "))
	bw.WriteString("delta:\n")
	for _, t := range a.Delta() {
		fields := []string{string(t.From)}
		for _, s := range t.Symbols {
			fields = append(fields, s.String())
		}
		fields = append(fields, string(t.To))
		fmt.Fprintln(bw, strings.Join(fields, " "))
	}
	return bw.Flush()
}

func joinStates(qs []State) string {
	parts := make([]string, len(qs))
	for i, q := range qs {
		parts[i] = string(q)
	}
	return strings.Join(parts, " ")
}
