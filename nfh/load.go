package nfh

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Encoding selects a definition or hyperword file format.
type Encoding uint8

const (
	EncodingText Encoding = iota
	EncodingJSON
	EncodingYAML
)

// EncodingForPath picks the encoding from the file extension; unknown
// extensions are read as text.
func EncodingForPath(path string) Encoding {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return EncodingJSON
	case ".yaml", ".yml":
		return EncodingYAML
	default:
		return EncodingText
	}
}

// definitionDoc is the structured (JSON/YAML) definition layout. Delta
// entries are [source, [symbols...], target] or {from, symbols, to}.
type definitionDoc struct {
	K               *int     `json:"k" yaml:"k"`
	Alpha           []string `json:"alpha" yaml:"alpha"`
	Quantifiers     []string `json:"quantifiers" yaml:"quantifiers"`
	States          []string `json:"states" yaml:"states"`
	Initial         []string `json:"initial" yaml:"initial"`
	InitialStates   []string `json:"initial_states" yaml:"initial_states"`
	Accepting       []string `json:"accepting" yaml:"accepting"`
	AcceptingStates []string `json:"accepting_states" yaml:"accepting_states"`
	Alphabet        []string `json:"alphabet" yaml:"alphabet"`
	Delta           []any    `json:"delta" yaml:"delta"`
}

// LoadDefinitionFile reads an automaton from path, choosing the format by
// extension.
func LoadDefinitionFile(path string) (*NFH, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open definition: %w", err)
	}
	defer f.Close()

	a, err := DecodeDefinition(f, EncodingForPath(path))
	var pe *ParseError
	if errors.As(err, &pe) && pe.Source == "" {
		pe.Source = path
	}
	return a, err
}

// DecodeDefinition reads an automaton in the given encoding.
func DecodeDefinition(r io.Reader, enc Encoding) (*NFH, error) {
	if enc == EncodingText {
		return Parse(r)
	}
	var doc definitionDoc
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Msg: "read failed", Err: err}
	}
	switch enc {
	case EncodingJSON:
		err = json.Unmarshal(data, &doc)
	case EncodingYAML:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, &ParseError{Msg: "malformed document", Err: err}
	}
	def, err := doc.definition()
	if err != nil {
		return nil, err
	}
	return New(def)
}

func (d *definitionDoc) definition() (Definition, error) {
	alpha := firstNonNil(d.Alpha, d.Quantifiers)
	initial := firstNonNil(d.Initial, d.InitialStates)
	accepting := firstNonNil(d.Accepting, d.AcceptingStates)
	switch {
	case d.K == nil:
		return Definition{}, &ParseError{Msg: "missing required field: k"}
	case alpha == nil:
		return Definition{}, &ParseError{Msg: "missing required field: alpha"}
	case d.States == nil:
		return Definition{}, &ParseError{Msg: "missing required field: states"}
	case initial == nil:
		return Definition{}, &ParseError{Msg: "missing required field: initial"}
	case accepting == nil:
		return Definition{}, &ParseError{Msg: "missing required field: accepting"}
	case d.Alphabet == nil:
		return Definition{}, &ParseError{Msg: "missing required field: alphabet"}
	}

	def := Definition{
		K:         *d.K,
		States:    toStates(d.States),
		Initial:   toStates(initial),
		Accepting: toStates(accepting),
	}
	for _, tok := range alpha {
		q, err := ParseQuantifier(tok)
		if err != nil {
			return Definition{}, &ConstructionError{Field: "alpha", Err: err}
		}
		def.Alpha = append(def.Alpha, q)
	}
	for _, tok := range d.Alphabet {
		rs := []rune(tok)
		if len(rs) != 1 {
			return Definition{}, &ParseError{Msg: fmt.Sprintf("alphabet symbol %q must be a single character", tok)}
		}
		def.Alphabet = append(def.Alphabet, rs[0])
	}
	for i, raw := range d.Delta {
		t, err := decodeTransition(raw)
		if err != nil {
			return Definition{}, &ParseError{Msg: fmt.Sprintf("delta[%d]", i), Err: err}
		}
		def.Delta = append(def.Delta, t)
	}
	return def, nil
}

func decodeTransition(raw any) (Transition, error) {
	var from, to any
	var syms any
	switch v := raw.(type) {
	case []any:
		if len(v) != 3 {
			return Transition{}, fmt.Errorf("expected [source, [symbols], target], got %d elements", len(v))
		}
		from, syms, to = v[0], v[1], v[2]
	case map[string]any:
		from, syms, to = v["from"], v["symbols"], v["to"]
	default:
		return Transition{}, fmt.Errorf("unsupported transition %T", raw)
	}

	src, ok1 := from.(string)
	dst, ok2 := to.(string)
	list, ok3 := syms.([]any)
	if !ok1 || !ok2 || !ok3 {
		return Transition{}, fmt.Errorf("transition needs string states and a symbol list")
	}
	vec := make(Vector, len(list))
	for i, s := range list {
		tok, ok := s.(string)
		if !ok {
			return Transition{}, fmt.Errorf("symbol %v is not a string", s)
		}
		sym, err := ParseSymbol(tok)
		if err != nil {
			return Transition{}, err
		}
		vec[i] = sym
	}
	return Transition{From: State(src), Symbols: vec, To: State(dst)}, nil
}

func firstNonNil(a, b []string) []string {
	if a != nil {
		return a
	}
	return b
}

// LoadHyperwordFile reads a hyperword from path, choosing the format by
// extension.
func LoadHyperwordFile(path string) (*Hyperword, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hyperword: %w", err)
	}
	defer f.Close()

	h, err := DecodeHyperword(f, EncodingForPath(path))
	var pe *ParseError
	if errors.As(err, &pe) && pe.Source == "" {
		pe.Source = path
	}
	return h, err
}

// DecodeHyperword reads a word set. Structured encodings accept a list of
// strings or an object with a "words" list. Text has one word per line,
// blank lines are skipped and a line holding "" is the empty word.
func DecodeHyperword(r io.Reader, enc Encoding) (*Hyperword, error) {
	if enc == EncodingText {
		var words []string
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			switch line {
			case "":
				continue
			case `""`:
				line = ""
			}
			words = append(words, line)
		}
		if err := sc.Err(); err != nil {
			return nil, &ParseError{Msg: "read failed", Err: err}
		}
		return NewHyperword(words...), nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Msg: "read failed", Err: err}
	}
	var doc any
	if enc == EncodingJSON {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, &ParseError{Msg: "malformed document", Err: err}
	}

	if m, ok := doc.(map[string]any); ok {
		doc, ok = m["words"]
		if !ok {
			return nil, &ParseError{Msg: `expected a list or an object with a "words" list`}
		}
	}
	list, ok := doc.([]any)
	if !ok {
		return nil, &ParseError{Msg: `expected a list or an object with a "words" list`}
	}
	words := make([]string, 0, len(list))
	for i, v := range list {
		switch w := v.(type) {
		case string:
			words = append(words, w)
		default:
			return nil, &ParseError{Msg: fmt.Sprintf("word %d is %T, want a string", i, v)}
		}
	}
	return NewHyperword(words...), nil
}
