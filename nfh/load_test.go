package nfh

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEncodingForPath(t *testing.T) {
	assert.Equal(t, EncodingJSON, EncodingForPath("m.JSON"))
	assert.Equal(t, EncodingYAML, EncodingForPath("m.yaml"))
	assert.Equal(t, EncodingYAML, EncodingForPath("dir/m.yml"))
	assert.Equal(t, EncodingText, EncodingForPath("m.nfh"))
	assert.Equal(t, EncodingText, EncodingForPath("m"))
}

func TestLoadDefinitionJSON(t *testing.T) {
	path := writeFile(t, "m.json", `{
		"k": 1,
		"alpha": ["E"],
		"states": ["q0", "q1"],
		"initial_states": ["q0"],
		"accepting": ["q1"],
		"alphabet": ["a"],
		"delta": [["q0", ["a"], "q1"], {"from": "q1", "symbols": ["#"], "to": "q1"}]
	}`)
	a, err := LoadDefinitionFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"q0 --(a)--> q1", "q1 --(#)--> q1"}, transitionStrings(a.Delta()))
	assert.Equal(t, []State{"q0"}, a.InitialStates())
}

func TestLoadDefinitionYAML(t *testing.T) {
	path := writeFile(t, "m.yaml", `
k: 2
alpha: [A, E]
states: [q0, q1]
initial: [q0]
accepting_states: [q1]
alphabet: [a, b]
delta:
  - [q0, [a, "#"], q1]
  - from: q0
    symbols: [b, a]
    to: q1
`)
	a, err := LoadDefinitionFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Quantifier{ForAll, Exists}, a.Alpha())
	assert.Len(t, a.Outgoing("q0"), 2)
}

func TestLoadDefinitionText(t *testing.T) {
	path := writeFile(t, "m.nfh", "k: 1\nalpha: E\nstates: q0\ninitial: q0\naccepting: q0\nalphabet: a\ndelta:\nq0 a q0\n")
	a, err := LoadDefinitionFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, a.K())
}

func TestLoadDefinitionErrors(t *testing.T) {
	_, err := LoadDefinitionFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeFile(t, "m.json", `{"k": 1, "states": ["q0"]}`)
	_, err = LoadDefinitionFile(path)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, path, pe.Source)
	assert.Contains(t, err.Error(), "missing required field: alpha")

	path = writeFile(t, "m.json", `{"k": 1`)
	_, err = LoadDefinitionFile(path)
	assert.True(t, errors.As(err, &pe))

	_, err = DecodeDefinition(strings.NewReader(`{"k":1,"alpha":["E"],"states":["q"],"initial":["q"],"accepting":["q"],"alphabet":["a"],"delta":[["q","a","q"]]}`), EncodingJSON)
	assert.True(t, errors.As(err, &pe))

	_, err = DecodeDefinition(strings.NewReader(`{"k":1,"alpha":["E"],"states":["q"],"initial":["q"],"accepting":["q"],"alphabet":["#"]}`), EncodingJSON)
	assert.ErrorIs(t, err, ErrIdleInAlphabet)
}

func TestDecodeHyperword(t *testing.T) {
	tests := []struct {
		name string
		enc  Encoding
		in   string
		want []string
	}{
		{"json list", EncodingJSON, `["b", "a", "b"]`, []string{"a", "b"}},
		{"json object", EncodingJSON, `{"words": ["", "ab"]}`, []string{"", "ab"}},
		{"yaml list", EncodingYAML, "- ab\n- \"0110\"\n", []string{"0110", "ab"}},
		{"yaml object", EncodingYAML, "words: [x]\n", []string{"x"}},
		{"text", EncodingText, "ab\n\n  ba  \n\"\"\n", []string{"", "ab", "ba"}},
		{"empty text", EncodingText, "\n\n", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := DecodeHyperword(strings.NewReader(tt.in), tt.enc)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, h.Words())
		})
	}

	_, err := DecodeHyperword(strings.NewReader(`{"list": []}`), EncodingJSON)
	assert.Error(t, err)
	_, err = DecodeHyperword(strings.NewReader(`[1, 2]`), EncodingJSON)
	assert.Error(t, err)
}

func TestLoadHyperwordFile(t *testing.T) {
	h, err := LoadHyperwordFile(writeFile(t, "s.yml", "[a, b]"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, h.Words())
	assert.True(t, h.Contains("a"))
	assert.False(t, h.Contains("c"))
	assert.Equal(t, "{ a, b }", h.String())
}
