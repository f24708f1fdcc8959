package nfh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMermaid(t *testing.T) {
	a := concat(t)
	var buf bytes.Buffer
	require.NoError(t, WriteMermaid(&buf, a))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "stateDiagram-v2\n"))
	assert.Contains(t, out, `state "q_x" as s0`)
	assert.Contains(t, out, "[*] --> s0\n")
	// Parallel edges share one arrow.
	assert.Contains(t, out, "s0 --> s0: (a,#,a) | (b,#,b)\n")
	assert.Contains(t, out, "s1 --> s2: (#,#,#)\n")
	assert.Contains(t, out, "s2 --> [*]\n")
	assert.Equal(t, 1, strings.Count(out, "s0 --> s1:"))
}

func TestWriteDOT(t *testing.T) {
	a := concat(t)
	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, a))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "digraph NFH {\n"))
	assert.Contains(t, out, `label="k=3 alpha=EEE";`)
	assert.Contains(t, out, `start0 -> "q_x";`)
	assert.Contains(t, out, `"q_acc" [shape=doublecircle];`)
	assert.Contains(t, out, `"q_x" -> "q_y" [label="(#,a,a)\n(#,b,b)"];`)
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestWriteRunMermaid(t *testing.T) {
	a := concat(t)
	res := runSearch(t, a, []string{"a", "", "a"})
	require.Equal(t, Rejected, res.Verdict)

	res = runSearch(t, a, []string{"a", "b", "ab"})
	require.Equal(t, Accepted, res.Verdict)

	var buf bytes.Buffer
	require.NoError(t, WriteRunMermaid(&buf, res.Run))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "sequenceDiagram\n"))
	assert.Contains(t, out, "participant T3 as ab")
	assert.Contains(t, out, "T1->>A: a\n")
	assert.NotContains(t, out, "T2->>A: #")
	assert.Contains(t, out, "Note over A: step 2 q_x -> q_y cursors [1 1 2]")
	assert.Contains(t, out, "Note over A: accept in q_acc")
}
