package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfielding/kripke-nfh/nfh"
)

func TestRegistry(t *testing.T) {
	var names []string
	for _, m := range All() {
		names = append(names, m.Name())
	}
	assert.Equal(t, []string{"alternation", "alternation-pruned", "concat", "noninterference", "substring"}, names)

	m, ok := Lookup("concat")
	require.True(t, ok)
	assert.Equal(t, "concat", m.Name())

	_, ok = Lookup("mm1")
	assert.False(t, ok)
}

func TestModelsMatchTheirSamples(t *testing.T) {
	for _, m := range All() {
		t.Run(m.Name(), func(t *testing.T) {
			a, err := Build(m)
			require.NoError(t, err)
			assert.NotEmpty(t, m.Description())

			results, err := Check(context.Background(), m)
			require.NoError(t, err)
			require.Len(t, results, len(m.Samples()))
			for _, r := range results {
				assert.True(t, r.Matches(), "%v: want %s, got %s", r.Sample.Words, r.Sample.Want, r.Outcome.Verdict)
				for _, w := range r.Outcome.Witnesses {
					assert.NoError(t, w.Replay(a))
				}
			}
		})
	}
}

func TestConcatWitness(t *testing.T) {
	results, err := Check(context.Background(), Concat{})
	require.NoError(t, err)

	first := results[0]
	require.Equal(t, nfh.Accepted, first.Outcome.Verdict)
	require.Len(t, first.Outcome.Witnesses, 1)
	assert.Equal(t, nfh.Assignment{"a", "b", "ab"}, first.Outcome.Witnesses[0].Assignment)
}

func TestModelsAgreeInSynchronousModeWhereIdleOnlyPads(t *testing.T) {
	// These models only idle past the end of a word.
	for _, m := range []ModelSpec{Substring{}, Alternation{}, Noninterference{}} {
		results, err := Check(context.Background(), m, nfh.WithMode(nfh.Synchronous))
		require.NoError(t, err)
		for _, r := range results {
			assert.True(t, r.Matches(), "%s %v", m.Name(), r.Sample.Words)
		}
	}
}

func TestGenerateReport(t *testing.T) {
	m := Alternation{Pruned: true}
	a, err := Build(m)
	require.NoError(t, err)
	results, err := Check(context.Background(), m)
	require.NoError(t, err)

	report, err := GenerateReport(m, a, results)
	require.NoError(t, err)
	assert.Contains(t, report, "# alternation-pruned\n")
	assert.Contains(t, report, "```mermaid\nstateDiagram-v2\n")
	assert.Contains(t, report, "| `{ a, b }` | rejected | ✅ rejected | 0 |")
	assert.Contains(t, report, "| `{ a }` | accepted | ✅ accepted | 1 |")
	assert.Contains(t, report, "**Summary**: 2/2 samples as expected")
}
