package nfh

import (
	"fmt"
	"io"
	"strings"
)

// mermaidID maps a state to a diagram-safe node id. State names may hold
// characters Mermaid rejects, so nodes are declared with their name as a label.
func (a *NFH) mermaidID(q State) string {
	return fmt.Sprintf("s%d", a.ordinal[q])
}

// WriteMermaid writes a Mermaid stateDiagram-v2 of the automaton. Edges are
// labelled with their symbol vectors; parallel edges share one arrow.
func WriteMermaid(w io.Writer, a *NFH) error {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	for _, q := range a.states {
		sb.WriteString(fmt.Sprintf("    state %q as %s\n", string(q), a.mermaidID(q)))
	}
	sb.WriteString("\n")

	for _, q := range a.InitialStates() {
		sb.WriteString(fmt.Sprintf("    [*] --> %s\n", a.mermaidID(q)))
	}

	for _, e := range mergeEdges(a) {
		sb.WriteString(fmt.Sprintf("    %s --> %s: %s\n",
			a.mermaidID(e.from), a.mermaidID(e.to), strings.Join(e.labels, " | ")))
	}

	for _, q := range a.AcceptingStates() {
		sb.WriteString(fmt.Sprintf("    %s --> [*]\n", a.mermaidID(q)))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteRunMermaid writes a witness as a Mermaid sequence diagram with one
// participant per tape and a note per step.
func WriteRunMermaid(w io.Writer, run *Run) error {
	var sb strings.Builder
	sb.WriteString("sequenceDiagram\n")
	sb.WriteString("    participant A as automaton\n")
	for i, word := range run.Assignment {
		sb.WriteString(fmt.Sprintf("    participant T%d as %s\n", i+1, displayWord(word)))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("    Note over A: start %s\n", run.Start))
	for _, st := range run.Steps() {
		for track, sym := range st.Transition.Symbols {
			if sym.IsIdle() {
				continue
			}
			sb.WriteString(fmt.Sprintf("    T%d->>A: %s\n", track+1, sym))
		}
		sb.WriteString(fmt.Sprintf("    Note over A: step %d %s -> %s cursors %v\n",
			st.Index, st.Transition.From, st.Transition.To, st.Cursors))
	}
	sb.WriteString(fmt.Sprintf("    Note over A: accept in %s\n", run.FinalState()))

	_, err := io.WriteString(w, sb.String())
	return err
}

type edge struct {
	from, to State
	labels   []string
}

// mergeEdges groups transitions by endpoint pair, in delta order.
func mergeEdges(a *NFH) []edge {
	type pair struct{ from, to State }
	var out []edge
	at := make(map[pair]int)
	for _, t := range a.delta {
		p := pair{t.From, t.To}
		i, ok := at[p]
		if !ok {
			i = len(out)
			at[p] = i
			out = append(out, edge{from: t.From, to: t.To})
		}
		out[i].labels = append(out[i].labels, t.Symbols.String())
	}
	return out
}
