package nfh

import (
	"fmt"
	"io"
	"strings"
)

// WriteDOT writes a Graphviz digraph of the automaton.
func WriteDOT(w io.Writer, a *NFH) error {
	var sb strings.Builder

	sb.WriteString("digraph NFH {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=circle];\n")
	sb.WriteString(fmt.Sprintf("  label=%q;\n", "k="+fmt.Sprint(a.k)+" alpha="+quantifierPrefix(a.alpha)))
	sb.WriteString("\n")

	for i, q := range a.InitialStates() {
		sb.WriteString(fmt.Sprintf("  start%d [shape=point];\n", i))
		sb.WriteString(fmt.Sprintf("  start%d -> %q;\n", i, string(q)))
	}
	sb.WriteString("\n")

	for _, q := range a.states {
		if a.accepting.Has(q) {
			sb.WriteString(fmt.Sprintf("  %q [shape=doublecircle];\n", string(q)))
		} else {
			sb.WriteString(fmt.Sprintf("  %q;\n", string(q)))
		}
	}
	sb.WriteString("\n")

	for _, e := range mergeEdges(a) {
		sb.WriteString(fmt.Sprintf("  %q -> %q [label=%q];\n",
			string(e.from), string(e.to), strings.Join(e.labels, "\n")))
	}

	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func quantifierPrefix(alpha []Quantifier) string {
	var sb strings.Builder
	for _, q := range alpha {
		sb.WriteString(q.String())
	}
	return sb.String()
}
