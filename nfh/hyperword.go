package nfh

import (
	"sort"
	"strconv"
	"strings"
)

// Hyperword is a finite set of words that quantified tracks range over.
// Words are kept sorted so that searches visit them in a stable order.
type Hyperword struct {
	words []string
}

// NewHyperword deduplicates words.
func NewHyperword(words ...string) *Hyperword {
	seen := make(map[string]bool, len(words))
	h := &Hyperword{words: make([]string, 0, len(words))}
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true
		h.words = append(h.words, w)
	}
	sort.Strings(h.words)
	return h
}

func (h *Hyperword) Len() int { return len(h.words) }

// Words returns a copy of the members in sorted order.
func (h *Hyperword) Words() []string { return append([]string(nil), h.words...) }

func (h *Hyperword) Contains(w string) bool {
	i := sort.SearchStrings(h.words, w)
	return i < len(h.words) && h.words[i] == w
}

func (h *Hyperword) String() string {
	if len(h.words) == 0 {
		return "{ }"
	}
	parts := make([]string, len(h.words))
	for i, w := range h.words {
		parts[i] = displayWord(w)
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// displayWord quotes the empty word so it stays visible in listings.
func displayWord(w string) string {
	if w == "" {
		return strconv.Quote(w)
	}
	return w
}

// Assignment binds one word to each track, track i reading Assignment[i].
type Assignment []string

func (a Assignment) String() string {
	parts := make([]string, len(a))
	for i, w := range a {
		parts[i] = displayWord(w)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
