package suggest

import (
	"container/heap"
	"slices"
	"strings"
)

// DefaultCacheCap is the number of ranked words every node keeps for its subtree.
// Completions asking for more than this fall back to a subtree scan.
const DefaultCacheCap = 64

// ranksBefore is the total completion order: higher score first, then
// lexicographically smaller word first.
func ranksBefore(a, b Suggestion) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Word < b.Word
}

func compareRank(a, b Suggestion) int {
	switch {
	case a.Score > b.Score:
		return -1
	case a.Score < b.Score:
		return 1
	}
	return strings.Compare(a.Word, b.Word)
}

func sortSuggestions(s []Suggestion) {
	slices.SortFunc(s, compareRank)
}

// cursor walks one already ranked list during a merge.
type cursor struct {
	list []Suggestion
	pos  int
}

func (c *cursor) head() Suggestion { return c.list[c.pos] }

// cursorHeap keeps the cursor with the best head on top.
type cursorHeap []cursor

func (h cursorHeap) Len() int           { return len(h) }
func (h cursorHeap) Less(i, j int) bool { return ranksBefore(h[i].head(), h[j].head()) }
func (h cursorHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *cursorHeap) Push(x any) { *h = append(*h, x.(cursor)) }

func (h *cursorHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

// mergeRanked merges ranked lists whose words are pairwise distinct and
// keeps the first limit entries. Cost is O(limit log len(lists)).
func mergeRanked(lists [][]Suggestion, limit int) []Suggestion {
	h := make(cursorHeap, 0, len(lists))
	total := 0
	for _, l := range lists {
		if len(l) == 0 {
			continue
		}
		h = append(h, cursor{list: l})
		total += len(l)
	}
	if total == 0 {
		return nil
	}
	if len(h) == 1 {
		l := h[0].list
		return slices.Clone(l[:min(len(l), limit)])
	}
	heap.Init(&h)

	out := make([]Suggestion, 0, min(total, limit))
	for h.Len() > 0 && len(out) < limit {
		top := &h[0]
		out = append(out, top.head())
		top.pos++
		if top.pos == len(top.list) {
			heap.Pop(&h)
		} else {
			heap.Fix(&h, 0)
		}
	}
	return out
}
