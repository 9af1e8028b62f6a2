package suggest

import (
	"container/heap"

	"github.com/charmbracelet/log"
)

// Complete returns up to k stored words starting with prefix, ordered by
// score descending and then word ascending. An empty prefix matches every
// word; an unknown prefix yields an empty result.
//
// For k up to the cache cap, or when the whole subtree fits in its cache,
// the answer is a copy of the prefix node's cache: O(len(prefix) + k).
// Larger requests scan the subtree with a bounded heap, O(s log k) for s
// words under the prefix.
func (t *Trie) Complete(prefix string, k int) []Suggestion {
	if k <= 0 {
		return []Suggestion{}
	}
	n := t.find(prefix)
	if n == nil || n.size == 0 {
		return []Suggestion{}
	}

	if k <= t.cacheCap || n.size <= t.cacheCap {
		out := make([]Suggestion, min(k, len(n.best)))
		copy(out, n.best)
		return out
	}

	log.Debug("completion exceeds cache, scanning subtree", "prefix", prefix, "k", k, "words", n.size)
	return scanTopK(n, prefix, k)
}

// rankHeap keeps the worst ranked suggestion on top so it can be evicted.
type rankHeap []Suggestion

func (h rankHeap) Len() int           { return len(h) }
func (h rankHeap) Less(i, j int) bool { return ranksBefore(h[j], h[i]) }
func (h rankHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *rankHeap) Push(x any) { *h = append(*h, x.(Suggestion)) }

func (h *rankHeap) Pop() any {
	old := *h
	n := len(old)
	s := old[n-1]
	*h = old[:n-1]
	return s
}

// scanTopK walks the whole subtree of n and keeps the k best words.
func scanTopK(n *node, prefix string, k int) []Suggestion {
	h := make(rankHeap, 0, min(k, n.size))
	buf := make([]byte, len(prefix), len(prefix)+16)
	copy(buf, prefix)

	walk(n, buf, func(word string, score float64) bool {
		s := Suggestion{Word: word, Score: score}
		if h.Len() < k {
			heap.Push(&h, s)
		} else if ranksBefore(s, h[0]) {
			h[0] = s
			heap.Fix(&h, 0)
		}
		return true
	})

	out := []Suggestion(h)
	sortSuggestions(out)
	return out
}
