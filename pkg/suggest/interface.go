// Package suggest is the core, providing the ranked prefix trie: membership, weighted inserts/removals
// and top-k completions served from per-node ranking caches.
package suggest

import "iter"

// Suggestion is a single ranked completion.
type Suggestion struct {
	Word  string  `msgpack:"w" json:"w"`
	Score float64 `msgpack:"s" json:"s"`
}

// Vocabulary defines the operations a completion front end needs from a word store
type Vocabulary interface {
	// Insert adds a word or updates the score of an existing one
	Insert(word string, score float64) error

	// Remove deletes a word, reporting whether it was present
	Remove(word string) bool

	// Contains reports exact membership
	Contains(word string) bool

	// Complete returns up to k words starting with prefix, best first
	Complete(prefix string, k int) []Suggestion

	// All yields every (word, score) pair in lexicographic order
	All() iter.Seq2[string, float64]

	// Stats returns counters about the stored vocabulary
	Stats() Stats
}

var _ Vocabulary = (*Trie)(nil)

// Words extracts the words of suggestions, keeping their order.
func Words(suggestions []Suggestion) []string {
	words := make([]string, len(suggestions))
	for i, s := range suggestions {
		words[i] = s.Word
	}
	return words
}
