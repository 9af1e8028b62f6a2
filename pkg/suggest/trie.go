package suggest

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/bastiangx/typeahead/internal/utils"
	"github.com/charmbracelet/log"
)

// ErrInvalidInput is returned for words outside [a-z]+ and for negative or non-finite scores.
var ErrInvalidInput = errors.New("invalid input")

// Trie stores weighted lowercase ASCII words and answers ranked prefix completions.
// Every node caches the top entries of its subtree, so completions up to the
// cache cap never walk the subtree. Mutations re-derive the caches along the
// touched root-to-leaf path only.
//
// A Trie is not safe for concurrent use; callers serving several goroutines
// must guard it with a sync.RWMutex around the whole structure.
type Trie struct {
	root     *node
	cacheCap int
	words    int
	nodes    int
	// lengths[l] counts stored words of length l, height is the largest l in use.
	lengths []int
	height  int
}

// New creates an empty trie using DefaultCacheCap.
func New() *Trie {
	return NewWithCap(DefaultCacheCap)
}

// NewWithCap creates an empty trie whose nodes cache up to cacheCap ranked words.
// Values below 1 select DefaultCacheCap.
func NewWithCap(cacheCap int) *Trie {
	if cacheCap < 1 {
		cacheCap = DefaultCacheCap
	}
	return &Trie{
		root:     &node{},
		cacheCap: cacheCap,
		nodes:    1,
	}
}

// ValidateWord checks that word is non-empty and made of a-z only.
func ValidateWord(word string) error {
	if word == "" {
		return fmt.Errorf("%w: empty word", ErrInvalidInput)
	}
	if !utils.IsLowerASCII(word) {
		return fmt.Errorf("%w: word %q has characters outside a-z", ErrInvalidInput, word)
	}
	return nil
}

// ValidateScore checks that score is finite and non-negative.
func ValidateScore(score float64) error {
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 {
		return fmt.Errorf("%w: score %v must be finite and non-negative", ErrInvalidInput, score)
	}
	return nil
}

// Insert adds word with score, or updates the score when word is already stored.
// Cost is O(len(word)) node steps plus one cache merge per ancestor.
func (t *Trie) Insert(word string, score float64) error {
	if err := ValidateWord(word); err != nil {
		return err
	}
	if err := ValidateScore(score); err != nil {
		return err
	}

	path := make([]*node, 1, len(word)+1)
	path[0] = t.root
	n := t.root
	for i := 0; i < len(word); i++ {
		next := n.child(word[i])
		if next == nil {
			next = n.addChild(word[i])
			t.nodes++
		}
		n = next
		path = append(path, n)
	}

	if n.terminal && n.score == score {
		return nil
	}
	if !n.terminal {
		n.terminal = true
		t.words++
		t.trackLength(len(word), 1)
	}
	n.score = score
	t.fixup(word, path)
	return nil
}

// Remove deletes word and prunes the nodes that no longer lead to any word.
// It reports false when word was not stored.
func (t *Trie) Remove(word string) bool {
	path := t.descend(word)
	if path == nil {
		return false
	}
	n := path[len(path)-1]
	if !n.terminal {
		return false
	}

	n.terminal = false
	n.score = 0
	t.words--
	t.trackLength(len(word), -1)

	for i := len(path) - 1; i >= 0; i-- {
		cur := path[i]
		if i > 0 && cur.prunable() {
			path[i-1].removeChild(word[i-1])
			t.nodes--
			continue
		}
		cur.refresh(word[:i], t.cacheCap)
	}
	log.Debug("removed word", "word", word, "words", t.words, "nodes", t.nodes)
	return true
}

// Contains reports whether word is stored.
func (t *Trie) Contains(word string) bool {
	n := t.find(word)
	return n != nil && n.terminal
}

// Score returns the score of word and whether it is stored.
func (t *Trie) Score(word string) (float64, bool) {
	n := t.find(word)
	if n == nil || !n.terminal {
		return 0, false
	}
	return n.score, true
}

// Len returns the number of stored words.
func (t *Trie) Len() int {
	return t.words
}

// CacheCap returns the per-node ranking cache bound.
func (t *Trie) CacheCap() int {
	return t.cacheCap
}

// All yields every stored (word, score) pair depth-first in lexicographic
// order. Each call starts a fresh traversal.
func (t *Trie) All() iter.Seq2[string, float64] {
	return func(yield func(string, float64) bool) {
		walk(t.root, make([]byte, 0, t.height), yield)
	}
}

// walk visits the terminal nodes below n in lexicographic order. buf holds
// the word spelled so far. It returns false once yield asked to stop.
func walk(n *node, buf []byte, yield func(string, float64) bool) bool {
	if n.terminal && !yield(string(buf), n.score) {
		return false
	}
	for _, b := range n.edges() {
		if !walk(n.children[b], append(buf, b), yield) {
			return false
		}
	}
	return true
}

// find returns the node spelled by s, or nil.
func (t *Trie) find(s string) *node {
	n := t.root
	for i := 0; i < len(s) && n != nil; i++ {
		n = n.child(s[i])
	}
	return n
}

// descend returns the nodes on the path spelled by s, root first, or nil
// when the path does not exist.
func (t *Trie) descend(s string) []*node {
	path := make([]*node, 1, len(s)+1)
	path[0] = t.root
	n := t.root
	for i := 0; i < len(s); i++ {
		if n = n.child(s[i]); n == nil {
			return nil
		}
		path = append(path, n)
	}
	return path
}

// fixup re-derives every node summary on path, deepest first.
func (t *Trie) fixup(word string, path []*node) {
	for i := len(path) - 1; i >= 0; i-- {
		path[i].refresh(word[:i], t.cacheCap)
	}
}

// trackLength maintains the word length multiset. Every leaf is terminal
// after pruning, so the longest stored word is the tree height.
func (t *Trie) trackLength(l, delta int) {
	for len(t.lengths) <= l {
		t.lengths = append(t.lengths, 0)
	}
	t.lengths[l] += delta
	if delta > 0 && l > t.height {
		t.height = l
	}
	for t.height > 0 && t.lengths[t.height] == 0 {
		t.height--
	}
}
