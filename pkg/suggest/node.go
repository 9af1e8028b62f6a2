package suggest

import "slices"

// node is one trie vertex. It owns its children exclusively and keeps a
// ranking summary of its subtree:
//   - size is the number of terminal nodes in the subtree, itself included.
//   - best holds the highest ranked words of the subtree, at most the trie's
//     cache cap. When size <= cap it holds every word of the subtree.
type node struct {
	children map[byte]*node
	terminal bool
	score    float64
	size     int
	best     []Suggestion
}

func (n *node) child(b byte) *node {
	if n.children == nil {
		return nil
	}
	return n.children[b]
}

func (n *node) addChild(b byte) *node {
	if n.children == nil {
		n.children = make(map[byte]*node, 1)
	}
	c := &node{}
	n.children[b] = c
	return c
}

func (n *node) removeChild(b byte) {
	delete(n.children, b)
}

// prunable reports whether nothing depends on the node anymore.
func (n *node) prunable() bool {
	return !n.terminal && len(n.children) == 0
}

// edges returns the child labels in ascending order.
func (n *node) edges() []byte {
	keys := make([]byte, 0, len(n.children))
	for b := range n.children {
		keys = append(keys, b)
	}
	slices.Sort(keys)
	return keys
}

// refresh re-derives size and best from the node's own mark and the
// already up to date summaries of its children. word is the string spelled
// by the path from the root to n.
func (n *node) refresh(word string, limit int) {
	size := 0
	lists := make([][]Suggestion, 0, len(n.children)+1)
	if n.terminal {
		size++
		lists = append(lists, []Suggestion{{Word: word, Score: n.score}})
	}
	for _, c := range n.children {
		size += c.size
		lists = append(lists, c.best)
	}
	n.size = size
	n.best = mergeRanked(lists, limit)
}
