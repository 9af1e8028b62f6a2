package suggest

import "fmt"

// Stats summarizes the shape of a trie.
type Stats struct {
	Words    int `msgpack:"words" json:"words"`
	Nodes    int `msgpack:"nodes" json:"nodes"`
	Height   int `msgpack:"height" json:"height"`
	CacheCap int `msgpack:"cache_cap" json:"cache_cap"`
}

// Stats returns the word and node counters and the height, the depth of the
// deepest node with the root at depth 0. All values are maintained
// incrementally, so the call is O(1).
func (t *Trie) Stats() Stats {
	return Stats{
		Words:    t.words,
		Nodes:    t.nodes,
		Height:   t.height,
		CacheCap: t.cacheCap,
	}
}

// String formats the stats in the line protocol shape.
func (s Stats) String() string {
	return fmt.Sprintf("words=%d height=%d nodes=%d", s.Words, s.Height, s.Nodes)
}
