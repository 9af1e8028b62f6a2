package suggest

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/bmizerany/assert"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func mustInsert(t *testing.T, tr *Trie, word string, score float64) {
	t.Helper()
	if err := tr.Insert(word, score); err != nil {
		t.Fatalf("Insert(%q, %v): %v", word, score, err)
	}
}

func collect(tr *Trie) ([]string, []float64) {
	var words []string
	var scores []float64
	for w, s := range tr.All() {
		words = append(words, w)
		scores = append(scores, s)
	}
	return words, scores
}

func TestScenario(t *testing.T) {
	tr := New()
	mustInsert(t, tr, "cat", 10)
	mustInsert(t, tr, "car", 10)
	mustInsert(t, tr, "cap", 5)

	assert.Equal(t, []string{"car", "cat"}, Words(tr.Complete("ca", 2)))
	assert.Equal(t, "words=3 height=3 nodes=6", tr.Stats().String())

	assert.Equal(t, true, tr.Remove("cat"))
	assert.Equal(t, false, tr.Contains("cat"))
	assert.Equal(t, []string{"car", "cap"}, Words(tr.Complete("ca", 2)))
	assert.Equal(t, false, tr.Remove("cat"))
	assert.Equal(t, "words=2 height=3 nodes=5", tr.Stats().String())
}

func TestEmptyTrie(t *testing.T) {
	tr := New()
	assert.Equal(t, Stats{Words: 0, Nodes: 1, Height: 0, CacheCap: DefaultCacheCap}, tr.Stats())
	assert.Equal(t, []Suggestion{}, tr.Complete("", 5))
	assert.Equal(t, false, tr.Contains(""))
	assert.Equal(t, false, tr.Remove("a"))
	words, _ := collect(tr)
	assert.Equal(t, 0, len(words))
}

func TestInsertUpdatesScore(t *testing.T) {
	tr := New()
	mustInsert(t, tr, "go", 1)
	mustInsert(t, tr, "gopher", 5)
	mustInsert(t, tr, "go", 9)

	score, ok := tr.Score("go")
	assert.Equal(t, true, ok)
	assert.Equal(t, 9.0, score)
	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, []Suggestion{{"go", 9}, {"gopher", 5}}, tr.Complete("g", 5))

	mustInsert(t, tr, "go", 0)
	assert.Equal(t, []Suggestion{{"gopher", 5}, {"go", 0}}, tr.Complete("g", 5))
}

func TestInsertIdempotent(t *testing.T) {
	tr := New()
	mustInsert(t, tr, "abc", 3)
	mustInsert(t, tr, "abd", 4)
	before := tr.Stats()
	mustInsert(t, tr, "abc", 3)
	assert.Equal(t, before, tr.Stats())
	assert.Equal(t, []string{"abd", "abc"}, Words(tr.Complete("ab", 10)))
}

func TestInsertInvalid(t *testing.T) {
	cases := []struct {
		name  string
		word  string
		score float64
	}{
		{"empty", "", 1},
		{"upper", "Cat", 1},
		{"digit", "c4t", 1},
		{"space", "c t", 1},
		{"unicode", "café", 1},
		{"negative", "cat", -1},
		{"nan", "cat", math.NaN()},
		{"inf", "cat", math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := New()
			err := tr.Insert(tc.word, tc.score)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Insert(%q, %v) = %v, want ErrInvalidInput", tc.word, tc.score, err)
			}
			assert.Equal(t, 0, tr.Len())
			assert.Equal(t, 1, tr.Stats().Nodes)
		})
	}
}

func TestQueriesWithForeignCharacters(t *testing.T) {
	tr := New()
	mustInsert(t, tr, "cat", 1)
	assert.Equal(t, false, tr.Contains("CAT"))
	assert.Equal(t, false, tr.Remove("c-t"))
	assert.Equal(t, []Suggestion{}, tr.Complete("C", 3))
	assert.Equal(t, 1, tr.Len())
}

func TestRemovePrunes(t *testing.T) {
	tr := New()
	mustInsert(t, tr, "car", 1)
	mustInsert(t, tr, "carpet", 2)

	assert.Equal(t, true, tr.Remove("carpet"))
	assert.Equal(t, Stats{Words: 1, Nodes: 4, Height: 3, CacheCap: DefaultCacheCap}, tr.Stats())

	// removing a prefix word keeps the nodes below it
	mustInsert(t, tr, "carpet", 2)
	assert.Equal(t, true, tr.Remove("car"))
	assert.Equal(t, Stats{Words: 1, Nodes: 7, Height: 6, CacheCap: DefaultCacheCap}, tr.Stats())
	assert.Equal(t, false, tr.Contains("car"))
	assert.Equal(t, []string{"carpet"}, Words(tr.Complete("ca", 5)))

	assert.Equal(t, true, tr.Remove("carpet"))
	assert.Equal(t, Stats{Words: 0, Nodes: 1, Height: 0, CacheCap: DefaultCacheCap}, tr.Stats())
}

func TestRemoveNonTerminalPath(t *testing.T) {
	tr := New()
	mustInsert(t, tr, "house", 1)
	assert.Equal(t, false, tr.Remove("hou"))
	assert.Equal(t, false, tr.Remove("houses"))
	assert.Equal(t, true, tr.Contains("house"))
	assert.Equal(t, 6, tr.Stats().Nodes)
}

func TestHeightTracksLongestWord(t *testing.T) {
	tr := New()
	mustInsert(t, tr, "a", 1)
	mustInsert(t, tr, "abcde", 1)
	mustInsert(t, tr, "abc", 1)
	assert.Equal(t, 5, tr.Stats().Height)

	tr.Remove("abcde")
	assert.Equal(t, 3, tr.Stats().Height)
	tr.Remove("a")
	assert.Equal(t, 3, tr.Stats().Height)
	tr.Remove("abc")
	assert.Equal(t, 0, tr.Stats().Height)
}

func TestAllLexicographic(t *testing.T) {
	tr := New()
	for i, w := range []string{"zoo", "a", "ab", "b", "aa", "zebra"} {
		mustInsert(t, tr, w, float64(i))
	}
	words, scores := collect(tr)
	assert.Equal(t, []string{"a", "aa", "ab", "b", "zebra", "zoo"}, words)
	assert.Equal(t, []float64{1, 4, 2, 3, 5, 0}, scores)

	// restartable
	again, _ := collect(tr)
	assert.Equal(t, words, again)
}

func TestAllEarlyStop(t *testing.T) {
	tr := New()
	for _, w := range []string{"one", "two", "three", "four"} {
		mustInsert(t, tr, w, 1)
	}
	var seen []string
	for w := range tr.All() {
		seen = append(seen, w)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"four", "one"}, seen)
}

func TestNewWithCapFallsBack(t *testing.T) {
	assert.Equal(t, DefaultCacheCap, NewWithCap(0).CacheCap())
	assert.Equal(t, DefaultCacheCap, NewWithCap(-4).CacheCap())
	assert.Equal(t, 3, NewWithCap(3).CacheCap())
}

// checkCaches verifies every node summary and the trie counters against a
// fresh walk of the tree.
func checkCaches(t *testing.T, tr *Trie) {
	t.Helper()
	nodes, height := 0, 0
	var visit func(n *node, prefix []byte) []Suggestion
	visit = func(n *node, prefix []byte) []Suggestion {
		nodes++
		height = max(height, len(prefix))
		if len(prefix) > 0 && n.prunable() {
			t.Fatalf("node %q leads to no word but was kept", prefix)
		}
		var all []Suggestion
		if n.terminal {
			all = append(all, Suggestion{Word: string(prefix), Score: n.score})
		}
		for _, b := range n.edges() {
			all = append(all, visit(n.children[b], append(slices.Clone(prefix), b))...)
		}
		sortSuggestions(all)
		if n.size != len(all) {
			t.Fatalf("node %q size=%d, want %d", prefix, n.size, len(all))
		}
		want := all[:min(len(all), tr.cacheCap)]
		if !slices.Equal(n.best, want) {
			t.Fatalf("node %q cache=%v, want %v", prefix, n.best, want)
		}
		return all
	}
	words := len(visit(tr.root, nil))

	want := Stats{Words: words, Nodes: nodes, Height: height, CacheCap: tr.cacheCap}
	if got := tr.Stats(); got != want {
		t.Fatalf("stats = %+v, walk gives %+v", got, want)
	}
}

func TestCountersUnderChurn(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 2))
	tr := NewWithCap(2)
	for step := 0; step < 2000; step++ {
		word := randomWord(r)
		if r.IntN(3) == 0 {
			tr.Remove(word)
		} else {
			mustInsert(t, tr, word, float64(r.IntN(5)))
		}
		checkCaches(t, tr)
	}
}

func TestCachesStayConsistent(t *testing.T) {
	tr := NewWithCap(2)
	ops := []struct {
		insert bool
		word   string
		score  float64
	}{
		{true, "tea", 3}, {true, "ten", 7}, {true, "ted", 7}, {true, "to", 1},
		{true, "tea", 9}, {false, "ten", 0}, {true, "team", 2}, {false, "to", 0},
		{true, "t", 4}, {false, "tea", 0}, {true, "ted", 0},
	}
	for _, op := range ops {
		if op.insert {
			mustInsert(t, tr, op.word, op.score)
		} else {
			tr.Remove(op.word)
		}
		checkCaches(t, tr)
	}
}
