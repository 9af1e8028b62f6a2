package dictionary

import (
	"iter"

	"github.com/bastiangx/typeahead/internal/utils"
	"github.com/cespare/xxhash/v2"
)

// Fingerprint digests a vocabulary independently of iteration order.
// Two vocabularies with the same (word, score) pairs share a fingerprint.
func Fingerprint(entries iter.Seq2[string, float64]) uint64 {
	var sum uint64
	for word, score := range entries {
		sum += entryHash(word, score)
	}
	return sum
}

func entryHash(word string, score float64) uint64 {
	d := xxhash.New()
	d.WriteString(word)
	d.Write([]byte{0})
	d.WriteString(utils.FormatScore(score))
	return d.Sum64()
}
