package dictionary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bastiangx/typeahead/internal/utils"
	"github.com/bastiangx/typeahead/pkg/suggest"
)

// ErrMalformedRecord marks a CSV row that does not parse as word,score.
var ErrMalformedRecord = errors.New("malformed record")

// ErrTooManyWords is returned when a snapshot holds more distinct words than allowed.
var ErrTooManyWords = errors.New("too many words")

// RecordError reports the offending row of a snapshot. It unwraps to
// ErrMalformedRecord, and to suggest.ErrInvalidInput when the row was
// rejected by word or score validation.
type RecordError struct {
	Path   string
	Line   int
	Record string
	Err    error
}

func (e *RecordError) Error() string {
	if e.Record == "" {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v (row %q)", e.Path, e.Line, e.Err, e.Record)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// rowKind classifies a parsed snapshot row.
type rowKind int

const (
	rowEntry rowKind = iota
	rowHeader
	rowForeign // well formed, but the word has characters outside a-z
)

// parseRow turns a two column record into a normalized entry.
// Words are trimmed and lowercased; scores must be finite and non-negative.
func parseRow(record []string, first bool) (string, float64, rowKind, error) {
	if len(record) != 2 {
		return "", 0, rowEntry, fmt.Errorf("%w: expected 2 fields (word,score), got %d", ErrMalformedRecord, len(record))
	}

	word := utils.NormalizeWord(record[0])
	if first && word == "word" && strings.EqualFold(strings.TrimSpace(record[1]), "score") {
		return "", 0, rowHeader, nil
	}
	if word == "" {
		return "", 0, rowEntry, fmt.Errorf("%w: empty word", ErrMalformedRecord)
	}

	score, err := utils.ParseScore(record[1])
	if err != nil {
		return "", 0, rowEntry, fmt.Errorf("%w: score %q is not a number", ErrMalformedRecord, record[1])
	}
	if err := suggest.ValidateScore(score); err != nil {
		return "", 0, rowEntry, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	if err := suggest.ValidateWord(word); err != nil {
		return word, score, rowForeign, err
	}
	return word, score, rowEntry, nil
}
