// Package dictionary reads and writes vocabulary snapshots: two column
// word,score CSV files without a required header.
//
// Every row is validated like a single Trie.Insert. By default a row that
// fails validation aborts the load with a RecordError naming the line;
// LoadOptions.SkipForeign downgrades rows whose only fault is a word with
// characters outside a-z to a logged warning.
package dictionary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/bastiangx/typeahead/internal/utils"
	"github.com/bastiangx/typeahead/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// LoadOptions controls how a snapshot becomes a trie.
type LoadOptions struct {
	// CacheCap is passed to suggest.NewWithCap.
	CacheCap int
	// SkipForeign skips words with characters outside a-z with a warning
	// instead of aborting the load.
	SkipForeign bool
	// MaxWords bounds the number of distinct words, 0 means unlimited.
	MaxWords int
}

// LoadReport describes a completed load.
type LoadReport struct {
	Rows        int
	Words       int
	Duplicates  int
	Skipped     int
	Fingerprint uint64
}

// SaveReport describes a completed save.
type SaveReport struct {
	Rows        int
	Fingerprint uint64
}

// Load reads the snapshot at path into a new trie. Any malformed row aborts
// the whole load; the caller keeps its previous vocabulary in that case.
func Load(path string, opts LoadOptions) (*suggest.Trie, LoadReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer file.Close()

	trie, report, err := ReadCSV(file, path, opts)
	if err != nil {
		return nil, report, err
	}
	log.Debugf("Loaded %s: %d rows, %d words, %d duplicates, %d skipped, fingerprint %016x",
		path, report.Rows, report.Words, report.Duplicates, report.Skipped, report.Fingerprint)
	return trie, report, nil
}

// ReadCSV parses a snapshot from r. name is only used in error messages.
// Rows are staged first so that the trie is built only from a fully valid
// snapshot; later rows for the same word replace earlier ones.
func ReadCSV(r io.Reader, name string, opts LoadOptions) (*suggest.Trie, LoadReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	staging := patricia.NewTrie()
	var report LoadReport
	first := true

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.StartLine
			}
			return nil, report, &RecordError{Path: name, Line: line, Err: fmt.Errorf("%w: %v", ErrMalformedRecord, err)}
		}
		line, _ := reader.FieldPos(0)

		word, score, kind, err := parseRow(record, first)
		first = false
		switch {
		case kind == rowHeader:
			continue
		case kind == rowForeign && opts.SkipForeign:
			report.Rows++
			report.Skipped++
			log.Warnf("%s:%d: skipping %q, only a-z words are indexed", name, line, word)
			continue
		case kind == rowForeign:
			return nil, report, &RecordError{Path: name, Line: line, Record: strings.Join(record, ","), Err: fmt.Errorf("%w: %w", ErrMalformedRecord, err)}
		case err != nil:
			return nil, report, &RecordError{Path: name, Line: line, Record: strings.Join(record, ","), Err: err}
		}
		report.Rows++

		key := patricia.Prefix(word)
		if staging.Get(key) != nil {
			report.Duplicates++
		} else {
			report.Words++
			if opts.MaxWords > 0 && report.Words > opts.MaxWords {
				return nil, report, fmt.Errorf("%s: %w: more than %d distinct words", name, ErrTooManyWords, opts.MaxWords)
			}
		}
		staging.Set(key, score)
	}

	trie := suggest.NewWithCap(opts.CacheCap)
	err := staging.Visit(func(prefix patricia.Prefix, item patricia.Item) error {
		return trie.Insert(string(prefix), item.(float64))
	})
	if err != nil {
		return nil, report, fmt.Errorf("failed to build trie from %s: %w", name, err)
	}
	report.Fingerprint = Fingerprint(trie.All())
	return trie, report, nil
}

// Save writes one row per entry to path, truncating any existing file.
func Save(path string, entries iter.Seq2[string, float64]) (SaveReport, error) {
	var report SaveReport
	err := utils.WriteFileWith(path, func(w io.Writer) error {
		var err error
		report, err = WriteCSV(w, entries)
		return err
	})
	if err != nil {
		return report, fmt.Errorf("failed to save snapshot %s: %w", path, err)
	}
	log.Debugf("Saved %s: %d rows, fingerprint %016x", path, report.Rows, report.Fingerprint)
	return report, nil
}

// WriteCSV writes entries as word,score rows in iteration order.
func WriteCSV(w io.Writer, entries iter.Seq2[string, float64]) (SaveReport, error) {
	var report SaveReport
	cw := csv.NewWriter(w)
	record := make([]string, 2)
	for word, score := range entries {
		record[0] = word
		record[1] = utils.FormatScore(score)
		if err := cw.Write(record); err != nil {
			return report, err
		}
		report.Rows++
		report.Fingerprint += entryHash(word, score)
	}
	cw.Flush()
	return report, cw.Error()
}
