// Package session owns the live vocabulary of one client and executes the
// typeahead commands against it. Both the line REPL and the IPC server
// drive a Session, one command at a time.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bastiangx/typeahead/internal/utils"
	"github.com/bastiangx/typeahead/pkg/dictionary"
	"github.com/bastiangx/typeahead/pkg/suggest"
	"github.com/charmbracelet/log"
)

var (
	// ErrUnknownCommand is returned for command names outside the protocol.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a known command has the wrong arguments.
	ErrUsage = errors.New("bad arguments")
)

// Options configures a Session.
type Options struct {
	CacheCap    int
	SkipForeign bool
	MaxWords    int
}

// Session holds the trie for the lifetime of a client. load replaces the
// trie as a whole and only once the snapshot has been read completely.
type Session struct {
	trie   *suggest.Trie
	opts   Options
	logger *log.Logger
}

// New creates a session with an empty vocabulary.
func New(opts Options, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		trie:   suggest.NewWithCap(opts.CacheCap),
		opts:   opts,
		logger: logger,
	}
}

// Load replaces the vocabulary with the snapshot at path.
func (s *Session) Load(path string) (dictionary.LoadReport, error) {
	trie, report, err := dictionary.Load(path, dictionary.LoadOptions{
		CacheCap:    s.opts.CacheCap,
		SkipForeign: s.opts.SkipForeign,
		MaxWords:    s.opts.MaxWords,
	})
	if err != nil {
		return report, err
	}
	s.trie = trie
	s.logger.Debug("vocabulary replaced", "path", path, "words", report.Words, "skipped", report.Skipped)
	return report, nil
}

// Save writes the vocabulary to path.
func (s *Session) Save(path string) (dictionary.SaveReport, error) {
	return dictionary.Save(path, s.trie.All())
}

// Insert normalizes word and stores it with score.
func (s *Session) Insert(word string, score float64) error {
	return s.trie.Insert(utils.NormalizeWord(word), score)
}

// Remove normalizes word and removes it, reporting whether it was present.
func (s *Session) Remove(word string) bool {
	return s.trie.Remove(utils.NormalizeWord(word))
}

// Contains normalizes word and tests membership.
func (s *Session) Contains(word string) bool {
	return s.trie.Contains(utils.NormalizeWord(word))
}

// Complete normalizes prefix and returns up to k ranked completions.
func (s *Session) Complete(prefix string, k int) []suggest.Suggestion {
	return s.trie.Complete(utils.NormalizeWord(prefix), k)
}

// Stats reports the vocabulary counters.
func (s *Session) Stats() suggest.Stats {
	return s.trie.Stats()
}

// Fingerprint digests the current vocabulary.
func (s *Session) Fingerprint() uint64 {
	return dictionary.Fingerprint(s.trie.All())
}

// Result is the outcome of one protocol line.
type Result struct {
	// Output is the line to print; only meaningful when HasOutput is set.
	Output    string
	HasOutput bool
	Quit      bool
}

func output(s string) Result {
	return Result{Output: s, HasOutput: true}
}

// Execute runs one protocol line:
//
//	load <path> | save <path> | insert <word> <freq> | remove <word>
//	contains <word> | complete <prefix> <k> | stats | quit
//
// Blank lines produce an empty Result. Unknown commands and wrong arguments
// return ErrUnknownCommand or ErrUsage without touching the vocabulary.
func (s *Session) Execute(line string) (Result, error) {
	cmd, args := utils.SplitCommand(line)
	if cmd == "" {
		return Result{}, nil
	}

	switch cmd {
	case "quit", "exit":
		return Result{Quit: true}, nil

	case "load":
		if len(args) != 1 {
			return Result{}, usage(cmd, "<path>")
		}
		_, err := s.Load(args[0])
		return Result{}, err

	case "save":
		if len(args) != 1 {
			return Result{}, usage(cmd, "<path>")
		}
		_, err := s.Save(args[0])
		return Result{}, err

	case "insert":
		if len(args) != 2 {
			return Result{}, usage(cmd, "<word> <freq>")
		}
		score, err := utils.ParseScore(args[1])
		if err != nil {
			return Result{}, fmt.Errorf("%w: insert: freq %q is not a number", ErrUsage, args[1])
		}
		return Result{}, s.Insert(args[0], score)

	case "remove":
		if len(args) != 1 {
			return Result{}, usage(cmd, "<word>")
		}
		if s.Remove(args[0]) {
			return output("OK"), nil
		}
		return output("MISS"), nil

	case "contains":
		if len(args) != 1 {
			return Result{}, usage(cmd, "<word>")
		}
		if s.Contains(args[0]) {
			return output("YES"), nil
		}
		return output("NO"), nil

	case "complete":
		if len(args) != 2 {
			return Result{}, usage(cmd, "<prefix> <k>")
		}
		k, err := strconv.Atoi(args[1])
		if err != nil || k < 0 {
			return Result{}, fmt.Errorf("%w: complete: k %q must be a non-negative integer", ErrUsage, args[1])
		}
		words := suggest.Words(s.Complete(args[0], k))
		return output(strings.Join(words, ",")), nil

	case "stats":
		if len(args) != 0 {
			return Result{}, usage(cmd, "")
		}
		return output(s.Stats().String()), nil
	}
	return Result{}, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

func usage(cmd, form string) error {
	return fmt.Errorf("%w: usage: %s %s", ErrUsage, cmd, form)
}
