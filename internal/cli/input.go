// Package cli runs the line protocol REPL: one command per input line,
// machine friendly answers on the output, diagnostics on the logger.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/typeahead/pkg/session"
	"github.com/charmbracelet/log"
)

// InputHandler reads protocol lines and prints the answers. It never
// prompts, so its output can be consumed by other programs directly.
type InputHandler struct {
	session      *session.Session
	reader       *bufio.Reader
	writer       io.Writer
	logger       *log.Logger
	echoErrors   bool
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(s *session.Session, in io.Reader, out io.Writer, logger *log.Logger, echoErrors bool) *InputHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &InputHandler{
		session:    s,
		reader:     bufio.NewReader(in),
		writer:     out,
		logger:     logger,
		echoErrors: echoErrors,
	}
}

// Start begins the interface loop. It returns nil on quit or end of input
// and the read or write error otherwise.
func (h *InputHandler) Start() error {
	h.logger.Debug("REPL started")
	for {
		line, err := h.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading input: %w", err)
		}
		eof := err != nil

		if line = strings.TrimSpace(line); line != "" {
			quit, werr := h.handleInput(line)
			if werr != nil {
				return fmt.Errorf("writing output: %w", werr)
			}
			if quit {
				h.logger.Debug("REPL quit", "requests", h.requestCount)
				return nil
			}
		}
		if eof {
			h.logger.Debug("REPL input closed", "requests", h.requestCount)
			return nil
		}
	}
}

// handleInput executes one line. Malformed and unknown commands are
// dropped silently on the output; failed loads and saves are reported
// through the logger.
func (h *InputHandler) handleInput(line string) (bool, error) {
	h.requestCount++
	start := time.Now()
	res, err := h.session.Execute(line)
	h.logger.Debugf("Took [ %v ] for %q", time.Since(start), line)

	switch {
	case err == nil:
	case errors.Is(err, session.ErrUnknownCommand), errors.Is(err, session.ErrUsage):
		h.logger.Debug("ignored command", "line", line, "err", err)
	case h.echoErrors:
		h.logger.Errorf("ERROR: %v", err)
	default:
		h.logger.Debug("command failed", "line", line, "err", err)
	}

	if res.HasOutput {
		if _, werr := fmt.Fprintln(h.writer, res.Output); werr != nil {
			return false, werr
		}
	}
	return res.Quit, nil
}
