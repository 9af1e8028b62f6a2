package server

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/bastiangx/typeahead/pkg/config"
	"github.com/bastiangx/typeahead/pkg/session"
	"github.com/charmbracelet/log"
)

// Server answers IPC requests against a session.
type Server struct {
	session *session.Session
	codec   Codec
	cfg     config.ServerConfig
	logger  *log.Logger

	requestCount int
}

// NewServer creates a server reading requests from r and writing responses to w
// using the framing named in cfg.Protocol.
func NewServer(s *session.Session, cfg config.ServerConfig, r io.Reader, w io.Writer, logger *log.Logger) (*Server, error) {
	codec, err := NewCodec(cfg.Protocol, r, w)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = config.DefaultConfig().Server.MaxLimit
	}
	if cfg.DefaultLimit <= 0 || cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = min(config.DefaultConfig().Server.DefaultLimit, cfg.MaxLimit)
	}
	return &Server{session: s, codec: codec, cfg: cfg, logger: logger}, nil
}

// Start serves requests until the input ends or a quit request arrives.
func (s *Server) Start() error {
	s.logger.Debug("Starting server", "protocol", s.cfg.Protocol)
	if err := s.codec.Encode(&Response{Status: statusReady}); err != nil {
		return err
	}

	for {
		var req Request
		err := s.codec.Decode(&req)
		if errors.Is(err, io.EOF) {
			s.logger.Debug("Input closed", "requests", s.requestCount)
			return nil
		}
		if errors.Is(err, ErrBadRequest) {
			s.logger.Debug("Bad request", "err", err)
			if err := s.codec.Encode(&Response{Status: statusError, Error: err.Error()}); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			s.logger.Errorf("Reading request: %v", err)
			return err
		}

		s.requestCount++
		resp, quit := s.handle(&req)
		if err := s.codec.Encode(resp); err != nil {
			s.logger.Errorf("Writing response: %v", err)
			return err
		}
		if quit {
			return nil
		}
	}
}

func (s *Server) handle(req *Request) (*Response, bool) {
	start := time.Now()
	resp := &Response{ID: req.ID, Status: statusOK}
	quit := false

	var err error
	switch req.Action {
	case "complete":
		err = s.handleComplete(req, resp)
	case "insert":
		err = s.session.Insert(req.Word, req.Score)
	case "remove":
		resp.Found = boolPtr(s.session.Remove(req.Word))
	case "contains":
		resp.Found = boolPtr(s.session.Contains(req.Word))
	case "stats":
		resp.Stats = s.statsPayload()
	case "load":
		err = s.handleLoad(req, resp)
	case "save":
		err = s.handleSave(req, resp)
	case "health":
	case "quit":
		quit = true
	default:
		err = fmt.Errorf("unknown action %q", req.Action)
	}

	if err != nil {
		s.logger.Debug("Request failed", "id", req.ID, "action", req.Action, "err", err)
		resp = &Response{ID: req.ID, Status: statusError, Error: err.Error()}
	}
	resp.TimeTaken = time.Since(start).Microseconds()
	return resp, quit
}

func (s *Server) handleComplete(req *Request, resp *Response) error {
	limit := req.Limit
	switch {
	case limit < 0:
		return fmt.Errorf("limit %d must not be negative", limit)
	case limit == 0:
		limit = s.cfg.DefaultLimit
	case limit > s.cfg.MaxLimit:
		return fmt.Errorf("limit %d exceeds maximum of %d", limit, s.cfg.MaxLimit)
	}

	results := s.session.Complete(req.Prefix, limit)
	resp.Suggestions = make([]CompletionSuggestion, len(results))
	for i, r := range results {
		resp.Suggestions[i] = CompletionSuggestion{Word: r.Word, Score: r.Score}
	}
	resp.Count = len(results)
	return nil
}

func (s *Server) handleLoad(req *Request, resp *Response) error {
	if req.Path == "" {
		return errors.New("load needs a path")
	}
	report, err := s.session.Load(req.Path)
	if err != nil {
		return err
	}
	resp.Count = report.Words
	return nil
}

func (s *Server) handleSave(req *Request, resp *Response) error {
	if req.Path == "" {
		return errors.New("save needs a path")
	}
	report, err := s.session.Save(req.Path)
	if err != nil {
		return err
	}
	resp.Count = report.Rows
	return nil
}

func (s *Server) statsPayload() *StatsPayload {
	st := s.session.Stats()
	return &StatsPayload{
		Words:       st.Words,
		Nodes:       st.Nodes,
		Height:      st.Height,
		CacheCap:    st.CacheCap,
		Fingerprint: strconv.FormatUint(s.session.Fingerprint(), 16),
	}
}

func boolPtr(b bool) *bool {
	return &b
}
