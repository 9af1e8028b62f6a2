/*
Package server implements the IPC front end of typeahead.

The server reads requests from an input stream and writes one response per
request, in order, to an output stream. Two framings are supported:

  - msgpack: a stream of msgpack maps, the default.
  - json: one JSON object per line.

# IPC

Every request carries an ID that is echoed in its response, and an action:

	{"id": "1", "action": "insert", "w": "hello", "s": 10}
	{"id": "2", "action": "complete", "p": "he", "l": 3}
	{"id": "3", "action": "contains", "w": "hello"}
	{"id": "4", "action": "remove", "w": "hello"}
	{"id": "5", "action": "stats"}
	{"id": "6", "action": "load", "path": "data/words.csv"}
	{"id": "7", "action": "save", "path": "data/words.csv"}
	{"id": "8", "action": "health"}
	{"id": "9", "action": "quit"}

A complete request without "l" uses the configured default limit. Completion
responses list suggestions best first, with timing in microseconds:

	{"id": "2", "status": "ok", "s": [{"w": "hello", "s": 10}], "c": 1, "t": 12}

Membership and removal answers use "found". Failures set status to "error"
and describe the problem in "error"; the vocabulary is left unchanged.

Before the first request the server emits {"status": "ready"}.
*/
package server

// Request is a single client command.
type Request struct {
	ID     string  `msgpack:"id" json:"id"`
	Action string  `msgpack:"action" json:"action"`
	Word   string  `msgpack:"w,omitempty" json:"w,omitempty"`
	Prefix string  `msgpack:"p,omitempty" json:"p,omitempty"`
	Score  float64 `msgpack:"s,omitempty" json:"s,omitempty"`
	Limit  int     `msgpack:"l,omitempty" json:"l,omitempty"`
	Path   string  `msgpack:"path,omitempty" json:"path,omitempty"`
}

// CompletionSuggestion is one ranked completion on the wire.
type CompletionSuggestion struct {
	Word  string  `msgpack:"w" json:"w"`
	Score float64 `msgpack:"s" json:"s"`
}

// StatsPayload describes the vocabulary.
type StatsPayload struct {
	Words       int    `msgpack:"words" json:"words"`
	Nodes       int    `msgpack:"nodes" json:"nodes"`
	Height      int    `msgpack:"height" json:"height"`
	CacheCap    int    `msgpack:"cache_cap" json:"cache_cap"`
	Fingerprint string `msgpack:"fingerprint" json:"fingerprint"`
}

// Response answers one Request.
type Response struct {
	ID          string                 `msgpack:"id" json:"id"`
	Status      string                 `msgpack:"status" json:"status"`
	Error       string                 `msgpack:"error,omitempty" json:"error,omitempty"`
	Found       *bool                  `msgpack:"found,omitempty" json:"found,omitempty"`
	Suggestions []CompletionSuggestion `msgpack:"s,omitempty" json:"s,omitempty"`
	Count       int                    `msgpack:"c,omitempty" json:"c,omitempty"`
	Stats       *StatsPayload          `msgpack:"stats,omitempty" json:"stats,omitempty"`
	TimeTaken   int64                  `msgpack:"t" json:"t"`
}

const (
	statusOK    = "ok"
	statusError = "error"
	statusReady = "ready"
)
