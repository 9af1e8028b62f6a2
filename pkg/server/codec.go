package server

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/oarkflow/json"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrBadRequest marks a request that could not be decoded but after which
// the stream is still usable.
var ErrBadRequest = errors.New("bad request")

// Codec frames requests and responses on a byte stream.
type Codec interface {
	// Decode reads the next request; it returns io.EOF at a clean end of stream.
	Decode(req *Request) error
	// Encode writes one response and flushes it.
	Encode(resp *Response) error
}

// NewCodec returns the codec for protocol, "msgpack" or "json".
func NewCodec(protocol string, r io.Reader, w io.Writer) (Codec, error) {
	switch protocol {
	case "", "msgpack":
		bw := bufio.NewWriter(w)
		return &msgpackCodec{
			dec: msgpack.NewDecoder(bufio.NewReader(r)),
			enc: msgpack.NewEncoder(bw),
			bw:  bw,
		}, nil
	case "json":
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 4096), 1<<20)
		return &jsonCodec{scanner: scanner, bw: bufio.NewWriter(w)}, nil
	}
	return nil, fmt.Errorf("unknown protocol %q", protocol)
}

type msgpackCodec struct {
	dec *msgpack.Decoder
	enc *msgpack.Encoder
	bw  *bufio.Writer
}

func (c *msgpackCodec) Decode(req *Request) error {
	*req = Request{}
	return c.dec.Decode(req)
}

func (c *msgpackCodec) Encode(resp *Response) error {
	if err := c.enc.Encode(resp); err != nil {
		return err
	}
	return c.bw.Flush()
}

// jsonCodec speaks newline delimited JSON. A line that is not valid JSON
// only spoils its own request.
type jsonCodec struct {
	scanner *bufio.Scanner
	bw      *bufio.Writer
}

func (c *jsonCodec) Decode(req *Request) error {
	for c.scanner.Scan() {
		line := bytes.TrimSpace(c.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		*req = Request{}
		if err := json.Unmarshal(line, req); err != nil {
			return fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		return nil
	}
	if err := c.scanner.Err(); err != nil {
		return err
	}
	return io.EOF
}

func (c *jsonCodec) Encode(resp *Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if _, err := c.bw.Write(data); err != nil {
		return err
	}
	if err := c.bw.WriteByte('\n'); err != nil {
		return err
	}
	return c.bw.Flush()
}
