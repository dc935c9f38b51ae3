package ipc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

// DefaultTimeout bounds one full request/response exchange.
const DefaultTimeout = 30 * time.Second

// ErrTimeout is returned when the daemon does not answer within the client timeout.
var ErrTimeout = errors.New("timed out waiting for daemon response")

type dialFunc func(network, address string, timeout time.Duration) (net.Conn, error)

// Client sends requests to the daemon over a loopback TCP connection.
type Client struct {
	addr    string
	timeout time.Duration
	dial    dialFunc
}

// NewClient creates a client for the daemon listening on port.
func NewClient(port int) *Client {
	return &Client{
		addr:    net.JoinHostPort("127.0.0.1", strconv.Itoa(port)),
		timeout: DefaultTimeout,
		dial:    net.DialTimeout,
	}
}

// Addr returns the daemon address.
func (c *Client) Addr() string {
	return c.addr
}

// Send performs one exchange: req is written as a single JSON line and the
// first parseable response object is returned. The connection is closed as
// soon as a response resolves, so anything the daemon writes afterwards is dropped.
func (c *Client) Send(req Request) (*Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	payload = append(payload, '\n')

	// One deadline covers dial, write and read.
	deadline := time.Now().Add(c.timeout)
	conn, err := c.dial("tcp", c.addr, time.Until(deadline))
	if err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("connecting to daemon at %s: %w", c.addr, err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("setting deadline: %w", err)
	}

	if _, err := conn.Write(payload); err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("sending request: %w", err)
	}

	return readResponse(conn)
}

func readResponse(r io.Reader) (*Response, error) {
	var buf bytes.Buffer
	chunk := make([]byte, 4096)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			if bytes.IndexByte(buf.Bytes(), '\n') >= 0 {
				if resp, ok := ParseResponse(lastLine(buf.Bytes())); ok {
					return resp, nil
				}
				// Partial or non-JSON line; keep reading.
			}
		}
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			return trailingResponse(buf.Bytes()), nil
		}
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("reading response: %w", err)
	}
}

// trailingResponse resolves whatever was buffered when the daemon closed the connection.
func trailingResponse(buffered []byte) *Response {
	if resp, ok := ParseResponse(lastLine(buffered)); ok {
		return resp
	}
	return TextResponse(string(bytes.TrimSpace(buffered)))
}

func lastLine(buffered []byte) []byte {
	trimmed := bytes.TrimSpace(buffered)
	if idx := bytes.LastIndexByte(trimmed, '\n'); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
