package ipc

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Request is one JSON object sent to the daemon. It always carries "id" and
// "action"; every other key is an action-specific named field.
type Request map[string]any

// NewRequest returns a request for action with a fresh time-ordered id.
func NewRequest(idPrefix, action string) Request {
	return Request{
		"id":     NewID(idPrefix),
		"action": action,
	}
}

// ID returns the request id.
func (r Request) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Action returns the remote action name.
func (r Request) Action() string {
	action, _ := r["action"].(string)
	return action
}

var (
	idMu      sync.Mutex
	idEntropy = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns "<prefix>-<ULID>". ULIDs sort by creation time, so ids from
// one process never collide and stay ordered.
func NewID(prefix string) string {
	idMu.Lock()
	defer idMu.Unlock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), idEntropy)
	return prefix + "-" + id.String()
}

// Response is the daemon's reply to a Request.
type Response struct {
	Success bool
	// Data is the opaque action payload; nil when absent or null.
	Data json.RawMessage
	Error string
	// Result holds the raw text when the daemon's bytes were not a JSON object.
	Result string
	// Raw is the response object exactly as received.
	Raw json.RawMessage
}

// ParseResponse decodes a single JSON object. ok is false when line is not an object.
func ParseResponse(line []byte) (*Response, bool) {
	line = bytes.TrimSpace(line)
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil || fields == nil {
		return nil, false
	}

	resp := &Response{Raw: append(json.RawMessage(nil), line...)}
	if raw, ok := fields["success"]; ok {
		_ = json.Unmarshal(raw, &resp.Success)
	}
	if raw, ok := fields["data"]; ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		resp.Data = raw
	}
	if raw, ok := fields["error"]; ok {
		resp.Error = decodeText(raw)
	}
	if raw, ok := fields["result"]; ok {
		resp.Result = decodeText(raw)
	}
	return resp, true
}

// TextResponse wraps bytes that could not be parsed as a response object.
func TextResponse(text string) *Response {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(map[string]string{"result": text})
	return &Response{Result: text, Raw: bytes.TrimSuffix(buf.Bytes(), []byte("\n"))}
}

// decodeText renders a field as a string; non-string JSON keeps its literal form.
func decodeText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return ""
	}
	return string(raw)
}
