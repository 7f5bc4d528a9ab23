package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/commercebridge/ondc-adapter/internal/domain/protocol"
)

// ReceivedCallback is one POST captured by the sink.
type ReceivedCallback struct {
	Path    string
	Context protocol.Context
	Message json.RawMessage
	Error   *protocol.Error
}

// CallbackSink is an httptest server standing in for a buyer app's on_X
// endpoints. FailFirst makes the first N requests answer 502 so retry
// behavior can be observed.
type CallbackSink struct {
	Server    *httptest.Server
	FailFirst int

	mu       sync.Mutex
	received []ReceivedCallback
	seen     int
}

func NewCallbackSink() *CallbackSink {
	s := &CallbackSink{}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *CallbackSink) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen++
	if s.seen <= s.FailFirst {
		w.WriteHeader(http.StatusBadGateway)
		return
	}
	body, _ := io.ReadAll(r.Body)
	var env struct {
		Context protocol.Context `json:"context"`
		Message json.RawMessage  `json:"message"`
		Error   *protocol.Error  `json:"error"`
	}
	_ = json.Unmarshal(body, &env)
	s.received = append(s.received, ReceivedCallback{Path: r.URL.Path, Context: env.Context, Message: env.Message, Error: env.Error})
	w.WriteHeader(http.StatusOK)
}

// Received returns a copy of the callbacks accepted so far.
func (s *CallbackSink) Received() []ReceivedCallback {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ReceivedCallback, len(s.received))
	copy(out, s.received)
	return out
}

// Requests returns how many POSTs arrived, including rejected ones.
func (s *CallbackSink) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen
}

func (s *CallbackSink) URL() string { return s.Server.URL }

func (s *CallbackSink) Close() { s.Server.Close() }
