package monetdbd

import (
	"context"
	"errors"
	"sync"
)

// fakeTransport is an in-memory Transport for tests. Replies are produced
// by the reply function; every request line and session lifecycle event
// is recorded so tests can assert on the exact wire exchange.
type fakeTransport struct {
	mu sync.Mutex

	// reply produces the daemon's answer for one request line
	reply func(request string) (string, error)

	// connectErr fails Connect when set
	connectErr error

	requests    []string
	connects    int
	disconnects int
}

func newFakeTransport(reply func(request string) (string, error)) *fakeTransport {
	return &fakeTransport{reply: reply}
}

// constReply answers every request with the same reply text
func constReply(reply string) func(string) (string, error) {
	return func(string) (string, error) {
		return reply, nil
	}
}

func (f *fakeTransport) Connect(ctx context.Context, cfg ConnConfig) (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	if cfg.Username != ControlUser || cfg.Database != ControlDatabase || cfg.Language != ControlLanguage {
		return nil, errors.New("fake transport: handshake constants not filled in")
	}
	f.connects++
	return &fakeSession{transport: f}, nil
}

func (f *fakeTransport) recorded() (requests []string, connects, disconnects int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...), f.connects, f.disconnects
}

type fakeSession struct {
	transport *fakeTransport
	closed    bool
}

func (s *fakeSession) Cmd(request string) (string, error) {
	s.transport.mu.Lock()
	if s.closed {
		s.transport.mu.Unlock()
		return "", errors.New("fake transport: cmd after disconnect")
	}
	s.transport.requests = append(s.transport.requests, request)
	reply := s.transport.reply
	s.transport.mu.Unlock()

	return reply(request)
}

func (s *fakeSession) Disconnect() error {
	s.transport.mu.Lock()
	defer s.transport.mu.Unlock()
	s.closed = true
	s.transport.disconnects++
	return nil
}
