package monetdbd

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steppedStatus serves one status line until released, then another.
// The verification connect during New never issues a request, so only
// status polls hit the reply function.
type steppedStatus struct {
	flipped atomic.Bool
	before  string
	after   string
}

func (s *steppedStatus) reply(string) (string, error) {
	if s.flipped.Load() {
		return s.after, nil
	}
	return s.before, nil
}

func TestWatchEmitsOnChange(t *testing.T) {
	stepped := &steppedStatus{
		before: makeStatusLine(ProtoV2, "mydb", -1, -1),
		after:  strings.Replace(makeStatusLine(ProtoV2, "mydb", -1, -1), ",3,", ",1,", 1),
	}
	transport := newFakeTransport(stepped.reply)
	client := newTestClient(t, transport, WithWatchInterval(5*time.Millisecond))

	events, cleanup, err := client.Watch(context.Background(), "mydb")
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	// Initial event carries the current status
	select {
	case event := <-events:
		require.NoError(t, event.Err)
		assert.Equal(t, StateInactive, event.Status.State)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for initial event")
	}

	// Unchanged polls are swallowed
	select {
	case event := <-events:
		t.Fatalf("unexpected event for unchanged status: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}

	stepped.flipped.Store(true)

	select {
	case event := <-events:
		require.NoError(t, event.Err)
		assert.Equal(t, StateRunning, event.Status.State)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for change event")
	}
}

func TestWatchCleanup(t *testing.T) {
	transport := newFakeTransport(constReply(makeStatusLine(ProtoV2, "mydb", -1, -1)))
	client := newTestClient(t, transport, WithWatchInterval(5*time.Millisecond))

	events, cleanup, err := client.Watch(context.Background(), "mydb")
	require.NoError(t, err)

	select {
	case <-events:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for initial event")
	}

	done := make(chan error, 1)
	go func() {
		done <- cleanup()
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("cleanup did not return")
	}

	// The event channel closes once the poller has stopped
	for range events {
	}
}

func TestWatchSurfacesErrors(t *testing.T) {
	transport := newFakeTransport(constReply("garbage"))
	client := newTestClient(t, transport, WithWatchInterval(5*time.Millisecond))

	events, cleanup, err := client.Watch(context.Background(), "mydb")
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	select {
	case event := <-events:
		require.Error(t, event.Err)
		assert.ErrorIs(t, event.Err, ErrProtocol)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for error event")
	}
}

func TestWaitCurrentState(t *testing.T) {
	transport := newFakeTransport(constReply(makeStatusLine(ProtoV2, "mydb", -1, -1)))
	client := newTestClient(t, transport, WithWatchInterval(5*time.Millisecond))

	// The line reports inactive already; Wait must return without
	// watching at all
	status, err := client.Wait(context.Background(), "mydb", []State{StateInactive})
	require.NoError(t, err)
	assert.Equal(t, StateInactive, status.State)
}

func TestWaitForStateChange(t *testing.T) {
	stepped := &steppedStatus{
		before: makeStatusLine(ProtoV2, "mydb", -1, -1),
		after:  strings.Replace(makeStatusLine(ProtoV2, "mydb", -1, -1), ",3,", ",1,", 1),
	}
	transport := newFakeTransport(stepped.reply)
	client := newTestClient(t, transport, WithWatchInterval(5*time.Millisecond))

	go func() {
		time.Sleep(20 * time.Millisecond)
		stepped.flipped.Store(true)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status, err := client.Wait(ctx, "mydb", []State{StateRunning})
	require.NoError(t, err)
	assert.Equal(t, StateRunning, status.State)
}

func TestWaitCancelled(t *testing.T) {
	transport := newFakeTransport(constReply(makeStatusLine(ProtoV2, "mydb", -1, -1)))
	client := newTestClient(t, transport, WithWatchInterval(5*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	// The database never reaches running
	_, err := client.Wait(ctx, "mydb", []State{StateRunning})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
