package monetdbd

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerDefaults(t *testing.T) {
	m := NewManager(nil)
	assert.Equal(t, 10, m.Concurrency)

	m = NewManager(nil, WithConcurrency(0))
	assert.Equal(t, 1, m.Concurrency, "concurrency is clamped to at least 1")
}

func TestManagerStart(t *testing.T) {
	transport := newFakeTransport(constReply(""))
	client := newTestClient(t, transport)
	manager := NewManager(client, WithConcurrency(2))

	err := manager.Start(context.Background(), "alpha", "beta", "gamma")
	require.NoError(t, err)

	requests, _, _ := transport.recorded()
	sort.Strings(requests)
	assert.Equal(t, []string{"alpha start\n", "beta start\n", "gamma start\n"}, requests)
}

func TestManagerNoDatabases(t *testing.T) {
	manager := NewManager(nil)
	require.NoError(t, manager.Stop(context.Background()))
}

func TestManagerAggregatesErrors(t *testing.T) {
	transport := newFakeTransport(func(request string) (string, error) {
		if strings.HasPrefix(request, "bad") {
			return "no such database: bad", nil
		}
		return "", nil
	})
	client := newTestClient(t, transport)
	manager := NewManager(client)

	err := manager.Lock(context.Background(), "alpha", "bad", "beta")
	require.Error(t, err)

	var merr *MultiError
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 1)

	var srvErr *ServerError
	require.ErrorAs(t, merr.Errors[0], &srvErr)
	assert.Equal(t, "no such database: bad", srvErr.Message)

	// The failing database must not stop the others
	requests, _, _ := transport.recorded()
	assert.Len(t, requests, 3)
}

func TestManagerCancelledContext(t *testing.T) {
	transport := newFakeTransport(constReply(""))
	client := newTestClient(t, transport)
	manager := NewManager(client, WithConcurrency(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := manager.Release(ctx, "alpha", "beta")
	require.Error(t, err)
}
