package monetdbd

import (
	"context"
	"sync"
	"time"
)

// Manager handles operations on multiple databases concurrently through
// one Client. It provides bulk operations with configurable concurrency
// and per-operation timeouts.
type Manager struct {
	// Client is the control client the operations run through
	Client *Client
	// Concurrency is the maximum number of concurrent operations
	Concurrency int
	// Timeout is the per-operation timeout; zero means none
	Timeout time.Duration
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithConcurrency sets the maximum number of concurrent operations
func WithConcurrency(n int) ManagerOption {
	return func(m *Manager) {
		m.Concurrency = n
	}
}

// WithTimeout sets the per-operation timeout
func WithTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.Timeout = d
	}
}

// NewManager creates a new Manager running operations through the given
// client with default settings
func NewManager(client *Client, opts ...ManagerOption) *Manager {
	m := &Manager{
		Client:      client,
		Concurrency: 10,
		Timeout:     5 * time.Second,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.Concurrency < 1 {
		m.Concurrency = 1
	}

	return m
}

func (m *Manager) execute(ctx context.Context, databases []string, op func(context.Context, string) error) error {
	if len(databases) == 0 {
		return nil
	}

	// Semaphore for concurrency control
	sem := make(chan struct{}, m.Concurrency)

	var wg sync.WaitGroup
	var mu sync.Mutex
	merr := &MultiError{}

	for _, database := range databases {
		wg.Add(1)
		go func(db string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				mu.Lock()
				merr.Add(ctx.Err())
				mu.Unlock()
				return
			}

			opCtx := ctx
			if m.Timeout > 0 {
				var cancel context.CancelFunc
				opCtx, cancel = context.WithTimeout(ctx, m.Timeout)
				defer cancel()
			}

			if err := op(opCtx, db); err != nil {
				mu.Lock()
				merr.Add(err)
				mu.Unlock()
			}
		}(database)
	}

	wg.Wait()

	return merr.Err()
}

// Create initialises the specified databases
func (m *Manager) Create(ctx context.Context, databases ...string) error {
	return m.execute(ctx, databases, func(ctx context.Context, db string) error {
		return m.Client.Create(ctx, db)
	})
}

// Destroy removes the specified databases and all their data
func (m *Manager) Destroy(ctx context.Context, databases ...string) error {
	return m.execute(ctx, databases, func(ctx context.Context, db string) error {
		return m.Client.Destroy(ctx, db)
	})
}

// Start starts the specified databases
func (m *Manager) Start(ctx context.Context, databases ...string) error {
	return m.execute(ctx, databases, func(ctx context.Context, db string) error {
		return m.Client.Start(ctx, db)
	})
}

// Stop stops the specified databases
func (m *Manager) Stop(ctx context.Context, databases ...string) error {
	return m.execute(ctx, databases, func(ctx context.Context, db string) error {
		return m.Client.Stop(ctx, db)
	})
}

// Kill forcefully terminates the specified databases
func (m *Manager) Kill(ctx context.Context, databases ...string) error {
	return m.execute(ctx, databases, func(ctx context.Context, db string) error {
		return m.Client.Kill(ctx, db)
	})
}

// Lock puts the specified databases in maintenance mode
func (m *Manager) Lock(ctx context.Context, databases ...string) error {
	return m.execute(ctx, databases, func(ctx context.Context, db string) error {
		return m.Client.Lock(ctx, db)
	})
}

// Release brings the specified databases back from maintenance mode
func (m *Manager) Release(ctx context.Context, databases ...string) error {
	return m.execute(ctx, databases, func(ctx context.Context, db string) error {
		return m.Client.Release(ctx, db)
	})
}
