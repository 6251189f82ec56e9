package monetdbd

import (
	"context"
	"time"

	"vawter.tech/stopper"
)

// WatchEvent represents a status change event from watching a database
type WatchEvent struct {
	Status DatabaseStatus
	Err    error
}

// WatchCleanupFunc stops a watch and waits for its goroutine to exit
type WatchCleanupFunc func() error

// Watch polls the status of the given database and emits an event on the
// returned channel whenever the daemon's status line for it changes. The
// current status is emitted immediately as the first event.
//
// monetdbd pushes no notifications, so this is a poll at the client's
// WatchInterval. Comparison happens on the raw status line, before
// decoding, so an unchanged database costs no allocation per tick.
//
// The returned cleanup function must be called to release the polling
// goroutine; cancelling ctx releases it as well.
func (c *Client) Watch(ctx context.Context, database string) (<-chan WatchEvent, WatchCleanupFunc, error) {
	ch := make(chan WatchEvent, 10)

	sctx := stopper.WithContext(ctx)
	sctx.Defer(func() {
		close(ch)
	})

	cleanup := func() error {
		sctx.Stop(100 * time.Millisecond)
		return sctx.Wait()
	}

	sctx.Go(func(sctx *stopper.Context) error {
		ticker := time.NewTicker(c.WatchInterval)
		defer ticker.Stop()

		var lastRaw string
		seeded := false

		poll := func() {
			raw, err := c.send(sctx, OpStatus, database, opStatusStr)
			if err != nil {
				select {
				case ch <- WatchEvent{Err: err}:
				case <-sctx.Stopping():
				}
				return
			}
			if seeded && raw == lastRaw {
				return
			}
			lastRaw = raw
			seeded = true

			status, err := parseStatusLine(raw)
			ev := WatchEvent{Status: status}
			if err != nil {
				ev = WatchEvent{Err: &OpError{Op: OpStatus, Database: database, Err: err}}
			}
			select {
			case ch <- ev:
			case <-sctx.Stopping():
			}
		}

		poll()
		for {
			select {
			case <-ticker.C:
				poll()
			case <-sctx.Stopping():
				return nil
			}
		}
	})

	return ch, cleanup, nil
}

// Wait blocks until the database reaches one of the specified states or
// ctx is cancelled. If states is nil or empty, Wait returns on the next
// status event.
//
// Example:
//
//	// Wait until the database is up
//	status, err := client.Wait(ctx, "mydb", []monetdbd.State{monetdbd.StateRunning})
func (c *Client) Wait(ctx context.Context, database string, states []State) (DatabaseStatus, error) {
	if len(states) == 0 {
		events, cleanup, err := c.Watch(ctx, database)
		if err != nil {
			return DatabaseStatus{}, err
		}
		defer func() { _ = cleanup() }()

		select {
		case event := <-events:
			if event.Err != nil {
				return DatabaseStatus{}, event.Err
			}
			return event.Status, nil
		case <-ctx.Done():
			return DatabaseStatus{}, ctx.Err()
		}
	}

	// First check current state
	status, err := c.Status(ctx, database)
	if err != nil {
		return DatabaseStatus{}, err
	}
	for _, targetState := range states {
		if status.State == targetState {
			return status, nil
		}
	}

	// Watch for changes
	events, cleanup, err := c.Watch(ctx, database)
	if err != nil {
		return DatabaseStatus{}, err
	}
	defer func() { _ = cleanup() }()

	for {
		select {
		case event := <-events:
			if event.Err != nil {
				return DatabaseStatus{}, event.Err
			}
			for _, targetState := range states {
				if event.Status.State == targetState {
					return event.Status, nil
				}
			}
		case <-ctx.Done():
			return DatabaseStatus{}, ctx.Err()
		}
	}
}
