package monetdbd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WaitSocket blocks until the local control socket exists and accepts an
// authenticated session, or ctx is cancelled. It is useful right after
// launching monetdbd, before the daemon has finished binding its socket.
//
// The socket's parent directory is watched for the path to appear; each
// appearance is confirmed with a connect/disconnect round trip, since the
// path can exist before the daemon listens on it. Clients configured
// without a local socket path get ErrNoSocket.
func (c *Client) WaitSocket(ctx context.Context) error {
	if c.UnixSocket == "" {
		return &OpError{Op: OpConnect, Database: ControlDatabase, Err: ErrNoSocket}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return &OpError{Op: OpConnect, Database: ControlDatabase, Err: err}
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(c.UnixSocket)); err != nil {
		return &OpError{Op: OpConnect, Database: ControlDatabase, Err: err}
	}

	ready := func() bool {
		if _, err := os.Stat(c.UnixSocket); err != nil {
			return false
		}
		sess, err := c.transport.Connect(ctx, c.connConfig())
		if err != nil {
			return false
		}
		_ = sess.Disconnect()
		return true
	}

	// The socket may already be there; check before waiting for events
	if ready() {
		return nil
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return &OpError{Op: OpConnect, Database: ControlDatabase, Err: ErrConnect}
			}
			if event.Name == c.UnixSocket && ready() {
				return nil
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return &OpError{Op: OpConnect, Database: ControlDatabase, Err: ErrConnect}
			}
			return &OpError{Op: OpConnect, Database: ControlDatabase, Err: werr}
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrConnect, ctx.Err())
		}
	}
}
