package monetdbd

import (
	"context"
	"fmt"
	"runtime"
	"time"
)

// Default client settings
const (
	// DefaultUnixSocketPattern derives the local control socket path from
	// the port when no explicit path is given
	DefaultUnixSocketPattern = "/tmp/.s.merovingian.%d"

	// DefaultWatchInterval is the default poll interval for Watch
	DefaultWatchInterval = 250 * time.Millisecond
)

// Discovery request magic words, from the merovingian discovery protocol
const (
	neighboursTarget  = "anelosimus"
	neighboursCommand = "eximius"
)

// Client manages databases through a monetdbd control endpoint. Every
// operation opens a fresh control session, sends one request line, reads
// the reply, and disconnects; no session is held between calls.
//
// The connection parameters are fixed at construction and never mutated,
// so a Client is safe for concurrent use from multiple goroutines.
type Client struct {
	// Hostname is the control endpoint host; empty means local socket only
	Hostname string

	// Port is the control port
	Port int

	// Passphrase is the control passphrase; may be empty
	Passphrase string

	// UnixSocket is the local control socket path
	UnixSocket string

	// WatchInterval is the poll interval used by Watch and Wait
	WatchInterval time.Duration

	transport Transport
}

// Option configures a Client
type Option func(*Client)

// WithHostname sets the control endpoint hostname
func WithHostname(host string) Option {
	return func(c *Client) {
		c.Hostname = host
	}
}

// WithPassphrase sets the control passphrase
func WithPassphrase(passphrase string) Option {
	return func(c *Client) {
		c.Passphrase = passphrase
	}
}

// WithUnixSocket sets an explicit local control socket path, overriding
// the path derived from the port
func WithUnixSocket(path string) Option {
	return func(c *Client) {
		c.UnixSocket = path
	}
}

// WithWatchInterval sets the poll interval for Watch and Wait
func WithWatchInterval(d time.Duration) Option {
	return func(c *Client) {
		c.WatchInterval = d
	}
}

// New creates a Client for the daemon listening on the given port and
// verifies it is reachable with one connect/disconnect round trip. A
// failure to connect or authenticate surfaces here, not on first use.
//
// When no explicit socket path is given, the conventional path for the
// port is used. A default hostname is derived only on platforms without
// unix sockets; elsewhere an empty hostname selects the local socket.
func New(ctx context.Context, transport Transport, port int, opts ...Option) (*Client, error) {
	c := &Client{
		Port:          port,
		WatchInterval: DefaultWatchInterval,
		transport:     transport,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.UnixSocket == "" {
		c.UnixSocket = fmt.Sprintf(DefaultUnixSocketPattern, c.Port)
	}
	if c.Hostname == "" && runtime.GOOS == "windows" {
		c.Hostname = "localhost"
	}

	sess, err := transport.Connect(ctx, c.connConfig())
	if err != nil {
		return nil, &OpError{Op: OpConnect, Database: ControlDatabase, Err: fmt.Errorf("%w: %w", ErrConnect, err)}
	}
	if err := sess.Disconnect(); err != nil {
		return nil, &OpError{Op: OpConnect, Database: ControlDatabase, Err: fmt.Errorf("%w: %w", ErrConnect, err)}
	}

	return c, nil
}

func (c *Client) connConfig() ConnConfig {
	return ConnConfig{
		Hostname:   c.Hostname,
		Port:       c.Port,
		Username:   ControlUser,
		Password:   c.Passphrase,
		Database:   ControlDatabase,
		Language:   ControlLanguage,
		UnixSocket: c.UnixSocket,
	}
}

// send performs one full control exchange: connect, one request line,
// disconnect. The session is released on every path, including when the
// exchange itself fails.
func (c *Client) send(ctx context.Context, op Operation, database, command string) (string, error) {
	sess, err := c.transport.Connect(ctx, c.connConfig())
	if err != nil {
		return "", &OpError{Op: op, Database: database, Err: fmt.Errorf("%w: %w", ErrConnect, err)}
	}
	defer func() { _ = sess.Disconnect() }()

	reply, err := sess.Cmd(fmt.Sprintf("%s %s\n", database, command))
	if err != nil {
		return "", &OpError{Op: op, Database: database, Err: err}
	}
	return reply, nil
}

// exec runs a mutating command. An empty reply is success; anything else
// is the daemon's error message, surfaced verbatim as a ServerError.
func (c *Client) exec(ctx context.Context, op Operation, database, command string) error {
	reply, err := c.send(ctx, op, database, command)
	if err != nil {
		return err
	}
	if reply != "" {
		return &OpError{Op: op, Database: database, Err: &ServerError{Message: reply}}
	}
	return nil
}

// Create initialises a new database. The database becomes available in
// maintenance mode; use Release to open it for normal use.
func (c *Client) Create(ctx context.Context, database string) error {
	return c.exec(ctx, OpCreate, database, opCreateStr)
}

// Destroy removes the given database, including all its data and log
// files. Once Destroy completes, all data is lost.
func (c *Client) Destroy(ctx context.Context, database string) error {
	return c.exec(ctx, OpDestroy, database, opDestroyStr)
}

// Lock puts the given database in maintenance mode. A database under
// maintenance only accepts control connections and is not started
// automatically.
func (c *Client) Lock(ctx context.Context, database string) error {
	return c.exec(ctx, OpLock, database, opLockStr)
}

// Release brings the given database back from maintenance mode
func (c *Client) Release(ctx context.Context, database string) error {
	return c.exec(ctx, OpRelease, database, opReleaseStr)
}

// Start starts the given database
func (c *Client) Start(ctx context.Context, database string) error {
	return c.exec(ctx, OpStart, database, opStartStr)
}

// Stop stops the given database
func (c *Client) Stop(ctx context.Context, database string) error {
	return c.exec(ctx, OpStop, database, opStopStr)
}

// Kill forcefully terminates the given database. Killing should be a
// last resort; the database may end up with data loss.
func (c *Client) Kill(ctx context.Context, database string) error {
	return c.exec(ctx, OpKill, database, opKillStr)
}

// Status reports the current status of the given database
func (c *Client) Status(ctx context.Context, database string) (DatabaseStatus, error) {
	reply, err := c.send(ctx, OpStatus, database, opStatusStr)
	if err != nil {
		return DatabaseStatus{}, err
	}
	status, err := parseStatusLine(reply)
	if err != nil {
		return DatabaseStatus{}, &OpError{Op: OpStatus, Database: database, Err: err}
	}
	return status, nil
}

// StatusAll reports the status of every database managed by the daemon.
// The reply is decoded line by line; a single undecodable line fails the
// whole call rather than returning partial results, since the protocol
// has no per-line error framing.
func (c *Client) StatusAll(ctx context.Context) ([]DatabaseStatus, error) {
	reply, err := c.send(ctx, OpStatus, AllDatabases, opStatusStr)
	if err != nil {
		return nil, err
	}
	if reply == "" {
		return nil, nil
	}

	lines := splitLines(reply)
	statuses := make([]DatabaseStatus, 0, len(lines))
	for _, line := range lines {
		status, err := parseStatusLine(line)
		if err != nil {
			return nil, &OpError{Op: OpStatus, Database: AllDatabases, Err: err}
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// Get retrieves the property block of the given database
func (c *Client) Get(ctx context.Context, database string) (Properties, error) {
	reply, err := c.send(ctx, OpGet, database, opGetStr)
	if err != nil {
		return nil, err
	}
	return parseProperties(reply), nil
}

// Set assigns a value to a property of the given database
func (c *Client) Set(ctx context.Context, database, property, value string) error {
	return c.exec(ctx, OpSet, database, property+"="+value)
}

// Inherit unsets a property override on the given database, reverting it
// to the value inherited from the defaults template. On the wire this is
// a property assignment with an empty right-hand side, not a distinct
// unset primitive.
func (c *Client) Inherit(ctx context.Context, database, property string) error {
	return c.exec(ctx, OpSet, database, property+"=")
}

// Rename changes the name of a database by assigning its name property
func (c *Client) Rename(ctx context.Context, old, newName string) error {
	return c.Set(ctx, old, "name", newName)
}

// Defaults retrieves the default configuration template that databases
// inherit their unset properties from
func (c *Client) Defaults(ctx context.Context) (Properties, error) {
	return c.Get(ctx, DefaultsTemplate)
}

// Neighbours asks the daemon for other daemons it discovered on the
// network. The reply is returned as raw text; its shape is not part of
// the control protocol proper.
func (c *Client) Neighbours(ctx context.Context) (string, error) {
	return c.send(ctx, OpNeighbours, neighboursTarget, neighboursCommand)
}
