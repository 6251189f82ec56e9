package monetdbd

import "context"

// Control protocol constants
const (
	// ControlUser is the reserved principal for control connections
	ControlUser = "monetdb"

	// ControlDatabase is the pseudo database name the daemon answers
	// control logins on
	ControlDatabase = "merovingian"

	// ControlLanguage selects the control language during the handshake
	ControlLanguage = "control"

	// AllDatabases is the reserved wildcard target matching every
	// managed database in a status request
	AllDatabases = "#all"

	// DefaultsTemplate is the reserved pseudo database holding the
	// default configuration template
	DefaultsTemplate = "#defaults"

	// DefaultPort is the default monetdbd control port
	DefaultPort = 50000
)

// ConnConfig carries the parameters for one control session. The client
// fills Username, Database, and Language with the control constants above;
// a Transport should pass them through to the handshake unchanged.
type ConnConfig struct {
	// Hostname is the host to connect to; empty means local socket only
	Hostname string
	// Port is the control port
	Port int
	// Username is the login principal
	Username string
	// Password is the control passphrase; may be empty
	Password string
	// Database is the database name presented during the handshake
	Database string
	// Language is the protocol language presented during the handshake
	Language string
	// UnixSocket is the local socket path; empty means TCP only
	UnixSocket string
}

// Transport opens authenticated control sessions. Implementations own the
// MAPI login handshake, block framing, and TLS; this package never looks
// below the request/reply line boundary.
type Transport interface {
	// Connect opens and authenticates a session with the daemon.
	// It blocks until the handshake completes or fails.
	Connect(ctx context.Context, cfg ConnConfig) (Session, error)
}

// Session is a single authenticated control session. A Session is good for
// request/reply exchanges until Disconnect, after which it is unusable.
type Session interface {
	// Cmd sends one request line and returns the daemon's full reply,
	// without a trailing newline. An empty reply is the daemon's
	// success sentinel for mutating commands.
	Cmd(request string) (string, error)
	// Disconnect closes the session
	Disconnect() error
}
