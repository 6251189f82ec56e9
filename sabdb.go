package monetdbd

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// State represents the run state of a managed database as reported on the
// wire. The numeric values are defined by the daemon; unknown values are
// carried through unchanged rather than rejected.
type State int

const (
	// StateIllegal indicates an invalid or unreported state
	StateIllegal State = 0
	// StateRunning indicates the database is up and serving
	StateRunning State = 1
	// StateCrashed indicates the database terminated abnormally
	StateCrashed State = 2
	// StateInactive indicates the database is stopped
	StateInactive State = 3
	// StateStarting indicates the database is booting
	StateStarting State = 4
)

// State string constants
const (
	stateIllegalStr  = "illegal"
	stateRunningStr  = "running"
	stateCrashedStr  = "crashed"
	stateInactiveStr = "inactive"
	stateStartingStr = "starting"
	stateUnknownStr  = "unknown"
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIllegal:
		return stateIllegalStr
	case StateRunning:
		return stateRunningStr
	case StateCrashed:
		return stateCrashedStr
	case StateInactive:
		return stateInactiveStr
	case StateStarting:
		return stateStartingStr
	default:
		return stateUnknownStr
	}
}

// DatabaseStatus represents the decoded state of one managed database as
// reported by a sabdb status line. A fresh value is decoded on every status
// call; nothing is cached between calls.
type DatabaseStatus struct {
	// Name is the unique database name
	Name string
	// Path is the database's location on the daemon's filesystem
	Path string
	// Locked indicates maintenance mode: only control operations are
	// permitted and the database is not started automatically
	Locked bool
	// State is the run state code reported by the daemon
	State State
	// Scenarios lists the query language scenarios the database serves
	Scenarios []string
	// StartCounter is the cumulative number of starts
	StartCounter int
	// StopCounter is the cumulative number of clean stops
	StopCounter int
	// CrashCounter is the cumulative number of crashes
	CrashCounter int
	// AvgUptime is the average uptime across runs
	AvgUptime time.Duration
	// MaxUptime is the longest observed uptime
	MaxUptime time.Duration
	// MinUptime is the shortest observed uptime
	MinUptime time.Duration
	// LastCrash is the time of the most recent crash, nil if the
	// database never crashed
	LastCrash *time.Time
	// LastStart is the time of the most recent start
	LastStart time.Time
	// LastStop is the time of the most recent stop. Only sabdb protocol
	// version 2 reports it; nil under version 1 or when never stopped
	LastStop *time.Time
	// CrashAvg1 reports whether the single most recent run crashed
	CrashAvg1 bool
	// CrashAvg10 is the crash rate over the last 10 runs
	CrashAvg10 float64
	// CrashAvg30 is the crash rate over the last 30 runs
	CrashAvg30 float64
}

// parseStatusLine decodes one sabdb status line. It is total and
// side-effect-free: the same line always yields the same record or the
// same error kind.
func parseStatusLine(line string) (DatabaseStatus, error) {
	if len(line) > 0 && line[0] == ContinuationMarker {
		line = line[1:]
	}
	if !strings.HasPrefix(line, StatusTag) {
		return DatabaseStatus{}, fmt.Errorf("%w: %q", ErrProtocol, line)
	}

	// Only the first two colons delimit; field values may contain colons.
	parts := strings.SplitN(line, ":", 3)
	if len(parts) != 3 {
		return DatabaseStatus{}, fmt.Errorf("%w: %q", ErrProtocol, line)
	}

	version, err := strconv.Atoi(parts[1])
	if err != nil {
		return DatabaseStatus{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, parts[1])
	}
	layout, ok := layoutFor(version)
	if !ok {
		return DatabaseStatus{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	tokens := strings.Split(parts[2], ",")
	if len(tokens) < layout.count {
		return DatabaseStatus{}, fmt.Errorf("%w: %d fields, need %d", ErrMalformed, len(tokens), layout.count)
	}

	d := decoder{tokens: tokens}
	st := DatabaseStatus{
		Name:         d.str(layout.name),
		Path:         d.str(layout.path),
		Locked:       d.flag(layout.locked),
		State:        State(d.int(layout.state, "state")),
		Scenarios:    d.scenarios(layout.scenarios),
		StartCounter: d.int(layout.startCounter, "start counter"),
		StopCounter:  d.int(layout.stopCounter, "stop counter"),
		CrashCounter: d.int(layout.crashCounter, "crash counter"),
		AvgUptime:    d.seconds(layout.avgUptime, "avg uptime"),
		MaxUptime:    d.seconds(layout.maxUptime, "max uptime"),
		MinUptime:    d.seconds(layout.minUptime, "min uptime"),
		LastCrash:    d.optTime(layout.lastCrash, "last crash"),
		LastStart:    d.time(layout.lastStart, "last start"),
		CrashAvg1:    d.flag(layout.crashAvg1),
		CrashAvg10:   d.float(layout.crashAvg10, "crash avg10"),
		CrashAvg30:   d.float(layout.crashAvg30, "crash avg30"),
	}
	if layout.lastStop >= 0 {
		st.LastStop = d.optTime(layout.lastStop, "last stop")
	}
	if d.err != nil {
		return DatabaseStatus{}, d.err
	}
	return st, nil
}

// decoder reads typed fields out of the token slice by explicit index.
// The first decode failure sticks; later reads become no-ops so a bad
// line never yields a partially trusted record.
type decoder struct {
	tokens []string
	err    error
}

func (d *decoder) str(i int) string {
	return d.tokens[i]
}

func (d *decoder) flag(i int) bool {
	return d.tokens[i] == "1"
}

func (d *decoder) int(i int, field string) int {
	if d.err != nil {
		return 0
	}
	v, err := strconv.Atoi(d.tokens[i])
	if err != nil {
		d.err = fmt.Errorf("%w: %s %q", ErrMalformed, field, d.tokens[i])
	}
	return v
}

func (d *decoder) float(i int, field string) float64 {
	if d.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(d.tokens[i], 64)
	if err != nil {
		d.err = fmt.Errorf("%w: %s %q", ErrMalformed, field, d.tokens[i])
	}
	return v
}

func (d *decoder) seconds(i int, field string) time.Duration {
	return time.Duration(d.int(i, field)) * time.Second
}

// time decodes an epoch-seconds field that is always present.
func (d *decoder) time(i int, field string) time.Time {
	return time.Unix(int64(d.int(i, field)), 0)
}

// optTime decodes an epoch-seconds field whose negative sentinel means
// "unset". The sentinel is usually -1 but any negative value counts;
// zero is a real timestamp (the epoch), not absence.
func (d *decoder) optTime(i int, field string) *time.Time {
	sec := d.int(i, field)
	if d.err != nil || sec < 0 {
		return nil
	}
	t := time.Unix(int64(sec), 0)
	return &t
}

// scenarios splits the scenarios field on its apostrophe separator,
// dropping the empty tokens the quoting style produces.
func (d *decoder) scenarios(i int) []string {
	var out []string
	for _, s := range strings.Split(d.tokens[i], ScenarioSep) {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
