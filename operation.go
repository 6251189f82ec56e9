package monetdbd

// Operation represents a control operation type
type Operation int

const (
	// OpUnknown represents an unknown operation
	OpUnknown Operation = iota
	// OpCreate initialises a new database, in maintenance mode
	OpCreate
	// OpDestroy removes a database including all its data
	OpDestroy
	// OpLock puts a database in maintenance mode
	OpLock
	// OpRelease brings a database back from maintenance mode
	OpRelease
	// OpStart starts a database
	OpStart
	// OpStop stops a database
	OpStop
	// OpKill forcefully terminates a database
	OpKill
	// OpStatus queries the status of one or all databases
	OpStatus
	// OpGet retrieves the property block of a database
	OpGet
	// OpSet assigns or unsets a database property
	OpSet
	// OpNeighbours discovers other daemons known to this one
	OpNeighbours
	// OpConnect is the construction-time verification round trip
	OpConnect
)

// Operation string constants. For the plain commands these double as the
// wire command text sent to the daemon.
const (
	opUnknownStr    = "unknown"
	opCreateStr     = "create"
	opDestroyStr    = "destroy"
	opLockStr       = "lock"
	opReleaseStr    = "release"
	opStartStr      = "start"
	opStopStr       = "stop"
	opKillStr       = "kill"
	opStatusStr     = "status"
	opGetStr        = "get"
	opSetStr        = "set"
	opNeighboursStr = "neighbours"
	opConnectStr    = "connect"
)

// String returns the string representation of an Operation
func (op Operation) String() string {
	switch op {
	case OpCreate:
		return opCreateStr
	case OpDestroy:
		return opDestroyStr
	case OpLock:
		return opLockStr
	case OpRelease:
		return opReleaseStr
	case OpStart:
		return opStartStr
	case OpStop:
		return opStopStr
	case OpKill:
		return opKillStr
	case OpStatus:
		return opStatusStr
	case OpGet:
		return opGetStr
	case OpSet:
		return opSetStr
	case OpNeighbours:
		return opNeighboursStr
	case OpConnect:
		return opConnectStr
	default:
		return opUnknownStr
	}
}
