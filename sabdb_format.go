package monetdbd

// Status line format constants for the sabdb protocol.
//
// A status line looks like
//
//	["="]"sabdb:"<version>":"<comma separated fields>
//
// where the field block layout depends on the protocol version. Version 1
// carries a legacy placeholder token after the scenarios field that version
// 2 omits; version 2 adds a last-stop timestamp after the last-start one.
const (
	// ContinuationMarker prefixes each physical line of a multi-line reply
	ContinuationMarker = '='

	// CommentMarker prefixes comment lines in property blocks
	CommentMarker = '#'

	// StatusTag is the fixed tag every status line starts with
	StatusTag = "sabdb:"

	// ScenarioSep joins scenario names inside the scenarios field
	ScenarioSep = "'"

	// Supported sabdb protocol versions
	ProtoV1 = 1
	ProtoV2 = 2
)

// fieldLayout maps each status field to its token index for one protocol
// version. An index of -1 means the field does not exist in that version.
// Count is the minimum number of tokens a line must carry; fewer is a
// malformed line, extra trailing tokens are ignored.
type fieldLayout struct {
	name         int
	path         int
	locked       int
	state        int
	scenarios    int
	startCounter int
	stopCounter  int
	crashCounter int
	avgUptime    int
	maxUptime    int
	minUptime    int
	lastCrash    int
	lastStart    int
	lastStop     int
	crashAvg1    int
	crashAvg10   int
	crashAvg30   int

	count int
}

// layoutV1 is the version 1 field order. Token 5 is the legacy placeholder
// (the old "last dump" slot) and is never decoded.
var layoutV1 = fieldLayout{
	name:         0,
	path:         1,
	locked:       2,
	state:        3,
	scenarios:    4,
	startCounter: 6,
	stopCounter:  7,
	crashCounter: 8,
	avgUptime:    9,
	maxUptime:    10,
	minUptime:    11,
	lastCrash:    12,
	lastStart:    13,
	lastStop:     -1,
	crashAvg1:    14,
	crashAvg10:   15,
	crashAvg30:   16,
	count:        17,
}

// layoutV2 drops the placeholder and adds last stop after last start.
var layoutV2 = fieldLayout{
	name:         0,
	path:         1,
	locked:       2,
	state:        3,
	scenarios:    4,
	startCounter: 5,
	stopCounter:  6,
	crashCounter: 7,
	avgUptime:    8,
	maxUptime:    9,
	minUptime:    10,
	lastCrash:    11,
	lastStart:    12,
	lastStop:     13,
	crashAvg1:    14,
	crashAvg10:   15,
	crashAvg30:   16,
	count:        17,
}

// layoutFor returns the field layout for a protocol version, or false for
// versions this client cannot decode.
func layoutFor(version int) (fieldLayout, bool) {
	switch version {
	case ProtoV1:
		return layoutV1, true
	case ProtoV2:
		return layoutV2, true
	default:
		return fieldLayout{}, false
	}
}
