package monetdbd

// Version is the current version of the go-monetdbd library
const Version = "1.0.0"

// VersionInfo contains detailed version information
type VersionInfo struct {
	// Version is the semantic version
	Version string
	// Protocol is the status report protocol understood by this client
	Protocol string
	// ProtoMin is the oldest supported sabdb protocol version
	ProtoMin int
	// ProtoMax is the newest supported sabdb protocol version
	ProtoMax int
}

// GetVersion returns the current version information
func GetVersion() VersionInfo {
	return VersionInfo{
		Version:  Version,
		Protocol: "sabdb",
		ProtoMin: ProtoV1,
		ProtoMax: ProtoV2,
	}
}
