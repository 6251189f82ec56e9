package monetdbd

import (
	"io/fs"
	"sort"
	"strings"

	"github.com/google/renameio/v2"
)

// PropertiesFileMode is the mode for exported property files
const PropertiesFileMode fs.FileMode = 0o644

// Properties holds the configuration properties of a database (or of the
// defaults template) as returned by Get, keyed by property name.
type Properties map[string]string

// parseProperties decodes a property block reply. Continuation markers
// are stripped, comment lines are skipped, and each remaining line is
// split on its first '='. Duplicate keys keep the last occurrence.
func parseProperties(block string) Properties {
	props := Properties{}
	for _, line := range splitLines(block) {
		if line[0] == ContinuationMarker {
			line = line[1:]
		}
		if line == "" || line[0] == CommentMarker {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		props[key] = value
	}
	return props
}

// splitLines splits a multi-line reply, dropping empty trailing lines
func splitLines(reply string) []string {
	var lines []string
	for _, line := range strings.Split(reply, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Encode renders the properties as a key=value block with keys sorted,
// the same shape the Get parser accepts.
func (p Properties) Encode() []byte {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(p[k])
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// WriteFile atomically writes the properties to path as a key=value
// block. The file is replaced via a rename so a crash mid-write never
// leaves a truncated snapshot behind.
func (p Properties) WriteFile(path string) error {
	return renameio.WriteFile(path, p.Encode(), PropertiesFileMode)
}
