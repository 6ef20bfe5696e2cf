package doctags

import (
	"strings"
)

// DeduplicateLines removes exact-duplicate lines, keeping the first
// occurrence of each and preserving order. Lines are compared after trimming
// surrounding whitespace. This guards against models that repeat boilerplate
// or echo their input; it applies only to the unstructured fallback path.
// The operation is idempotent.
func DeduplicateLines(text string) string {
	lines := strings.Split(text, "\n")
	seen := make(map[string]bool, len(lines))
	var result []string

	for _, line := range lines {
		clean := strings.TrimSpace(line)
		if clean == "" || seen[clean] {
			continue
		}
		seen[clean] = true
		result = append(result, line)
	}

	return strings.Join(result, "\n")
}
