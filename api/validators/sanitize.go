package validators

import "strings"

// SanitizeString trims surrounding whitespace and caps the result at
// maxLen bytes. A non-positive maxLen disables the cap.
func SanitizeString(input string, maxLen int) string {
	out := strings.TrimSpace(input)
	if maxLen <= 0 || len(out) <= maxLen {
		return out
	}
	return out[:maxLen]
}
