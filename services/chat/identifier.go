// File: services/chat/identifier.go
package chat

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	wholeIDPattern  = regexp.MustCompile(`^[A-Z0-9]{8}$`)
	embeddedPattern = regexp.MustCompile(`\b[A-Z0-9]{8}\b`)
	prefixPattern   = regexp.MustCompile(`[A-Z]{2,4}[0-9]{4,6}`)
)

// ExtractUserID pulls an 8-character reference ID out of free text.
// The whole-message form is checked first so a bare ID pasted on its
// own line always wins, then an embedded token, then the letters-then
// -digits shape some customers type from memory.
func ExtractUserID(message string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(message))

	if wholeIDPattern.MatchString(upper) {
		return upper, true
	}
	if m := embeddedPattern.FindString(upper); m != "" {
		return m, true
	}
	for _, m := range prefixPattern.FindAllString(upper, -1) {
		if len(m) == 8 {
			return m, true
		}
	}
	return "", false
}

// GenerateUserID mints a new customer reference ID.
func GenerateUserID() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:8])
}
