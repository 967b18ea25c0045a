package validation

import (
	"regexp"
	"strings"
)

const maxEmailLength = 255

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// SanitizeEmail applies the input policy: characters outside [A-Za-z0-9@._]
// are dropped and anything past 255 characters is truncated, not rejected.
func SanitizeEmail(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '@', r == '.', r == '_':
			b.WriteRune(r)
		}
	}

	s := b.String()
	if len(s) > maxEmailLength {
		s = s[:maxEmailLength]
	}
	return s
}

// Email validates an already-sanitized address: no leading dot/underscore/
// hyphen, no trailing dot, a single @, no consecutive dots, and a final match
// against the acceptance pattern.
func Email(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, ".") || strings.HasPrefix(s, "_") || strings.HasPrefix(s, "-") {
		return false
	}
	if strings.HasSuffix(s, ".") {
		return false
	}
	if strings.Count(s, "@") > 1 {
		return false
	}
	if strings.Contains(s, "..") {
		return false
	}
	return emailPattern.MatchString(s)
}
