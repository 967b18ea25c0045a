package validation

import (
	"strings"
	"unicode"
)

// allDigits reports whether s is exactly n ASCII digits.
func allDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// lettersAndSpaces admits Unicode letters (accented Latin, ñ/Ñ included) and
// whitespace, nothing else. Empty strings fail.
func lettersAndSpaces(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// PostalCode passes for exactly 5 ASCII digits.
func PostalCode(s string) bool {
	return allDigits(s, 5)
}

// Phone passes for exactly 10 ASCII digits.
func Phone(s string) bool {
	return allDigits(s, 10)
}

// RequiredText fails on input that is empty after trimming. With lettersOnly
// set, every character must additionally be a letter or whitespace.
func RequiredText(s string, lettersOnly bool) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}
	if lettersOnly {
		return lettersAndSpaces(trimmed)
	}
	return true
}

// PersonName passes when every character is a letter or whitespace. Length
// bounds (2-100) are enforced at the call site with TruncateRunes, matching
// the truncate-don't-reject input policy.
func PersonName(s string) bool {
	return lettersAndSpaces(s)
}

// TruncateRunes caps s at max runes without rejecting the rest of the input.
func TruncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// AddressInput carries the raw shipping address form fields.
type AddressInput struct {
	StreetAndNumber string
	Neighborhood    string
	City            string
	State           string
	PostalCode      string
	Phone           string
}

// Validate checks every address field and returns the per-field failures.
func (in AddressInput) Validate() Fields {
	fields := Fields{}

	if !RequiredText(in.StreetAndNumber, false) {
		fields.Add("streetAndNumber", "Requerido")
	}

	for field, value := range map[string]string{
		"neighborhood": in.Neighborhood,
		"city":         in.City,
		"state":        in.State,
	} {
		if strings.TrimSpace(value) == "" {
			fields.Add(field, "Requerido")
		} else if !lettersAndSpaces(value) {
			fields.Add(field, "Solo letras y espacios")
		}
	}

	if !PostalCode(in.PostalCode) {
		fields.Add("postalCode", "CP inválido")
	}
	if !Phone(in.Phone) {
		fields.Add("phone", "Teléfono inválido")
	}

	return fields
}
