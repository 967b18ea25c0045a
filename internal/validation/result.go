// Package validation holds the pure form-validation rules for the storefront:
// payment card checks (Mastercard BIN ranges, Luhn, expiry), postal address
// fields, emails and person names. Everything here is stateless and does no
// I/O; failures are collected per field so callers can render them next to
// the offending input instead of aborting on the first one.
package validation

// Fields maps a field name to a human-readable failure message. An empty map
// means the input passed.
type Fields map[string]string

func (f Fields) Add(field, message string) {
	f[field] = message
}

// OK reports whether no field failed.
func (f Fields) OK() bool {
	return len(f) == 0
}
