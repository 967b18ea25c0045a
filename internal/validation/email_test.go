package validation

import (
	"strings"
	"testing"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"usuario.nombre@correo.com.mx", true},
		{"a..b@x.com", false}, // consecutive dots
		{"a@b@c.com", false},  // double @
		{".a@b.com", false},   // leading dot
		{"_a@b.com", false},   // leading underscore
		{"a@b.com.", false},   // trailing dot
		{"a@b", false},        // no TLD
		{"", false},
	}
	for _, tt := range tests {
		if got := Email(tt.email); got != tt.want {
			t.Errorf("Email(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestSanitizeEmail(t *testing.T) {
	if got := SanitizeEmail("a!b@c#d.com"); got != "ab@cd.com" {
		t.Errorf("SanitizeEmail = %q, want %q", got, "ab@cd.com")
	}

	long := strings.Repeat("a", 300) + "@b.com"
	if got := SanitizeEmail(long); len(got) != 255 {
		t.Errorf("expected truncation to 255, got %d", len(got))
	}
}
