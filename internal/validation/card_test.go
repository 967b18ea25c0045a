package validation

import (
	"testing"
	"time"
)

func TestIsValidBINMastercardRanges(t *testing.T) {
	tests := []struct {
		number string
		want   bool
	}{
		{"5500005555555559", true},  // 55 prefix
		{"5100000000000000", true},  // 51 prefix
		{"2221000000000000", true},  // low 2-series edge
		{"2720990000000000", true},  // high 2-series edge
		{"2721000000000000", false}, // past 2-series range
		{"4111111111111111", false}, // Visa range
		{"550000555555555", false},  // 15 digits
		{"55000055555555590", false},
	}
	for _, tt := range tests {
		if got := IsValidBIN(tt.number); got != tt.want {
			t.Errorf("IsValidBIN(%q) = %v, want %v", tt.number, got, tt.want)
		}
	}
}

func TestLuhnOK(t *testing.T) {
	if !LuhnOK("5500005555555559") {
		t.Error("expected 5500005555555559 to pass Luhn")
	}
	if LuhnOK("5500005555555558") {
		t.Error("expected 5500005555555558 to fail Luhn")
	}
	if LuhnOK("") {
		t.Error("expected empty input to fail Luhn")
	}
}

func TestFormatCardNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"5500005555555559", "5500 0055 5555 5559"},
		{"5500 0055 5555 5559", "5500 0055 5555 5559"},
		{"5500-0055", "5500 0055"},
		{"55000055555555591234", "5500 0055 5555 5559"}, // truncated to 16 digits
		{"abc", ""},
	}
	for _, tt := range tests {
		if got := FormatCardNumber(tt.raw); got != tt.want {
			t.Errorf("FormatCardNumber(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestExpiryValid(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		expiry string
		want   bool
	}{
		{"01/20", false}, // expired
		{"12/30", true},
		{"13/25", false}, // invalid month
		{"00/30", false},
		{"06/24", true},  // expires end of current month
		{"05/24", false}, // expired last month
		{"0624", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ExpiryValid(tt.expiry, now); got != tt.want {
			t.Errorf("ExpiryValid(%q) = %v, want %v", tt.expiry, got, tt.want)
		}
	}
}

func TestCardholderName(t *testing.T) {
	if !CardholderName("José Ángel") {
		t.Error("expected accented name to pass")
	}
	if CardholderName("Ana1") {
		t.Error("expected digits to fail")
	}
	if CardholderName("Ana") {
		t.Error("expected short name to fail")
	}
}

func TestPaymentCardValidate(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	card := PaymentCard{
		Number:     "5500 0055 5555 5559",
		HolderName: "José Ángel",
		Expiry:     "12/30",
		CVV:        "123",
	}
	if fields := card.Validate(now); !fields.OK() {
		t.Fatalf("expected valid card, got failures: %v", fields)
	}

	card.Number = "4111111111111111"
	fields := card.Validate(now)
	if fields["cardNumber"] != "Número de Mastercard inválido" {
		t.Errorf("expected BIN failure message, got %q", fields["cardNumber"])
	}

	card.Number = "5500005555555558"
	fields = card.Validate(now)
	if fields["cardNumber"] != "Número de tarjeta inválido" {
		t.Errorf("expected Luhn failure message, got %q", fields["cardNumber"])
	}

	card = PaymentCard{Number: "5500005555555559", HolderName: "Ana", Expiry: "01/20", CVV: "12"}
	fields = card.Validate(now)
	for _, field := range []string{"holderName", "expiry", "cvv"} {
		if _, ok := fields[field]; !ok {
			t.Errorf("expected failure for %s", field)
		}
	}
}
