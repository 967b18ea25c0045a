package validation

import "testing"

func TestPostalCodeAndPhone(t *testing.T) {
	if !PostalCode("12345") {
		t.Error("expected 5 digits to pass")
	}
	if PostalCode("1234") || PostalCode("123456") || PostalCode("12a45") {
		t.Error("expected non-5-digit input to fail")
	}
	if !Phone("5512345678") {
		t.Error("expected 10 digits to pass")
	}
	if Phone("551234567") || Phone("55123456789") || Phone("55-1234567") {
		t.Error("expected non-10-digit input to fail")
	}
}

func TestPersonName(t *testing.T) {
	if !PersonName("José Ángel") {
		t.Error("expected José Ángel to pass")
	}
	if PersonName("Jose123") {
		t.Error("expected Jose123 to fail")
	}
	if PersonName("") {
		t.Error("expected empty name to fail")
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("José", 3); got != "Jos" {
		t.Errorf("TruncateRunes = %q, want %q", got, "Jos")
	}
	if got := TruncateRunes("ab", 5); got != "ab" {
		t.Errorf("TruncateRunes = %q, want %q", got, "ab")
	}
}

func TestRequiredText(t *testing.T) {
	if RequiredText("   ", false) {
		t.Error("expected whitespace-only input to fail")
	}
	if !RequiredText("Av. Siempre Viva 742", false) {
		t.Error("expected free-form street to pass")
	}
	if RequiredText("Av. Siempre Viva 742", true) {
		t.Error("expected digits and punctuation to fail lettersOnly")
	}
	if !RequiredText("Nuevo León", true) {
		t.Error("expected accented state name to pass lettersOnly")
	}
}

func TestAddressInputValidate(t *testing.T) {
	in := AddressInput{
		StreetAndNumber: "Av. Siempre Viva 742",
		Neighborhood:    "Centro",
		City:            "Monterrey",
		State:           "Nuevo León",
		PostalCode:      "64000",
		Phone:           "8112345678",
	}
	if fields := in.Validate(); !fields.OK() {
		t.Fatalf("expected valid address, got failures: %v", fields)
	}

	in = AddressInput{
		Neighborhood: "Centro 5",
		City:         "",
		State:        "NL2",
		PostalCode:   "640",
		Phone:        "81",
	}
	fields := in.Validate()
	if fields["streetAndNumber"] != "Requerido" {
		t.Errorf("streetAndNumber = %q", fields["streetAndNumber"])
	}
	if fields["neighborhood"] != "Solo letras y espacios" {
		t.Errorf("neighborhood = %q", fields["neighborhood"])
	}
	if fields["city"] != "Requerido" {
		t.Errorf("city = %q", fields["city"])
	}
	if fields["postalCode"] != "CP inválido" || fields["phone"] != "Teléfono inválido" {
		t.Errorf("postalCode = %q, phone = %q", fields["postalCode"], fields["phone"])
	}
}
