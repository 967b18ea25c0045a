package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)

// stripNonDigits drops everything that is not an ASCII digit.
func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber groups the digits of raw into runs of 4 separated by a
// single space, truncated to 19 formatted characters (16 digits).
func FormatCardNumber(raw string) string {
	digits := stripNonDigits(raw)

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	formatted := b.String()
	if len(formatted) > 19 {
		formatted = formatted[:19]
	}
	return formatted
}

// IsValidBIN passes iff the number is exactly 16 digits inside a Mastercard
// issuing range: first two digits in 51-55 or first four in 2221-2720.
func IsValidBIN(cardNumber string) bool {
	cleaned := stripNonDigits(cardNumber)
	if len(cleaned) != 16 {
		return false
	}

	firstTwo, _ := strconv.Atoi(cleaned[:2])
	firstFour, _ := strconv.Atoi(cleaned[:4])
	return (firstTwo >= 51 && firstTwo <= 55) || (firstFour >= 2221 && firstFour <= 2720)
}

// LuhnOK runs the standard Luhn checksum over the card digits: right to left,
// double every second digit, subtract 9 from results above 9, sum mod 10 == 0.
func LuhnOK(cardNumber string) bool {
	cleaned := stripNonDigits(cardNumber)
	if cleaned == "" {
		return false
	}

	sum := 0
	alternate := false
	for i := len(cleaned) - 1; i >= 0; i-- {
		digit := int(cleaned[i] - '0')
		if alternate {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		alternate = !alternate
	}
	return sum%10 == 0
}

// ExpiryValid passes iff mmYY matches MM/YY with a real month and the last
// day of that month in 20YY is on or after now (date-only comparison).
func ExpiryValid(mmYY string, now time.Time) bool {
	if !expiryPattern.MatchString(mmYY) {
		return false
	}

	month, _ := strconv.Atoi(mmYY[:2])
	year, _ := strconv.Atoi(mmYY[3:])

	// Day 0 of the following month is the last day of the expiry month.
	lastDay := time.Date(2000+year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !lastDay.Before(today)
}

// CardholderName passes for letters/accented-letters/spaces only with a
// trimmed length of at least 5.
func CardholderName(s string) bool {
	trimmed := strings.TrimSpace(s)
	return lettersAndSpaces(trimmed) && len([]rune(trimmed)) >= 5
}

// CVV passes for exactly 3 digits.
func CVV(s string) bool {
	return allDigits(s, 3)
}

// PaymentCard carries the raw payment form fields. It is ephemeral: the
// struct exists only for the duration of a payment submission, is never
// persisted and has no serialization tags.
type PaymentCard struct {
	Number     string
	HolderName string
	Expiry     string
	CVV        string
}

// Validate checks every card field against now and returns the per-field
// failures. BIN range is checked before Luhn so the user sees the more
// specific message first.
func (card PaymentCard) Validate(now time.Time) Fields {
	fields := Fields{}

	number := stripNonDigits(card.Number)
	if !IsValidBIN(number) {
		fields.Add("cardNumber", "Número de Mastercard inválido")
	} else if !LuhnOK(number) {
		fields.Add("cardNumber", "Número de tarjeta inválido")
	}

	if !lettersAndSpaces(strings.TrimSpace(card.HolderName)) {
		fields.Add("holderName", "Solo se permiten letras y espacios")
	} else if !CardholderName(card.HolderName) {
		fields.Add("holderName", "Nombre demasiado corto")
	}

	if !ExpiryValid(card.Expiry, now) {
		fields.Add("expiry", "Fecha inválida o tarjeta expirada")
	}

	if !CVV(card.CVV) {
		fields.Add("cvv", "CVV debe tener 3 dígitos")
	}

	return fields
}
