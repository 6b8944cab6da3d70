// Package rut validates and normalizes Chilean RUT identifiers using the
// official mod-11 checksum. It has no dependencies on the persistence or
// HTTP layers so the same validation applies wherever a RUT enters the
// system (client creation, consignment owners, sales notes).
package rut

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidFormat covers malformed input: too short, non-digit body,
	// or a check character outside 0-9/K.
	ErrInvalidFormat = errors.New("rut: formato invalido")
	// ErrInvalidChecksum means the RUT is well-formed but the check
	// character does not match the mod-11 computation.
	ErrInvalidChecksum = errors.New("rut: digito verificador incorrecto")
)

// Normalize validates a raw RUT ("12.345.678-5", "12345678-5", "123456785",
// any case) and returns its canonical storage form: lowercase digits plus
// check character, no punctuation. All uniqueness lookups and foreign keys
// use this form.
func Normalize(raw string) (string, error) {
	clean := strings.NewReplacer(".", "", "-", "").Replace(strings.TrimSpace(raw))
	clean = strings.ToUpper(clean)
	if len(clean) < 2 {
		return "", ErrInvalidFormat
	}

	body := clean[:len(clean)-1]
	check := clean[len(clean)-1]

	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return "", ErrInvalidFormat
		}
	}
	if (check < '0' || check > '9') && check != 'K' {
		return "", ErrInvalidFormat
	}
	if check != expectedCheck(body) {
		return "", ErrInvalidChecksum
	}
	return strings.ToLower(clean), nil
}

// expectedCheck computes the mod-11 check character over the RUT body,
// reading digits right-to-left with the multiplier cycling 2,3,4,5,6,7.
func expectedCheck(body string) byte {
	sum := 0
	mult := 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * mult
		mult++
		if mult > 7 {
			mult = 2
		}
	}
	computed := 11 - sum%11
	switch computed {
	case 11:
		return '0'
	case 10:
		return 'K'
	default:
		return byte('0' + computed)
	}
}
