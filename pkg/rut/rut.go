package rut

import (
	"errors"
	"strings"
)

var ErrInvalidFormat = errors.New("rut has invalid format")

// Validate reports whether the supplied RUT passes the modulo-11 checksum.
// Formatting punctuation is ignored and the check character is case
// insensitive.
func Validate(raw string) bool {
	body, check, err := split(raw)
	if err != nil {
		return false
	}
	return computeCheckDigit(body) == check
}

// Format canonicalizes a valid RUT to D.DDD.DDD-C form.
func Format(raw string) (string, error) {
	body, check, err := split(raw)
	if err != nil {
		return "", err
	}
	if computeCheckDigit(body) != check {
		return "", ErrInvalidFormat
	}

	var sb strings.Builder
	for i, r := range body {
		remaining := len(body) - i
		if i > 0 && remaining%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('-')
	sb.WriteByte(check)

	return sb.String(), nil
}

func split(raw string) (string, byte, error) {
	cleaned := strings.ToUpper(raw)
	cleaned = strings.NewReplacer(".", "", "-", "", " ", "").Replace(cleaned)

	if len(cleaned) < 2 {
		return "", 0, ErrInvalidFormat
	}

	body := cleaned[:len(cleaned)-1]
	check := cleaned[len(cleaned)-1]

	for _, r := range body {
		if r < '0' || r > '9' {
			return "", 0, ErrInvalidFormat
		}
	}
	if check != 'K' && (check < '0' || check > '9') {
		return "", 0, ErrInvalidFormat
	}

	return body, check, nil
}

// computeCheckDigit walks the body digits from right to left with a
// multiplier cycling 2 through 7, then maps 11-(sum mod 11) onto the check
// character set.
func computeCheckDigit(body string) byte {
	sum := 0
	multiplier := 2

	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * multiplier
		multiplier++
		if multiplier > 7 {
			multiplier = 2
		}
	}

	remainder := 11 - (sum % 11)
	switch remainder {
	case 11:
		return '0'
	case 10:
		return 'K'
	default:
		return byte('0' + remainder)
	}
}
