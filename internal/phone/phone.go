// Package phone normalizes customer phone numbers to the Argentine dialing
// plan used by the messaging deep links.
package phone

import (
	"errors"
	"strings"
)

var ErrNotDialable = errors.New("phone number cannot be normalized to a dialable form")

func stripSeparators(raw string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(raw))
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Normalize returns the canonical +54… form of a phone number. Accepted
// inputs: +549XXXXXXXXX, 549XXXXXXXXX, 9XXXXXXXXX and bare local numbers of
// at least 8 digits.
func Normalize(raw string) (string, error) {
	n := stripSeparators(raw)

	switch {
	case strings.HasPrefix(n, "+54"):
		if !digitsOnly(n[1:]) {
			return "", ErrNotDialable
		}
		return n, nil
	case strings.HasPrefix(n, "54") && digitsOnly(n):
		return "+" + n, nil
	case strings.HasPrefix(n, "9") && digitsOnly(n):
		return "+54" + n, nil
	case digitsOnly(n) && len(n) >= 8:
		return "+549" + n, nil
	}
	return "", ErrNotDialable
}

// Digits returns the normalized number without the leading plus, the form
// wa.me links expect.
func Digits(raw string) (string, error) {
	n, err := Normalize(raw)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(n, "+"), nil
}
