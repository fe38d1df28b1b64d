// Package validate holds the stateless credential and identity checks used
// by account creation and credential changes. All functions are pure.
package validate

import (
	"fmt"
	"time"
	"unicode"
)

// DOBLayout is the wire format for dates of birth: dd/mm/yyyy.
const DOBLayout = "02/01/2006"

// Password reports whether pwd satisfies the complexity policy: at least
// 8 characters, with at least one uppercase letter, one lowercase letter,
// one decimal digit, and one character outside those three classes.
func Password(pwd string) bool {
	if len(pwd) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, c := range pwd {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsLower(c):
			lower = true
		case unicode.IsDigit(c):
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}

// PIN reports whether pin is acceptable for a holder born on dob. A PIN is
// exactly 4 decimal digits, kept as text so leading zeros survive. When dob
// is known, the PIN must not equal the day-month (DDMM), month-day (MMDD),
// or 4-digit year of the birth date. The two-digit year is not part of the
// forbidden set. A zero dob skips the collision check.
func PIN(pin string, dob time.Time) bool {
	if len(pin) != 4 {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	if dob.IsZero() {
		return true
	}

	dd := fmt.Sprintf("%02d", dob.Day())
	mm := fmt.Sprintf("%02d", int(dob.Month()))
	yyyy := fmt.Sprintf("%04d", dob.Year())
	switch pin {
	case dd + mm, mm + dd, yyyy:
		return false
	}
	return true
}

// DateOfBirth parses s as dd/mm/yyyy and reports whether it is a plausible
// birth date: parseable, not in the future, and after the year 1900.
func DateOfBirth(s string) (time.Time, bool) {
	t, err := time.Parse(DOBLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	if t.After(time.Now()) || t.Year() <= 1900 {
		return time.Time{}, false
	}
	return t, true
}
