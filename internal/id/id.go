// Package id generates and parses 8-digit account numbers.
package id

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// Account numbers are 8 decimal digits.
const (
	Min int64 = 10_000_000
	Max int64 = 99_999_999
)

// NewAccountNumber draws a uniformly random number in [Min, Max]. The
// caller is responsible for uniqueness; the registry retries on collision.
func NewAccountNumber(r *rand.Rand) int64 {
	return Min + r.Int64N(Max-Min+1)
}

// Valid reports whether n is within the 8-digit account-number range.
func Valid(n int64) bool {
	return n >= Min && n <= Max
}

// Parse parses a decimal account-number string and checks its range.
func Parse(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid account number %q: %w", s, err)
	}
	if !Valid(n) {
		return 0, fmt.Errorf("account number %d out of range", n)
	}
	return n, nil
}
