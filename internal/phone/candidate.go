package phone

import (
	"strconv"
	"strings"
)

// Width is the number of digits in a candidate.
const Width = 6

// DomainSize is the number of distinct candidates, 10^Width.
const DomainSize = 1_000_000

// Digits is a well-formed candidate decomposed left to right.
type Digits [Width]int

// ParseDigits decomposes s into its digits. ok is false when s is not exactly
// Width ASCII decimal digits.
func ParseDigits(s string) (d Digits, ok bool) {
	if len(s) != Width {
		return Digits{}, false
	}
	for i := 0; i < Width; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return Digits{}, false
		}
		d[i] = int(c - '0')
	}
	return d, true
}

// FormatCandidate renders n zero-padded to Width. n must be in [0, DomainSize).
func FormatCandidate(n int) string {
	s := strconv.Itoa(n)
	if len(s) >= Width {
		return s
	}
	return strings.Repeat("0", Width-len(s)) + s
}
