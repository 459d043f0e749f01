package domain

import "strings"

// ISBNType reports which ISBN variant was validated.
type ISBNType string

const (
	ISBNType10 ISBNType = "ISBN-10"
	ISBNType13 ISBNType = "ISBN-13"
)

// ISBN is a validated, normalized ISBN-10 or ISBN-13.
// The zero value is not a valid ISBN; use NewISBN.
type ISBN struct {
	value string
}

// NewISBN strips hyphens and spaces, uppercases a trailing "x" and validates
// length, characters and checksum. On failure it returns *InvalidISBNError
// naming the original input.
func NewISBN(raw string) (ISBN, error) {
	normalized := normalizeISBN(raw)

	var ok bool
	switch len(normalized) {
	case 10:
		ok = validISBN10(normalized)
	case 13:
		ok = validISBN13(normalized)
	}
	if !ok {
		return ISBN{}, &InvalidISBNError{Input: raw}
	}

	return ISBN{value: normalized}, nil
}

// RestoreISBN rebuilds an ISBN from a trusted stored value without validation.
func RestoreISBN(value string) ISBN {
	return ISBN{value: value}
}

// String returns the canonical digit string (with a trailing "X" for some ISBN-10s).
func (i ISBN) String() string { return i.value }

// IsZero reports whether the ISBN is unset.
func (i ISBN) IsZero() bool { return i.value == "" }

// Type returns the validated variant.
func (i ISBN) Type() ISBNType {
	if len(i.value) == 10 {
		return ISBNType10
	}
	return ISBNType13
}

// Formatted re-inserts conventional hyphens for display.
// ISBN-13 is grouped 3-1-4-4-1, ISBN-10 is grouped 1-4-4-1.
// The canonical value returned by String is never affected.
func (i ISBN) Formatted() string {
	v := i.value
	switch len(v) {
	case 13:
		return v[0:3] + "-" + v[3:4] + "-" + v[4:8] + "-" + v[8:12] + "-" + v[12:13]
	case 10:
		return v[0:1] + "-" + v[1:5] + "-" + v[5:9] + "-" + v[9:10]
	default:
		return v
	}
}

// Equal compares canonical values.
func (i ISBN) Equal(other ISBN) bool { return i.value == other.value }

func normalizeISBN(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r == '-' || r == ' ' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

func validISBN10(s string) bool {
	sum := 0
	for i := 0; i < 10; i++ {
		c := s[i]
		var d int
		switch {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case c == 'X' && i == 9:
			d = 10
		default:
			return false
		}
		sum += d * (10 - i)
	}
	return sum%11 == 0
}

func validISBN13(s string) bool {
	sum := 0
	for i := 0; i < 13; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		w := 1
		if i%2 == 1 {
			w = 3
		}
		sum += int(c-'0') * w
	}
	return sum%10 == 0
}
