// Package classify implements the array classification and transform core.
// It partitions an ordered list of string items into numeric, alphabetic,
// and special-character categories, sums the numeric items, and derives an
// alternating-case reversal of the alphabetic items.
package classify

import (
	"math/big"
	"strings"
)

// Result holds the outcome of classifying an ordered list of items.
// Every input item appears in exactly one of the four category slices,
// in its original input order. The slices are always non-nil so they
// serialize as empty arrays rather than null.
type Result struct {
	OddNumbers        []string `json:"odd_numbers"`
	EvenNumbers       []string `json:"even_numbers"`
	Alphabets         []string `json:"alphabets"`
	SpecialCharacters []string `json:"special_characters"`
	Sum               string   `json:"sum"`
	ConcatString      string   `json:"concat_string"`
}

// Classify partitions items into categories and computes the derived values.
// It is a pure function: no shared state, deterministic, safe to call
// concurrently.
//
// Per-item rule, first match wins:
//  1. one or more ASCII digits (no sign, no decimal point) → numeric;
//     the value is added to the sum and the original string goes to
//     OddNumbers or EvenNumbers by parity.
//  2. one or more ASCII letters → alphabetic; the uppercased item goes to
//     Alphabets, the original-case item feeds ConcatString.
//  3. anything else (empty strings, punctuation, mixed tokens, signed or
//     decimal numerics, non-ASCII letters) → SpecialCharacters, verbatim.
//
// The sum is kept in a big.Int so it cannot wrap regardless of how many
// large numeric items are supplied.
func Classify(items []string) Result {
	res := Result{
		OddNumbers:        []string{},
		EvenNumbers:       []string{},
		Alphabets:         []string{},
		SpecialCharacters: []string{},
	}

	sum := new(big.Int)
	value := new(big.Int)
	var letters strings.Builder

	for _, item := range items {
		switch {
		case isASCIIDigits(item):
			// Cannot fail: item is all ASCII digits.
			value.SetString(item, 10)
			sum.Add(sum, value)
			if value.Bit(0) == 0 {
				res.EvenNumbers = append(res.EvenNumbers, item)
			} else {
				res.OddNumbers = append(res.OddNumbers, item)
			}

		case isASCIILetters(item):
			letters.WriteString(item)
			res.Alphabets = append(res.Alphabets, strings.ToUpper(item))

		default:
			res.SpecialCharacters = append(res.SpecialCharacters, item)
		}
	}

	res.Sum = sum.String()
	res.ConcatString = reverseAlternateCase(letters.String())

	return res
}

// isASCIIDigits reports whether s consists of one or more ASCII digits.
func isASCIIDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isASCIILetters reports whether s consists of one or more ASCII letters.
func isASCIILetters(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// reverseAlternateCase reverses s character-by-character and re-cases the
// result: even (0-based) positions uppercase, odd positions lowercase.
// s is guaranteed to contain only ASCII letters, so byte operations are safe.
func reverseAlternateCase(s string) string {
	if s == "" {
		return ""
	}

	out := make([]byte, len(s))
	for i := range out {
		c := s[len(s)-1-i]
		if i%2 == 0 {
			out[i] = upperASCII(c)
		} else {
			out[i] = lowerASCII(c)
		}
	}
	return string(out)
}

// upperASCII uppercases a single ASCII letter.
func upperASCII(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// lowerASCII lowercases a single ASCII letter.
func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
