// Package notetag extracts key:value tokens embedded in free-text notes.
// Accounts opt into interest accrual by carrying a tag like
// "interestRate:0.0699" anywhere in their note.
package notetag

import (
	"strconv"
	"strings"
	"unicode"
)

// RateTag marks the annual interest rate of a loan account inside its note.
const RateTag = "interestRate"

// Value scans note for the literal "tag:" marker and returns the token
// immediately following it, up to the next whitespace. ok is false when the
// tag is absent.
func Value(note, tag string) (value string, ok bool) {
	marker := tag + ":"
	idx := strings.Index(note, marker)
	if idx == -1 {
		return "", false
	}
	rest := note[idx+len(marker):]
	if cut := strings.IndexFunc(rest, unicode.IsSpace); cut != -1 {
		rest = rest[:cut]
	}
	return rest, true
}

// Rate reads the interestRate tag as a float. Missing and malformed tokens
// both report ok == false: a bad value in one note must not take the whole
// run down, the account is simply not eligible this cycle.
func Rate(note string) (rate float64, ok bool) {
	raw, ok := Value(note, RateTag)
	if !ok {
		return 0, false
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return rate, true
}
