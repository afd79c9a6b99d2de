// Package message holds the user-facing message catalog.
//
// Message IDs are a one-letter kind (I info, W warning, E error) followed by
// a zero-padded sequence number shared across all kinds. Placeholders of the
// form {0}, {1}, ... are filled positionally by Format.
package message

import (
	"regexp"
	"strconv"
)

const (
	// E0001: the named field is not in a valid format.
	E0001 = "Please enter a valid {0}."
	// E0002: the named field is shorter than the given minimum.
	E0002 = "{0} must be at least {1} characters."
	// E0003: two entries of the named field differ.
	E0003 = "{0} does not match."
	// E0004: a credential pair was rejected.
	E0004 = "{0} or {1} is incorrect."
	// E0005: the named operation failed for an unspecified reason.
	E0005 = "{0} failed. Please try again later."
	// E0006: the named identifier is already taken.
	E0006 = "This {0} is already registered."
)

var placeholder = regexp.MustCompile(`\{(\d+)\}`)

// Format fills the positional placeholders of msg with args. Placeholders
// without a matching argument are left as-is.
func Format(msg string, args ...string) string {
	return placeholder.ReplaceAllStringFunc(msg, func(m string) string {
		idx, err := strconv.Atoi(m[1 : len(m)-1])
		if err != nil || idx >= len(args) {
			return m
		}
		return args[idx]
	})
}
