// Package number reads cardinal and ordinal number phrases for the locale
// configurations of the datetime recognizer.
package number

import (
	"strings"

	"golang.org/x/text/width"
)

// Fold narrows full-width digits and letters ("２０１６") to their ASCII
// forms and trims surrounding white space.
func Fold(s string) string {
	return strings.TrimSpace(width.Narrow.String(s))
}

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

// atoi reads a run of ASCII digits, refusing values that would not fit a
// calendar field anyway.
func atoi(s string) (int, bool) {
	if !isASCIIDigits(s) || len(s) > 9 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}
