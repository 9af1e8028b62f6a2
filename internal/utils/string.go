package utils

import (
	"strconv"
	"strings"
)

// IsLowerASCII reports whether s consists only of the letters a-z.
// The empty string is reported as valid, callers check emptiness themselves.
func IsLowerASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// FormatScore renders a score with the shortest representation that parses back to the same value
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}

// ParseScore parses a decimal score, tolerating surrounding spaces
func ParseScore(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	if n < 0 {
		return "-" + FormatWithCommas(-n)
	}
	str := strconv.Itoa(n)
	if len(str) <= 3 {
		return str
	}
	var b strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(char)
	}
	return b.String()
}
