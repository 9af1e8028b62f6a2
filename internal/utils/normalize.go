package utils

import "strings"

// NormalizeWord trims surrounding whitespace and lowercases the word.
// Characters outside a-z are kept so that validation can reject them.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// SplitCommand breaks an input line into its lowercased command name and
// the remaining whitespace separated arguments.
func SplitCommand(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}
