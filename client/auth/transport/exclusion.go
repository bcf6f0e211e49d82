package transport

import "strings"

// Exclusions is an ordered list of URL substrings that never trigger a refresh,
// typically the login and refresh endpoints themselves.
type Exclusions []string

// Match returns true if URL contains any non-empty pattern.
func (e Exclusions) Match(URL string) bool {
	for _, pattern := range e {
		if pattern != "" && strings.Contains(URL, pattern) {
			return true
		}
	}
	return false
}
