// Package library contains helper functions
package library

import "strings"

// TruncateForLog caps body at limit bytes and reports whether it was cut.
func TruncateForLog(body []byte, limit int) (string, bool) {
	if limit < 0 || len(body) <= limit {
		return string(body), false
	}
	return string(body[:limit]), true
}

// JoinTerms joins search terms the way the upstream `q` parameter expects them.
func JoinTerms(terms []string) string {
	return strings.Join(terms, " ")
}
