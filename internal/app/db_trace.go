package app

import (
	"regexp"
	"strings"
)

const tracedQueryLimit = 512

var collapseWhitespace = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace flattens a SQL statement to a single line and
// caps its length so span attributes stay bounded.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	flat := collapseWhitespace.ReplaceAllString(query, " ")
	if len(flat) > tracedQueryLimit {
		flat = flat[:tracedQueryLimit] + "..."
	}
	return flat
}
