package app

import (
	"regexp"
	"strings"
)

// Query text attached to DB spans is collapsed to single-line and
// capped so archive upserts with long VALUES lists stay readable.
const maxTracedQueryLength = 512

var queryWhitespaceRegex = regexp.MustCompile(`\s+`)

func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	flattened := queryWhitespaceRegex.ReplaceAllString(query, " ")
	if len(flattened) > maxTracedQueryLength {
		return flattened[:maxTracedQueryLength] + "..."
	}

	return flattened
}
