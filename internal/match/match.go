// Package match implements the subsequence matching used by autocomplete.
package match

import (
	"strings"
	"unicode/utf8"

	"Rabscootle/internal/model"
)

// Matches reports whether every character of query appears in candidate in
// the same relative order, ignoring case. An empty query matches anything.
func Matches(query, candidate string) bool {
	query = strings.ToLower(query)
	rest := strings.ToLower(candidate)

	for _, r := range query {
		i := strings.IndexRune(rest, r)
		if i < 0 {
			return false
		}
		// consume everything up to and including the match
		_, size := utf8.DecodeRuneInString(rest[i:])
		rest = rest[i+size:]
	}
	return true
}

// Filter returns every candidate whose name or value matches query, in pool order.
func Filter(query string, pool []model.Candidate) []model.Candidate {
	out := make([]model.Candidate, 0, len(pool))
	for _, c := range pool {
		if Matches(query, c.Name) || Matches(query, c.Value) {
			out = append(out, c)
		}
	}
	return out
}

// Truncate clamps cands to at most limit entries.
func Truncate(cands []model.Candidate, limit int) []model.Candidate {
	if limit < 0 {
		limit = 0
	}
	if len(cands) > limit {
		return cands[:limit]
	}
	return cands
}
