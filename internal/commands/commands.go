// Package commands holds the chat commands: crypto, pepe and 8pepe.
package commands

import (
	"math/rand/v2"
	"sort"
	"strings"

	"Rabscootle/internal/match"
	"Rabscootle/internal/model"
	"Rabscootle/internal/selector"
)

// Suggestion limits of the chat platform.
const (
	CoinSuggestionLimit  = 24
	ImageSuggestionLimit = 25
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// preview answers an empty autocomplete query: limit random entries sorted by name.
func preview(pool []model.Candidate, limit int, rng *rand.Rand) []model.Choice {
	picked := selector.Preview(pool, limit, rng)
	sort.SliceStable(picked, func(i, j int) bool {
		return strings.ToLower(picked[i].Name) < strings.ToLower(picked[j].Name)
	})
	return model.ToChoices(picked)
}

// resolve maps user input to a candidate: exact value, then exact name, then
// the first subsequence match.
func resolve(input string, pool []model.Candidate) (model.Candidate, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return model.Candidate{}, false
	}
	for _, c := range pool {
		if strings.EqualFold(c.Value, input) {
			return c, true
		}
	}
	for _, c := range pool {
		if strings.EqualFold(c.Name, input) {
			return c, true
		}
	}
	if found := match.Filter(input, pool); len(found) > 0 {
		return found[0], true
	}
	return model.Candidate{}, false
}
