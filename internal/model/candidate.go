package model

// Candidate is a named entry offered to autocomplete, e.g. a coin or an image.
// Value is the identity; Name is what the user sees.
type Candidate struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Choice is a single autocomplete suggestion returned to the host.
type Choice struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ToChoices converts candidates to choices, preserving order.
func ToChoices(cands []Candidate) []Choice {
	choices := make([]Choice, len(cands))
	for i, c := range cands {
		choices[i] = Choice{Name: c.Name, Value: c.Value}
	}
	return choices
}
