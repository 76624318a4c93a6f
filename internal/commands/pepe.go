package commands

import (
	"context"
	"math/rand/v2"
	"strings"

	"Rabscootle/internal/library"
	"Rabscootle/internal/match"
	"Rabscootle/internal/model"
	"Rabscootle/internal/plugin"
	"Rabscootle/internal/selector"
)

// SearchPepe searches the image library.
type SearchPepe struct {
	Library *library.ImageLibrary

	rand func() *rand.Rand
}

func NewSearchPepe(lib *library.ImageLibrary) *SearchPepe {
	return &SearchPepe{Library: lib, rand: newRand}
}

func (s *SearchPepe) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:        "pepe",
		Description: "Search the pepe library",
		Options: []plugin.Option{{
			Name:         "query",
			Description:  "Search phrase to find a pepe from",
			Type:         plugin.OptionString,
			Required:     true,
			Autocomplete: true,
		}},
	}
}

func (s *SearchPepe) OnAutocomplete(_ context.Context, req *plugin.AutocompleteRequest) ([]model.Choice, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return preview(s.Library.Entries, ImageSuggestionLimit, s.rand()), nil
	}
	found := match.Filter(query, s.Library.Entries)
	selector.Shuffle(found, s.rand())
	return model.ToChoices(match.Truncate(found, ImageSuggestionLimit)), nil
}

func (s *SearchPepe) OnInteraction(_ context.Context, in *plugin.Interaction) (*model.Reply, error) {
	query := in.String("query")
	pepe, ok := s.Library.Find(query)
	if !ok {
		pepe, ok = resolve(query, s.Library.Entries)
	}
	if !ok {
		return model.ErrorReply("Sorry, I could not find that pepe."), nil
	}
	return &model.Reply{Embed: &model.Embed{
		Title: pepe.Name,
		URL:   pepe.Value,
		Image: pepe.Value,
	}}, nil
}

// EightPepe answers a question with a pepe: seeded by the phrase when one is
// given, otherwise drawn from a shared non-repeating picker.
type EightPepe struct {
	Library *library.ImageLibrary
	Picker  *selector.Picker[string]
}

// NewEightPepe wires the command; picker must draw from lib.URIs.
func NewEightPepe(lib *library.ImageLibrary, picker *selector.Picker[string]) *EightPepe {
	return &EightPepe{Library: lib, Picker: picker}
}

func (e *EightPepe) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:        "8pepe",
		Description: "Ask the mighty Rabscootle a question and he will respond.",
		Options: []plugin.Option{{
			Name:        "phrase",
			Description: "Optional seed phrase",
			Type:        plugin.OptionString,
		}},
	}
}

// Seeded returns the image a phrase always maps to.
func (e *EightPepe) Seeded(phrase string) (string, bool) {
	if e.Library.Len() == 0 {
		return "", false
	}
	return e.Library.URIs[selector.SelectIndex(phrase, e.Library.Len())], true
}

func (e *EightPepe) OnInteraction(_ context.Context, in *plugin.Interaction) (*model.Reply, error) {
	phrase := in.String("phrase")
	if phrase != "" {
		uri, ok := e.Seeded(phrase)
		if !ok {
			return model.ErrorReply("The pepe library is empty."), nil
		}
		return &model.Reply{Embed: &model.Embed{Image: uri, Footer: phrase}}, nil
	}

	uri, ok := e.Picker.Next()
	if !ok {
		return model.ErrorReply("The pepe library is empty."), nil
	}
	return &model.Reply{Content: uri}, nil
}
