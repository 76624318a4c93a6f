// Package plugin defines how commands plug into the bot host.
package plugin

import (
	"context"

	"Rabscootle/internal/model"
)

// OptionType is the kind of value an option carries.
type OptionType string

const OptionString OptionType = "STRING"

// Option describes one command argument.
type Option struct {
	Name         string
	Description  string
	Type         OptionType
	Required     bool
	Autocomplete bool
}

// Descriptor is what a plugin registers with the host.
type Descriptor struct {
	Name        string
	Description string
	Options     []Option
}

// AutocompleteOption returns the first option that supports autocomplete.
func (d Descriptor) AutocompleteOption() (Option, bool) {
	for _, o := range d.Options {
		if o.Autocomplete {
			return o, true
		}
	}
	return Option{}, false
}

// Interaction is one command invocation delivered by the host.
type Interaction struct {
	ID      string
	Command string
	Options map[string]string
	User    string
	ChatID  string
}

// String returns the named option value, or "" when absent.
func (i *Interaction) String(name string) string {
	if i == nil || i.Options == nil {
		return ""
	}
	return i.Options[name]
}

// AutocompleteRequest asks for suggestions while the user is typing Option.
type AutocompleteRequest struct {
	Command string
	Option  string
	Query   string
}

// InteractionPlugin handles command executions.
type InteractionPlugin interface {
	Descriptor() Descriptor
	OnInteraction(ctx context.Context, in *Interaction) (*model.Reply, error)
}

// AutocompletePlugin is implemented by plugins that can suggest option values.
type AutocompletePlugin interface {
	InteractionPlugin
	OnAutocomplete(ctx context.Context, req *AutocompleteRequest) ([]model.Choice, error)
}
