package plugin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"Rabscootle/internal/model"
)

var (
	// ErrUnknownCommand is returned when no plugin owns the command name.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrDuplicateCommand is returned when two plugins share a name.
	ErrDuplicateCommand = errors.New("duplicate command")
)

// Registry holds the plugins known to the host.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]InteractionPlugin
}

// NewRegistry registers plugins in order; it fails on duplicate names.
func NewRegistry(plugins ...InteractionPlugin) (*Registry, error) {
	r := &Registry{plugins: make(map[string]InteractionPlugin)}
	for _, p := range plugins {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a plugin under its descriptor name.
func (r *Registry) Register(p InteractionPlugin) error {
	name := strings.ToLower(p.Descriptor().Name)
	if name == "" {
		return errors.New("register plugin: empty command name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plugins[name]; ok {
		return fmt.Errorf("register %s: %w", name, ErrDuplicateCommand)
	}
	r.plugins[name] = p
	return nil
}

// Get returns the plugin for a command name.
func (r *Registry) Get(name string) (InteractionPlugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[strings.ToLower(name)]
	return p, ok
}

// Descriptors lists every registered command, sorted by name.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, 0, len(r.plugins))
	for _, p := range r.plugins {
		out = append(out, p.Descriptor())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Dispatch runs the plugin owning in.Command.
func (r *Registry) Dispatch(ctx context.Context, in *Interaction) (*model.Reply, error) {
	p, ok := r.Get(in.Command)
	if !ok {
		return nil, fmt.Errorf("dispatch %q: %w", in.Command, ErrUnknownCommand)
	}
	return p.OnInteraction(ctx, in)
}

// Autocomplete asks the plugin owning req.Command for suggestions. Commands
// without autocomplete support yield no choices. An empty req.Option selects
// the command's first autocomplete option.
func (r *Registry) Autocomplete(ctx context.Context, req *AutocompleteRequest) ([]model.Choice, error) {
	p, ok := r.Get(req.Command)
	if !ok {
		return nil, fmt.Errorf("autocomplete %q: %w", req.Command, ErrUnknownCommand)
	}
	ap, ok := p.(AutocompletePlugin)
	if !ok {
		return []model.Choice{}, nil
	}
	if req.Option == "" {
		opt, ok := p.Descriptor().AutocompleteOption()
		if !ok {
			return []model.Choice{}, nil
		}
		req.Option = opt.Name
	}
	return ap.OnAutocomplete(ctx, req)
}

// NewInteraction binds free text args to the command's first option.
func (r *Registry) NewInteraction(command, args string) (*Interaction, error) {
	p, ok := r.Get(command)
	if !ok {
		return nil, fmt.Errorf("bind %q: %w", command, ErrUnknownCommand)
	}
	in := &Interaction{Command: p.Descriptor().Name, Options: map[string]string{}}
	args = strings.TrimSpace(args)
	if opts := p.Descriptor().Options; len(opts) > 0 && args != "" {
		in.Options[opts[0].Name] = args
	}
	return in, nil
}

// Parse splits "/name@bot rest of text" into the command name, its
// arguments and the addressed bot (empty when none). ok is false when text
// is not a slash command.
func Parse(text string) (name, args, target string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", "", "", false
	}
	head, rest, _ := strings.Cut(text[1:], " ")
	head, target, _ = strings.Cut(head, "@")
	if head == "" {
		return "", "", "", false
	}
	return strings.ToLower(head), strings.TrimSpace(rest), target, true
}
