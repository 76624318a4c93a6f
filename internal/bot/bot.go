// Package bot connects the chat transport to the command registry.
package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"Rabscootle/internal/logger"
	"Rabscootle/internal/metrics"
	"Rabscootle/internal/model"
	"Rabscootle/internal/notifier"
	"Rabscootle/internal/plugin"
	"Rabscootle/internal/recorder"
)

// DefaultInlineCommand answers inline queries that don't name a command.
const DefaultInlineCommand = "pepe"

// PostRetries bounds delivery attempts for unsolicited posts.
const PostRetries = 3

// Transport delivers replies to the chat platform.
type Transport interface {
	SendReply(ctx context.Context, chatID string, reply *model.Reply) error
	SendWithRetry(ctx context.Context, chatID string, reply *model.Reply, maxRetries int) error
	Send(ctx context.Context, chatID, text string) error
	AnswerInlineQuery(ctx context.Context, queryID, command string, choices []model.Choice) error
}

// Bot handles updates from the transport.
type Bot struct {
	Registry  *plugin.Registry
	Recorder  recorder.Recorder
	Metrics   *metrics.Metrics
	Transport Transport

	// Username is the bot's own name; commands addressed to another bot
	// ("/cmd@OtherBot") are ignored. Empty accepts every target.
	Username string
	log      *log.Logger
}

// New creates a Bot. A nil recorder records nothing.
func New(reg *plugin.Registry, rec recorder.Recorder, m *metrics.Metrics, tr Transport) *Bot {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Bot{
		Registry:  reg,
		Recorder:  rec,
		Metrics:   m,
		Transport: tr,
		log:       logger.New("bot"),
	}
}

// HandleMessage runs a slash command and sends its reply. Other text and
// commands addressed to other bots are ignored. Help and unknown commands are
// answered only in private chats or when addressed to this bot.
func (b *Bot) HandleMessage(ctx context.Context, msg notifier.Message) {
	name, args, target, ok := plugin.Parse(msg.Text)
	if !ok {
		return
	}
	if target != "" && b.Username != "" && !strings.EqualFold(target, b.Username) {
		return
	}
	direct := msg.Private || target != ""

	if name == "help" || name == "start" {
		if direct {
			b.sendHelp(ctx, msg.ChatID)
		}
		return
	}
	if _, known := b.Registry.Get(name); !known && !direct {
		return
	}

	reply, outcome := b.Execute(ctx, name, args, msg.User, msg.ChatID)
	if outcome == metrics.OutcomeUnknown {
		b.sendHelp(ctx, msg.ChatID)
		return
	}
	if err := b.Transport.SendReply(ctx, msg.ChatID, reply); err != nil {
		b.log.Errorf("send reply for /%s: %v", name, err)
	}
}

// Execute dispatches one command, records it and returns the reply with its
// outcome label. Plugin errors become a generic error reply.
func (b *Bot) Execute(ctx context.Context, command, args, user, chatID string) (*model.Reply, string) {
	start := time.Now()
	evt := &recorder.InteractionEvent{
		ID:      uuid.NewString(),
		Time:    start,
		Command: command,
		Option:  args,
		User:    user,
		ChatID:  chatID,
	}

	var reply *model.Reply
	in, err := b.Registry.NewInteraction(command, args)
	if err == nil {
		in.ID = evt.ID
		in.User = user
		in.ChatID = chatID
		reply, err = b.Registry.Dispatch(ctx, in)
	}

	switch {
	case errors.Is(err, plugin.ErrUnknownCommand):
		evt.Outcome = metrics.OutcomeUnknown
	case err != nil:
		b.log.Errorf("/%s %q: %v", command, args, err)
		reply = model.ErrorReply("Sorry, something went wrong.")
		evt.Outcome = metrics.OutcomeError
	case reply != nil && reply.Ephemeral:
		evt.Outcome = metrics.OutcomeError
	default:
		evt.Outcome = metrics.OutcomeOK
	}
	evt.Duration = time.Since(start)

	label := command
	if evt.Outcome == metrics.OutcomeUnknown {
		// Unregistered names share one label.
		label = metrics.OutcomeUnknown
	}
	b.Metrics.ObserveInteraction(label, evt.Outcome)
	if err := b.Recorder.RecordInteraction(evt); err != nil {
		b.log.Warnf("record interaction: %v", err)
	}
	return reply, evt.Outcome
}

// HandleInlineQuery answers "<command> <partial>" with autocomplete choices.
func (b *Bot) HandleInlineQuery(ctx context.Context, q notifier.InlineQuery) {
	command, partial := b.splitInline(q.Query)
	b.Metrics.ObserveAutocomplete(command)

	choices, err := b.Registry.Autocomplete(ctx, &plugin.AutocompleteRequest{Command: command, Query: partial})
	if err != nil {
		b.log.Warnf("autocomplete %s %q: %v", command, partial, err)
		choices = []model.Choice{}
	}
	if err := b.Transport.AnswerInlineQuery(ctx, q.ID, command, choices); err != nil {
		b.log.Errorf("answer inline query: %v", err)
	}
}

// splitInline picks the command named by the first word when it supports
// autocomplete, falling back to DefaultInlineCommand with the whole query.
func (b *Bot) splitInline(query string) (command, partial string) {
	query = strings.TrimSpace(query)
	head, rest, _ := strings.Cut(query, " ")
	head = strings.ToLower(strings.TrimPrefix(head, "/"))
	if p, ok := b.Registry.Get(head); ok {
		if _, ok := p.Descriptor().AutocompleteOption(); ok {
			return p.Descriptor().Name, strings.TrimSpace(rest)
		}
	}
	return DefaultInlineCommand, query
}

// Post delivers an unsolicited reply, retrying on failure.
func (b *Bot) Post(ctx context.Context, chatID string, reply *model.Reply) error {
	return b.Transport.SendWithRetry(ctx, chatID, reply, PostRetries)
}

// Help lists the registered commands.
func (b *Bot) Help() string {
	var entries []notifier.HelpEntry
	for _, d := range b.Registry.Descriptors() {
		e := notifier.HelpEntry{Name: d.Name, Description: d.Description}
		if len(d.Options) > 0 {
			o := d.Options[0]
			if o.Required {
				e.Usage = "<" + o.Name + ">"
			} else {
				e.Usage = "[" + o.Name + "]"
			}
		}
		entries = append(entries, e)
	}
	return notifier.FormatHelp(entries)
}

func (b *Bot) sendHelp(ctx context.Context, chatID string) {
	if err := b.Transport.Send(ctx, chatID, b.Help()); err != nil {
		b.log.Errorf("send help: %v", err)
	}
}
