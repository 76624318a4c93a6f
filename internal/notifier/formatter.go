package notifier

import (
	"fmt"
	"html"
	"strings"

	"Rabscootle/internal/model"
)

// FormatReply renders a reply as Telegram HTML.
func FormatReply(reply *model.Reply) string {
	if reply == nil {
		return ""
	}
	var b strings.Builder

	if reply.Content != "" {
		b.WriteString(html.EscapeString(reply.Content))
	}

	if e := reply.Embed; e != nil {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		writeEmbed(&b, e)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeEmbed(b *strings.Builder, e *model.Embed) {
	if e.Title != "" {
		title := html.EscapeString(e.Title)
		if e.URL != "" {
			b.WriteString(fmt.Sprintf("<a href=\"%s\"><b>%s</b></a>\n", html.EscapeString(e.URL), title))
		} else {
			b.WriteString(fmt.Sprintf("<b>%s</b>\n", title))
		}
	}
	if len(e.Fields) > 0 {
		b.WriteString("\n")
	}
	for _, f := range e.Fields {
		b.WriteString(fmt.Sprintf("<b>%s:</b> %s\n", html.EscapeString(f.Name), html.EscapeString(f.Value)))
	}
	if e.Footer != "" {
		b.WriteString(fmt.Sprintf("\n<i>%s</i>\n", html.EscapeString(e.Footer)))
	}
}

// FormatHelp lists the available commands.
func FormatHelp(commands []HelpEntry) string {
	var b strings.Builder
	b.WriteString("<b>Available commands:</b>\n")
	for _, c := range commands {
		b.WriteString(fmt.Sprintf("• /%s", html.EscapeString(c.Name)))
		if c.Usage != "" {
			b.WriteString(" " + html.EscapeString(c.Usage))
		}
		b.WriteString(fmt.Sprintf(" - %s\n", html.EscapeString(c.Description)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// HelpEntry is one line of the help listing.
type HelpEntry struct {
	Name        string
	Usage       string
	Description string
}
