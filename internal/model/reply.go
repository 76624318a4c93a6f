package model

// Colors used by embeds.
const (
	ColorGreen = 0x2ECC71
	ColorRed   = 0xE74C3C
)

// EmbedField is a titled value inside an embed.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Embed is a rich message card, rendered by the transport.
type Embed struct {
	Title     string
	URL       string
	Color     int
	Fields    []EmbedField
	Thumbnail string
	Image     string
	Footer    string
}

// Attachment is a file sent along with a reply.
type Attachment struct {
	Name string
	Data []byte
}

// Reply is what a command hands back to the host.
type Reply struct {
	Content    string
	Embed      *Embed
	Attachment *Attachment
	Ephemeral  bool
}

// ErrorReply builds the short ephemeral reply used for user-facing failures.
func ErrorReply(msg string) *Reply {
	return &Reply{Content: msg, Ephemeral: true}
}
