package event

// Kind discriminates the two shapes of user input the engine consumes:
// free text typed by the user, or a discrete selection token attached to
// an option the engine previously offered.
type Kind string

const (
	KindText      Kind = "text"
	KindSelection Kind = "selection"
)

// Inbound is a single user input delivered by the transport. Exactly one
// of Text or Token is meaningful, according to Kind.
type Inbound struct {
	Kind  Kind
	Text  string
	Token string
}

// NewText builds a free-text input.
func NewText(text string) Inbound {
	return Inbound{Kind: KindText, Text: text}
}

// NewSelection builds a discrete selection input.
func NewSelection(token string) Inbound {
	return Inbound{Kind: KindSelection, Token: token}
}

// IsText returns true for free-text input.
func (in Inbound) IsText() bool {
	return in.Kind == KindText
}

// IsSelection returns true for a discrete selection.
func (in Inbound) IsSelection() bool {
	return in.Kind == KindSelection
}

// Option is one choice the engine offers for the current step. Token is an
// opaque stable identifier the transport echoes back verbatim; Label is
// only for display and never parsed.
type Option struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

// Prompt is what the engine emits after handling one input: text to show
// and the options valid for the new state. The transport decides how to
// render them.
type Prompt struct {
	Text    string   `json:"text"`
	Options []Option `json:"options,omitempty"`
}
