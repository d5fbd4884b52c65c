package bot

// Reply kinds, surfaced to the web client so it can render buttons and
// summaries differently from plain text.
const (
	KindText    = "text"
	KindButtons = "buttons"
	KindSummary = "summary"
)

// ButtonGroup is a set of quick-reply buttons with an optional category tag.
type ButtonGroup struct {
	Category string   `json:"category,omitempty"`
	Buttons  []string `json:"buttons"`
}

// Reply is the engine's answer to one inbound message.
type Reply struct {
	Kind    string       `json:"type"`
	Text    string       `json:"message"`
	Buttons *ButtonGroup `json:"options,omitempty"`
	Intent  string       `json:"intent,omitempty"`
	Step    Step         `json:"current_step,omitempty"`
	Done    bool         `json:"done,omitempty"`
}

func textReply(text string) Reply {
	return Reply{Kind: KindText, Text: text}
}

func buttonsReply(text, category string, buttons []string) Reply {
	return Reply{
		Kind:    KindButtons,
		Text:    text,
		Buttons: &ButtonGroup{Category: category, Buttons: buttons},
	}
}

func summaryReply(text string) Reply {
	return Reply{Kind: KindSummary, Text: text}
}
