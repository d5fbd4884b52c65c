// Package intent classifies inbound chat messages with an ordered,
// first-match-wins keyword table. The order is part of the product behavior:
// an exact model name always beats every other rule, and broad rules like the
// interrogative check come late so they cannot shadow specific ones.
package intent

import (
	"regexp"
	"strings"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/catalog"
)

// Intent is the classified meaning of one message.
type Intent string

const (
	SelectPanel Intent = "select_panel"
	Compare     Intent = "compare"
	Price       Intent = "price"
	Support     Intent = "support"
	Panels      Intent = "panels"
	Guide       Intent = "guide"
	Knowledge   Intent = "knowledge"
	Controllers Intent = "controllers"
	General     Intent = "general"
)

// Shared extractors used by the classifier and the step handlers.
var (
	emailRx      = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phoneRx      = regexp.MustCompile(`(\+?\d{7,15})`)
	numberRx     = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	panelTokenRx = regexp.MustCompile(`p\d+(?:\.\d+)?mm`)
)

var supportKeywords = []string{
	"help", "support", "issue", "problem", "flicker", "warranty",
	"complaint", "spare", "repair", "not working",
}

var panelKeywords = []string{
	"panel", "indoor", "outdoor", "rental", "display", "screen", "wall",
}

var guideKeywords = []string{"guide", "how to", "setup", "install"}

var interrogatives = []string{
	"what", "which", "who", "where", "when", "why", "how",
	"can", "do", "does", "is", "are",
}

// Classifier maps messages to intents against a loaded catalog.
type Classifier struct {
	catalog *catalog.Catalog
}

func NewClassifier(cat *catalog.Catalog) *Classifier {
	return &Classifier{catalog: cat}
}

// Classify returns the first matching intent for a message.
func (c *Classifier) Classify(message string) Intent {
	m := strings.ToLower(strings.TrimSpace(message))
	if m == "" {
		return General
	}

	// 1. Exact model name ("P3mm", "p3.91", "P391MM").
	if c.catalog.Normalize(m) != "" {
		return SelectPanel
	}

	// 2. Comparison request.
	if strings.Contains(m, "compare") {
		return Compare
	}

	// 3. Pricing request.
	if strings.Contains(m, "price") || strings.Contains(m, "cost") || strings.Contains(m, "quote") {
		return Price
	}

	// 4. Support request.
	for _, kw := range supportKeywords {
		if strings.Contains(m, kw) {
			return Support
		}
	}

	// 5. Panel browsing.
	for _, kw := range panelKeywords {
		if strings.Contains(m, kw) {
			return Panels
		}
	}

	// 6. Setup guide.
	for _, kw := range guideKeywords {
		if strings.Contains(m, kw) {
			return Guide
		}
	}

	// 7. Free-form question.
	first := m
	if idx := strings.IndexAny(m, " \t?"); idx > 0 {
		first = m[:idx]
	}
	for _, w := range interrogatives {
		if first == w {
			return Knowledge
		}
	}

	// 8. Controller inquiry.
	if strings.Contains(m, "controller") {
		return Controllers
	}

	return General
}

// ExtractEmail returns the first email address in text, or "".
func ExtractEmail(text string) string {
	return emailRx.FindString(text)
}

// ExtractPhone returns the first 7-15 digit phone number in text, or "".
func ExtractPhone(text string) string {
	return phoneRx.FindString(text)
}

// Numbers returns all decimal numbers in text, in order.
func Numbers(text string) []string {
	return numberRx.FindAllString(text, -1)
}

// PanelTokens returns the distinct panel model tokens ("p3mm", "p3.91mm")
// found in text, lowercased and in order of first occurrence.
func PanelTokens(text string) []string {
	found := panelTokenRx.FindAllString(strings.ToLower(text), -1)
	seen := make(map[string]bool, len(found))
	out := make([]string, 0, len(found))
	for _, t := range found {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
