package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/catalog"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/intent"
)

// handleSelectPanel fires when the whole message is a model name, typically a
// quick-reply button click.
func (e *Engine) handleSelectPanel(msg string, st *State) Reply {
	return e.selectPanel(trimmed(msg), st)
}

// handlePanels covers browsing messages like "show me outdoor panels". At the
// category question it doubles as the step answer.
func (e *Engine) handlePanels(t *turn, msg string, st *State) Reply {
	if st.Flow.CurrentStep == StepGreeting || st.Flow.CurrentStep == StepPanelCategory {
		return e.handlePanelCategory(t, msg, st)
	}

	m := strings.ToLower(msg)
	for _, cat := range e.catalog.Categories() {
		if strings.Contains(m, cat) {
			st.Slots.PanelCategory = cat
			return buttonsReply("Here are our "+titleCase(cat)+" panels. Pick one to see full specifications:",
				cat, e.catalog.ModelKeys(cat))
		}
	}
	return buttonsReply("We have panels for every space. Which range would you like to browse?", "", e.categoryButtons())
}

// handleCompare renders a side-by-side of two or more named models.
func (e *Engine) handleCompare(msg string) Reply {
	toks := intent.PanelTokens(msg)
	if len(toks) < 2 {
		return textReply("Please name two panel models to compare (e.g., 'compare P3mm and P4mm').")
	}

	var b strings.Builder
	b.WriteString("Panel Comparison:\n")
	for _, tok := range toks {
		category, spec, ok := e.catalog.Lookup(tok)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n%s (%s):\n", spec.Model, titleCase(category))
		fmt.Fprintf(&b, "- Pixel Pitch: %s\n", spec.PixelPitch)
		fmt.Fprintf(&b, "- Brightness: %s\n", spec.Brightness)
		fmt.Fprintf(&b, "- IP Rating: %s\n", spec.IPRating)
		b.WriteString(priceLine(spec))
	}
	b.WriteString("\nTell me which one you'd like to configure.")
	return textReply(b.String())
}

// handlePrice answers pricing questions, with exact figures when a model is
// named.
func (e *Engine) handlePrice(msg string) Reply {
	toks := intent.PanelTokens(msg)
	if len(toks) == 0 {
		return textReply("Pricing depends on the model, screen size, and quantity. " +
			"Tell me a model (e.g., P3mm) for exact figures, or share your requirements for a quote.")
	}

	var b strings.Builder
	for _, tok := range toks {
		category, spec, ok := e.catalog.Lookup(tok)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s (%s):\n", spec.Model, titleCase(category))
		b.WriteString(priceLine(spec))
	}
	if b.Len() == 0 {
		return textReply("I couldn't find pricing for that model. Please pick one from our catalog, e.g., P3mm or P4mm.")
	}
	b.WriteString("Final quotes include accessories, controllers, and installation if selected.")
	return textReply(b.String())
}

func priceLine(spec *catalog.PanelSpec) string {
	var b strings.Builder
	if spec.PricePerSqMeter != "" {
		fmt.Fprintf(&b, "- Price: %s per sq meter\n", spec.PricePerSqMeter)
	}
	if spec.PricePerCabinet != "" {
		fmt.Fprintf(&b, "- Price: %s per cabinet\n", spec.PricePerCabinet)
	}
	if spec.PricePerDay != "" {
		fmt.Fprintf(&b, "- Rental Price: %s per day\n", spec.PricePerDay)
	}
	return b.String()
}

// handleSupport is a canned hand-off to the service team.
func (e *Engine) handleSupport() Reply {
	return textReply("Sorry to hear you're having trouble. Our support team can help with flicker, dead pixels, " +
		"spare modules, and warranty claims. Please email support@xigiled.com or call +91 98765 00000 with your " +
		"panel model and a short description, and we'll get back within one business day.")
}

// handleGuide shares the setup walkthrough for the customer's purpose.
func (e *Engine) handleGuide(msg string, st *State) Reply {
	profile, matched := e.catalog.Purpose(msg)
	if !matched && st.Slots.Purpose != "" {
		profile, matched = e.catalog.Purpose(st.Slots.Purpose)
	}
	if !matched {
		return textReply("Happy to walk you through the setup. Where will you use the panels (e.g., studio, event hall, outdoor stage)?")
	}
	return textReply(formatSetupSteps(profile))
}

// handleControllers describes the controller lineup.
func (e *Engine) handleControllers() Reply {
	return textReply("We supply Novastar and Colorlight controllers matched to your panel:\n" +
		"- Novastar MCTRL300: up to 1.3M pixels, ideal for small indoor walls\n" +
		"- Novastar MCTRL600: up to 2.3M pixels, for mid-size installs\n" +
		"- Colorlight X6: up to 3.9M pixels, for large or rental setups\n" +
		"A matching controller is included automatically when you choose 'include controller' during configuration.")
}

// Canned knowledge topics answered without the LLM.
var knowledgeTopics = []struct {
	keywords []string
	answer   string
}{
	{
		keywords: []string{"pixel pitch"},
		answer: "Pixel pitch is the distance in millimeters between the centers of two adjacent pixels. " +
			"A smaller pitch (P1.25mm, P2.5mm) gives a sharper image for close viewing; a larger pitch " +
			"(P6mm, P10mm) suits screens watched from a distance. A quick rule: minimum viewing distance " +
			"in meters roughly equals the pitch in millimeters.",
	},
	{
		keywords: []string{"manufactur", "made", "factory"},
		answer: "XIGI LED designs and assembles its panels at our Chennai facility, with SMD LEDs sourced " +
			"from Nationstar and Kinglight. Every cabinet is aged 72 hours before shipping.",
	},
	{
		keywords: []string{"clean", "maintain", "maintenance"},
		answer: "Clean panels with a soft dry brush or low-pressure air only. Never use water or solvents " +
			"on indoor modules. Outdoor panels are IP65 rated and can be rinsed gently from the front, " +
			"but keep connectors dry. Schedule a full inspection every six months.",
	},
	{
		keywords: []string{"software", "novalct", "viplex"},
		answer: "Our controllers work with NovaLCT and ViPlex Express for configuration, and any HDMI " +
			"source for content. For scheduled playback we recommend ViPlex with a Taurus series player.",
	},
}

// handleKnowledge answers free-form questions: canned topics first, then the
// LLM, then a polite shrug. The customer never sees an LLM failure.
func (e *Engine) handleKnowledge(ctx context.Context, msg string) Reply {
	m := strings.ToLower(msg)
	for _, topic := range knowledgeTopics {
		for _, kw := range topic.keywords {
			if strings.Contains(m, kw) {
				return textReply(topic.answer)
			}
		}
	}

	if e.answerer != nil {
		start := time.Now()
		answer, err := e.answerer.Answer(ctx, msg)
		e.recorder.RecordKnowledgeFallback(time.Since(start))
		if err == nil && trimmed(answer) != "" {
			return textReply(trimmed(answer))
		}
		if err != nil {
			e.logger.Warn("knowledge answer failed: %v", err)
		}
	}
	return textReply("I'm not sure about that one. Could you rephrase, or ask me about our panels, pricing, or setup?")
}
