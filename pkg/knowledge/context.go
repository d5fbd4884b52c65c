package knowledge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/catalog"
)

type snippet struct {
	score int
	text  string
}

// buildContext renders the catalog facts most relevant to a question,
// keyword-ranked so the prompt budget goes to panels and purposes the
// customer actually asked about.
func buildContext(cat *catalog.Catalog, question string) string {
	terms := queryTerms(question)

	var snippets []snippet
	for _, category := range cat.Categories() {
		for _, spec := range cat.Models(category) {
			text := panelFact(category, spec)
			snippets = append(snippets, snippet{score: scoreText(text, terms), text: text})
		}
	}
	for _, key := range cat.PurposeKeys() {
		profile, _ := cat.Purpose(key)
		text := purposeFact(profile)
		snippets = append(snippets, snippet{score: scoreText(text, terms), text: text})
	}

	sort.SliceStable(snippets, func(i, j int) bool { return snippets[i].score > snippets[j].score })

	var b strings.Builder
	b.WriteString("Product catalog facts:\n")
	kept := 0
	for _, s := range snippets {
		if kept >= 8 || (kept >= 3 && s.score == 0) {
			break
		}
		b.WriteString("- " + s.text + "\n")
		kept++
	}
	return b.String()
}

func panelFact(category string, spec catalog.PanelSpec) string {
	parts := []string{
		fmt.Sprintf("%s %s panel: pixel pitch %s, brightness %s, IP rating %s",
			capitalize(category), spec.Model, spec.PixelPitch, spec.Brightness, spec.IPRating),
	}
	if spec.PricePerSqMeter != "" {
		parts = append(parts, "price "+spec.PricePerSqMeter+" per sq meter")
	}
	if spec.PricePerCabinet != "" {
		parts = append(parts, "price "+spec.PricePerCabinet+" per cabinet")
	}
	if spec.PricePerDay != "" {
		parts = append(parts, "rental price "+spec.PricePerDay+" per day")
	}
	return strings.Join(parts, ", ")
}

func purposeFact(p *catalog.PurposeProfile) string {
	return fmt.Sprintf("For a %s: recommended panel %s, brightness %s",
		p.Key, p.PanelRecommendation, p.EstimatedBrightness)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func queryTerms(question string) []string {
	fields := strings.Fields(strings.ToLower(question))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "?.,!\"'")
		if len(f) > 2 {
			terms = append(terms, f)
		}
	}
	return terms
}

func scoreText(text string, terms []string) int {
	t := strings.ToLower(text)
	score := 0
	for _, term := range terms {
		if strings.Contains(t, term) {
			score++
		}
	}
	return score
}
