package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/catalog"
)

func newClassifier(t *testing.T) *Classifier {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return NewClassifier(cat)
}

func TestClassify(t *testing.T) {
	c := newClassifier(t)

	tests := []struct {
		message string
		want    Intent
	}{
		{"P3mm", SelectPanel},
		{"p3.91", SelectPanel},
		{"P391MM", SelectPanel},
		{"compare p3mm and p6mm", Compare},
		{"what is the price of P4mm", Price},
		{"how much does it cost", Price},
		{"can I get a quote", Price},
		{"my panel is not working", Support},
		{"the screen keeps flickering", Support},
		{"show me indoor panels", Panels},
		{"outdoor", Panels},
		{"I need a video wall", Panels},
		{"setup guide please", Guide},
		{"how to install the panels", Panels},
		{"what is pixel pitch", Knowledge},
		{"which model suits a studio", Knowledge},
		{"controller options", Controllers},
		{"hello there", General},
		{"Jane Doe", General},
		{"9876543210", General},
		{"", General},
		{"   ", General},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(tt.message), "message %q", tt.message)
	}
}

// Rule order is product behavior: specific rules must win over broad ones.
func TestClassifyPrecedence(t *testing.T) {
	c := newClassifier(t)

	// Support beats panel browsing when both match.
	assert.Equal(t, Support, c.Classify("my display has a problem"))

	// Price beats the interrogative rule.
	assert.Equal(t, Price, c.Classify("what does the P4mm cost"))

	// Panel browsing beats the interrogative rule.
	assert.Equal(t, Panels, c.Classify("what panels do you have"))

	// An interrogative first word beats the controller rule.
	assert.Equal(t, Knowledge, c.Classify("which controller should I buy"))
}

func TestExtractEmail(t *testing.T) {
	assert.Equal(t, "jane@acme.com", ExtractEmail("reach me at jane@acme.com thanks"))
	assert.Empty(t, ExtractEmail("no address here"))
}

func TestExtractPhone(t *testing.T) {
	assert.Equal(t, "9876543210", ExtractPhone("call 9876543210 after 5"))
	assert.Equal(t, "+919876543210", ExtractPhone("+919876543210"))
	assert.Empty(t, ExtractPhone("call me maybe"))
	assert.Empty(t, ExtractPhone("123456"), "too short to be a phone number")
}

func TestNumbers(t *testing.T) {
	assert.Equal(t, []string{"10", "6"}, Numbers("10x6 ft"))
	assert.Equal(t, []string{"3.91"}, Numbers("pitch is 3.91"))
	assert.Empty(t, Numbers("none"))
}

func TestPanelTokens(t *testing.T) {
	tokens := PanelTokens("Compare P3mm with p3.91mm and P3MM again")
	assert.Equal(t, []string{"p3mm", "p3.91mm"}, tokens)
	assert.Empty(t, PanelTokens("no models mentioned"))
}
