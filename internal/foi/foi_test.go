package foi_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foi-tools/foi-mcp/internal/foi"
	"github.com/foi-tools/foi-mcp/internal/knowledge"
)

func TestRandomRefFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^CAM\d{4}$`)

	gen := foi.RandomRef{}
	for i := 0; i < 1000; i++ {
		ref := gen.NewRef()
		assert.Regexp(t, pattern, ref)
	}
}

func TestKeywordClassifier(t *testing.T) {
	cases := []struct {
		name    string
		subject string
		body    string
		match   bool
	}{
		{name: "uppercase in subject", subject: "FOI Request", body: "Please send records", match: true},
		{name: "lowercase in body", subject: "Records", body: "this is a foi request", match: true},
		{name: "mixed case", subject: "FoI about parking", body: "", match: true},
		{name: "embedded in word", subject: "", body: "see the foil wrapping", match: true},
		{name: "neither field", subject: "Lunch on Friday?", body: "See you at noon", match: false},
		{name: "empty message", subject: "", body: "", match: false},
	}

	c := foi.NewKeywordClassifier("foi")
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.match, c.Match(tc.subject, tc.body))
		})
	}
}

func TestAckSubjectAndBody(t *testing.T) {
	assert.Equal(t, "Freedom of Information request – CAM1234", foi.AckSubject("CAM1234"))

	body := foi.AckBody("CAM1234")
	assert.Contains(t, body, "logged under the reference number CAM1234")
	assert.Contains(t, body, "20 working days")
	assert.Contains(t, body, "Freedom of Information Act 2000")
	assert.Contains(t, body, "Information Rights Team")
}

func TestAllocationPrompt(t *testing.T) {
	prompt := foi.AllocationPrompt(foi.PromptParams{
		Subject: "FOI Request",
		Body:    "Please send records",
		Library: "ID: FOI-001\nTitle: Street trees\nText: t\nLink: l",
		Teams: knowledge.TeamDirectory{
			Names: []string{"Environment", "Housing"},
			Contacts: map[string]string{
				"Environment": "env@example.org",
				"Housing":     "housing@example.org",
			},
		},
		Ref:      "CAM9999",
		ThreadID: "T1",
	})

	assert.Contains(t, prompt, "Subject:\nFOI Request")
	assert.Contains(t, prompt, "Request body:\nPlease send records")
	assert.Contains(t, prompt, "ID: FOI-001")
	assert.Contains(t, prompt, "- Environment: env@example.org")
	assert.Contains(t, prompt, "- Housing: housing@example.org")
	assert.Contains(t, prompt, "- Thread ID: T1")
	assert.Contains(t, prompt, "- Reference: CAM9999")
	assert.Contains(t, prompt, "`compose-internal-draft`")
	assert.Contains(t, prompt, "You MUST call the tool.")
}
