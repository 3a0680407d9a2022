package foi

import (
	"fmt"
	"strings"

	"github.com/foi-tools/foi-mcp/internal/knowledge"
)

// PromptParams carries everything an allocation prompt embeds.
type PromptParams struct {
	Subject  string
	Body     string
	Library  string
	Teams    knowledge.TeamDirectory
	Ref      string
	ThreadID string
}

const allocationPromptTemplate = `You are an FOI officer at the council's Information Rights Team.

### New FOI request
Subject:
%s

Request body:
%s

---

### Previous FOI responses
%s

---

### Available teams
%s

---

### Tasks
1. Select the TOP 5 most relevant previous FOI responses.
2. Decide the single best team to handle this request.
3. Draft an INTERNAL allocation email to the team's officer.
4. Call the tool ` + "`compose-internal-draft`" + ` to save the draft in Gmail.

Use:
- Thread ID: %s
- Reference: %s

---

### Output rules
You MUST call the tool.
Do NOT write the email in chat.
`

// AllocationPrompt builds the text handed back to the agent for one FOI
// request. The only valid response to it is a compose-internal-draft call.
func AllocationPrompt(p PromptParams) string {
	teamLines := make([]string, 0, len(p.Teams.Names))
	for _, name := range p.Teams.Names {
		teamLines = append(teamLines, fmt.Sprintf("- %s: %s", name, p.Teams.Contacts[name]))
	}

	return fmt.Sprintf(
		allocationPromptTemplate,
		p.Subject,
		p.Body,
		p.Library,
		strings.Join(teamLines, "\n"),
		p.ThreadID,
		p.Ref,
	)
}
