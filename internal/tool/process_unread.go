package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"

	"github.com/foi-tools/foi-mcp/internal/foi"
	"github.com/foi-tools/foi-mcp/internal/gservice"
	"github.com/foi-tools/foi-mcp/internal/knowledge"
)

// ProcessUnreadRequest has no parameters; the tool operates on the
// mailbox's current unread set.
type ProcessUnreadRequest struct{}

type processUnreadSvc interface {
	ListUnread(ctx context.Context, maxResults int64) (*gmail.ListMessagesResponse, error)
	GetMessage(ctx context.Context, msgID string) (*gmail.Message, error)
	CreateDraft(ctx context.Context, out gservice.OutboundMessage) (*gmail.Draft, error)
}

// NewProcessUnread creates the triage tool.
func NewProcessUnread(
	svc processUnreadSvc,
	lib knowledgeSource,
	cls foi.Classifier,
	refs foi.RefGenerator,
	maxUnread int64,
) *ProcessUnread {
	return &ProcessUnread{
		svc:       svc,
		lib:       lib,
		cls:       cls,
		refs:      refs,
		maxUnread: maxUnread,
	}
}

// ProcessUnread scans unread mail for FOI requests. Each match gets an
// acknowledgement draft in its thread plus one allocation prompt for the
// agent; everything else is skipped without side effects.
type ProcessUnread struct {
	svc       processUnreadSvc
	lib       knowledgeSource
	cls       foi.Classifier
	refs      foi.RefGenerator
	maxUnread int64
}

// ProcessUnread handles the process-unread-foi tool call. Gateway and
// loader errors propagate as tool failures; there is no retry and no
// partial-result accounting.
func (t *ProcessUnread) ProcessUnread(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ProcessUnreadRequest,
) (*mcp.CallToolResult, any, error) {
	teams, err := t.lib.Teams()
	if err != nil {
		return nil, nil, fmt.Errorf("lib.Teams failed: %w", err)
	}

	records, err := t.lib.Library()
	if err != nil {
		return nil, nil, fmt.Errorf("lib.Library failed: %w", err)
	}
	library := knowledge.FormatLibrary(records)

	list, err := t.svc.ListUnread(ctx, t.maxUnread)
	if err != nil {
		return nil, nil, fmt.Errorf("svc.ListUnread failed: %w", err)
	}

	var prompts []mcp.Content

	for _, m := range list.Messages {
		msg, err := t.svc.GetMessage(ctx, m.Id)
		if err != nil {
			return nil, nil, fmt.Errorf("get message %s failed: %w", m.Id, err)
		}

		headers := gservice.HeaderMap(msg)
		subject := headers["Subject"]
		sender := headers["From"]
		body := gservice.PlainTextBody(msg)

		if !t.cls.Match(subject, body) {
			continue
		}

		ref := t.refs.NewRef()

		if _, err := t.svc.CreateDraft(ctx, gservice.OutboundMessage{
			To:       sender,
			Subject:  foi.AckSubject(ref),
			Body:     foi.AckBody(ref),
			ThreadID: msg.ThreadId,
		}); err != nil {
			return nil, nil, fmt.Errorf("create acknowledgement draft for %s failed: %w", m.Id, err)
		}

		prompts = append(prompts, &mcp.TextContent{
			Text: foi.AllocationPrompt(foi.PromptParams{
				Subject:  subject,
				Body:     body,
				Library:  library,
				Teams:    teams,
				Ref:      ref,
				ThreadID: msg.ThreadId,
			}),
		})
	}

	if len(prompts) == 0 {
		prompts = []mcp.Content{&mcp.TextContent{Text: "No unread FOI emails found."}}
	}

	return &mcp.CallToolResult{Content: prompts}, nil, nil
}
