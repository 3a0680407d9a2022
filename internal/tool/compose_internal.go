package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"

	"github.com/foi-tools/foi-mcp/internal/gservice"
)

// ComposeInternalRequest is the allocation draft requested by the agent.
// Addresses are passed through unvalidated; Gmail is the validator.
type ComposeInternalRequest struct {
	To       string `json:"to" jsonschema:"recipient email address of the handling team's officer"`
	Subject  string `json:"subject" jsonschema:"subject of the internal allocation email"`
	Body     string `json:"body" jsonschema:"plain text body of the internal allocation email"`
	ThreadID string `json:"thread_id" jsonschema:"Gmail thread ID of the original FOI request"`
}

type composeInternalSvc interface {
	CreateDraft(ctx context.Context, out gservice.OutboundMessage) (*gmail.Draft, error)
}

// NewComposeInternal creates the allocation finalizer tool.
func NewComposeInternal(svc composeInternalSvc) *ComposeInternal {
	return &ComposeInternal{svc: svc}
}

// ComposeInternal creates the internal allocation draft on explicit agent
// request, threaded to the original FOI message.
type ComposeInternal struct {
	svc composeInternalSvc
}

// ComposeInternal handles the compose-internal-draft tool call. Gateway
// errors propagate as tool failures.
func (t *ComposeInternal) ComposeInternal(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ComposeInternalRequest,
) (*mcp.CallToolResult, any, error) {
	if _, err := t.svc.CreateDraft(ctx, gservice.OutboundMessage{
		To:       input.To,
		Subject:  input.Subject,
		Body:     input.Body,
		ThreadID: input.ThreadID,
	}); err != nil {
		return nil, nil, fmt.Errorf("svc.CreateDraft failed: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: "Internal draft created."}},
	}, nil, nil
}
