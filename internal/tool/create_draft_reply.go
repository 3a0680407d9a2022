package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"

	"github.com/foi-tools/foi-mcp/internal/gservice"
)

// CreateDraftReplyRequest identifies the message to answer and the reply text.
type CreateDraftReplyRequest struct {
	MessageID string `json:"message_id" jsonschema:"Gmail message ID of the email being replied to"`
	ReplyBody string `json:"reply_body" jsonschema:"plain text content of the reply"`
}

// CreateDraftReplyResponse reports the outcome. Status is "ok" or "error";
// the call itself never fails across the tool boundary.
type CreateDraftReplyResponse struct {
	Status   string `json:"status" jsonschema:"ok or error"`
	DraftID  string `json:"draft_id,omitempty" jsonschema:"ID of the created Gmail draft"`
	ThreadID string `json:"thread_id,omitempty" jsonschema:"thread the draft belongs to"`
	Error    string `json:"error,omitempty" jsonschema:"error message when status is error"`
}

type draftReplySvc interface {
	GetReplyContext(ctx context.Context, msgID string) (*gmail.Message, error)
	CreateDraft(ctx context.Context, out gservice.OutboundMessage) (*gmail.Draft, error)
}

// NewCreateDraftReply creates the reply drafting tool.
func NewCreateDraftReply(svc draftReplySvc) *CreateDraftReply {
	return &CreateDraftReply{svc: svc}
}

// CreateDraftReply drafts a threaded reply to an existing message: recipient
// from Reply-To/From/To, subject normalized to a single "Re:" prefix,
// In-Reply-To/References carried over when the original has a Message-Id.
type CreateDraftReply struct {
	svc draftReplySvc
}

// CreateDraftReply handles the create_draft_reply tool call.
func (t *CreateDraftReply) CreateDraftReply(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateDraftReplyRequest,
) (*mcp.CallToolResult, CreateDraftReplyResponse, error) {
	original, err := t.svc.GetReplyContext(ctx, input.MessageID)
	if err != nil {
		return nil, CreateDraftReplyResponse{
			Status: "error",
			Error:  fmt.Sprintf("failed to load original message: %v", err),
		}, nil
	}

	headers := gservice.HeaderMap(original)

	draft, err := t.svc.CreateDraft(ctx, gservice.OutboundMessage{
		To:        gservice.ReplyRecipient(headers),
		Subject:   gservice.ReplySubject(headers["Subject"]),
		Body:      input.ReplyBody,
		InReplyTo: headers["Message-Id"],
		ThreadID:  original.ThreadId,
	})
	if err != nil {
		return nil, CreateDraftReplyResponse{
			Status: "error",
			Error:  fmt.Sprintf("failed to create draft: %v", err),
		}, nil
	}

	threadID := original.ThreadId
	if draft.Message != nil && draft.Message.ThreadId != "" {
		threadID = draft.Message.ThreadId
	}

	return nil, CreateDraftReplyResponse{
		Status:   "ok",
		DraftID:  draft.Id,
		ThreadID: threadID,
	}, nil
}
