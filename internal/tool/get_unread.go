package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"

	"github.com/foi-tools/foi-mcp/internal/gservice"
)

const (
	defaultUnreadLimit = 5
	unreadQuery        = "is:unread in:inbox"
)

// GetUnreadRequest bounds how many unread emails to return.
type GetUnreadRequest struct {
	Limit int64 `json:"limit,omitempty" jsonschema:"maximum number of unread emails to return, defaults to 5"`
}

// GetUnreadResponse lists unread email summaries. Failures show up as
// error-shaped summaries, never as a failed call.
type GetUnreadResponse struct {
	Messages []EmailSummary `json:"messages" jsonschema:"unread email summaries"`
}

// EmailSummary is one unread email.
type EmailSummary struct {
	ID       string `json:"id" jsonschema:"Gmail message ID"`
	ThreadID string `json:"thread_id" jsonschema:"Gmail thread ID"`
	Sender   string `json:"sender" jsonschema:"From header"`
	Subject  string `json:"subject" jsonschema:"Subject header"`
	Snippet  string `json:"snippet" jsonschema:"small preview of the body"`
}

type getUnreadSvc interface {
	ListMessages(ctx context.Context, q string, maxResults int64) (*gmail.ListMessagesResponse, error)
	GetMessageMetadata(ctx context.Context, msgID string) (*gmail.Message, error)
}

// NewGetUnread creates the unread listing tool.
func NewGetUnread(svc getUnreadSvc) *GetUnread {
	return &GetUnread{svc: svc}
}

// GetUnread lists unread inbox mail. Gateway errors are captured and
// returned as structured records so the agent always receives a well-formed
// list.
type GetUnread struct {
	svc getUnreadSvc
}

// GetUnread handles the get_unread tool call.
func (t *GetUnread) GetUnread(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetUnreadRequest,
) (*mcp.CallToolResult, GetUnreadResponse, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultUnreadLimit
	}

	list, err := t.svc.ListMessages(ctx, unreadQuery, limit)
	if err != nil {
		return nil, GetUnreadResponse{
			Messages: []EmailSummary{{
				Subject: "Error while listing unread emails",
				Snippet: err.Error(),
			}},
		}, nil
	}

	summaries := make([]EmailSummary, 0, len(list.Messages))

	for _, m := range list.Messages {
		msg, err := t.svc.GetMessageMetadata(ctx, m.Id)
		if err != nil {
			summaries = append(summaries, EmailSummary{
				ID:      m.Id,
				Subject: "Error loading this message",
				Snippet: err.Error(),
			})
			continue
		}

		headers := gservice.HeaderMap(msg)
		summaries = append(summaries, EmailSummary{
			ID:       msg.Id,
			ThreadID: msg.ThreadId,
			Sender:   headers["From"],
			Subject:  headers["Subject"],
			Snippet:  msg.Snippet,
		})
	}

	return nil, GetUnreadResponse{Messages: summaries}, nil
}
