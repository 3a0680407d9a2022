package tool_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"

	"github.com/foi-tools/foi-mcp/internal/gservice"
	"github.com/foi-tools/foi-mcp/internal/tool"
)

func callCreateDraftReply(t *testing.T, session *mcp.ClientSession, req tool.CreateDraftReplyRequest) tool.CreateDraftReplyResponse {
	t.Helper()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "create_draft_reply",
		Arguments: req,
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var response tool.CreateDraftReplyResponse
	require.NoError(t, json.Unmarshal(
		[]byte(result.Content[0].(*mcp.TextContent).Text),
		&response,
	))

	return response
}

func replyContext(headers map[string]string) *gmail.Message {
	var parts []*gmail.MessagePartHeader
	for name, value := range headers {
		parts = append(parts, &gmail.MessagePartHeader{Name: name, Value: value})
	}
	return &gmail.Message{
		Id:       "orig-1",
		ThreadId: "T1",
		Payload:  &gmail.MessagePart{Headers: parts},
	}
}

func TestCreateDraftReply(t *testing.T) {
	cases := []struct {
		name            string
		headers         map[string]string
		expectedTo      string
		expectedSubject string
	}{
		{
			name: "reply-to wins and Re: added",
			headers: map[string]string{
				"Subject":    "Hello",
				"Reply-To":   "rt@example.com",
				"From":       "from@example.com",
				"To":         "me@example.com",
				"Message-Id": "<orig@mail.example.com>",
			},
			expectedTo:      "rt@example.com",
			expectedSubject: "Re: Hello",
		},
		{
			name: "existing Re: kept, recipient from From",
			headers: map[string]string{
				"Subject": "Re: Hello",
				"From":    "from@example.com",
			},
			expectedTo:      "from@example.com",
			expectedSubject: "Re: Hello",
		},
		{
			name:            "no subject",
			headers:         map[string]string{"From": "from@example.com"},
			expectedTo:      "from@example.com",
			expectedSubject: "Re: (no subject)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var created []gservice.OutboundMessage

			svc := &gmailSvcMock{
				GetReplyContextFunc: func(_ context.Context, msgID string) (*gmail.Message, error) {
					assert.Equal(t, "orig-1", msgID)
					return replyContext(tc.headers), nil
				},
				CreateDraftFunc: func(_ context.Context, out gservice.OutboundMessage) (*gmail.Draft, error) {
					created = append(created, out)
					return &gmail.Draft{
						Id:      "draft-5",
						Message: &gmail.Message{ThreadId: "T1"},
					}, nil
				},
			}

			response := callCreateDraftReply(t, newInboxSession(t, svc), tool.CreateDraftReplyRequest{
				MessageID: "orig-1",
				ReplyBody: "Thanks, received.",
			})

			assert.Equal(t, "ok", response.Status)
			assert.Equal(t, "draft-5", response.DraftID)
			assert.Equal(t, "T1", response.ThreadID)

			require.Len(t, created, 1)
			assert.Equal(t, tc.expectedTo, created[0].To)
			assert.Equal(t, tc.expectedSubject, created[0].Subject)
			assert.Equal(t, "T1", created[0].ThreadID)
			assert.Equal(t, tc.headers["Message-Id"], created[0].InReplyTo)
			assert.Equal(t, "Thanks, received.", created[0].Body)
		})
	}
}

func TestCreateDraftReplyLoadErrorIsCaptured(t *testing.T) {
	svc := &gmailSvcMock{
		GetReplyContextFunc: func(_ context.Context, _ string) (*gmail.Message, error) {
			return nil, errors.New("message not found")
		},
	}

	response := callCreateDraftReply(t, newInboxSession(t, svc), tool.CreateDraftReplyRequest{
		MessageID: "missing",
		ReplyBody: "body",
	})

	assert.Equal(t, "error", response.Status)
	assert.Contains(t, response.Error, "failed to load original message")
	assert.Contains(t, response.Error, "message not found")
	assert.Empty(t, response.DraftID)
}

func TestCreateDraftReplyCreateErrorIsCaptured(t *testing.T) {
	svc := &gmailSvcMock{
		GetReplyContextFunc: func(_ context.Context, _ string) (*gmail.Message, error) {
			return replyContext(map[string]string{"Subject": "Hello", "From": "from@example.com"}), nil
		},
		CreateDraftFunc: func(_ context.Context, _ gservice.OutboundMessage) (*gmail.Draft, error) {
			return nil, errors.New("insufficient scope")
		},
	}

	response := callCreateDraftReply(t, newInboxSession(t, svc), tool.CreateDraftReplyRequest{
		MessageID: "orig-1",
		ReplyBody: "body",
	})

	assert.Equal(t, "error", response.Status)
	assert.Contains(t, response.Error, "failed to create draft")
	assert.Contains(t, response.Error, "insufficient scope")
}
