package tool_test

import (
	"context"

	"google.golang.org/api/gmail/v1"

	"github.com/foi-tools/foi-mcp/internal/gservice"
	"github.com/foi-tools/foi-mcp/internal/knowledge"
)

type gmailSvcMock struct {
	ListUnreadFunc         func(ctx context.Context, maxResults int64) (*gmail.ListMessagesResponse, error)
	ListMessagesFunc       func(ctx context.Context, q string, maxResults int64) (*gmail.ListMessagesResponse, error)
	GetMessageFunc         func(ctx context.Context, msgID string) (*gmail.Message, error)
	GetMessageMetadataFunc func(ctx context.Context, msgID string) (*gmail.Message, error)
	GetReplyContextFunc    func(ctx context.Context, msgID string) (*gmail.Message, error)
	CreateDraftFunc        func(ctx context.Context, out gservice.OutboundMessage) (*gmail.Draft, error)
}

func (m *gmailSvcMock) ListUnread(ctx context.Context, maxResults int64) (*gmail.ListMessagesResponse, error) {
	return m.ListUnreadFunc(ctx, maxResults)
}

func (m *gmailSvcMock) ListMessages(ctx context.Context, q string, maxResults int64) (*gmail.ListMessagesResponse, error) {
	return m.ListMessagesFunc(ctx, q, maxResults)
}

func (m *gmailSvcMock) GetMessage(ctx context.Context, msgID string) (*gmail.Message, error) {
	return m.GetMessageFunc(ctx, msgID)
}

func (m *gmailSvcMock) GetMessageMetadata(ctx context.Context, msgID string) (*gmail.Message, error) {
	return m.GetMessageMetadataFunc(ctx, msgID)
}

func (m *gmailSvcMock) GetReplyContext(ctx context.Context, msgID string) (*gmail.Message, error) {
	return m.GetReplyContextFunc(ctx, msgID)
}

func (m *gmailSvcMock) CreateDraft(ctx context.Context, out gservice.OutboundMessage) (*gmail.Draft, error) {
	return m.CreateDraftFunc(ctx, out)
}

type knowledgeMock struct {
	LibraryFunc func() ([]knowledge.Record, error)
	TeamsFunc   func() (knowledge.TeamDirectory, error)
}

func (m *knowledgeMock) Library() ([]knowledge.Record, error) {
	return m.LibraryFunc()
}

func (m *knowledgeMock) Teams() (knowledge.TeamDirectory, error) {
	return m.TeamsFunc()
}

type refMock struct {
	refs []string
	next int
}

func (m *refMock) NewRef() string {
	ref := m.refs[m.next%len(m.refs)]
	m.next++
	return ref
}
