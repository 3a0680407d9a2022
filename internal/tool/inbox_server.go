package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type inboxSvc interface {
	getUnreadSvc
	draftReplySvc
}

// NewInboxServer creates the generic inbox helper MCP server.
func NewInboxServer(svc inboxSvc) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "gmail-inbox", Version: "v1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_unread",
		Description: "List unread emails from Gmail",
	}, NewGetUnread(svc).GetUnread)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_draft_reply",
		Description: "Create a draft reply in Gmail for the given message",
	}, NewCreateDraftReply(svc).CreateDraftReply)

	return server
}
