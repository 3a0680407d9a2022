// Package tool implements the MCP tool handlers for both servers: the FOI
// triage server and the inbox helper server.
package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/foi-tools/foi-mcp/internal/foi"
	"github.com/foi-tools/foi-mcp/internal/knowledge"
)

type triageSvc interface {
	processUnreadSvc
	composeInternalSvc
}

// knowledgeSource loads the response library and team directory. Loaded
// fresh on every invocation, never cached across calls.
type knowledgeSource interface {
	Library() ([]knowledge.Record, error)
	Teams() (knowledge.TeamDirectory, error)
}

// NewTriageServer creates the FOI triage MCP server with its two tools.
func NewTriageServer(
	svc triageSvc,
	lib knowledgeSource,
	cls foi.Classifier,
	refs foi.RefGenerator,
	maxUnread int64,
) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "gmail-foi", Version: "v1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "process-unread-foi",
		Description: "Create external FOI acknowledgement drafts and request allocation for unread FOI emails",
	}, NewProcessUnread(svc, lib, cls, refs, maxUnread).ProcessUnread)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compose-internal-draft",
		Description: "Create internal FOI allocation Gmail draft",
	}, NewComposeInternal(svc).ComposeInternal)

	return server
}
