package journaltools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/azimut/internal/session"
)

// QueryTool handles the journal_query MCP tool.
type QueryTool struct {
	svc *session.Service
}

// NewQueryTool creates a QueryTool.
func NewQueryTool(svc *session.Service) *QueryTool {
	return &QueryTool{svc: svc}
}

// Definition returns the MCP tool definition for journal_query.
func (t *QueryTool) Definition() mcp.Tool {
	return toolSchema("journal_query",
		"Show the journal history grouped by block and date, optionally limited to a date range and blocks.",
		filterParams(),
		identityParams(),
	)
}

// Handle processes the journal_query tool call.
func (t *QueryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, err := filterArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s := openSession(t.svc, req)
	return mcp.NewToolResultText(FormatHistory(s.History(f)) + sessionNote(s)), nil
}
