package journaltools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/azimut/internal/session"
)

// ClearTool handles the journal_clear MCP tool.
type ClearTool struct {
	svc *session.Service
}

// NewClearTool creates a ClearTool.
func NewClearTool(svc *session.Service) *ClearTool {
	return &ClearTool{svc: svc}
}

// Definition returns the MCP tool definition for journal_clear.
func (t *ClearTool) Definition() mcp.Tool {
	return toolSchema("journal_clear",
		"Delete every entry of the journal. This cannot be undone; ask the user before calling it.",
		[]mcp.ToolOption{
			mcp.WithBoolean("confirm",
				mcp.Required(),
				mcp.Description("Must be true"),
			),
		},
		identityParams(),
	)
}

// Handle processes the journal_clear tool call.
func (t *ClearTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !boolArg(req, "confirm", false) {
		return mcp.NewToolResultError("'confirm' must be true to clear the journal"), nil
	}

	s := openSession(t.svc, req)
	n := len(s.Entries())
	if err := s.Clear(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to clear journal: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Journal cleared (%d entries removed).", n) + sessionNote(s)), nil
}
