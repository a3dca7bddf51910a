package journaltools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/azimut/internal/session"
)

// InsightsTool handles the journal_insights MCP tool.
type InsightsTool struct {
	svc *session.Service
}

// NewInsightsTool creates an InsightsTool.
func NewInsightsTool(svc *session.Service) *InsightsTool {
	return &InsightsTool{svc: svc}
}

// Definition returns the MCP tool definition for journal_insights.
func (t *InsightsTool) Definition() mcp.Tool {
	return toolSchema("journal_insights",
		"Analyze a window of the journal: streaks and active days, entries per block, "+
			"dominant emotion and context, and recommendations for the dominant emotion.",
		filterParams(),
		[]mcp.ToolOption{
			mcp.WithString("as_of",
				mcp.Description("Day the streaks are measured at (YYYY-MM-DD). Default: today"),
			),
		},
		identityParams(),
	)
}

// Handle processes the journal_insights tool call.
func (t *InsightsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, err := filterArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	asOf, err := dateArg(req, "as_of", t.svc.Today())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s := openSession(t.svc, req)
	return mcp.NewToolResultText(FormatInsights(s.Insights(f, asOf)) + sessionNote(s)), nil
}
