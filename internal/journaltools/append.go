package journaltools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/azimut/internal/journal"
	"github.com/HendryAvila/azimut/internal/session"
)

// AppendTool handles the journal_append MCP tool.
type AppendTool struct {
	svc *session.Service
}

// NewAppendTool creates an AppendTool.
func NewAppendTool(svc *session.Service) *AppendTool {
	return &AppendTool{svc: svc}
}

// Definition returns the MCP tool definition for journal_append.
func (t *AppendTool) Definition() mcp.Tool {
	return toolSchema("journal_append",
		"Record one answer in the journal. Use block 9 for the final reflection. "+
			"Put situational details such as the context of an emotion in annotations "+
			"(e.g. {\"contexto\": \"trabajo\"}).",
		[]mcp.ToolOption{
			mcp.WithNumber("block",
				mcp.Required(),
				mcp.Description("Program block 1-9"),
			),
			mcp.WithString("value",
				mcp.Required(),
				mcp.Description("The answer itself (an emotion, a time, a sensation, free text)"),
			),
			mcp.WithString("label",
				mcp.Description("Short prompt or concept the answer belongs to"),
			),
			mcp.WithString("date",
				mcp.Description("Date the answer refers to (YYYY-MM-DD). Default: today"),
			),
			mcp.WithObject("annotations",
				mcp.Description("Extra key/value details"),
			),
		},
		identityParams(),
	)
}

// Handle processes the journal_append tool call.
func (t *AppendTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	block := intArg(req, "block", 0)
	value := req.GetString("value", "")
	if value == "" {
		return mcp.NewToolResultError("'value' is required"), nil
	}
	date := req.GetString("date", "")
	if date != "" {
		if _, err := journal.ParseDate(date); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("'date': %v", err)), nil
		}
	}

	s := openSession(t.svc, req)
	e, err := s.Record(journal.Category(block), date, req.GetString("label", ""), value, annotationsArg(req, "annotations"))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to record entry: %v", err)), nil
	}

	response := fmt.Sprintf("Recorded in Bloque %d (%s) for %s.", int(e.Category), e.Category.Name(), e.Effective())
	return mcp.NewToolResultText(response + sessionNote(s)), nil
}
