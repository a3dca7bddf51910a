package journaltools

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/azimut/internal/export"
	"github.com/HendryAvila/azimut/internal/session"
)

// ExportTool handles the journal_export MCP tool.
type ExportTool struct {
	svc *session.Service
}

// NewExportTool creates an ExportTool.
func NewExportTool(svc *session.Service) *ExportTool {
	return &ExportTool{svc: svc}
}

// Definition returns the MCP tool definition for journal_export.
func (t *ExportTool) Definition() mcp.Tool {
	return toolSchema("journal_export",
		"Export a window of the journal as a spreadsheet (xlsx) or CSV. "+
			"CSV without 'out' is returned inline.",
		[]mcp.ToolOption{
			mcp.WithString("format",
				mcp.Description("xlsx or csv (default: xlsx)"),
				mcp.Enum(export.FormatXLSX, export.FormatCSV),
			),
			mcp.WithString("out",
				mcp.Description("File path to write. Required for xlsx"),
			),
		},
		filterParams(),
		identityParams(),
	)
}

// Handle processes the journal_export tool call.
func (t *ExportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := req.GetString("format", export.FormatXLSX)
	out := req.GetString("out", "")
	if format == export.FormatXLSX && out == "" {
		return mcp.NewToolResultError("'out' is required for xlsx exports"), nil
	}

	f, err := filterArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s := openSession(t.svc, req)
	table := s.Export(f)

	var buf bytes.Buffer
	if err := export.Write(&buf, format, table); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to export: %v", err)), nil
	}

	if out == "" {
		return mcp.NewToolResultText(buf.String() + sessionNote(s)), nil
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create directory: %v", err)), nil
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o600); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to write export: %v", err)), nil
	}

	response := fmt.Sprintf("Exported %d entries to %s (%s).", len(table.Rows), out, format)
	return mcp.NewToolResultText(response + sessionNote(s)), nil
}
