package journaltools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/azimut/internal/metrics"
)

// StatsTool handles the journal_stats MCP tool.
type StatsTool struct {
	metrics *metrics.Metrics
}

// NewStatsTool creates a StatsTool.
func NewStatsTool(m *metrics.Metrics) *StatsTool {
	return &StatsTool{metrics: m}
}

// Definition returns the MCP tool definition for journal_stats.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("journal_stats",
		mcp.WithDescription("Show storage counters for this server process: loads, corrupt loads, saves and failed saves."),
	)
}

// Handle processes the journal_stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	samples, err := t.metrics.Snapshot()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to gather metrics: %v", err)), nil
	}
	return mcp.NewToolResultText(FormatStats(samples)), nil
}

// FormatStats renders metric samples one per line.
func FormatStats(samples []metrics.Sample) string {
	if len(samples) == 0 {
		return "No storage activity yet."
	}
	var b strings.Builder
	for _, s := range samples {
		fmt.Fprintf(&b, "%s{backend=%q} %g\n", s.Name, s.Backend, s.Value)
	}
	return strings.TrimRight(b.String(), "\n")
}
