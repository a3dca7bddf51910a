package journaltools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/azimut/internal/journal"
	"github.com/HendryAvila/azimut/internal/session"
	"github.com/HendryAvila/azimut/internal/store"
)

// ProfileTool handles the journal_profile MCP tool.
type ProfileTool struct {
	svc *session.Service
}

// NewProfileTool creates a ProfileTool.
func NewProfileTool(svc *session.Service) *ProfileTool {
	return &ProfileTool{svc: svc}
}

// Definition returns the MCP tool definition for journal_profile.
func (t *ProfileTool) Definition() mcp.Tool {
	return toolSchema("journal_profile",
		"Show or update the goal profile used to put adherence in context. "+
			"Call without goal arguments to show the saved profile. Requires name, email and pin.",
		[]mcp.ToolOption{
			mcp.WithString("start",
				mcp.Description("Program start date (YYYY-MM-DD). Streaks never start before the first entry"),
			),
			mcp.WithNumber("days_per_week",
				mcp.Description("Target active days per week (0-7)"),
			),
			mcp.WithNumber("entries_per_day",
				mcp.Description("Target entries per active day"),
			),
		},
		identityParams(),
	)
}

// Handle processes the journal_profile tool call.
func (t *ProfileTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s := openSession(t.svc, req)
	current := s.Profile()

	if !hasArg(req, "start") && !hasArg(req, "days_per_week") && !hasArg(req, "entries_per_day") {
		return mcp.NewToolResultText(FormatProfile(current)), nil
	}

	var p journal.Profile
	if current != nil {
		p = *current
	}
	if start := req.GetString("start", ""); start != "" {
		p.StartDate = &start
	}
	p.TargetDaysPerWeek = intArg(req, "days_per_week", p.TargetDaysPerWeek)
	p.TargetEntriesPerDay = intArg(req, "entries_per_day", p.TargetEntriesPerDay)

	if err := s.SaveProfile(p); err != nil {
		if errors.Is(err, store.ErrUnresolved) {
			return mcp.NewToolResultError("a profile needs name, email and pin"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to save profile: %v", err)), nil
	}
	return mcp.NewToolResultText("Profile saved.\n\n" + FormatProfile(&p)), nil
}
