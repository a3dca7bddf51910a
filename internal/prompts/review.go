package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewPrompt handles the azimut-review MCP prompt.
// It instructs the AI to read the journal insights and present them.
type ReviewPrompt struct{}

// NewReviewPrompt creates a ReviewPrompt.
func NewReviewPrompt() *ReviewPrompt {
	return &ReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("azimut-review",
		mcp.WithPromptDescription(
			"Review your journal: streaks, active days, dominant emotion "+
				"and context, and what to practice next.",
		),
		mcp.WithArgument("from",
			mcp.ArgumentDescription("First date of the window (YYYY-MM-DD). Default: everything"),
		),
	)
}

// Handle processes the azimut-review prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	window := "my whole journal"
	call := "`journal_insights`"
	if from := req.Params.Arguments["from"]; from != "" {
		window = "my journal since " + from
		call = "`journal_insights` with from='" + from + "'"
	}

	return &mcp.GetPromptResult{
		Description: "Azimut Journal Review",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please review " + window + ". Run " + call + ".\n\n" +
						"Then:\n" +
						"1. Tell me my current and best streak and how many days I was active\n" +
						"2. Name my dominant emotion and the context it shows up in\n" +
						"3. Walk me through the recommendations, one concrete step each\n" +
						"4. If there is no data yet, suggest which block to start with",
				),
			},
		},
	}, nil
}
