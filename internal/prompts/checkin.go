// Package prompts implements MCP prompt handlers for the journal.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/azimut/internal/journal"
)

// CheckinPrompt handles the azimut-checkin MCP prompt.
// It guides the AI through recording today's answers for one block.
type CheckinPrompt struct{}

// NewCheckinPrompt creates a CheckinPrompt.
func NewCheckinPrompt() *CheckinPrompt {
	return &CheckinPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *CheckinPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("azimut-checkin",
		mcp.WithPromptDescription(
			"Record today's answers for one Azimut block. "+
				"The assistant asks the block's questions and saves each answer.",
		),
		mcp.WithArgument("block",
			mcp.ArgumentDescription("Program block 1-9. Default: 3 (Marcadores Somáticos)"),
		),
	)
}

// Handle processes the azimut-checkin prompt request.
func (p *CheckinPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	block := journal.Category(3)
	if args := req.Params.Arguments; args != nil {
		if raw, ok := args["block"]; ok && raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("block %q: %w", raw, err)
			}
			block = journal.Category(n)
		}
	}
	if err := journal.ValidateCategory(block); err != nil {
		return nil, err
	}

	closing := ""
	if block.IsClosing() {
		closing = "This is the final reflection: ask one open question about what changed and save the whole answer as a single entry with no date.\n\n"
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Check-in: Bloque %d (%s)", int(block), block.Name()),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to do my Azimut check-in for Bloque %d: %s.\n\n"+
						"%s"+
						"Please:\n"+
						"1. Ask me for my name, email and PIN if you don't have them yet\n"+
						"2. Ask me the questions of this block one at a time\n"+
						"3. Save each answer with `journal_append` (block=%d). Put the situation in annotations as 'contexto'\n"+
						"4. When we finish, run `journal_query` for this block and show me today's entries",
					int(block), block.Name(), closing, int(block),
				)),
			},
		},
	}, nil
}
