// Package resources implements MCP resource handlers for the journal.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (azimut://...) following MCP conventions.
package resources

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/azimut/internal/journal"
	"github.com/HendryAvila/azimut/internal/recommend"
)

// URIs of the published resources.
const (
	BlocksURI = "azimut://blocks"
	RulesURI  = "azimut://recommendations/rules"
)

// Block describes one program block.
type Block struct {
	Number  int    `json:"number"`
	Name    string `json:"name"`
	Closing bool   `json:"closing"`
}

// Handler manages journal resource endpoints.
type Handler struct {
	rules []recommend.Rule
}

// NewHandler creates a resource Handler serving the given rule table.
func NewHandler(rules []recommend.Rule) *Handler {
	return &Handler{rules: rules}
}

// BlocksResource returns the MCP resource definition for the block list.
func (h *Handler) BlocksResource() mcp.Resource {
	return mcp.NewResource(
		BlocksURI,
		"Azimut Program Blocks",
		mcp.WithResourceDescription("The nine program blocks entries are recorded under"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleBlocks returns the block list as JSON.
func (h *Handler) HandleBlocks(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	blocks := make([]Block, 0, journal.MaxCategory)
	for _, c := range journal.Categories() {
		blocks = append(blocks, Block{Number: int(c), Name: c.Name(), Closing: c.IsClosing()})
	}
	return jsonResource(req.Params.URI, blocks)
}

// RulesResource returns the MCP resource definition for the
// recommendation rule table.
func (h *Handler) RulesResource() mcp.Resource {
	return mcp.NewResource(
		RulesURI,
		"Azimut Recommendation Rules",
		mcp.WithResourceDescription("Ordered keyword rules mapping a dominant emotion to advice; the first match wins"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleRules returns the rule table as JSON.
func (h *Handler) HandleRules(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, h.rules)
}
