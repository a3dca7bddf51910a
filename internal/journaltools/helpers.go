// Package journaltools provides MCP tool handlers for the journal.
//
// Each tool handler follows the same pattern:
// - A struct with dependencies (session.Service) injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Every tool identifies the journal with name, email and pin. When those
// are missing the tool works on a session-only journal, addressed by the
// session_id returned from the first call.
package journaltools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/azimut/internal/identity"
	"github.com/HendryAvila/azimut/internal/journal"
	"github.com/HendryAvila/azimut/internal/query"
	"github.com/HendryAvila/azimut/internal/session"
)

// identityParams are the schema options shared by every journal tool.
func identityParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("name",
			mcp.Description("User name. Together with email and pin it selects the saved journal."),
		),
		mcp.WithString("email",
			mcp.Description("User email (case-insensitive)"),
		),
		mcp.WithString("pin",
			mcp.Description("User PIN"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session-only journal id returned by an earlier call when no identity was given"),
		),
	}
}

// filterParams are the schema options of tools that read a window.
func filterParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("from",
			mcp.Description("First effective date to include (YYYY-MM-DD)"),
		),
		mcp.WithString("to",
			mcp.Description("Last effective date to include (YYYY-MM-DD)"),
		),
		mcp.WithArray("blocks",
			mcp.Description("Program blocks to include (1-9). Default: all"),
			mcp.Items(map[string]any{"type": "integer", "minimum": 1, "maximum": 9}),
		),
	}
}

func toolSchema(name, description string, groups ...[]mcp.ToolOption) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(description)}
	for _, g := range groups {
		opts = append(opts, g...)
	}
	return mcp.NewTool(name, opts...)
}

// openSession binds the request to a journal.
func openSession(svc *session.Service, req mcp.CallToolRequest) *session.Session {
	parts := []string{
		req.GetString("name", ""),
		req.GetString("email", ""),
		req.GetString("pin", ""),
	}
	if id := req.GetString("session_id", ""); id != "" && !identity.Resolve(parts...).Resolved() {
		return svc.Resume(id)
	}
	return svc.Open(parts...)
}

// sessionNote tells the caller how to come back to a session-only journal.
func sessionNote(s *session.Session) string {
	if s.Persistent() {
		return ""
	}
	return fmt.Sprintf("\n\nsession_id: %s (session only, not saved to disk; pass it back to keep using this journal)", s.ID())
}

// filterArg builds a query filter from the from/to/blocks arguments.
func filterArg(req mcp.CallToolRequest) (query.Filter, error) {
	var f query.Filter
	if s := req.GetString("from", ""); s != "" {
		d, err := journal.ParseDate(s)
		if err != nil {
			return f, fmt.Errorf("'from': %w", err)
		}
		f.Start = &d
	}
	if s := req.GetString("to", ""); s != "" {
		d, err := journal.ParseDate(s)
		if err != nil {
			return f, fmt.Errorf("'to': %w", err)
		}
		f.End = &d
	}

	raw, ok := req.GetArguments()["blocks"].([]any)
	if !ok {
		return f, nil
	}
	for _, v := range raw {
		n, ok := v.(float64)
		if !ok {
			return f, fmt.Errorf("'blocks' must be a list of numbers")
		}
		c := journal.Category(n)
		if err := journal.ValidateCategory(c); err != nil {
			return f, err
		}
		f.Categories = append(f.Categories, c)
	}
	return f, nil
}

// dateArg parses an optional date argument, defaulting to today.
func dateArg(req mcp.CallToolRequest, key string, today journal.Date) (journal.Date, error) {
	s := req.GetString(key, "")
	if s == "" {
		return today, nil
	}
	d, err := journal.ParseDate(s)
	if err != nil {
		return journal.Date{}, fmt.Errorf("'%s': %w", key, err)
	}
	return d, nil
}

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// hasArg reports whether the caller supplied key at all.
func hasArg(req mcp.CallToolRequest, key string) bool {
	_, ok := req.GetArguments()[key]
	return ok
}

// annotationsArg flattens an object argument into string annotations.
func annotationsArg(req mcp.CallToolRequest, key string) map[string]string {
	raw, ok := req.GetArguments()[key].(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, val := range raw {
		switch v := val.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = v
		default:
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}
