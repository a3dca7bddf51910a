// Package server wires all components and creates the MCP server instance.
//
// This is the composition root: it creates the concrete stores and
// injects them into the session service and into the tools, prompts and
// resources that depend on it. No business logic lives here, only wiring.
package server

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/HendryAvila/azimut/internal/config"
	"github.com/HendryAvila/azimut/internal/journaltools"
	"github.com/HendryAvila/azimut/internal/logging"
	"github.com/HendryAvila/azimut/internal/metrics"
	"github.com/HendryAvila/azimut/internal/prompts"
	"github.com/HendryAvila/azimut/internal/recommend"
	"github.com/HendryAvila/azimut/internal/resources"
	"github.com/HendryAvila/azimut/internal/session"
	"github.com/HendryAvila/azimut/internal/store"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewService builds the session service described by cfg. It is shared
// by the MCP server and the command line.
func NewService(cfg config.Config, log logrus.FieldLogger, m *metrics.Metrics) (*session.Service, error) {
	log = logging.OrDiscard(log)

	durable, err := store.Open(cfg.Backend, cfg.StorageRoot, store.WithLogger(log), store.WithMetrics(m))
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Backend, err)
	}
	log.WithFields(logrus.Fields{
		"backend": cfg.Backend,
		"root":    cfg.StorageRoot,
	}).Debug("journal store ready")

	return session.NewService(
		durable,
		store.NewMemoryStore(cfg.SessionTTL),
		session.WithLogger(log),
		session.WithProfiles(store.NewProfileStore(cfg.StorageRoot, store.WithLogger(log))),
		session.WithMaxRecommendations(cfg.MaxRecommendations),
	), nil
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered.
func New(svc *session.Service, m *metrics.Metrics) *server.MCPServer {
	s := server.NewMCPServer(
		"azimut",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register journal tools ---

	appendTool := journaltools.NewAppendTool(svc)
	s.AddTool(appendTool.Definition(), appendTool.Handle)

	queryTool := journaltools.NewQueryTool(svc)
	s.AddTool(queryTool.Definition(), queryTool.Handle)

	insightsTool := journaltools.NewInsightsTool(svc)
	s.AddTool(insightsTool.Definition(), insightsTool.Handle)

	exportTool := journaltools.NewExportTool(svc)
	s.AddTool(exportTool.Definition(), exportTool.Handle)

	profileTool := journaltools.NewProfileTool(svc)
	s.AddTool(profileTool.Definition(), profileTool.Handle)

	clearTool := journaltools.NewClearTool(svc)
	s.AddTool(clearTool.Definition(), clearTool.Handle)

	statsTool := journaltools.NewStatsTool(m)
	s.AddTool(statsTool.Definition(), statsTool.Handle)

	// --- Register prompts ---

	checkinPrompt := prompts.NewCheckinPrompt()
	s.AddPrompt(checkinPrompt.Definition(), checkinPrompt.Handle)

	reviewPrompt := prompts.NewReviewPrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(recommend.Rules)
	s.AddResource(resourceHandler.BlocksResource(), resourceHandler.HandleBlocks)
	s.AddResource(resourceHandler.RulesResource(), resourceHandler.HandleRules)

	return s
}

func serverInstructions() string {
	return `You have access to Azimut, a personal journal for a nine-block self-observation program.

## IDENTITY

Every journal tool takes name, email and pin. The same three values always
open the same journal. Ask the user for them once and reuse them.

Without them the tools still work, but on a session-only journal that is
never saved to disk. The first response then includes a session_id: pass
it back on later calls to keep using that journal.

## RECORDING

- journal_append saves one answer. Use the block number (1-9) the answer
  belongs to. Block 9 is the final reflection and takes no date.
- Put the situation an emotion appeared in under annotations.contexto so
  insights can find the recurring context.
- Dates default to today. Pass date when the user is catching up on a
  past day.

## READING

- journal_query shows the history grouped by block and date.
- journal_insights reports streaks, active days, the dominant emotion and
  context, and up to four recommendations.
- journal_export writes an xlsx or csv file.
- journal_profile stores goals (start date, days per week, entries per
  day). Goals only add context; they never hide data.

## SAFETY

journal_clear deletes the whole journal. Only call it after the user
explicitly confirms.`
}
