// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it builds the API client and the
// hydration resolver and injects them into the tools that depend on
// them. No business logic lives here — only wiring.
package server

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/sc-tools/shortcut-mcp/internal/config"
	"github.com/sc-tools/shortcut-mcp/internal/hydrate"
	"github.com/sc-tools/shortcut-mcp/internal/shortcut"
	"github.com/sc-tools/shortcut-mcp/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with every tool registered. This is the
// single place where all dependencies are resolved.
func New(cfg *config.Config) *server.MCPServer {
	client := shortcut.NewClient(shortcut.Options{
		Token:      cfg.Token,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		SearchPage: cfg.PageSize,
	})

	// The resolver owns the reference caches (members, workflows,
	// teams). It is the only shared mutable state across tool calls.
	resolver := hydrate.NewResolver(client)

	s := server.NewMCPServer(
		"shortcut-mcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	// --- Stories ---

	searchStories := tools.NewSearchStoriesTool(client, resolver)
	s.AddTool(searchStories.Definition(), searchStories.Handle)

	getStory := tools.NewGetStoryTool(client, resolver)
	s.AddTool(getStory.Definition(), getStory.Handle)

	createStory := tools.NewCreateStoryTool(client, resolver)
	s.AddTool(createStory.Definition(), createStory.Handle)

	updateStory := tools.NewUpdateStoryTool(client, resolver)
	s.AddTool(updateStory.Definition(), updateStory.Handle)

	// --- Epics ---

	searchEpics := tools.NewSearchEpicsTool(client, resolver)
	s.AddTool(searchEpics.Definition(), searchEpics.Handle)

	getEpic := tools.NewGetEpicTool(client, resolver)
	s.AddTool(getEpic.Definition(), getEpic.Handle)

	// --- Iterations ---

	searchIterations := tools.NewSearchIterationsTool(client, resolver)
	s.AddTool(searchIterations.Definition(), searchIterations.Handle)

	getIteration := tools.NewGetIterationTool(client, resolver)
	s.AddTool(getIteration.Definition(), getIteration.Handle)

	// --- Objectives ---

	searchObjectives := tools.NewSearchObjectivesTool(client)
	s.AddTool(searchObjectives.Definition(), searchObjectives.Handle)

	getObjective := tools.NewGetObjectiveTool(client)
	s.AddTool(getObjective.Definition(), getObjective.Handle)

	// --- Reference data ---

	listTeams := tools.NewListTeamsTool(resolver)
	s.AddTool(listTeams.Definition(), listTeams.Handle)

	getTeam := tools.NewGetTeamTool(resolver)
	s.AddTool(getTeam.Definition(), getTeam.Handle)

	listWorkflows := tools.NewListWorkflowsTool(resolver)
	s.AddTool(listWorkflows.Definition(), listWorkflows.Handle)

	getWorkflow := tools.NewGetWorkflowTool(resolver)
	s.AddTool(getWorkflow.Definition(), getWorkflow.Handle)

	currentUser := tools.NewCurrentUserTool(client)
	s.AddTool(currentUser.Definition(), currentUser.Handle)

	return s
}

const instructions = `This server exposes a Shortcut workspace: stories, epics, iterations,
objectives, teams, and workflows.

Start with search-stories for most questions — its filters map directly to
Shortcut's search grammar and can be combined freely. Use "me" as the owner
or requester value to scope to the current user. Use get-story / get-epic
for full detail on a single entity; results include resolved names for
owners, states, teams, and parents, so a follow-up lookup is rarely needed.

list-workflows tells you which workflow_state_id values are valid when
creating or moving stories.`
