package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sc-tools/shortcut-mcp/internal/format"
	"github.com/sc-tools/shortcut-mcp/internal/hydrate"
)

// ListTeamsTool handles the list-teams MCP tool. Teams are served from
// the resolver's snapshot cache; a stale cache is refilled first.
type ListTeamsTool struct {
	resolver *hydrate.Resolver
}

// NewListTeamsTool creates a ListTeamsTool.
func NewListTeamsTool(resolver *hydrate.Resolver) *ListTeamsTool {
	return &ListTeamsTool{resolver: resolver}
}

// Definition returns the MCP tool definition for registration.
func (t *ListTeamsTool) Definition() mcp.Tool {
	return mcp.NewTool("list-teams",
		mcp.WithDescription("List every team in the workspace with its mention name and member count."),
	)
}

// Handle processes the list-teams tool call.
func (t *ListTeamsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	teams, err := t.resolver.Teams(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing teams: %v", err)), nil
	}
	return mcp.NewToolResultText(format.TeamList(teams)), nil
}

// GetTeamTool handles the get-team MCP tool.
type GetTeamTool struct {
	resolver *hydrate.Resolver
}

// NewGetTeamTool creates a GetTeamTool.
func NewGetTeamTool(resolver *hydrate.Resolver) *GetTeamTool {
	return &GetTeamTool{resolver: resolver}
}

// Definition returns the MCP tool definition for registration.
func (t *GetTeamTool) Definition() mcp.Tool {
	return mcp.NewTool("get-team",
		mcp.WithDescription("Get a team by its UUID."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Team (group) UUID"),
		),
	)
}

// Handle processes the get-team tool call.
func (t *GetTeamTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	team, ok, err := t.resolver.Team(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching team %s: %v", id, err)), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("team %s not found", id)), nil
	}

	return mcp.NewToolResultText(format.Team(team)), nil
}
