package tools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sc-tools/shortcut-mcp/internal/format"
	"github.com/sc-tools/shortcut-mcp/internal/query"
	"github.com/sc-tools/shortcut-mcp/internal/shortcut"
)

// SearchObjectivesTool handles the search-objectives MCP tool.
// Objectives are Shortcut milestones; the tools use the current name.
type SearchObjectivesTool struct {
	api API
}

// NewSearchObjectivesTool creates a SearchObjectivesTool.
func NewSearchObjectivesTool(api API) *SearchObjectivesTool {
	return &SearchObjectivesTool{api: api}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchObjectivesTool) Definition() mcp.Tool {
	return mcp.NewTool("search-objectives",
		mcp.WithDescription(
			"Search objectives with structured filters. String filters accept a leading "+
				"'!' to negate; boolean filters accept false to require the opposite; date "+
				"filters accept a date, a keyword, or a range with * for an unbounded side.",
		),
		mcp.WithNumber("id", mcp.Description("Objective ID")),
		mcp.WithString("title", mcp.Description("Match words in the objective title")),
		mcp.WithString("description", mcp.Description("Match words in the objective description")),
		mcp.WithString("state", mcp.Description("Objective state: to do, in progress, or done")),
		mcp.WithString("owner", mcp.Description("Owner's mention name, or \"me\"")),
		mcp.WithString("requester", mcp.Description("Requester's mention name, or \"me\"")),
		mcp.WithBoolean("archived", mcp.Description("Only archived objectives (false: only unarchived)")),
		mcp.WithBoolean("has_owner", mcp.Description("Only objectives with an owner")),
		mcp.WithString("created", mcp.Description("Creation date or range")),
		mcp.WithString("updated", mcp.Description("Last-update date or range")),
		mcp.WithString("completed", mcp.Description("Completion date or range")),
	)
}

// Handle processes the search-objectives tool call.
func (t *SearchObjectivesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := query.Params{}
	if id := int64Arg(req, "id", 0); id > 0 {
		p.Set("id", strconv.FormatInt(id, 10))
	}
	textFilter(p, req, "title", "title")
	textFilter(p, req, "description", "description")
	textFilter(p, req, "state", "state")
	textFilter(p, req, "owner", "owner")
	textFilter(p, req, "requester", "requester")
	flagFilter(p, req, "archived", "is:archived")
	flagFilter(p, req, "has_owner", "has:owner")
	textFilter(p, req, "created", "created")
	textFilter(p, req, "updated", "updated")
	textFilter(p, req, "completed", "completed")

	me, err := resolveMe(ctx, t.api, query.MilestoneFields, p)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	q, err := query.Compile(query.MilestoneFields, p, me)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	objectives, total, err := t.api.SearchMilestones(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("searching objectives: %v", err)), nil
	}
	if len(objectives) == 0 {
		return mcp.NewToolResultText("No objectives matched."), nil
	}

	return mcp.NewToolResultText(format.ObjectiveList(objectives, total)), nil
}

// GetObjectiveTool handles the get-objective MCP tool.
type GetObjectiveTool struct {
	api API
}

// NewGetObjectiveTool creates a GetObjectiveTool.
func NewGetObjectiveTool(api API) *GetObjectiveTool {
	return &GetObjectiveTool{api: api}
}

// Definition returns the MCP tool definition for registration.
func (t *GetObjectiveTool) Definition() mcp.Tool {
	return mcp.NewTool("get-objective",
		mcp.WithDescription("Get an objective by ID."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Objective ID"),
		),
	)
}

// Handle processes the get-objective tool call.
func (t *GetObjectiveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64Arg(req, "id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	objective, err := t.api.GetMilestone(ctx, id)
	if err != nil {
		if shortcut.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("objective %d not found", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("fetching objective %d: %v", id, err)), nil
	}

	return mcp.NewToolResultText(format.Objective(*objective)), nil
}
