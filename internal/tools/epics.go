package tools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sc-tools/shortcut-mcp/internal/format"
	"github.com/sc-tools/shortcut-mcp/internal/hydrate"
	"github.com/sc-tools/shortcut-mcp/internal/query"
	"github.com/sc-tools/shortcut-mcp/internal/shortcut"
)

// SearchEpicsTool handles the search-epics MCP tool.
type SearchEpicsTool struct {
	api      API
	resolver *hydrate.Resolver
}

// NewSearchEpicsTool creates a SearchEpicsTool.
func NewSearchEpicsTool(api API, resolver *hydrate.Resolver) *SearchEpicsTool {
	return &SearchEpicsTool{api: api, resolver: resolver}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchEpicsTool) Definition() mcp.Tool {
	return mcp.NewTool("search-epics",
		mcp.WithDescription(
			"Search epics with structured filters. String filters accept a leading '!' to "+
				"negate; boolean filters accept false to require the opposite; date filters "+
				"accept a date, a keyword (today/yesterday/tomorrow), or a range with * for "+
				"an unbounded side.",
		),
		mcp.WithNumber("id", mcp.Description("Epic ID")),
		mcp.WithString("title", mcp.Description("Match words in the epic title")),
		mcp.WithString("description", mcp.Description("Match words in the epic description")),
		mcp.WithString("state", mcp.Description("Epic state: to do, in progress, or done")),
		mcp.WithString("label", mcp.Description("Label name")),
		mcp.WithString("team", mcp.Description("Team name")),
		mcp.WithString("objective", mcp.Description("Objective name")),
		mcp.WithString("owner", mcp.Description("Owner's mention name, or \"me\"")),
		mcp.WithString("requester", mcp.Description("Requester's mention name, or \"me\"")),
		mcp.WithBoolean("archived", mcp.Description("Only archived epics (false: only unarchived)")),
		mcp.WithBoolean("overdue", mcp.Description("Only overdue epics")),
		mcp.WithBoolean("has_attachment", mcp.Description("Only epics with attachments")),
		mcp.WithBoolean("has_comment", mcp.Description("Only epics with comments")),
		mcp.WithBoolean("has_deadline", mcp.Description("Only epics with a deadline")),
		mcp.WithBoolean("has_label", mcp.Description("Only epics with a label")),
		mcp.WithBoolean("has_owner", mcp.Description("Only epics with an owner")),
		mcp.WithString("created", mcp.Description("Creation date or range")),
		mcp.WithString("updated", mcp.Description("Last-update date or range")),
		mcp.WithString("completed", mcp.Description("Completion date or range")),
		mcp.WithString("due", mcp.Description("Due date or range")),
	)
}

// Handle processes the search-epics tool call.
func (t *SearchEpicsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := query.Params{}
	if id := int64Arg(req, "id", 0); id > 0 {
		p.Set("id", strconv.FormatInt(id, 10))
	}
	textFilter(p, req, "title", "title")
	textFilter(p, req, "description", "description")
	textFilter(p, req, "state", "state")
	textFilter(p, req, "label", "label")
	textFilter(p, req, "team", "team")
	textFilter(p, req, "objective", "objective")
	textFilter(p, req, "owner", "owner")
	textFilter(p, req, "requester", "requester")
	flagFilter(p, req, "archived", "is:archived")
	flagFilter(p, req, "overdue", "is:overdue")
	flagFilter(p, req, "has_attachment", "has:attachment")
	flagFilter(p, req, "has_comment", "has:comment")
	flagFilter(p, req, "has_deadline", "has:deadline")
	flagFilter(p, req, "has_label", "has:label")
	flagFilter(p, req, "has_owner", "has:owner")
	textFilter(p, req, "created", "created")
	textFilter(p, req, "updated", "updated")
	textFilter(p, req, "completed", "completed")
	textFilter(p, req, "due", "due")

	me, err := resolveMe(ctx, t.api, query.EpicFields, p)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	q, err := query.Compile(query.EpicFields, p, me)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	epics, total, err := t.api.SearchEpics(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("searching epics: %v", err)), nil
	}
	if len(epics) == 0 {
		return mcp.NewToolResultText("No epics matched."), nil
	}

	refs := t.resolver.Epics(ctx, epics)
	summaries := make([]hydrate.EpicSummary, 0, len(epics))
	for _, e := range epics {
		summaries = append(summaries, refs.EpicSummary(e))
	}

	return mcp.NewToolResultText(format.EpicList(summaries, total)), nil
}

// GetEpicTool handles the get-epic MCP tool.
type GetEpicTool struct {
	api      API
	resolver *hydrate.Resolver
}

// NewGetEpicTool creates a GetEpicTool.
func NewGetEpicTool(api API, resolver *hydrate.Resolver) *GetEpicTool {
	return &GetEpicTool{api: api, resolver: resolver}
}

// Definition returns the MCP tool definition for registration.
func (t *GetEpicTool) Definition() mcp.Tool {
	return mcp.NewTool("get-epic",
		mcp.WithDescription("Get an epic by ID, with its owners, team, and objective resolved to names."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Epic ID"),
		),
	)
}

// Handle processes the get-epic tool call.
func (t *GetEpicTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64Arg(req, "id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	epic, err := t.api.GetEpic(ctx, id)
	if err != nil {
		if shortcut.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("epic %d not found", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("fetching epic %d: %v", id, err)), nil
	}

	refs := t.resolver.Epic(ctx, *epic)
	return mcp.NewToolResultText(format.Epic(refs.EpicDetail(*epic))), nil
}
