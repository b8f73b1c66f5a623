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

// SearchIterationsTool handles the search-iterations MCP tool.
type SearchIterationsTool struct {
	api      API
	resolver *hydrate.Resolver
}

// NewSearchIterationsTool creates a SearchIterationsTool.
func NewSearchIterationsTool(api API, resolver *hydrate.Resolver) *SearchIterationsTool {
	return &SearchIterationsTool{api: api, resolver: resolver}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchIterationsTool) Definition() mcp.Tool {
	return mcp.NewTool("search-iterations",
		mcp.WithDescription(
			"Search iterations with structured filters. String filters accept a leading "+
				"'!' to negate; date filters accept a date, a keyword, or a range with * "+
				"for an unbounded side.",
		),
		mcp.WithNumber("id", mcp.Description("Iteration ID")),
		mcp.WithString("title", mcp.Description("Match words in the iteration name")),
		mcp.WithString("description", mcp.Description("Match words in the iteration description")),
		mcp.WithString("state", mcp.Description("Iteration state: unstarted, started, or done")),
		mcp.WithString("team", mcp.Description("Team name")),
		mcp.WithString("created", mcp.Description("Creation date or range")),
		mcp.WithString("updated", mcp.Description("Last-update date or range")),
		mcp.WithString("start_date", mcp.Description("Start date or range")),
		mcp.WithString("end_date", mcp.Description("End date or range")),
	)
}

// Handle processes the search-iterations tool call.
func (t *SearchIterationsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := query.Params{}
	if id := int64Arg(req, "id", 0); id > 0 {
		p.Set("id", strconv.FormatInt(id, 10))
	}
	textFilter(p, req, "title", "title")
	textFilter(p, req, "description", "description")
	textFilter(p, req, "state", "state")
	textFilter(p, req, "team", "team")
	textFilter(p, req, "created", "created")
	textFilter(p, req, "updated", "updated")
	textFilter(p, req, "start_date", "start_date")
	textFilter(p, req, "end_date", "end_date")

	q, err := query.Compile(query.IterationFields, p, "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	iterations, total, err := t.api.SearchIterations(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("searching iterations: %v", err)), nil
	}
	if len(iterations) == 0 {
		return mcp.NewToolResultText("No iterations matched."), nil
	}

	refs := t.resolver.Iterations(ctx, iterations)
	views := make([]hydrate.IterationView, 0, len(iterations))
	for _, it := range iterations {
		views = append(views, refs.IterationView(it))
	}

	return mcp.NewToolResultText(format.IterationList(views, total)), nil
}

// GetIterationTool handles the get-iteration MCP tool.
type GetIterationTool struct {
	api      API
	resolver *hydrate.Resolver
}

// NewGetIterationTool creates a GetIterationTool.
func NewGetIterationTool(api API, resolver *hydrate.Resolver) *GetIterationTool {
	return &GetIterationTool{api: api, resolver: resolver}
}

// Definition returns the MCP tool definition for registration.
func (t *GetIterationTool) Definition() mcp.Tool {
	return mcp.NewTool("get-iteration",
		mcp.WithDescription("Get an iteration by ID, with its teams resolved to names."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Iteration ID"),
		),
	)
}

// Handle processes the get-iteration tool call.
func (t *GetIterationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64Arg(req, "id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	iteration, err := t.api.GetIteration(ctx, id)
	if err != nil {
		if shortcut.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("iteration %d not found", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("fetching iteration %d: %v", id, err)), nil
	}

	refs := t.resolver.Iterations(ctx, []shortcut.Iteration{*iteration})
	return mcp.NewToolResultText(format.Iteration(refs.IterationView(*iteration))), nil
}
