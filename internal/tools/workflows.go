package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sc-tools/shortcut-mcp/internal/format"
	"github.com/sc-tools/shortcut-mcp/internal/hydrate"
)

// ListWorkflowsTool handles the list-workflows MCP tool. Workflows are
// served from the resolver's snapshot cache.
type ListWorkflowsTool struct {
	resolver *hydrate.Resolver
}

// NewListWorkflowsTool creates a ListWorkflowsTool.
func NewListWorkflowsTool(resolver *hydrate.Resolver) *ListWorkflowsTool {
	return &ListWorkflowsTool{resolver: resolver}
}

// Definition returns the MCP tool definition for registration.
func (t *ListWorkflowsTool) Definition() mcp.Tool {
	return mcp.NewTool("list-workflows",
		mcp.WithDescription("List every workflow in the workspace."),
	)
}

// Handle processes the list-workflows tool call.
func (t *ListWorkflowsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workflows, err := t.resolver.Workflows(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing workflows: %v", err)), nil
	}
	return mcp.NewToolResultText(format.WorkflowList(workflows)), nil
}

// GetWorkflowTool handles the get-workflow MCP tool.
type GetWorkflowTool struct {
	resolver *hydrate.Resolver
}

// NewGetWorkflowTool creates a GetWorkflowTool.
func NewGetWorkflowTool(resolver *hydrate.Resolver) *GetWorkflowTool {
	return &GetWorkflowTool{resolver: resolver}
}

// Definition returns the MCP tool definition for registration.
func (t *GetWorkflowTool) Definition() mcp.Tool {
	return mcp.NewTool("get-workflow",
		mcp.WithDescription("Get a workflow by ID, including its states and which one is the default for new stories."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Workflow ID"),
		),
	)
}

// Handle processes the get-workflow tool call.
func (t *GetWorkflowTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64Arg(req, "id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	workflow, ok, err := t.resolver.Workflow(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching workflow %d: %v", id, err)), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("workflow %d not found", id)), nil
	}

	return mcp.NewToolResultText(format.Workflow(workflow)), nil
}
