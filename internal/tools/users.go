package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sc-tools/shortcut-mcp/internal/format"
)

// CurrentUserTool handles the get-current-user MCP tool.
type CurrentUserTool struct {
	api API
}

// NewCurrentUserTool creates a CurrentUserTool.
func NewCurrentUserTool(api API) *CurrentUserTool {
	return &CurrentUserTool{api: api}
}

// Definition returns the MCP tool definition for registration.
func (t *CurrentUserTool) Definition() mcp.Tool {
	return mcp.NewTool("get-current-user",
		mcp.WithDescription("Get the member that owns the configured API token. Its mention name is what \"me\" filters resolve to."),
	)
}

// Handle processes the get-current-user tool call.
func (t *CurrentUserTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := t.api.CurrentMember(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching current user: %v", err)), nil
	}
	return mcp.NewToolResultText(format.CurrentUser(info)), nil
}
