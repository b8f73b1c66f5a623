// Package tools implements the MCP tool handlers.
//
// Each tool is a struct that receives its dependencies (the API client
// and the hydration resolver) via its constructor and exposes
// Definition() for registration plus Handle() for dispatch, matching
// mcp-go's CallToolRequest signature.
//
// Error policy: argument and query-validation problems, and failures
// of the primary search/get/write call, return a tool error result
// with the message verbatim. Failures while hydrating related entities
// never fail a call — they surface as unknown/not-found markers inside
// an otherwise successful result.
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sc-tools/shortcut-mcp/internal/query"
	"github.com/sc-tools/shortcut-mcp/internal/shortcut"
)

// API is the slice of the Shortcut client the tools call directly.
// *shortcut.Client satisfies it; tests use a fake.
type API interface {
	CurrentMember(ctx context.Context) (*shortcut.MemberInfo, error)
	GetStory(ctx context.Context, id int64) (*shortcut.Story, error)
	GetEpic(ctx context.Context, id int64) (*shortcut.Epic, error)
	GetIteration(ctx context.Context, id int64) (*shortcut.Iteration, error)
	GetMilestone(ctx context.Context, id int64) (*shortcut.Milestone, error)
	SearchStories(ctx context.Context, query string) ([]shortcut.Story, int, error)
	SearchEpics(ctx context.Context, query string) ([]shortcut.Epic, int, error)
	SearchIterations(ctx context.Context, query string) ([]shortcut.Iteration, int, error)
	SearchMilestones(ctx context.Context, query string) ([]shortcut.Milestone, int, error)
	CreateStory(ctx context.Context, params shortcut.CreateStoryParams) (*shortcut.Story, error)
	UpdateStory(ctx context.Context, id int64, params shortcut.UpdateStoryParams) (*shortcut.Story, error)
}

// int64Arg extracts an integer argument, returning defaultVal if the
// key is missing or not a number (JSON numbers arrive as float64).
func int64Arg(req mcp.CallToolRequest, key string, defaultVal int64) int64 {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int64(v)
}

// strArgPtr returns a pointer to a trimmed string argument, or nil if
// the argument is absent or blank.
func strArgPtr(req mcp.CallToolRequest, key string) *string {
	v, ok := req.GetArguments()[key].(string)
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// int64ArgPtr returns a pointer to an integer argument, or nil if the
// argument is absent.
func int64ArgPtr(req mcp.CallToolRequest, key string) *int64 {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return nil
	}
	n := int64(v)
	return &n
}

// boolArgPtr returns a pointer to a boolean argument, or nil if the
// argument is absent.
func boolArgPtr(req mcp.CallToolRequest, key string) *bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return nil
	}
	return &v
}

// textFilter copies a string argument into the filter params under the
// given field name. A leading "!" negates the clause.
func textFilter(p query.Params, req mcp.CallToolRequest, arg, field string) {
	if v := req.GetString(arg, ""); v != "" {
		p.Set(field, v)
	}
}

// flagFilter copies a boolean argument into the filter params: true
// asserts the flag, false negates it, absent emits nothing.
func flagFilter(p query.Params, req mcp.CallToolRequest, arg, field string) {
	if v := boolArgPtr(req, arg); v != nil {
		p.SetFlag(field, *v)
	}
}

// resolveMe returns the current user's mention name when any owner/
// requester filter uses the "me" sentinel. The lookup happens here,
// before compilation, so the compiler stays free of network calls.
func resolveMe(ctx context.Context, api API, fields []query.Field, p query.Params) (string, error) {
	if !query.UsesMe(fields, p) {
		return "", nil
	}
	info, err := api.CurrentMember(ctx)
	if err != nil {
		return "", fmt.Errorf("resolving current user for \"me\" filter: %w", err)
	}
	return info.MentionName, nil
}
