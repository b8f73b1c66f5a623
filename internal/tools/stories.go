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

// SearchStoriesTool handles the search-stories MCP tool.
type SearchStoriesTool struct {
	api      API
	resolver *hydrate.Resolver
}

// NewSearchStoriesTool creates a SearchStoriesTool.
func NewSearchStoriesTool(api API, resolver *hydrate.Resolver) *SearchStoriesTool {
	return &SearchStoriesTool{api: api, resolver: resolver}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchStoriesTool) Definition() mcp.Tool {
	return mcp.NewTool("search-stories",
		mcp.WithDescription(
			"Search stories with structured filters. All filters are optional and combined "+
				"with AND. String filters accept a leading '!' to negate them "+
				"(e.g. state '!Done'). Boolean filters accept false to require the opposite "+
				"(e.g. archived=false finds unarchived stories). Date filters accept a date "+
				"(YYYY-MM-DD), a keyword (today, yesterday, tomorrow), or a range like "+
				"2023-01-01..2023-06-30, *..2023-06-30, or 2023-01-01..* — keywords and "+
				"literal dates cannot be mixed in one range.",
		),
		mcp.WithNumber("id", mcp.Description("Story ID")),
		mcp.WithString("title", mcp.Description("Match words in the story title")),
		mcp.WithString("description", mcp.Description("Match words in the story description")),
		mcp.WithString("comment", mcp.Description("Match words in story comments")),
		mcp.WithString("type", mcp.Description("Story type: feature, bug, or chore")),
		mcp.WithString("state", mcp.Description("Workflow state name, e.g. \"In Review\"")),
		mcp.WithString("label", mcp.Description("Label name")),
		mcp.WithString("epic", mcp.Description("Epic name")),
		mcp.WithString("iteration", mcp.Description("Iteration name")),
		mcp.WithString("project", mcp.Description("Project name")),
		mcp.WithString("team", mcp.Description("Team name")),
		mcp.WithString("skill_set", mcp.Description("Skill set name")),
		mcp.WithString("owner", mcp.Description("Owner's mention name, or \"me\" for the current user")),
		mcp.WithString("requester", mcp.Description("Requester's mention name, or \"me\" for the current user")),
		mcp.WithNumber("estimate", mcp.Description("Point estimate")),
		mcp.WithBoolean("archived", mcp.Description("Only archived stories (false: only unarchived)")),
		mcp.WithBoolean("blocked", mcp.Description("Only blocked stories")),
		mcp.WithBoolean("blocker", mcp.Description("Only stories blocking others")),
		mcp.WithBoolean("done", mcp.Description("Only completed stories")),
		mcp.WithBoolean("started", mcp.Description("Only started stories")),
		mcp.WithBoolean("unstarted", mcp.Description("Only unstarted stories")),
		mcp.WithBoolean("unestimated", mcp.Description("Only unestimated stories")),
		mcp.WithBoolean("overdue", mcp.Description("Only overdue stories")),
		mcp.WithBoolean("has_attachment", mcp.Description("Only stories with attachments")),
		mcp.WithBoolean("has_task", mcp.Description("Only stories with tasks")),
		mcp.WithBoolean("has_epic", mcp.Description("Only stories in an epic")),
		mcp.WithBoolean("has_owner", mcp.Description("Only stories with an owner")),
		mcp.WithBoolean("has_comment", mcp.Description("Only stories with comments")),
		mcp.WithBoolean("has_deadline", mcp.Description("Only stories with a due date")),
		mcp.WithBoolean("has_label", mcp.Description("Only stories with a label")),
		mcp.WithString("created", mcp.Description("Creation date or range")),
		mcp.WithString("updated", mcp.Description("Last-update date or range")),
		mcp.WithString("completed", mcp.Description("Completion date or range")),
		mcp.WithString("due", mcp.Description("Due date or range")),
		mcp.WithString("moved", mcp.Description("Last-moved date or range")),
	)
}

// storyFilters maps the request's string and flag arguments onto the
// story field table. Argument names use underscores; field names use
// the grammar's spelling.
func storyFilters(req mcp.CallToolRequest) query.Params {
	p := query.Params{}

	if id := int64Arg(req, "id", 0); id > 0 {
		p.Set("id", strconv.FormatInt(id, 10))
	}
	textFilter(p, req, "title", "title")
	textFilter(p, req, "description", "description")
	textFilter(p, req, "comment", "comment")
	textFilter(p, req, "type", "type")
	textFilter(p, req, "state", "state")
	textFilter(p, req, "label", "label")
	textFilter(p, req, "epic", "epic")
	textFilter(p, req, "iteration", "iteration")
	textFilter(p, req, "project", "project")
	textFilter(p, req, "team", "team")
	textFilter(p, req, "skill_set", "skill-set")
	textFilter(p, req, "owner", "owner")
	textFilter(p, req, "requester", "requester")
	if est := int64ArgPtr(req, "estimate"); est != nil {
		p.Set("estimate", strconv.FormatInt(*est, 10))
	}

	flagFilter(p, req, "archived", "is:archived")
	flagFilter(p, req, "blocked", "is:blocked")
	flagFilter(p, req, "blocker", "is:blocker")
	flagFilter(p, req, "done", "is:done")
	flagFilter(p, req, "started", "is:started")
	flagFilter(p, req, "unstarted", "is:unstarted")
	flagFilter(p, req, "unestimated", "is:unestimated")
	flagFilter(p, req, "overdue", "is:overdue")
	flagFilter(p, req, "has_attachment", "has:attachment")
	flagFilter(p, req, "has_task", "has:task")
	flagFilter(p, req, "has_epic", "has:epic")
	flagFilter(p, req, "has_owner", "has:owner")
	flagFilter(p, req, "has_comment", "has:comment")
	flagFilter(p, req, "has_deadline", "has:deadline")
	flagFilter(p, req, "has_label", "has:label")

	textFilter(p, req, "created", "created")
	textFilter(p, req, "updated", "updated")
	textFilter(p, req, "completed", "completed")
	textFilter(p, req, "due", "due")
	textFilter(p, req, "moved", "moved")

	return p
}

// Handle processes the search-stories tool call.
func (t *SearchStoriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := storyFilters(req)

	me, err := resolveMe(ctx, t.api, query.StoryFields, p)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	q, err := query.Compile(query.StoryFields, p, me)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	stories, total, err := t.api.SearchStories(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("searching stories: %v", err)), nil
	}
	if len(stories) == 0 {
		return mcp.NewToolResultText("No stories matched."), nil
	}

	refs := t.resolver.Stories(ctx, stories)
	summaries := make([]hydrate.StorySummary, 0, len(stories))
	for _, s := range stories {
		summaries = append(summaries, refs.StorySummary(s))
	}

	return mcp.NewToolResultText(format.StoryList(summaries, total)), nil
}

// GetStoryTool handles the get-story MCP tool.
type GetStoryTool struct {
	api      API
	resolver *hydrate.Resolver
}

// NewGetStoryTool creates a GetStoryTool.
func NewGetStoryTool(api API, resolver *hydrate.Resolver) *GetStoryTool {
	return &GetStoryTool{api: api, resolver: resolver}
}

// Definition returns the MCP tool definition for registration.
func (t *GetStoryTool) Definition() mcp.Tool {
	return mcp.NewTool("get-story",
		mcp.WithDescription("Get a story by ID, with its owners, state, team, epic, iteration, and objective resolved to names."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Story ID"),
		),
	)
}

// Handle processes the get-story tool call.
func (t *GetStoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64Arg(req, "id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	story, err := t.api.GetStory(ctx, id)
	if err != nil {
		if shortcut.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("story %d not found", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("fetching story %d: %v", id, err)), nil
	}

	refs := t.resolver.Story(ctx, *story)
	return mcp.NewToolResultText(format.Story(refs.StoryDetail(*story))), nil
}

// CreateStoryTool handles the create-story MCP tool.
type CreateStoryTool struct {
	api      API
	resolver *hydrate.Resolver
}

// NewCreateStoryTool creates a CreateStoryTool.
func NewCreateStoryTool(api API, resolver *hydrate.Resolver) *CreateStoryTool {
	return &CreateStoryTool{api: api, resolver: resolver}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateStoryTool) Definition() mcp.Tool {
	return mcp.NewTool("create-story",
		mcp.WithDescription(
			"Create a new story. Only the name is required; the story lands in the "+
				"workflow's default state unless workflow_state_id is given.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Story title"),
		),
		mcp.WithString("description", mcp.Description("Story description (markdown)")),
		mcp.WithString("type", mcp.Description("Story type: feature (default), bug, or chore")),
		mcp.WithNumber("workflow_state_id", mcp.Description("Initial workflow state ID")),
		mcp.WithNumber("epic_id", mcp.Description("Epic to place the story in")),
		mcp.WithNumber("iteration_id", mcp.Description("Iteration to place the story in")),
		mcp.WithString("team_id", mcp.Description("Team (group) UUID")),
		mcp.WithNumber("estimate", mcp.Description("Point estimate")),
		mcp.WithString("deadline", mcp.Description("Due date, YYYY-MM-DD")),
		mcp.WithBoolean("own", mcp.Description("Assign the story to the current user")),
	)
}

// Handle processes the create-story tool call.
func (t *CreateStoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	storyType := req.GetString("type", "feature")
	switch storyType {
	case "feature", "bug", "chore":
	default:
		return mcp.NewToolResultError(fmt.Sprintf("invalid story type %q: must be feature, bug, or chore", storyType)), nil
	}

	params := shortcut.CreateStoryParams{
		Name:            name,
		Description:     req.GetString("description", ""),
		StoryType:       storyType,
		WorkflowStateID: int64ArgPtr(req, "workflow_state_id"),
		EpicID:          int64ArgPtr(req, "epic_id"),
		IterationID:     int64ArgPtr(req, "iteration_id"),
		GroupID:         strArgPtr(req, "team_id"),
		Estimate:        int64ArgPtr(req, "estimate"),
		Deadline:        strArgPtr(req, "deadline"),
	}

	if own := boolArgPtr(req, "own"); own != nil && *own {
		info, err := t.api.CurrentMember(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("resolving current user: %v", err)), nil
		}
		params.OwnerIDs = []string{info.ID}
	}

	story, err := t.api.CreateStory(ctx, params)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("creating story: %v", err)), nil
	}

	refs := t.resolver.Story(ctx, *story)
	return mcp.NewToolResultText("Story created.\n\n" + format.Story(refs.StoryDetail(*story))), nil
}

// emptyUpdate reports whether an update carries no changes at all.
func emptyUpdate(p shortcut.UpdateStoryParams) bool {
	return p.Name == nil && p.Description == nil && p.StoryType == nil &&
		p.WorkflowStateID == nil && p.EpicID == nil && p.IterationID == nil &&
		p.GroupID == nil && p.OwnerIDs == nil && p.Estimate == nil && p.Archived == nil
}

// UpdateStoryTool handles the update-story MCP tool.
type UpdateStoryTool struct {
	api      API
	resolver *hydrate.Resolver
}

// NewUpdateStoryTool creates an UpdateStoryTool.
func NewUpdateStoryTool(api API, resolver *hydrate.Resolver) *UpdateStoryTool {
	return &UpdateStoryTool{api: api, resolver: resolver}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateStoryTool) Definition() mcp.Tool {
	return mcp.NewTool("update-story",
		mcp.WithDescription("Update a story. Only the provided fields change."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Story ID"),
		),
		mcp.WithString("name", mcp.Description("New title")),
		mcp.WithString("description", mcp.Description("New description")),
		mcp.WithString("type", mcp.Description("New story type: feature, bug, or chore")),
		mcp.WithNumber("workflow_state_id", mcp.Description("Move to this workflow state")),
		mcp.WithNumber("epic_id", mcp.Description("Move to this epic")),
		mcp.WithNumber("iteration_id", mcp.Description("Move to this iteration")),
		mcp.WithString("team_id", mcp.Description("Move to this team (group UUID)")),
		mcp.WithNumber("estimate", mcp.Description("New point estimate")),
		mcp.WithBoolean("archived", mcp.Description("Archive (true) or unarchive (false)")),
	)
}

// Handle processes the update-story tool call.
func (t *UpdateStoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64Arg(req, "id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	params := shortcut.UpdateStoryParams{
		Name:            strArgPtr(req, "name"),
		Description:     strArgPtr(req, "description"),
		StoryType:       strArgPtr(req, "type"),
		WorkflowStateID: int64ArgPtr(req, "workflow_state_id"),
		EpicID:          int64ArgPtr(req, "epic_id"),
		IterationID:     int64ArgPtr(req, "iteration_id"),
		GroupID:         strArgPtr(req, "team_id"),
		Estimate:        int64ArgPtr(req, "estimate"),
		Archived:        boolArgPtr(req, "archived"),
	}

	if emptyUpdate(params) {
		return mcp.NewToolResultError("no fields to update"), nil
	}
	if params.StoryType != nil {
		switch *params.StoryType {
		case "feature", "bug", "chore":
		default:
			return mcp.NewToolResultError(fmt.Sprintf("invalid story type %q: must be feature, bug, or chore", *params.StoryType)), nil
		}
	}

	story, err := t.api.UpdateStory(ctx, id, params)
	if err != nil {
		if shortcut.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("story %d not found", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("updating story %d: %v", id, err)), nil
	}

	refs := t.resolver.Story(ctx, *story)
	return mcp.NewToolResultText("Story updated.\n\n" + format.Story(refs.StoryDetail(*story))), nil
}
