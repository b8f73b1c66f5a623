// Package shortcut is a minimal client for the Shortcut V3 REST API.
//
// It covers the operations the MCP tools need: the bulk list endpoints
// used to fill the reference caches (members, workflows, groups), by-id
// fetches, the text search endpoints, and story writes. Responses are
// decoded into the types below; fields the tools never read are omitted.
package shortcut

// Member is a workspace member as returned by /members.
type Member struct {
	ID       string        `json:"id"`
	Disabled bool          `json:"disabled"`
	Role     string        `json:"role"`
	Profile  MemberProfile `json:"profile"`
}

// MemberProfile holds the human-facing identity of a member.
type MemberProfile struct {
	Name        string `json:"name"`
	MentionName string `json:"mention_name"`
	Email       string `json:"email_address"`
}

// MemberInfo is the short identity shape returned by /member for the
// member that owns the API token.
type MemberInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MentionName string `json:"mention_name"`
}

// Workflow is a story workflow with its ordered states.
type Workflow struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	DefaultStateID int64           `json:"default_state_id"`
	States         []WorkflowState `json:"states"`
}

// WorkflowState is one column of a workflow.
type WorkflowState struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"` // unstarted, started, done
	Position int64  `json:"position"`
}

// Group is a team. Shortcut's API calls teams "groups".
type Group struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	MentionName string   `json:"mention_name"`
	Description string   `json:"description"`
	Archived    bool     `json:"archived"`
	MemberIDs   []string `json:"member_ids"`
}

// Label is a story or epic label.
type Label struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Story is the primary entity of the workspace. Reference fields
// (owner ids, workflow state id, group id, epic id, iteration id) are
// resolved by the hydrate package.
type Story struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	StoryType       string   `json:"story_type"` // feature, bug, chore
	WorkflowID      int64    `json:"workflow_id"`
	WorkflowStateID int64    `json:"workflow_state_id"`
	EpicID          *int64   `json:"epic_id"`
	IterationID     *int64   `json:"iteration_id"`
	GroupID         *string  `json:"group_id"`
	OwnerIDs        []string `json:"owner_ids"`
	RequestedByID   string   `json:"requested_by_id"`
	Labels          []Label  `json:"labels"`
	Estimate        *int64   `json:"estimate"`
	Deadline        *string  `json:"deadline"`
	Archived        bool     `json:"archived"`
	Blocked         bool     `json:"blocked"`
	Blocker         bool     `json:"blocker"`
	Started         bool     `json:"started"`
	Completed       bool     `json:"completed"`
	AppURL          string   `json:"app_url"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// EpicStats is the aggregate story breakdown Shortcut attaches to epics.
type EpicStats struct {
	NumStories        int64 `json:"num_stories"`
	NumStoriesDone    int64 `json:"num_stories_done"`
	NumStoriesStarted int64 `json:"num_stories_started"`
	NumPoints         int64 `json:"num_points"`
}

// Epic groups stories toward a larger deliverable. Its milestone_id
// points at the objective it rolls up to, if any.
type Epic struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	State         string    `json:"state"` // to do, in progress, done
	MilestoneID   *int64    `json:"milestone_id"`
	GroupID       *string   `json:"group_id"`
	OwnerIDs      []string  `json:"owner_ids"`
	RequestedByID string    `json:"requested_by_id"`
	Labels        []Label   `json:"labels"`
	Deadline      *string   `json:"deadline"`
	Archived      bool      `json:"archived"`
	Started       bool      `json:"started"`
	Completed     bool      `json:"completed"`
	Stats         EpicStats `json:"stats"`
	AppURL        string    `json:"app_url"`
	CreatedAt     string    `json:"created_at"`
	UpdatedAt     string    `json:"updated_at"`
}

// Iteration is a time-boxed sprint.
type Iteration struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Status    string   `json:"status"` // unstarted, started, done
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	GroupIDs  []string `json:"group_ids"`
	AppURL    string   `json:"app_url"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// Milestone is an objective. Shortcut's API still uses the old
// "milestone" name; the tools surface them as objectives.
type Milestone struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	State       string `json:"state"` // to do, in progress, done
	AppURL      string `json:"app_url"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// CreateStoryParams is the request body for POST /stories.
// Name is required; everything else is optional.
type CreateStoryParams struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	StoryType       string   `json:"story_type,omitempty"`
	WorkflowStateID *int64   `json:"workflow_state_id,omitempty"`
	EpicID          *int64   `json:"epic_id,omitempty"`
	IterationID     *int64   `json:"iteration_id,omitempty"`
	GroupID         *string  `json:"group_id,omitempty"`
	OwnerIDs        []string `json:"owner_ids,omitempty"`
	Estimate        *int64   `json:"estimate,omitempty"`
	Deadline        *string  `json:"deadline,omitempty"`
}

// UpdateStoryParams is the request body for PUT /stories/{id}.
// Nil fields are left untouched by the API.
type UpdateStoryParams struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	StoryType       *string  `json:"story_type,omitempty"`
	WorkflowStateID *int64   `json:"workflow_state_id,omitempty"`
	EpicID          *int64   `json:"epic_id,omitempty"`
	IterationID     *int64   `json:"iteration_id,omitempty"`
	GroupID         *string  `json:"group_id,omitempty"`
	OwnerIDs        []string `json:"owner_ids,omitempty"`
	Estimate        *int64   `json:"estimate,omitempty"`
	Archived        *bool    `json:"archived,omitempty"`
}
