package hydrate

import "github.com/sc-tools/shortcut-mcp/internal/shortcut"

// Views derived from a Refs. The detail forms flatten the entity's own
// identifying fields beside the resolved human-readable names; the
// summary forms carry just enough for a result list line. Both read
// only from the Refs maps — never the network.

// unknownMarker is rendered for a cache-backed reference whose id did
// not resolve, so dangling ids stay visible in detail output.
const unknownMarker = "(unknown)"

// StorySummary is the compact, decorative form of a hydrated story.
type StorySummary struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	State  string   `json:"state,omitempty"`
	Owners []string `json:"owners,omitempty"`
	URL    string   `json:"url,omitempty"`
}

// StoryDetail is the full form of a hydrated story.
type StoryDetail struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	State       string   `json:"state,omitempty"`
	Workflow    string   `json:"workflow,omitempty"`
	Team        string   `json:"team,omitempty"`
	Epic        string   `json:"epic,omitempty"`
	Iteration   string   `json:"iteration,omitempty"`
	Objective   string   `json:"objective,omitempty"`
	Owners      []string `json:"owners,omitempty"`
	Requester   string   `json:"requester,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Estimate    *int64   `json:"estimate,omitempty"`
	Deadline    string   `json:"deadline,omitempty"`
	Archived    bool     `json:"archived"`
	Blocked     bool     `json:"blocked"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

// memberName resolves a member id to its mention name, or "" when the
// id is unknown. Summary views drop unknown ids.
func (refs *Refs) memberName(id string) string {
	if m, ok := refs.members[id]; ok {
		return m.Profile.MentionName
	}
	return ""
}

// memberNameOrMarker is memberName with the explicit unknown marker,
// used by detail views.
func (refs *Refs) memberNameOrMarker(id string) string {
	if name := refs.memberName(id); name != "" {
		return name
	}
	return unknownMarker
}

func (refs *Refs) ownerNames(ids []string, keepUnknown bool) []string {
	var names []string
	for _, id := range ids {
		name := refs.memberName(id)
		if name == "" {
			if !keepUnknown {
				continue
			}
			name = unknownMarker
		}
		names = append(names, name)
	}
	return names
}

func (refs *Refs) stateName(id int64) (state, workflow string) {
	if ref, ok := refs.states[id]; ok {
		return ref.State.Name, ref.Workflow.Name
	}
	return "", ""
}

func (refs *Refs) teamName(id *string) string {
	if id == nil {
		return ""
	}
	if g, ok := refs.groups[*id]; ok {
		return g.Name
	}
	return unknownMarker
}

// epicName returns the resolved epic name, the unknown marker for a
// broken reference, or "" when the story has no epic.
func (refs *Refs) epicName(id *int64) string {
	if id == nil {
		return ""
	}
	if e := refs.epics[*id]; e != nil {
		return e.Name
	}
	return unknownMarker
}

func (refs *Refs) iterationName(id *int64) string {
	if id == nil {
		return ""
	}
	if it := refs.iterations[*id]; it != nil {
		return it.Name
	}
	return unknownMarker
}

func (refs *Refs) objectiveName(id *int64) string {
	if id == nil {
		return ""
	}
	if m := refs.milestones[*id]; m != nil {
		return m.Name
	}
	return unknownMarker
}

// StorySummary derives the compact view of s.
func (refs *Refs) StorySummary(s shortcut.Story) StorySummary {
	state, _ := refs.stateName(s.WorkflowStateID)
	return StorySummary{
		ID:     s.ID,
		Name:   s.Name,
		Type:   s.StoryType,
		State:  state,
		Owners: refs.ownerNames(s.OwnerIDs, false),
		URL:    s.AppURL,
	}
}

// StoryDetail derives the full view of s.
func (refs *Refs) StoryDetail(s shortcut.Story) StoryDetail {
	state, workflow := refs.stateName(s.WorkflowStateID)

	// The objective hangs off the story's epic.
	objective := ""
	if s.EpicID != nil {
		if e := refs.epics[*s.EpicID]; e != nil {
			objective = refs.objectiveName(e.MilestoneID)
		}
	}

	labels := make([]string, 0, len(s.Labels))
	for _, l := range s.Labels {
		labels = append(labels, l.Name)
	}

	deadline := ""
	if s.Deadline != nil {
		deadline = *s.Deadline
	}

	requester := ""
	if s.RequestedByID != "" {
		requester = refs.memberNameOrMarker(s.RequestedByID)
	}

	return StoryDetail{
		ID:          s.ID,
		Name:        s.Name,
		Type:        s.StoryType,
		State:       state,
		Workflow:    workflow,
		Team:        refs.teamName(s.GroupID),
		Epic:        refs.epicName(s.EpicID),
		Iteration:   refs.iterationName(s.IterationID),
		Objective:   objective,
		Owners:      refs.ownerNames(s.OwnerIDs, true),
		Requester:   requester,
		Labels:      labels,
		Estimate:    s.Estimate,
		Deadline:    deadline,
		Archived:    s.Archived,
		Blocked:     s.Blocked,
		Description: s.Description,
		URL:         s.AppURL,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// EpicSummary is the compact form of a hydrated epic.
type EpicSummary struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	State   string   `json:"state,omitempty"`
	Team    string   `json:"team,omitempty"`
	Owners  []string `json:"owners,omitempty"`
	Stories int64    `json:"stories"`
	URL     string   `json:"url,omitempty"`
}

// EpicDetail is the full form of a hydrated epic.
type EpicDetail struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	State       string   `json:"state,omitempty"`
	Team        string   `json:"team,omitempty"`
	Objective   string   `json:"objective,omitempty"`
	Owners      []string `json:"owners,omitempty"`
	Requester   string   `json:"requester,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Deadline    string   `json:"deadline,omitempty"`
	Archived    bool     `json:"archived"`
	Stories     int64    `json:"stories"`
	StoriesDone int64    `json:"stories_done"`
	Points      int64    `json:"points"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

// EpicSummary derives the compact view of e.
func (refs *Refs) EpicSummary(e shortcut.Epic) EpicSummary {
	return EpicSummary{
		ID:      e.ID,
		Name:    e.Name,
		State:   e.State,
		Team:    refs.teamName(e.GroupID),
		Owners:  refs.ownerNames(e.OwnerIDs, false),
		Stories: e.Stats.NumStories,
		URL:     e.AppURL,
	}
}

// EpicDetail derives the full view of e.
func (refs *Refs) EpicDetail(e shortcut.Epic) EpicDetail {
	labels := make([]string, 0, len(e.Labels))
	for _, l := range e.Labels {
		labels = append(labels, l.Name)
	}

	deadline := ""
	if e.Deadline != nil {
		deadline = *e.Deadline
	}

	requester := ""
	if e.RequestedByID != "" {
		requester = refs.memberNameOrMarker(e.RequestedByID)
	}

	return EpicDetail{
		ID:          e.ID,
		Name:        e.Name,
		State:       e.State,
		Team:        refs.teamName(e.GroupID),
		Objective:   refs.objectiveName(e.MilestoneID),
		Owners:      refs.ownerNames(e.OwnerIDs, true),
		Requester:   requester,
		Labels:      labels,
		Deadline:    deadline,
		Archived:    e.Archived,
		Stories:     e.Stats.NumStories,
		StoriesDone: e.Stats.NumStoriesDone,
		Points:      e.Stats.NumPoints,
		Description: e.Description,
		URL:         e.AppURL,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// IterationView is a hydrated iteration; iterations only reference
// teams, so one form serves both list and detail output.
type IterationView struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Status    string   `json:"status,omitempty"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Teams     []string `json:"teams,omitempty"`
	URL       string   `json:"url,omitempty"`
}

// IterationView derives the view of it.
func (refs *Refs) IterationView(it shortcut.Iteration) IterationView {
	var teams []string
	for _, id := range it.GroupIDs {
		if g, ok := refs.groups[id]; ok {
			teams = append(teams, g.Name)
		}
	}
	return IterationView{
		ID:        it.ID,
		Name:      it.Name,
		Status:    it.Status,
		StartDate: it.StartDate,
		EndDate:   it.EndDate,
		Teams:     teams,
		URL:       it.AppURL,
	}
}
