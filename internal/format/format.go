// Package format renders hydrated entities as plain text for tool
// results. Output is markdown-ish but meant to be read, not parsed.
package format

import (
	"fmt"
	"strings"

	"github.com/sc-tools/shortcut-mcp/internal/hydrate"
	"github.com/sc-tools/shortcut-mcp/internal/shortcut"
)

// field appends "Label: value" when value is non-empty.
func field(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

func joinOrEmpty(values []string) string {
	return strings.Join(values, ", ")
}

// StoryLine renders one line of a story result list.
func StoryLine(s hydrate.StorySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "sc-%d [%s] %s", s.ID, s.Type, s.Name)
	if s.State != "" {
		fmt.Fprintf(&b, " (%s)", s.State)
	}
	if len(s.Owners) > 0 {
		fmt.Fprintf(&b, " — owners: %s", joinOrEmpty(s.Owners))
	}
	return b.String()
}

// StoryList renders a page of story summaries with the total count.
func StoryList(stories []hydrate.StorySummary, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d stories (showing %d):\n\n", total, len(stories))
	for _, s := range stories {
		b.WriteString(StoryLine(s))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Story renders the full detail view of a story.
func Story(d hydrate.StoryDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Story sc-%d: %s\n", d.ID, d.Name)
	field(&b, "Type", d.Type)
	field(&b, "State", d.State)
	field(&b, "Workflow", d.Workflow)
	field(&b, "Team", d.Team)
	field(&b, "Epic", d.Epic)
	field(&b, "Iteration", d.Iteration)
	field(&b, "Objective", d.Objective)
	field(&b, "Owners", joinOrEmpty(d.Owners))
	field(&b, "Requester", d.Requester)
	field(&b, "Labels", joinOrEmpty(d.Labels))
	if d.Estimate != nil {
		fmt.Fprintf(&b, "Estimate: %d\n", *d.Estimate)
	}
	field(&b, "Deadline", d.Deadline)
	if d.Archived {
		b.WriteString("Archived: yes\n")
	}
	if d.Blocked {
		b.WriteString("Blocked: yes\n")
	}
	field(&b, "URL", d.URL)
	field(&b, "Created", d.CreatedAt)
	field(&b, "Updated", d.UpdatedAt)
	if d.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", d.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// EpicLine renders one line of an epic result list.
func EpicLine(e hydrate.EpicSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "epic-%d %s", e.ID, e.Name)
	if e.State != "" {
		fmt.Fprintf(&b, " (%s)", e.State)
	}
	if e.Team != "" {
		fmt.Fprintf(&b, " — team: %s", e.Team)
	}
	fmt.Fprintf(&b, " — %d stories", e.Stories)
	return b.String()
}

// EpicList renders a page of epic summaries with the total count.
func EpicList(epics []hydrate.EpicSummary, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d epics (showing %d):\n\n", total, len(epics))
	for _, e := range epics {
		b.WriteString(EpicLine(e))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Epic renders the full detail view of an epic.
func Epic(d hydrate.EpicDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Epic epic-%d: %s\n", d.ID, d.Name)
	field(&b, "State", d.State)
	field(&b, "Team", d.Team)
	field(&b, "Objective", d.Objective)
	field(&b, "Owners", joinOrEmpty(d.Owners))
	field(&b, "Requester", d.Requester)
	field(&b, "Labels", joinOrEmpty(d.Labels))
	field(&b, "Deadline", d.Deadline)
	if d.Archived {
		b.WriteString("Archived: yes\n")
	}
	fmt.Fprintf(&b, "Stories: %d (%d done, %d points)\n", d.Stories, d.StoriesDone, d.Points)
	field(&b, "URL", d.URL)
	field(&b, "Created", d.CreatedAt)
	field(&b, "Updated", d.UpdatedAt)
	if d.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", d.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// IterationLine renders one line of an iteration result list.
func IterationLine(v hydrate.IterationView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "iteration-%d %s", v.ID, v.Name)
	if v.Status != "" {
		fmt.Fprintf(&b, " (%s)", v.Status)
	}
	if v.StartDate != "" || v.EndDate != "" {
		fmt.Fprintf(&b, " %s..%s", v.StartDate, v.EndDate)
	}
	if len(v.Teams) > 0 {
		fmt.Fprintf(&b, " — teams: %s", joinOrEmpty(v.Teams))
	}
	return b.String()
}

// IterationList renders a page of iterations with the total count.
func IterationList(iterations []hydrate.IterationView, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d iterations (showing %d):\n\n", total, len(iterations))
	for _, v := range iterations {
		b.WriteString(IterationLine(v))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Iteration renders the full view of an iteration.
func Iteration(v hydrate.IterationView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Iteration iteration-%d: %s\n", v.ID, v.Name)
	field(&b, "Status", v.Status)
	field(&b, "Start", v.StartDate)
	field(&b, "End", v.EndDate)
	field(&b, "Teams", joinOrEmpty(v.Teams))
	field(&b, "URL", v.URL)
	return strings.TrimRight(b.String(), "\n")
}

// ObjectiveLine renders one line of an objective result list.
func ObjectiveLine(m shortcut.Milestone) string {
	var b strings.Builder
	fmt.Fprintf(&b, "objective-%d %s", m.ID, m.Name)
	if m.State != "" {
		fmt.Fprintf(&b, " (%s)", m.State)
	}
	return b.String()
}

// ObjectiveList renders a page of objectives with the total count.
func ObjectiveList(objectives []shortcut.Milestone, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d objectives (showing %d):\n\n", total, len(objectives))
	for _, m := range objectives {
		b.WriteString(ObjectiveLine(m))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Objective renders the full view of an objective.
func Objective(m shortcut.Milestone) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Objective objective-%d: %s\n", m.ID, m.Name)
	field(&b, "State", m.State)
	field(&b, "URL", m.AppURL)
	field(&b, "Created", m.CreatedAt)
	field(&b, "Updated", m.UpdatedAt)
	if m.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", m.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Team renders one team.
func Team(g shortcut.Group) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Team %s: %s\n", g.ID, g.Name)
	field(&b, "Mention", "@"+g.MentionName)
	fmt.Fprintf(&b, "Members: %d\n", len(g.MemberIDs))
	if g.Archived {
		b.WriteString("Archived: yes\n")
	}
	if g.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", g.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// TeamList renders all teams, one line each.
func TeamList(teams []shortcut.Group) string {
	if len(teams) == 0 {
		return "No teams found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d teams:\n\n", len(teams))
	for _, g := range teams {
		fmt.Fprintf(&b, "%s — @%s (%d members) [id: %s]\n", g.Name, g.MentionName, len(g.MemberIDs), g.ID)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Workflow renders one workflow with its states in position order.
func Workflow(w shortcut.Workflow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Workflow %d: %s\n\nStates:\n", w.ID, w.Name)
	for _, st := range w.States {
		marker := " "
		if st.ID == w.DefaultStateID {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %d: %s (%s)\n", marker, st.ID, st.Name, st.Type)
	}
	b.WriteString("\n* = default state for new stories")
	return b.String()
}

// WorkflowList renders all workflows, one line each.
func WorkflowList(workflows []shortcut.Workflow) string {
	if len(workflows) == 0 {
		return "No workflows found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d workflows:\n\n", len(workflows))
	for _, w := range workflows {
		fmt.Fprintf(&b, "%d: %s (%d states)\n", w.ID, w.Name, len(w.States))
	}
	return strings.TrimRight(b.String(), "\n")
}

// CurrentUser renders the identity of the token's member.
func CurrentUser(info *shortcut.MemberInfo) string {
	var b strings.Builder
	b.WriteString("Current user:\n")
	field(&b, "Mention", "@"+info.MentionName)
	field(&b, "Name", info.Name)
	field(&b, "ID", info.ID)
	return strings.TrimRight(b.String(), "\n")
}
