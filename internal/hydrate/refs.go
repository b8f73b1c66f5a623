package hydrate

import (
	"context"
	"log"

	"github.com/sc-tools/shortcut-mcp/internal/shortcut"
)

// StateRef pairs a workflow state with the workflow it belongs to.
type StateRef struct {
	State    shortcut.WorkflowState
	Workflow shortcut.Workflow
}

// EpicRef is a resolved (or explicitly unresolved) epic reference.
// Found distinguishes a broken reference from no reference at all.
type EpicRef struct {
	ID    int64          `json:"id"`
	Found bool           `json:"found"`
	Epic  *shortcut.Epic `json:"epic,omitempty"`
}

// IterationRef is a resolved (or explicitly unresolved) iteration
// reference.
type IterationRef struct {
	ID        int64               `json:"id"`
	Found     bool                `json:"found"`
	Iteration *shortcut.Iteration `json:"iteration,omitempty"`
}

// ObjectiveRef is a resolved (or explicitly unresolved) objective
// reference.
type ObjectiveRef struct {
	ID        int64               `json:"id"`
	Found     bool                `json:"found"`
	Objective *shortcut.Milestone `json:"objective,omitempty"`
}

// Related is the relatedEntities half of a hydrated result: every
// entity referenced by the batch of primaries, keyed by type,
// deduplicated by id in first-seen order. Cache-backed types omit
// unknown ids; per-id types keep an explicit marker.
type Related struct {
	Users      []shortcut.Member   `json:"users,omitempty"`
	Workflows  []shortcut.Workflow `json:"workflows,omitempty"`
	Teams      []shortcut.Group    `json:"teams,omitempty"`
	Epics      []EpicRef           `json:"epics,omitempty"`
	Iterations []IterationRef      `json:"iterations,omitempty"`
	Objectives []ObjectiveRef      `json:"objectives,omitempty"`
}

// Refs is the resolved-id map produced by one hydration. Both the full
// detail views and the summary views (views.go) are derived from the
// same Refs without further fetching.
type Refs struct {
	Related Related

	members    map[string]shortcut.Member
	states     map[int64]StateRef
	groups     map[string]shortcut.Group
	epics      map[int64]*shortcut.Epic
	iterations map[int64]*shortcut.Iteration
	milestones map[int64]*shortcut.Milestone
}

func newRefs() *Refs {
	return &Refs{
		members:    make(map[string]shortcut.Member),
		states:     make(map[int64]StateRef),
		groups:     make(map[string]shortcut.Group),
		epics:      make(map[int64]*shortcut.Epic),
		iterations: make(map[int64]*shortcut.Iteration),
		milestones: make(map[int64]*shortcut.Milestone),
	}
}

// resolveCached fills in the cache-backed lookups. Callers have already
// refilled any stale cache; lookups here never trigger network access.
func (refs *Refs) resolveCached(r *Resolver, ids *refIDs) {
	for _, id := range ids.members.ids {
		m, ok := r.members.Get(id)
		if !ok {
			continue
		}
		refs.members[id] = m
		refs.Related.Users = append(refs.Related.Users, m)
	}

	if len(ids.states.ids) > 0 {
		// One state index per resolve; workflows carry their states, so
		// the index maps state id to (state, owning workflow).
		index := make(map[int64]StateRef)
		for _, w := range r.workflows.Values() {
			for _, st := range w.States {
				index[st.ID] = StateRef{State: st, Workflow: w}
			}
		}
		seenWorkflows := make(map[int64]bool)
		for _, id := range ids.states.ids {
			ref, ok := index[id]
			if !ok {
				continue
			}
			refs.states[id] = ref
			if !seenWorkflows[ref.Workflow.ID] {
				seenWorkflows[ref.Workflow.ID] = true
				refs.Related.Workflows = append(refs.Related.Workflows, ref.Workflow)
			}
		}
	}

	for _, id := range ids.groups.ids {
		g, ok := r.groups.Get(id)
		if !ok {
			continue
		}
		refs.groups[id] = g
		refs.Related.Teams = append(refs.Related.Teams, g)
	}
}

// resolveEpics fetches each referenced epic individually. A failure on
// one id never aborts the rest; both 404s and upstream errors become
// not-found markers, with errors additionally logged.
func (refs *Refs) resolveEpics(ctx context.Context, api API, ids []int64) {
	for _, id := range ids {
		e, err := api.GetEpic(ctx, id)
		if err != nil {
			if !shortcut.IsNotFound(err) {
				log.Printf("WARNING: fetching epic %d: %v", id, err)
			}
			refs.epics[id] = nil
			refs.Related.Epics = append(refs.Related.Epics, EpicRef{ID: id})
			continue
		}
		refs.epics[id] = e
		refs.Related.Epics = append(refs.Related.Epics, EpicRef{ID: id, Found: true, Epic: e})
	}
}

func (refs *Refs) resolveIterations(ctx context.Context, api API, ids []int64) {
	for _, id := range ids {
		it, err := api.GetIteration(ctx, id)
		if err != nil {
			if !shortcut.IsNotFound(err) {
				log.Printf("WARNING: fetching iteration %d: %v", id, err)
			}
			refs.iterations[id] = nil
			refs.Related.Iterations = append(refs.Related.Iterations, IterationRef{ID: id})
			continue
		}
		refs.iterations[id] = it
		refs.Related.Iterations = append(refs.Related.Iterations, IterationRef{ID: id, Found: true, Iteration: it})
	}
}

func (refs *Refs) resolveMilestones(ctx context.Context, api API, ids []int64) {
	for _, id := range ids {
		m, err := api.GetMilestone(ctx, id)
		if err != nil {
			if !shortcut.IsNotFound(err) {
				log.Printf("WARNING: fetching objective %d: %v", id, err)
			}
			refs.milestones[id] = nil
			refs.Related.Objectives = append(refs.Related.Objectives, ObjectiveRef{ID: id})
			continue
		}
		refs.milestones[id] = m
		refs.Related.Objectives = append(refs.Related.Objectives, ObjectiveRef{ID: id, Found: true, Objective: m})
	}
}
