// Package hydrate resolves the id references embedded in primary
// entities (owners, workflow state, team, epic, iteration, objective)
// into full entities, using snapshot caches for the types that have
// bulk list endpoints and individual fetches for the rest.
//
// Hydration is decorative: a failure to resolve a related entity never
// fails the caller's operation. Cache refill failures are logged and
// the affected names simply come out unknown; per-id fetch failures
// are recorded as explicit not-found markers.
package hydrate

import (
	"context"
	"log"
	"time"

	"github.com/sc-tools/shortcut-mcp/internal/cache"
	"github.com/sc-tools/shortcut-mcp/internal/shortcut"
)

// API is the slice of the Shortcut client the resolver needs.
type API interface {
	ListMembers(ctx context.Context) ([]shortcut.Member, error)
	ListWorkflows(ctx context.Context) ([]shortcut.Workflow, error)
	ListGroups(ctx context.Context) ([]shortcut.Group, error)
	GetEpic(ctx context.Context, id int64) (*shortcut.Epic, error)
	GetIteration(ctx context.Context, id int64) (*shortcut.Iteration, error)
	GetMilestone(ctx context.Context, id int64) (*shortcut.Milestone, error)
}

// Resolver owns the reference caches and performs hydration. One
// resolver lives for the lifetime of the server; its caches are the
// only shared mutable state across tool invocations.
type Resolver struct {
	api       API
	members   *cache.Store[string, shortcut.Member]
	workflows *cache.Store[int64, shortcut.Workflow]
	groups    *cache.Store[string, shortcut.Group]
}

// NewResolver creates a Resolver with empty caches using the default
// staleness window.
func NewResolver(api API) *Resolver {
	return newResolver(api, cache.DefaultTTL)
}

func newResolver(api API, ttl time.Duration) *Resolver {
	return &Resolver{
		api:       api,
		members:   cache.New(ttl, func(m shortcut.Member) string { return m.ID }),
		workflows: cache.New(ttl, func(w shortcut.Workflow) int64 { return w.ID }),
		groups:    cache.New(ttl, func(g shortcut.Group) string { return g.ID }),
	}
}

// refreshMembers refills the member cache if it is stale. At most one
// list call is made per resolve, regardless of how many ids need it.
func (r *Resolver) refreshMembers(ctx context.Context) error {
	if !r.members.Stale() {
		return nil
	}
	items, err := r.api.ListMembers(ctx)
	if err != nil {
		return err
	}
	r.members.ReplaceAll(items)
	return nil
}

func (r *Resolver) refreshWorkflows(ctx context.Context) error {
	if !r.workflows.Stale() {
		return nil
	}
	items, err := r.api.ListWorkflows(ctx)
	if err != nil {
		return err
	}
	r.workflows.ReplaceAll(items)
	return nil
}

func (r *Resolver) refreshGroups(ctx context.Context) error {
	if !r.groups.Stale() {
		return nil
	}
	items, err := r.api.ListGroups(ctx)
	if err != nil {
		return err
	}
	r.groups.ReplaceAll(items)
	return nil
}

// Teams returns every team, refilling the cache first if it is stale.
// Unlike hydration, this is a primary read: refill errors propagate.
func (r *Resolver) Teams(ctx context.Context) ([]shortcut.Group, error) {
	if err := r.refreshGroups(ctx); err != nil {
		return nil, err
	}
	return r.groups.Values(), nil
}

// Team returns one team by id from a fresh cache.
func (r *Resolver) Team(ctx context.Context, id string) (shortcut.Group, bool, error) {
	if err := r.refreshGroups(ctx); err != nil {
		return shortcut.Group{}, false, err
	}
	g, ok := r.groups.Get(id)
	return g, ok, nil
}

// Workflows returns every workflow, refilling the cache first if it is
// stale.
func (r *Resolver) Workflows(ctx context.Context) ([]shortcut.Workflow, error) {
	if err := r.refreshWorkflows(ctx); err != nil {
		return nil, err
	}
	return r.workflows.Values(), nil
}

// Workflow returns one workflow by id from a fresh cache.
func (r *Resolver) Workflow(ctx context.Context, id int64) (shortcut.Workflow, bool, error) {
	if err := r.refreshWorkflows(ctx); err != nil {
		return shortcut.Workflow{}, false, err
	}
	w, ok := r.workflows.Get(id)
	return w, ok, nil
}

// idSet collects distinct ids preserving first-seen order.
type idSet[K comparable] struct {
	seen map[K]bool
	ids  []K
}

func (s *idSet[K]) add(id K) {
	if s.seen == nil {
		s.seen = make(map[K]bool)
	}
	if s.seen[id] {
		return
	}
	s.seen[id] = true
	s.ids = append(s.ids, id)
}

// refIDs is everything one batch of primaries references.
type refIDs struct {
	members    idSet[string]
	states     idSet[int64]
	groups     idSet[string]
	epics      idSet[int64]
	iterations idSet[int64]
	milestones idSet[int64]
}

func collectStoryRefs(stories []shortcut.Story) refIDs {
	var ids refIDs
	for _, s := range stories {
		for _, owner := range s.OwnerIDs {
			ids.members.add(owner)
		}
		if s.RequestedByID != "" {
			ids.members.add(s.RequestedByID)
		}
		if s.WorkflowStateID != 0 {
			ids.states.add(s.WorkflowStateID)
		}
		if s.GroupID != nil {
			ids.groups.add(*s.GroupID)
		}
		if s.EpicID != nil {
			ids.epics.add(*s.EpicID)
		}
		if s.IterationID != nil {
			ids.iterations.add(*s.IterationID)
		}
	}
	return ids
}

func collectEpicRefs(epics []shortcut.Epic) refIDs {
	var ids refIDs
	for _, e := range epics {
		for _, owner := range e.OwnerIDs {
			ids.members.add(owner)
		}
		if e.RequestedByID != "" {
			ids.members.add(e.RequestedByID)
		}
		if e.GroupID != nil {
			ids.groups.add(*e.GroupID)
		}
		if e.MilestoneID != nil {
			ids.milestones.add(*e.MilestoneID)
		}
	}
	return ids
}

func collectIterationRefs(iterations []shortcut.Iteration) refIDs {
	var ids refIDs
	for _, it := range iterations {
		for _, group := range it.GroupIDs {
			ids.groups.add(group)
		}
	}
	return ids
}

// Stories hydrates a batch of stories. Referenced ids are collected in
// one pass across the whole batch; all stale caches are refilled before
// any lookup, then epics and iterations are fetched individually. An
// epic's objective is hydrated transitively when the epic resolves.
func (r *Resolver) Stories(ctx context.Context, stories []shortcut.Story) *Refs {
	ids := collectStoryRefs(stories)
	refs := newRefs()

	r.refill(ctx, &ids)
	refs.resolveCached(r, &ids)
	refs.resolveEpics(ctx, r.api, ids.epics.ids)
	refs.resolveIterations(ctx, r.api, ids.iterations.ids)

	// Epics pull in their objectives so story output can show the full
	// chain story -> epic -> objective.
	var milestones idSet[int64]
	for _, id := range ids.milestones.ids {
		milestones.add(id)
	}
	for _, ref := range refs.Related.Epics {
		if ref.Epic != nil && ref.Epic.MilestoneID != nil {
			milestones.add(*ref.Epic.MilestoneID)
		}
	}
	refs.resolveMilestones(ctx, r.api, milestones.ids)

	return refs
}

// Story hydrates a single story.
func (r *Resolver) Story(ctx context.Context, story shortcut.Story) *Refs {
	return r.Stories(ctx, []shortcut.Story{story})
}

// Epics hydrates a batch of epics.
func (r *Resolver) Epics(ctx context.Context, epics []shortcut.Epic) *Refs {
	ids := collectEpicRefs(epics)
	refs := newRefs()

	r.refill(ctx, &ids)
	refs.resolveCached(r, &ids)
	refs.resolveMilestones(ctx, r.api, ids.milestones.ids)

	return refs
}

// Epic hydrates a single epic.
func (r *Resolver) Epic(ctx context.Context, epic shortcut.Epic) *Refs {
	return r.Epics(ctx, []shortcut.Epic{epic})
}

// Iterations hydrates a batch of iterations (team references only).
func (r *Resolver) Iterations(ctx context.Context, iterations []shortcut.Iteration) *Refs {
	ids := collectIterationRefs(iterations)
	refs := newRefs()

	r.refill(ctx, &ids)
	refs.resolveCached(r, &ids)

	return refs
}

// refill refreshes every cache the id sets need, before any lookups
// run. Refill failures are absorbed: hydration is decorative, and a
// missing name is better than a failed tool call.
func (r *Resolver) refill(ctx context.Context, ids *refIDs) {
	if len(ids.members.ids) > 0 {
		if err := r.refreshMembers(ctx); err != nil {
			log.Printf("WARNING: refreshing members: %v", err)
		}
	}
	if len(ids.states.ids) > 0 {
		if err := r.refreshWorkflows(ctx); err != nil {
			log.Printf("WARNING: refreshing workflows: %v", err)
		}
	}
	if len(ids.groups.ids) > 0 {
		if err := r.refreshGroups(ctx); err != nil {
			log.Printf("WARNING: refreshing groups: %v", err)
		}
	}
}
