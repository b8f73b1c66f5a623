package hydrate

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sc-tools/shortcut-mcp/internal/shortcut"
)

// fakeAPI implements API with canned data and call counters.
type fakeAPI struct {
	members    []shortcut.Member
	workflows  []shortcut.Workflow
	groups     []shortcut.Group
	epics      map[int64]*shortcut.Epic
	iterations map[int64]*shortcut.Iteration
	milestones map[int64]*shortcut.Milestone

	epicErr map[int64]error // overrides epics lookup

	listMemberCalls   int
	listWorkflowCalls int
	listGroupCalls    int
	getEpicCalls      int
	getIterationCalls int
	getMilestoneCalls int
}

func (f *fakeAPI) ListMembers(ctx context.Context) ([]shortcut.Member, error) {
	f.listMemberCalls++
	return f.members, nil
}

func (f *fakeAPI) ListWorkflows(ctx context.Context) ([]shortcut.Workflow, error) {
	f.listWorkflowCalls++
	return f.workflows, nil
}

func (f *fakeAPI) ListGroups(ctx context.Context) ([]shortcut.Group, error) {
	f.listGroupCalls++
	return f.groups, nil
}

func (f *fakeAPI) GetEpic(ctx context.Context, id int64) (*shortcut.Epic, error) {
	f.getEpicCalls++
	if err, ok := f.epicErr[id]; ok {
		return nil, err
	}
	if e, ok := f.epics[id]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("GET /epics/%d: %w", id, shortcut.ErrNotFound)
}

func (f *fakeAPI) GetIteration(ctx context.Context, id int64) (*shortcut.Iteration, error) {
	f.getIterationCalls++
	if it, ok := f.iterations[id]; ok {
		return it, nil
	}
	return nil, fmt.Errorf("GET /iterations/%d: %w", id, shortcut.ErrNotFound)
}

func (f *fakeAPI) GetMilestone(ctx context.Context, id int64) (*shortcut.Milestone, error) {
	f.getMilestoneCalls++
	if m, ok := f.milestones[id]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("GET /milestones/%d: %w", id, shortcut.ErrNotFound)
}

func member(id, mention string) shortcut.Member {
	return shortcut.Member{ID: id, Profile: shortcut.MemberProfile{MentionName: mention, Name: mention}}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		members: []shortcut.Member{
			member("u1", "andreas"),
			member("u2", "kaylee"),
			member("u3", "marco"),
		},
		workflows: []shortcut.Workflow{
			{
				ID:   10,
				Name: "Engineering",
				States: []shortcut.WorkflowState{
					{ID: 100, Name: "To Do", Type: "unstarted"},
					{ID: 101, Name: "In Review", Type: "started"},
					{ID: 102, Name: "Done", Type: "done"},
				},
			},
		},
		groups: []shortcut.Group{
			{ID: "g1", Name: "Platform", MentionName: "platform"},
		},
		epics: map[int64]*shortcut.Epic{
			7: {ID: 7, Name: "Billing revamp"},
		},
		iterations: map[int64]*shortcut.Iteration{
			3: {ID: 3, Name: "Sprint 12"},
		},
		milestones: map[int64]*shortcut.Milestone{
			5: {ID: 5, Name: "Q2 revenue"},
		},
	}
}

func ptr[T any](v T) *T { return &v }

func story(id int64, owners ...string) shortcut.Story {
	return shortcut.Story{
		ID:              id,
		Name:            fmt.Sprintf("story %d", id),
		StoryType:       "feature",
		WorkflowStateID: 101,
		OwnerIDs:        owners,
	}
}

func TestStories_DeduplicatesSharedOwners(t *testing.T) {
	api := newFakeAPI()
	r := newResolver(api, time.Minute)

	// Two stories share u1; each adds one distinct owner.
	refs := r.Stories(context.Background(), []shortcut.Story{
		story(1, "u1", "u2"),
		story(2, "u1", "u3"),
	})

	want := []shortcut.Member{member("u1", "andreas"), member("u2", "kaylee"), member("u3", "marco")}
	if diff := cmp.Diff(want, refs.Related.Users); diff != "" {
		t.Errorf("Related.Users mismatch (-want +got):\n%s", diff)
	}
}

func TestStories_OneRefillPerCache(t *testing.T) {
	api := newFakeAPI()
	r := newResolver(api, time.Minute)

	s1 := story(1, "u1")
	s1.GroupID = ptr("g1")
	s2 := story(2, "u2")
	s2.GroupID = ptr("g1")

	r.Stories(context.Background(), []shortcut.Story{s1, s2})

	if api.listMemberCalls != 1 {
		t.Errorf("ListMembers called %d times, want 1", api.listMemberCalls)
	}
	if api.listWorkflowCalls != 1 {
		t.Errorf("ListWorkflows called %d times, want 1", api.listWorkflowCalls)
	}
	if api.listGroupCalls != 1 {
		t.Errorf("ListGroups called %d times, want 1", api.listGroupCalls)
	}
}

func TestStories_FreshCacheServedWithoutRefill(t *testing.T) {
	api := newFakeAPI()
	r := newResolver(api, time.Minute)

	r.Stories(context.Background(), []shortcut.Story{story(1, "u1")})
	r.Stories(context.Background(), []shortcut.Story{story(2, "u2")})

	if api.listMemberCalls != 1 {
		t.Errorf("ListMembers called %d times across two fresh resolves, want 1", api.listMemberCalls)
	}
}

func TestStories_NoRefillWithoutReferences(t *testing.T) {
	api := newFakeAPI()
	r := newResolver(api, time.Minute)

	bare := shortcut.Story{ID: 1, Name: "no refs"}
	r.Stories(context.Background(), []shortcut.Story{bare})

	if api.listMemberCalls != 0 || api.listGroupCalls != 0 {
		t.Errorf("refills ran for a story with no references: members=%d groups=%d",
			api.listMemberCalls, api.listGroupCalls)
	}
}

func TestStories_EpicNotFoundMarker(t *testing.T) {
	api := newFakeAPI()
	r := newResolver(api, time.Minute)

	s := story(1, "u1")
	s.EpicID = ptr(int64(999)) // dangling
	s.IterationID = ptr(int64(3))

	refs := r.Stories(context.Background(), []shortcut.Story{s})

	if len(refs.Related.Epics) != 1 {
		t.Fatalf("len(Related.Epics) = %d, want 1", len(refs.Related.Epics))
	}
	if refs.Related.Epics[0].Found {
		t.Error("dangling epic reference marked found")
	}
	if refs.Related.Epics[0].ID != 999 {
		t.Errorf("epic marker ID = %d, want 999", refs.Related.Epics[0].ID)
	}

	// The rest of the hydration completed normally.
	if len(refs.Related.Iterations) != 1 || !refs.Related.Iterations[0].Found {
		t.Errorf("iteration hydration disturbed by epic miss: %+v", refs.Related.Iterations)
	}
	if len(refs.Related.Users) != 1 {
		t.Errorf("owner hydration disturbed by epic miss: %+v", refs.Related.Users)
	}
}

func TestStories_EpicUpstreamFailureAbsorbed(t *testing.T) {
	api := newFakeAPI()
	api.epicErr = map[int64]error{7: errors.New("boom: 500")}
	r := newResolver(api, time.Minute)

	s1 := story(1, "u1")
	s1.EpicID = ptr(int64(7))
	s2 := story(2, "u2")
	s2.IterationID = ptr(int64(3))

	refs := r.Stories(context.Background(), []shortcut.Story{s1, s2})

	if len(refs.Related.Epics) != 1 || refs.Related.Epics[0].Found {
		t.Errorf("upstream epic failure should become a not-found marker: %+v", refs.Related.Epics)
	}
	if len(refs.Related.Iterations) != 1 || !refs.Related.Iterations[0].Found {
		t.Errorf("iteration resolution aborted by epic failure: %+v", refs.Related.Iterations)
	}
}

func TestStories_TransitiveObjective(t *testing.T) {
	api := newFakeAPI()
	api.epics[7].MilestoneID = ptr(int64(5))
	r := newResolver(api, time.Minute)

	s := story(1, "u1")
	s.EpicID = ptr(int64(7))

	refs := r.Stories(context.Background(), []shortcut.Story{s})

	if len(refs.Related.Objectives) != 1 || !refs.Related.Objectives[0].Found {
		t.Fatalf("objective not hydrated through epic: %+v", refs.Related.Objectives)
	}
	if refs.Related.Objectives[0].Objective.Name != "Q2 revenue" {
		t.Errorf("objective name = %q, want Q2 revenue", refs.Related.Objectives[0].Objective.Name)
	}

	detail := refs.StoryDetail(s)
	if detail.Objective != "Q2 revenue" {
		t.Errorf("StoryDetail.Objective = %q, want Q2 revenue", detail.Objective)
	}
}

func TestStories_PerIDFetchesDeduplicated(t *testing.T) {
	api := newFakeAPI()
	r := newResolver(api, time.Minute)

	s1 := story(1, "u1")
	s1.EpicID = ptr(int64(7))
	s2 := story(2, "u2")
	s2.EpicID = ptr(int64(7))

	r.Stories(context.Background(), []shortcut.Story{s1, s2})

	if api.getEpicCalls != 1 {
		t.Errorf("GetEpic called %d times for one shared epic, want 1", api.getEpicCalls)
	}
}

func TestStoryViews_DerivedFromSameRefs(t *testing.T) {
	api := newFakeAPI()
	r := newResolver(api, time.Minute)

	s := story(1, "u1", "u2")
	s.GroupID = ptr("g1")
	s.EpicID = ptr(int64(7))

	refs := r.Stories(context.Background(), []shortcut.Story{s})
	callsBefore := api.getEpicCalls + api.getIterationCalls + api.getMilestoneCalls +
		api.listMemberCalls + api.listWorkflowCalls + api.listGroupCalls

	summary := refs.StorySummary(s)
	detail := refs.StoryDetail(s)

	callsAfter := api.getEpicCalls + api.getIterationCalls + api.getMilestoneCalls +
		api.listMemberCalls + api.listWorkflowCalls + api.listGroupCalls
	if callsAfter != callsBefore {
		t.Error("deriving views triggered network calls")
	}

	if summary.State != "In Review" {
		t.Errorf("summary.State = %q, want In Review", summary.State)
	}
	if diff := cmp.Diff([]string{"andreas", "kaylee"}, summary.Owners); diff != "" {
		t.Errorf("summary.Owners mismatch (-want +got):\n%s", diff)
	}
	if detail.Workflow != "Engineering" {
		t.Errorf("detail.Workflow = %q, want Engineering", detail.Workflow)
	}
	if detail.Team != "Platform" {
		t.Errorf("detail.Team = %q, want Platform", detail.Team)
	}
	if detail.Epic != "Billing revamp" {
		t.Errorf("detail.Epic = %q, want Billing revamp", detail.Epic)
	}
}

func TestStoryViews_UnknownOwnerPolicy(t *testing.T) {
	api := newFakeAPI()
	r := newResolver(api, time.Minute)

	s := story(1, "u1", "ghost")
	refs := r.Stories(context.Background(), []shortcut.Story{s})

	// Summary silently drops the unknown id; detail keeps a marker.
	summary := refs.StorySummary(s)
	if diff := cmp.Diff([]string{"andreas"}, summary.Owners); diff != "" {
		t.Errorf("summary.Owners mismatch (-want +got):\n%s", diff)
	}
	detail := refs.StoryDetail(s)
	if diff := cmp.Diff([]string{"andreas", "(unknown)"}, detail.Owners); diff != "" {
		t.Errorf("detail.Owners mismatch (-want +got):\n%s", diff)
	}
}

func TestEpics_HydratesObjectiveAndTeam(t *testing.T) {
	api := newFakeAPI()
	r := newResolver(api, time.Minute)

	e := shortcut.Epic{
		ID:          7,
		Name:        "Billing revamp",
		OwnerIDs:    []string{"u2"},
		GroupID:     ptr("g1"),
		MilestoneID: ptr(int64(5)),
	}

	refs := r.Epics(context.Background(), []shortcut.Epic{e})
	detail := refs.EpicDetail(e)

	if detail.Team != "Platform" {
		t.Errorf("detail.Team = %q, want Platform", detail.Team)
	}
	if detail.Objective != "Q2 revenue" {
		t.Errorf("detail.Objective = %q, want Q2 revenue", detail.Objective)
	}
	if diff := cmp.Diff([]string{"kaylee"}, detail.Owners); diff != "" {
		t.Errorf("detail.Owners mismatch (-want +got):\n%s", diff)
	}
}

func TestIterations_HydratesTeams(t *testing.T) {
	api := newFakeAPI()
	r := newResolver(api, time.Minute)

	it := shortcut.Iteration{ID: 3, Name: "Sprint 12", GroupIDs: []string{"g1"}}
	refs := r.Iterations(context.Background(), []shortcut.Iteration{it})

	view := refs.IterationView(it)
	if diff := cmp.Diff([]string{"Platform"}, view.Teams); diff != "" {
		t.Errorf("view.Teams mismatch (-want +got):\n%s", diff)
	}
}

func TestTeams_PrimaryReadPropagatesRefillError(t *testing.T) {
	api := newFakeAPI()
	r := newResolver(api, time.Minute)

	// Prime the cache, then poison the list endpoint; a fresh cache
	// still serves without error.
	if _, err := r.Teams(context.Background()); err != nil {
		t.Fatalf("Teams failed: %v", err)
	}

	failing := &failingAPI{fakeAPI: api}
	r2 := newResolver(failing, time.Minute)
	if _, err := r2.Teams(context.Background()); err == nil {
		t.Error("Teams with failing list endpoint should return an error")
	}
}

// failingAPI fails every bulk list call.
type failingAPI struct {
	*fakeAPI
}

func (f *failingAPI) ListGroups(ctx context.Context) ([]shortcut.Group, error) {
	return nil, errors.New("boom")
}
