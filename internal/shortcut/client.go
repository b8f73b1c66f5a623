package shortcut

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Shortcut allows 200 requests per minute per token. The limiter keeps
// bursty hydration (many by-id fetches in one tool call) under that cap.
const (
	requestsPerMinute = 200
	requestBurst      = 10
)

// Options configures a Client. Zero values fall back to sane defaults
// except Token, which is required.
type Options struct {
	Token      string
	BaseURL    string
	Timeout    time.Duration
	SearchPage int
}

// Client talks to the Shortcut V3 REST API. It is safe for concurrent
// use; the only mutable state is the memoized current member.
type Client struct {
	http       *http.Client
	baseURL    string
	token      string
	limiter    *rate.Limiter
	searchPage int

	mu sync.Mutex
	me *MemberInfo
}

// NewClient creates a Client for the given options.
func NewClient(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://api.app.shortcut.com/api/v3"
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	page := opts.SearchPage
	if page <= 0 || page > 25 {
		page = 25
	}
	return &Client{
		http:       &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		token:      opts.Token,
		limiter:    rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), requestBurst),
		searchPage: page,
	}
}

// do issues one API request and decodes the JSON response into out
// (skipped when out is nil). 404 maps to ErrNotFound, other non-2xx
// statuses to *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Shortcut-Token", c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{Status: resp.StatusCode, Path: path, Body: string(bytes.TrimSpace(snippet))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// CurrentMember returns the member that owns the API token. The result
// is memoized for the client's lifetime — tools resolve "me" filters on
// every call and the identity behind a token never changes.
func (c *Client) CurrentMember(ctx context.Context) (*MemberInfo, error) {
	c.mu.Lock()
	me := c.me
	c.mu.Unlock()
	if me != nil {
		return me, nil
	}

	var info MemberInfo
	if err := c.do(ctx, http.MethodGet, "/member", nil, nil, &info); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.me = &info
	c.mu.Unlock()
	return &info, nil
}

// ListMembers returns every member of the workspace.
func (c *Client) ListMembers(ctx context.Context) ([]Member, error) {
	var members []Member
	if err := c.do(ctx, http.MethodGet, "/members", nil, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// ListWorkflows returns every workflow with its states.
func (c *Client) ListWorkflows(ctx context.Context) ([]Workflow, error) {
	var workflows []Workflow
	if err := c.do(ctx, http.MethodGet, "/workflows", nil, nil, &workflows); err != nil {
		return nil, err
	}
	return workflows, nil
}

// ListGroups returns every team in the workspace.
func (c *Client) ListGroups(ctx context.Context) ([]Group, error) {
	var groups []Group
	if err := c.do(ctx, http.MethodGet, "/groups", nil, nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// GetStory fetches one story by id.
func (c *Client) GetStory(ctx context.Context, id int64) (*Story, error) {
	var s Story
	if err := c.do(ctx, http.MethodGet, "/stories/"+strconv.FormatInt(id, 10), nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetEpic fetches one epic by id.
func (c *Client) GetEpic(ctx context.Context, id int64) (*Epic, error) {
	var e Epic
	if err := c.do(ctx, http.MethodGet, "/epics/"+strconv.FormatInt(id, 10), nil, nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// GetIteration fetches one iteration by id.
func (c *Client) GetIteration(ctx context.Context, id int64) (*Iteration, error) {
	var it Iteration
	if err := c.do(ctx, http.MethodGet, "/iterations/"+strconv.FormatInt(id, 10), nil, nil, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// GetMilestone fetches one objective by id.
func (c *Client) GetMilestone(ctx context.Context, id int64) (*Milestone, error) {
	var m Milestone
	if err := c.do(ctx, http.MethodGet, "/milestones/"+strconv.FormatInt(id, 10), nil, nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// searchResult is the envelope every /search/* endpoint returns.
type searchResult[T any] struct {
	Total int `json:"total"`
	Data  []T `json:"data"`
}

func (c *Client) searchQuery(query string) url.Values {
	v := url.Values{}
	v.Set("query", query)
	v.Set("page_size", strconv.Itoa(c.searchPage))
	v.Set("detail", "slim")
	return v
}

// SearchStories runs a compiled query against the story search endpoint
// and returns one page of matches plus the total match count.
func (c *Client) SearchStories(ctx context.Context, query string) ([]Story, int, error) {
	var result searchResult[Story]
	if err := c.do(ctx, http.MethodGet, "/search/stories", c.searchQuery(query), nil, &result); err != nil {
		return nil, 0, err
	}
	return result.Data, result.Total, nil
}

// SearchEpics runs a compiled query against the epic search endpoint.
func (c *Client) SearchEpics(ctx context.Context, query string) ([]Epic, int, error) {
	var result searchResult[Epic]
	if err := c.do(ctx, http.MethodGet, "/search/epics", c.searchQuery(query), nil, &result); err != nil {
		return nil, 0, err
	}
	return result.Data, result.Total, nil
}

// SearchIterations runs a compiled query against the iteration search endpoint.
func (c *Client) SearchIterations(ctx context.Context, query string) ([]Iteration, int, error) {
	var result searchResult[Iteration]
	if err := c.do(ctx, http.MethodGet, "/search/iterations", c.searchQuery(query), nil, &result); err != nil {
		return nil, 0, err
	}
	return result.Data, result.Total, nil
}

// SearchMilestones runs a compiled query against the objective search endpoint.
func (c *Client) SearchMilestones(ctx context.Context, query string) ([]Milestone, int, error) {
	var result searchResult[Milestone]
	if err := c.do(ctx, http.MethodGet, "/search/milestones", c.searchQuery(query), nil, &result); err != nil {
		return nil, 0, err
	}
	return result.Data, result.Total, nil
}

// CreateStory creates a story and returns the created entity.
func (c *Client) CreateStory(ctx context.Context, params CreateStoryParams) (*Story, error) {
	var s Story
	if err := c.do(ctx, http.MethodPost, "/stories", nil, params, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateStory applies a partial update to a story and returns the
// updated entity.
func (c *Client) UpdateStory(ctx context.Context, id int64, params UpdateStoryParams) (*Story, error) {
	var s Story
	if err := c.do(ctx, http.MethodPut, "/stories/"+strconv.FormatInt(id, 10), nil, params, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
