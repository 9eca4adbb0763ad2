package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/campuskit/analytics/domain"
	"github.com/campuskit/analytics/internal/cache"
	"github.com/campuskit/analytics/upstream"
)

type fakeFetcher struct {
	tasks []upstream.RawTask
	subs  []upstream.RawSubmission
	err   error
}

func (f *fakeFetcher) FetchTasks(ctx context.Context) ([]upstream.RawTask, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tasks, nil
}

func (f *fakeFetcher) FetchSubmissions(ctx context.Context) ([]upstream.RawSubmission, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.subs, nil
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Meta   struct {
		Stale bool `json:"stale"`
	} `json:"meta"`
}

func newAnalyticsHandler(fetcher upstream.Fetcher) *AnalyticsHandler {
	return NewAnalyticsHandler(cache.New(fetcher, cache.DefaultTTL, nil), nil, nil)
}

func doRequest(t *testing.T, handler fasthttp.RequestHandler, uri string) (*fasthttp.RequestCtx, envelope) {
	t.Helper()
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI(uri)

	handler(ctx)

	var env envelope
	if err := json.Unmarshal(ctx.Response.Body(), &env); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return ctx, env
}

func TestGetTasks_ServesCachedData(t *testing.T) {
	fetcher := &fakeFetcher{
		tasks: []upstream.RawTask{{ID: "t1", Title: "Meet your mentor", Day: 1, TaskType: "orientation", PointsReward: 50}},
	}
	h := newAnalyticsHandler(fetcher)

	ctx, env := doRequest(t, h.GetTasks, "/api/v1/tasks")

	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.Response.StatusCode())
	}
	if env.Status != "success" {
		t.Fatalf("expected success envelope, got %q", env.Status)
	}

	var tasks []domain.Task
	if err := json.Unmarshal(env.Data, &tasks); err != nil {
		t.Fatalf("invalid task payload: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Category != domain.CategoryOrientation {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if env.Meta.Stale {
		t.Fatalf("fresh data should not be flagged stale")
	}
}

func TestGetTasks_DegradesToEmptyWithStaleMeta(t *testing.T) {
	h := newAnalyticsHandler(&fakeFetcher{err: errors.New("upstream down")})

	ctx, env := doRequest(t, h.GetTasks, "/api/v1/tasks")

	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("read API must not fail on upstream errors, got %d", ctx.Response.StatusCode())
	}
	if !env.Meta.Stale {
		t.Fatalf("expected stale hint after failed refresh")
	}

	var tasks []domain.Task
	if err := json.Unmarshal(env.Data, &tasks); err != nil {
		t.Fatalf("invalid task payload: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty task list, got %d", len(tasks))
	}
}

func TestGetOverview_StatusFilter(t *testing.T) {
	fetcher := &fakeFetcher{
		tasks: []upstream.RawTask{
			{ID: "t1", Title: "Meet your mentor", Day: 1, TaskType: "orientation", PointsReward: 50},
			{ID: "t2", Title: "First outreach", Day: 2, TaskType: "outreach", PointsReward: 100},
		},
		subs: []upstream.RawSubmission{
			{ID: "s1", TaskID: "t1", Day: 1, PointsEarned: 50, SubmissionDate: "2025-08-10T12:00:00Z"},
		},
	}
	h := newAnalyticsHandler(fetcher)

	_, env := doRequest(t, h.GetOverview, "/api/v1/overview?status=available")

	var result struct {
		Tasks       []domain.Task       `json:"tasks"`
		Completions []domain.Completion `json:"completions"`
		Stats       domain.Stats        `json:"stats"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("invalid overview payload: %v", err)
	}

	if len(result.Tasks) != 1 || result.Tasks[0].ID != "t2" {
		t.Fatalf("expected only the available task, got %+v", result.Tasks)
	}
	if len(result.Completions) != 0 {
		t.Fatalf("non-completed status must yield no completions, got %d", len(result.Completions))
	}
}

func TestGetStats_Envelope(t *testing.T) {
	fetcher := &fakeFetcher{
		tasks: []upstream.RawTask{{ID: "t1", Day: 1, PointsReward: 50}},
		subs: []upstream.RawSubmission{
			{ID: "s1", TaskID: "t1", Day: 1, PointsEarned: 50, SubmissionDate: "2025-08-10T12:00:00Z"},
		},
	}
	h := newAnalyticsHandler(fetcher)

	_, env := doRequest(t, h.GetStats, "/api/v1/stats")

	var stats domain.Stats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("invalid stats payload: %v", err)
	}
	if stats.TotalTasks != 1 || stats.CompletedTasks != 1 || stats.TotalPoints != 50 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestParseFilter_IgnoresLoneBound(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI("/api/v1/overview?start=2025-08-01")

	filter := parseFilter(ctx)
	if filter.DateRange != nil {
		t.Fatalf("a lone range bound must be ignored, got %+v", filter.DateRange)
	}
}

func TestParseFilter_AcceptsDateOnlyBounds(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI("/api/v1/overview?status=completed&start=2025-08-01&end=2025-08-31")

	filter := parseFilter(ctx)
	if filter.Status != "completed" {
		t.Fatalf("expected status parsed, got %q", filter.Status)
	}
	if filter.DateRange == nil {
		t.Fatalf("expected date range parsed")
	}
	if filter.DateRange.End.Before(filter.DateRange.Start) {
		t.Fatalf("range parsed out of order: %+v", filter.DateRange)
	}
}
