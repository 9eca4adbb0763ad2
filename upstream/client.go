package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/campuskit/analytics/domain"
)

// TokenSource supplies the bearer credential for upstream calls. The
// credential is owned by an external authentication collaborator; the client
// only forwards it.
type TokenSource interface {
	Token() (string, error)
}

type staticTokenSource struct {
	token string
}

func (s staticTokenSource) Token() (string, error) {
	if s.token == "" {
		return "", domain.ErrNoCredential
	}
	return s.token, nil
}

// StaticToken returns a TokenSource serving a fixed credential.
func StaticToken(token string) TokenSource {
	return staticTokenSource{token: token}
}

// Fetcher abstracts the remote record endpoints for the cache layer.
type Fetcher interface {
	FetchTasks(ctx context.Context) ([]RawTask, error)
	FetchSubmissions(ctx context.Context) ([]RawSubmission, error)
}

// Client performs authenticated reads against the program backend. It does a
// single attempt per call: no retries, no backoff, failures surface
// immediately to the caller.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	tokens  TokenSource
	logger  *zap.Logger
}

// NewClient builds an upstream client for the given base URL.
func NewClient(baseURL string, tokens TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:    &fasthttp.Client{},
		baseURL: baseURL,
		tokens:  tokens,
		logger:  logger,
	}
}

// FetchTasks retrieves the raw task catalog.
func (c *Client) FetchTasks(ctx context.Context) ([]RawTask, error) {
	var tasks []RawTask
	if err := c.getJSON(ctx, "/api/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// FetchSubmissions retrieves the raw submission records.
func (c *Client) FetchSubmissions(ctx context.Context) ([]RawSubmission, error) {
	var subs []RawSubmission
	if err := c.getJSON(ctx, "/api/my-submissions", &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// FetchLeaderboard retrieves the top-ranked participants. Records are served
// to consumers as-is.
func (c *Client) FetchLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	var entries []domain.LeaderboardEntry
	if err := c.getJSON(ctx, fmt.Sprintf("/api/leaderboard?limit=%d", limit), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Ping reports whether the upstream answers HTTP at all. Any response,
// including an auth rejection, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/api/tasks")
	req.Header.SetMethod(fasthttp.MethodGet)

	return c.do(ctx, req, resp)
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	token, err := c.tokens.Token()
	if err != nil {
		return err
	}
	if token == "" {
		return domain.ErrNoCredential
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
	req.Header.SetContentType("application/json")

	if err := c.do(ctx, req, resp); err != nil {
		return domain.WrapError(domain.ErrCodeUpstream, "upstream request failed", err)
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return &domain.TransportError{StatusCode: status}
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return domain.WrapError(domain.ErrCodeUpstream, "decoding upstream payload", err)
	}

	c.logger.Debug("upstream fetch", zap.String("path", path), zap.Int("status", status))
	return nil
}

func (c *Client) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if ctx != nil {
		if deadline, ok := ctx.Deadline(); ok {
			return c.http.DoDeadline(req, resp, deadline)
		}
	}
	return c.http.Do(req, resp)
}
