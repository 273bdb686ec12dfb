package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/colonyops/remark/internal/core/comments"
)

// Default endpoint layout of the public comment dataset.
const (
	DefaultBaseURL      = "https://jsonplaceholder.typicode.com"
	DefaultCommentsPath = "/comments"
	DefaultPostsPath    = "/posts"
)

// HTTPOptions configures an HTTPSource. Zero values fall back to defaults.
type HTTPOptions struct {
	BaseURL      string
	CommentsPath string
	PostsPath    string
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	Client  *http.Client
}

// HTTPSource fetches the datasets with unauthenticated GET requests.
type HTTPSource struct {
	client      *http.Client
	commentsURL string
	postsURL    string
}

// NewHTTPSource builds a source from opts.
func NewHTTPSource(opts HTTPOptions) (*HTTPSource, error) {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", base, err)
	}

	commentsPath := opts.CommentsPath
	if commentsPath == "" {
		commentsPath = DefaultCommentsPath
	}
	postsPath := opts.PostsPath
	if postsPath == "" {
		postsPath = DefaultPostsPath
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	return &HTTPSource{
		client:      client,
		commentsURL: joinURL(base, commentsPath),
		postsURL:    joinURL(base, postsPath),
	}, nil
}

func (s *HTTPSource) Comments(ctx context.Context) ([]comments.Comment, error) {
	return getJSON[[]comments.Comment](ctx, s.client, s.commentsURL)
}

func (s *HTTPSource) Posts(ctx context.Context) ([]comments.Post, error) {
	return getJSON[[]comments.Post](ctx, s.client, s.postsURL)
}

func getJSON[T any](ctx context.Context, client *http.Client, target string) (T, error) {
	var out T

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return out, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return out, fmt.Errorf("get %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, fmt.Errorf("get %s: %w: %d", target, ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("get %s: %w: %w", target, ErrDecode, err)
	}
	return out, nil
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
