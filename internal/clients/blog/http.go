package blog_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"blogboard/internal/custom_errors"
	"blogboard/internal/logger"
	"blogboard/internal/model"
)

// HTTPClient talks to the blogboard server API. The bearer token of the
// signed-in user, if any, is attached to every request.
type HTTPClient struct {
	baseURL   string
	http      *http.Client
	log       *logger.Logger
	tokenPath string

	mu    sync.RWMutex
	token string
}

func NewHTTPClient(baseURL string, log *logger.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

// NewPersistentHTTPClient keeps the session token in a file so the
// session survives across CLI invocations. A missing or unreadable file
// just means no stored session.
func NewPersistentHTTPClient(baseURL, tokenPath string, log *logger.Logger) *HTTPClient {
	c := NewHTTPClient(baseURL, log)
	c.tokenPath = tokenPath
	if data, err := os.ReadFile(tokenPath); err == nil {
		c.token = strings.TrimSpace(string(data))
	}
	return c
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if c.tokenPath == "" {
		return
	}
	if token == "" {
		if err := os.Remove(c.tokenPath); err != nil && !os.IsNotExist(err) {
			c.log.Debug("Failed to remove stored session token",
				slog.String("path", c.tokenPath),
				slog.String("error", err.Error()))
		}
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.tokenPath), 0o700); err != nil {
		c.log.Debug("Failed to create session token dir",
			slog.String("path", c.tokenPath),
			slog.String("error", err.Error()))
		return
	}
	if err := os.WriteFile(c.tokenPath, []byte(token), 0o600); err != nil {
		c.log.Debug("Failed to store session token",
			slog.String("path", c.tokenPath),
			slog.String("error", err.Error()))
	}
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type listPostsResponse struct {
	Posts      []*model.PostDetailed `json:"posts"`
	TotalCount int                   `json:"total_count"`
}

func (c *HTTPClient) FetchPage(ctx context.Context, page, pageSize int, search string) ([]*model.PostDetailed, int, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	if strings.TrimSpace(search) != "" {
		query.Set("search", search)
	}

	var resp listPostsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/posts?"+query.Encode(), nil, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Posts, resp.TotalCount, nil
}

func (c *HTTPClient) GetPost(ctx context.Context, id int64) (*model.PostDetailed, error) {
	var post model.PostDetailed
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, title string, excerpt *string, content string) (*model.PostDetailed, error) {
	body := map[string]any{
		"title":   title,
		"content": content,
	}
	if excerpt != nil {
		body["excerpt"] = *excerpt
	}

	var created model.PostDetailed
	if err := c.do(ctx, http.MethodPost, "/api/v1/posts", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdatePost(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error) {
	var updated model.Post
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/posts/%d", id), update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *HTTPClient) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", id), nil, nil)
}

type sessionResponse struct {
	Identity *model.Identity `json:"identity"`
	Token    string          `json:"token"`
}

func (c *HTTPClient) SignUp(ctx context.Context, req *model.SignUpDTO) (*model.Identity, error) {
	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return resp.Identity, nil
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*model.Identity, error) {
	body := map[string]string{"email": email, "password": password}
	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signin", body, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return resp.Identity, nil
}

func (c *HTTPClient) SignOut(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/signout", nil, nil)
	c.SetToken("")
	return err
}

func (c *HTTPClient) GetCurrentSession(ctx context.Context) (*model.Identity, error) {
	if c.Token() == "" {
		return nil, custom_errors.ErrSessionNotFound
	}
	var resp sessionResponse
	if err := c.do(ctx, http.MethodGet, "/auth/session", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Identity == nil || !resp.Identity.LoggedIn {
		return nil, custom_errors.ErrSessionNotFound
	}
	return resp.Identity, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("Request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return custom_errors.ErrExternalServiceError
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.statusError(method, path, resp.StatusCode)
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			c.log.Error("Failed to decode response",
				slog.String("path", path),
				slog.String("error", err.Error()))
			return custom_errors.ErrExternalServiceError
		}
	}
	return nil
}

func (c *HTTPClient) statusError(method, path string, status int) error {
	c.log.Debug("Request rejected",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status))

	switch status {
	case http.StatusBadRequest:
		return custom_errors.ErrPostValidation
	case http.StatusUnauthorized:
		return custom_errors.ErrUnauthenticated
	case http.StatusForbidden:
		return custom_errors.ErrForbidden
	case http.StatusNotFound:
		return custom_errors.ErrPostNotFound
	case http.StatusConflict:
		return custom_errors.ErrEmailAlreadyUsed
	default:
		return custom_errors.ErrExternalServiceError
	}
}
