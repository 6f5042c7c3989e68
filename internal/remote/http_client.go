package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tOgg1/trackinbox/internal/logging"
	"github.com/tOgg1/trackinbox/internal/models"
)

const defaultRequestTimeout = 30 * time.Second

// ClientConfig configures the HTTP client.
type ClientConfig struct {
	// BaseURL is the service root, e.g. https://example.myjetbrains.com.
	BaseURL string

	// Token is the bearer token sent on every request.
	Token string

	// Timeout bounds each request. Zero means the default.
	Timeout time.Duration

	// HTTPClient overrides the underlying client, for tests.
	HTTPClient *http.Client
}

// Client is the HTTP implementation of Service.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates an HTTP service client.
func NewClient(cfg ClientConfig) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("base URL required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultRequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: base,
		token:   cfg.Token,
		http:    httpClient,
		logger:  logging.Component("remote"),
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("remote call failed")
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetThreads fetches one page of threads for a folder. The synthetic
// all folder is requested as the absence of a folder parameter. Kinds
// are resolved before the threads leave this package.
func (c *Client) GetThreads(ctx context.Context, folder models.FolderID, cursor int64, unreadOnly bool) ([]models.Thread, error) {
	query := url.Values{}
	if folder != "" && !folder.Synthetic() {
		query.Set("folder", string(folder))
	}
	if cursor > 0 {
		query.Set("cursor", strconv.FormatInt(cursor, 10))
	}
	if unreadOnly {
		query.Set("unreadOnly", "true")
	}

	var threads []models.Thread
	if err := c.do(ctx, http.MethodGet, "/api/inbox/threads", query, nil, &threads); err != nil {
		return nil, err
	}
	for i := range threads {
		threads[i].ResolveKind()
	}
	return threads, nil
}

// GetFolders fetches the folder watermarks.
func (c *Client) GetFolders(ctx context.Context) ([]models.Folder, error) {
	var folders []models.Folder
	if err := c.do(ctx, http.MethodGet, "/api/inbox/folders", nil, nil, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// UpdateFolders advances lastSeen on one concrete folder.
func (c *Client) UpdateFolders(ctx context.Context, folder models.FolderID, lastSeen int64) error {
	path := "/api/inbox/folders/" + url.PathEscape(string(folder))
	body := map[string]int64{"lastSeen": lastSeen}
	return c.do(ctx, http.MethodPost, path, nil, body, nil)
}

// SaveAllAsSeen advances lastSeen everywhere.
func (c *Client) SaveAllAsSeen(ctx context.Context, lastSeen int64) error {
	body := map[string]int64{"lastSeen": lastSeen}
	return c.do(ctx, http.MethodPost, "/api/inbox/saveAllAsSeen", nil, body, nil)
}

// MuteToggle flips a thread's muted flag and returns the
// authoritative result.
func (c *Client) MuteToggle(ctx context.Context, threadID string, muted bool) (bool, error) {
	path := "/api/inbox/threads/" + url.PathEscape(threadID) + "/mute"
	var out struct {
		Muted bool `json:"muted"`
	}
	if err := c.do(ctx, http.MethodPost, path, nil, map[string]bool{"muted": muted}, &out); err != nil {
		return false, err
	}
	return out.Muted, nil
}

// MarkMessages sets the read flag on a batch of messages.
func (c *Client) MarkMessages(ctx context.Context, refs []models.MessageRef, read bool) error {
	body := struct {
		Messages []models.MessageRef `json:"messages"`
		Read     bool                `json:"read"`
	}{Messages: refs, Read: read}
	return c.do(ctx, http.MethodPost, "/api/inbox/markMessages", nil, body, nil)
}

// AddCommentReaction adds an emoji reaction to a comment.
func (c *Client) AddCommentReaction(ctx context.Context, entityID, commentID, reaction string) (models.Reaction, error) {
	path := "/api/issues/" + url.PathEscape(entityID) + "/comments/" + url.PathEscape(commentID) + "/reactions"
	var out models.Reaction
	if err := c.do(ctx, http.MethodPost, path, nil, map[string]string{"reaction": reaction}, &out); err != nil {
		return models.Reaction{}, err
	}
	return out, nil
}

// RemoveCommentReaction removes a reaction by id.
func (c *Client) RemoveCommentReaction(ctx context.Context, entityID, commentID, reactionID string) error {
	path := "/api/issues/" + url.PathEscape(entityID) + "/comments/" + url.PathEscape(commentID) +
		"/reactions/" + url.PathEscape(reactionID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
