// Package apiclient talks to the blog backend's HTTP API. It implements
// ports.Backend: one resource collection per entity, all exchanging the
// canonical-record JSON shape except the list reads, which return the
// server-computed Dto shape.
package apiclient

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

	"github.com/yamacbayin/blog-admin-panel/internal/core/domain"
	"github.com/yamacbayin/blog-admin-panel/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client talks to the blog backend HTTP API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// Ensure Client implements the backend port at compile time.
var _ ports.Backend = (*Client)(nil)

// New builds a Client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string, timeout time.Duration) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("base URL is empty")
	}
	base, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must include scheme and host", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) Users() ports.Collection[domain.User, domain.UserDto] {
	return collection[domain.User, domain.UserDto]{client: c, path: "/users"}
}

func (c *Client) Categories() ports.Collection[domain.Category, domain.CategoryDto] {
	return collection[domain.Category, domain.CategoryDto]{client: c, path: "/categories"}
}

func (c *Client) Posts() ports.Collection[domain.Post, domain.PostDto] {
	return collection[domain.Post, domain.PostDto]{client: c, path: "/posts"}
}

func (c *Client) Comments() ports.Collection[domain.Comment, domain.CommentDto] {
	return collection[domain.Comment, domain.CommentDto]{client: c, path: "/comments"}
}

// collection implements ports.Collection for one resource path.
type collection[C, D any] struct {
	client *Client
	path   string
}

func (col collection[C, D]) List(ctx context.Context) ([]D, error) {
	var out []D
	if err := col.client.do(ctx, http.MethodGet, col.path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (col collection[C, D]) Create(ctx context.Context, record C) (*C, error) {
	var out C
	if err := col.client.do(ctx, http.MethodPost, col.path, record, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (col collection[C, D]) Update(ctx context.Context, record C) (*C, error) {
	var out C
	if err := col.client.do(ctx, http.MethodPut, col.path, record, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (col collection[C, D]) Delete(ctx context.Context, id int) (*C, error) {
	var out C
	if err := col.client.do(ctx, http.MethodDelete, col.path+"/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one request and decodes the JSON response into out. Non-2xx
// responses become a *ports.RemoteError carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ports.RemoteError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return remoteError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ports.RemoteError{StatusCode: resp.StatusCode, Message: "decode response: " + err.Error()}
	}
	return nil
}

// remoteError extracts the server's message from an error response. Two
// envelope shapes exist in the wild: the API's own {"error": "..."} and the
// problem-details {"detail": "...", "title": "..."} emitted by proxies.
func remoteError(resp *http.Response) *ports.RemoteError {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var envelope struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil {
		if envelope.Error != "" {
			return &ports.RemoteError{StatusCode: resp.StatusCode, Message: envelope.Error}
		}
		if envelope.Detail != "" {
			return &ports.RemoteError{StatusCode: resp.StatusCode, Message: envelope.Detail + " - " + envelope.Title}
		}
	}
	return &ports.RemoteError{StatusCode: resp.StatusCode}
}
