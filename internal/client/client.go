// Package client is the HTTP client for the user directory API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"useradmin/internal/errors"
	"useradmin/internal/model"
	"useradmin/internal/service"
)

// DefaultBaseURL is where the directory service listens by default.
const DefaultBaseURL = "http://localhost:4000"

// APIError is returned for transport failures and non-2xx responses.
// Message is the server's error text when it sent one, otherwise a
// route-specific fallback.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Client talks to the user directory API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sends "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListUsers fetches every user.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out model.UserList
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &out,
		"An error occurred while fetching users."); err != nil {
		return nil, err
	}
	if out.Users == nil {
		out.Users = []model.User{}
	}
	return out.Users, nil
}

// GetUser fetches one user by id.
func (c *Client) GetUser(ctx context.Context, id string) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodGet, userPath(id), nil, &out,
		fmt.Sprintf("An error occurred while fetching user with ID: %s.", id)); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser creates u. The email is checked locally first; an invalid one
// returns errors.ErrInvalidEmail without a request.
func (c *Client) CreateUser(ctx context.Context, u model.User) (*model.User, error) {
	if !service.IsEmail(u.Email) {
		return nil, errors.ErrInvalidEmail
	}
	var out model.User
	if err := c.do(ctx, http.MethodPost, "/api/users", userBody(u), &out,
		"An error occurred while creating a new user."); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser patches u.ID with u's name and email. The email is only checked
// when present.
func (c *Client) UpdateUser(ctx context.Context, u model.User) (*model.User, error) {
	if u.Email != "" && !service.IsEmail(u.Email) {
		return nil, errors.ErrInvalidEmail
	}
	var out model.User
	if err := c.do(ctx, http.MethodPatch, userPath(u.ID), userBody(u), &out,
		fmt.Sprintf("An error occurred while updating user with ID: %s.", u.ID)); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser deletes u.ID and returns the server's success flag.
func (c *Client) DeleteUser(ctx context.Context, u model.User) (bool, error) {
	var out model.DeleteResult
	if err := c.do(ctx, http.MethodDelete, userPath(u.ID), nil, &out,
		fmt.Sprintf("An error occurred while deleting user with ID: %s.", u.ID)); err != nil {
		return false, err
	}
	return out.Success, nil
}

func userPath(id string) string {
	return "/api/users/" + url.PathEscape(id)
}

func userBody(u model.User) map[string]string {
	return map[string]string{"name": u.Name, "email": u.Email}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &APIError{Message: fallback, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: fallback, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: fallback, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: fallback}
		var errBody errors.ErrorResponse
		if json.Unmarshal(data, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &APIError{Status: resp.StatusCode, Message: fallback, Err: err}
		}
	}
	return nil
}
