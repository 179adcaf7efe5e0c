// Package client is the Go counterpart of the web frontend's API layer:
// a thin HTTP client that carries the session through both channels (cookie
// jar and bearer header) and globally invalidates local auth state on any
// authorization failure, so individual call sites never handle that case.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hostelhub/hostel-api/internal/client/session"
)

const requestTimeout = 10 * time.Second

// APIError is a non-2xx response decoded into the server's error envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client talks to the hostel API. Every request flows through do, which
// attaches the bearer token when one is held and funnels 401/403 responses
// into the session store's invalidation path.
type Client struct {
	http    *http.Client
	baseURL *url.URL
	store   *session.Store
}

// New builds a Client over the given jar and session store. The jar should
// be the same one backing the store's cookie mirror.
func New(baseURL *url.URL, jar http.CookieJar, store *session.Store) *Client {
	return &Client{
		http:    &http.Client{Jar: jar, Timeout: requestTimeout},
		baseURL: baseURL,
		store:   store,
	}
}

// Store exposes the session store for hydration and gating.
func (c *Client) Store() *session.Store {
	return c.store
}

// --- Payload types (mirror the server's JSON) ---

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
}

type registerResponse struct {
	Message string           `json:"message"`
	User    session.Snapshot `json:"user"`
}

type loginResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	UserID    string `json:"userid"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

type userEnvelope struct {
	User session.Snapshot `json:"user"`
}

type UpdateProfileRequest struct {
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type Room struct {
	ID            string  `json:"id"`
	Number        string  `json:"number"`
	Type          string  `json:"type"`
	Capacity      int     `json:"capacity"`
	PricePerNight float64 `json:"price_per_night"`
	Status        string  `json:"status"`
	Notes         string  `json:"notes,omitempty"`
}

type RoomList struct {
	Items      []Room `json:"items"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// --- Operations ---

// Register creates an account. It does not log in: the server returns the
// sanitized user only, and the session stays as it was.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*session.Snapshot, error) {
	var resp registerResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login exchanges credentials for a session and transitions the store to
// authenticated, writing all three copies from the one response.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Snapshot, error) {
	body := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}

	snap := session.Snapshot{
		ID:        resp.UserID,
		Username:  resp.Username,
		Email:     resp.Email,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
		Role:      resp.Role,
		Token:     resp.Token,
	}
	if err := c.store.Login(snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Logout tells the server to clear its cookies, then clears local state.
// Local clearing runs even when the server call fails: discard is
// client-authoritative. When the server answers with an auth failure the
// interceptor in do has already run the clearing transition, so the store
// is left alone rather than navigating twice.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	if c.store.State() != session.StateAnonymous {
		c.store.Logout()
	}
	return err
}

// Me fetches the authenticated user's sanitized record.
func (c *Client) Me(ctx context.Context) (*session.Snapshot, error) {
	var resp userEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// UpdateProfile rewrites the caller's profile and runs the store's update
// transition with the refreshed projection.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*session.Snapshot, error) {
	var resp userEnvelope
	if err := c.do(ctx, http.MethodPut, "/api/auth/me", req, &resp); err != nil {
		return nil, err
	}

	snap := resp.User
	snap.Token = c.store.Token()
	if err := c.store.Update(snap); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ListRooms fetches a page of rooms (staff/admin only).
func (c *Client) ListRooms(ctx context.Context, status, roomType string, page, limit int) (*RoomList, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if roomType != "" {
		q.Set("type", roomType)
	}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}

	path := "/api/adminauth/rooms"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp RoomList
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do performs one request/response cycle. A 401 or 403 from any endpoint
// invalidates the local session before the error is returned, so callers do
// not need per-call handling for expired or rejected credentials.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	ref, err := url.Parse(path)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.ResolveReference(ref).String(), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.store.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.store.Invalidate()
	}

	if resp.StatusCode >= 400 {
		var envelope struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return &APIError{Status: resp.StatusCode, Message: envelope.Message}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
