package worksdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the workspace service. Unauthenticated operations
// hang off the Client directly; WithToken returns a Session for
// endpoints that require a bearer token from the identity provider.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithToken returns a Session that sends the given bearer token on
// every request. The token is issued by the external identity
// provider; this SDK never mints credentials itself.
func (c *Client) WithToken(token string) *Session {
	return &Session{client: c, token: token}
}

// ResolveInvite fetches a pending invite's details for the join page.
// Unknown, used and expired tokens all fail identically.
func (c *Client) ResolveInvite(ctx context.Context, token string) (ResolveInviteResponse, error) {
	var out ResolveInviteResponse
	err := c.do(ctx, http.MethodGet, "/v1/invites/"+url.PathEscape(token), "", nil, &out)
	return out, err
}

// Livez reports process liveness.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/livez", "", nil, &out)
	return out, err
}

// Readyz reports readiness, including store reachability.
func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/readyz", "", nil, &out)
	return out, err
}

// Session is a Client bound to one bearer token.
type Session struct {
	client *Client
	token  string
}

// CreateWorkspace creates a workspace owned by the caller.
func (s *Session) CreateWorkspace(ctx context.Context, req CreateWorkspaceRequest) (WorkspaceResponse, error) {
	var out WorkspaceResponse
	err := s.client.do(ctx, http.MethodPost, "/v1/workspaces", s.token, req, &out)
	return out, err
}

// Members lists a workspace's members; the caller must be one of them.
func (s *Session) Members(ctx context.Context, workspaceID string) (MembersResponse, error) {
	var out MembersResponse
	err := s.client.do(ctx, http.MethodGet, "/v1/workspaces/"+url.PathEscape(workspaceID)+"/members", s.token, nil, &out)
	return out, err
}

// CreateInvite mints an invite token; caller must hold admin or owner.
func (s *Session) CreateInvite(ctx context.Context, workspaceID string, req CreateInviteRequest) (CreateInviteResponse, error) {
	var out CreateInviteResponse
	err := s.client.do(ctx, http.MethodPost, "/v1/workspaces/"+url.PathEscape(workspaceID)+"/invites", s.token, req, &out)
	return out, err
}

// AcceptInvite consumes an invite token, joining the caller to its
// workspace.
func (s *Session) AcceptInvite(ctx context.Context, token string) (AcceptInviteResponse, error) {
	var out AcceptInviteResponse
	err := s.client.do(ctx, http.MethodPost, "/v1/invites/"+url.PathEscape(token)+"/accept", s.token, nil, &out)
	return out, err
}

// Document fetches the persisted sections of a document.
func (s *Session) Document(ctx context.Context, ownerID string) (DocumentResponse, error) {
	var out DocumentResponse
	err := s.client.do(ctx, http.MethodGet, "/v1/documents/"+url.PathEscape(ownerID), s.token, nil, &out)
	return out, err
}

// PutSection applies one section edit to the document's draft. The
// value must be valid JSON; known section keys are shape-checked.
func (s *Session) PutSection(ctx context.Context, ownerID, key string, value json.RawMessage) (SaveStatusResponse, error) {
	var out SaveStatusResponse
	path := "/v1/documents/" + url.PathEscape(ownerID) + "/sections/" + url.PathEscape(key)
	err := s.client.do(ctx, http.MethodPut, path, s.token, value, &out)
	return out, err
}

// FlushDocument persists the draft immediately instead of waiting out
// the autosave quiet period.
func (s *Session) FlushDocument(ctx context.Context, ownerID string) (SaveStatusResponse, error) {
	var out SaveStatusResponse
	err := s.client.do(ctx, http.MethodPost, "/v1/documents/"+url.PathEscape(ownerID)+"/flush", s.token, nil, &out)
	return out, err
}

// DocumentStatus reports the document's save state.
func (s *Session) DocumentStatus(ctx context.Context, ownerID string) (SaveStatusResponse, error) {
	var out SaveStatusResponse
	err := s.client.do(ctx, http.MethodGet, "/v1/documents/"+url.PathEscape(ownerID)+"/status", s.token, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body *bytes.Reader
	switch v := in.(type) {
	case nil:
		body = bytes.NewReader(nil)
	case json.RawMessage:
		body = bytes.NewReader(v)
	default:
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: "server_error"}
		var envelope ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil && envelope.Error != "" {
			apiErr.Code = envelope.Error
			apiErr.Description = envelope.ErrorDescription
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
