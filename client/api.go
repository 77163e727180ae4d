// Package client is the Go SDK for the Prompt Master service. It mirrors the
// original single-page app's structure: a session manager owning the current
// identity, a gateway translating domain operations into API calls plus a
// live snapshot subscription, view-models for the list and editor screens,
// and a shell holding navigation and theme state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"main/dto"
	"main/model"
	"main/pkg/apperrors"
)

// Identity is the authenticated user as seen by the SDK.
type Identity struct {
	UserID string
	Email  string
}

// APIClient talks to the REST surface. Token state is guarded so the
// gateway and session manager can share one instance.
type APIClient struct {
	BaseURL    string
	HTTPClient *http.Client

	mu      sync.RWMutex
	token   string
	refresh string
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *APIClient) setTokens(token, refresh string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
	a.refresh = refresh
}

// Token returns the current access token, empty when signed out.
func (a *APIClient) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// envelope matches the server's response wrapper.
type envelope struct {
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// do runs one API call and decodes the envelope. Failures come back as
// apperrors sentinels rebuilt from the wire code, so callers can
// distinguish permission problems from transient ones.
func (a *APIClient) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrTransient, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.BaseURL+path, reader)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrTransient, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := a.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrTransient, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && err != io.EOF {
		return apperrors.Wrap(apperrors.ErrTransient, err)
	}

	if resp.StatusCode >= 400 {
		if env.Code != "" {
			return apperrors.FromCode(env.Code)
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return apperrors.ErrUnauthenticated
		case http.StatusForbidden:
			return apperrors.ErrPermissionDenied
		case http.StatusNotFound:
			return apperrors.ErrNotFound
		default:
			return apperrors.Wrap(apperrors.ErrTransient,
				fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, env.Error))
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return apperrors.Wrap(apperrors.ErrTransient, err)
		}
	}
	return nil
}

func (a *APIClient) Register(ctx context.Context, email, password string) (*Identity, error) {
	var auth dto.AuthResponse
	err := a.do(ctx, http.MethodPost, "/api/auth/register",
		dto.RegisterRequest{Email: email, Password: password}, &auth)
	if err != nil {
		return nil, err
	}
	a.setTokens(auth.Token, auth.Refresh)
	return &Identity{UserID: auth.UserID, Email: auth.Email}, nil
}

func (a *APIClient) Login(ctx context.Context, email, password string) (*Identity, error) {
	var auth dto.AuthResponse
	err := a.do(ctx, http.MethodPost, "/api/auth/login",
		dto.LoginRequest{Email: email, Password: password}, &auth)
	if err != nil {
		return nil, err
	}
	a.setTokens(auth.Token, auth.Refresh)
	return &Identity{UserID: auth.UserID, Email: auth.Email}, nil
}

func (a *APIClient) Logout(ctx context.Context) error {
	a.mu.RLock()
	refresh := a.refresh
	a.mu.RUnlock()

	err := a.do(ctx, http.MethodPost, "/api/user/logout",
		dto.RefreshRequest{Refresh: refresh}, nil)
	// Tokens are dropped locally even if the server call failed; sign-out
	// must always leave the SDK signed out.
	a.setTokens("", "")
	return err
}

func (a *APIClient) ListPrompts(ctx context.Context) ([]model.Prompt, error) {
	var prompts []model.Prompt
	if err := a.do(ctx, http.MethodGet, "/api/prompts", nil, &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

func (a *APIClient) CreatePrompt(ctx context.Context, req dto.PromptRequest) (*model.Prompt, error) {
	var prompt model.Prompt
	if err := a.do(ctx, http.MethodPost, "/api/prompts", req, &prompt); err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (a *APIClient) UpdatePrompt(ctx context.Context, id string, req dto.PromptRequest) (*model.Prompt, error) {
	var prompt model.Prompt
	if err := a.do(ctx, http.MethodPut, "/api/prompts/"+id, req, &prompt); err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (a *APIClient) DeletePrompt(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/api/prompts/"+id, nil, nil)
}
