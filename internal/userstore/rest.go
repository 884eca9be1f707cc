// Package userstore implements the per-user preference datastore: a remote
// REST adapter and a local SQLite store, both behind domain.UserStore.
package userstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"lingobot/internal/domain"
	"lingobot/internal/httpx"
)

// RESTStore adapts an external user-preference CRUD API. Every operation is
// a remote call; records are never cached locally.
type RESTStore struct {
	baseURL         string
	apiKey          string
	defaultLocale   string
	defaultLanguage string
	client          *http.Client
	logger          *slog.Logger
}

type RESTConfig struct {
	BaseURL         string
	APIKey          string
	DefaultLocale   string
	DefaultLanguage string
	Timeout         time.Duration
	Logger          *slog.Logger
}

func NewREST(cfg RESTConfig) *RESTStore {
	return &RESTStore{
		baseURL:         cfg.BaseURL,
		apiKey:          cfg.APIKey,
		defaultLocale:   cfg.DefaultLocale,
		defaultLanguage: cfg.DefaultLanguage,
		client:          httpx.NewClient(cfg.Timeout),
		logger:          cfg.Logger,
	}
}

func (s *RESTStore) Get(ctx context.Context, id string) (*domain.UserRecord, error) {
	resp, err := s.do(ctx, "GET", "/users/"+id, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, s.apiError("get user", resp)
	}

	var user domain.UserRecord
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	return &user, nil
}

func (s *RESTStore) Add(ctx context.Context, id string) (*domain.UserRecord, error) {
	user := domain.UserRecord{
		ID:       id,
		Locale:   s.defaultLocale,
		Language: s.defaultLanguage,
	}
	body, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("marshal user: %w", err)
	}

	resp, err := s.do(ctx, "POST", "/users", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, s.apiError("add user", resp)
	}

	var created domain.UserRecord
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode created user %s: %w", id, err)
	}
	return &created, nil
}

func (s *RESTStore) Update(ctx context.Context, id string, fields map[string]string) (*domain.UserRecord, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}

	resp, err := s.do(ctx, "PATCH", "/users/"+id, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.apiError("update user", resp)
	}

	var updated domain.UserRecord
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, fmt.Errorf("decode updated user %s: %w", id, err)
	}
	return &updated, nil
}

func (s *RESTStore) Close() error { return nil }

func (s *RESTStore) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	buildReq := func() (*http.Request, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if s.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+s.apiKey)
		}
		return req, nil
	}

	resp, err := httpx.DoWithRetry(ctx, s.client, buildReq, s.logger)
	if err != nil {
		return nil, fmt.Errorf("user store %s %s: %w", method, path, err)
	}
	return resp, nil
}

func (s *RESTStore) apiError(op string, resp *http.Response) error {
	respBody, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("%s: user store API %d: %s", op, resp.StatusCode, string(respBody))
}
