// Package translate wraps the external translation backend (LibreTranslate-
// compatible API) and implements the change-language flow.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"lingobot/internal/domain"
	"lingobot/internal/httpx"
	"lingobot/internal/i18n"
	"lingobot/internal/metrics"
)

// Client implements domain.Translator against an HTTP translation backend.
type Client struct {
	baseURL string
	apiKey  string
	store   domain.UserStore
	client  *http.Client
	logger  *slog.Logger
}

type Config struct {
	BaseURL string
	APIKey  string
	Store   domain.UserStore
	Timeout time.Duration
	Logger  *slog.Logger
}

func New(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		store:   cfg.Store,
		client:  httpx.NewClient(cfg.Timeout),
		logger:  cfg.Logger,
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Language is one entry of the backend's supported set.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Translate renders text into the target language. The backend detects the
// source language itself.
func (c *Client) Translate(ctx context.Context, text, target, locale string) (string, error) {
	body, err := json.Marshal(translateRequest{
		Q:      text,
		Source: "auto",
		Target: target,
		APIKey: c.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("marshal translate request: %w", err)
	}

	buildReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/translate", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	resp, err := httpx.DoWithRetry(ctx, c.client, buildReq, c.logger)
	if err != nil {
		metrics.TranslationsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("translate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.TranslationsTotal.WithLabelValues("error").Inc()
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("translate backend %d: %s", resp.StatusCode, string(respBody))
	}

	var out translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		metrics.TranslationsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("decode translate response: %w", err)
	}

	metrics.TranslationsTotal.WithLabelValues("ok").Inc()
	return out.TranslatedText, nil
}

// SupportedLanguages returns the backend's language set.
func (c *Client) SupportedLanguages(ctx context.Context) ([]Language, error) {
	buildReq := func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, "GET", c.baseURL+"/languages", nil)
	}

	resp, err := httpx.DoWithRetry(ctx, c.client, buildReq, c.logger)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("languages backend %d: %s", resp.StatusCode, string(respBody))
	}

	var langs []Language
	if err := json.NewDecoder(resp.Body).Decode(&langs); err != nil {
		return nil, fmt.Errorf("decode languages response: %w", err)
	}
	return langs, nil
}

// ChangeLanguage validates the requested code against the backend's supported
// set and persists it as the user's target language. The caller passes the
// user's raw input; matching is case-insensitive on code and full name. The
// result is always a localized user-facing string.
func (c *Client) ChangeLanguage(ctx context.Context, user *domain.UserRecord, code, locale string) string {
	langs, err := c.SupportedLanguages(ctx)
	if err != nil {
		c.logger.Error("cannot fetch supported languages", "err", err)
		metrics.LanguageChangesTotal.WithLabelValues("error").Inc()
		return i18n.T(locale, i18n.KeyLanguageChangeFailed)
	}

	requested := strings.ToLower(strings.TrimSpace(code))
	var match *Language
	for i := range langs {
		if strings.ToLower(langs[i].Code) == requested || strings.ToLower(langs[i].Name) == requested {
			match = &langs[i]
			break
		}
	}
	if match == nil {
		c.logger.Info("unsupported language requested", "user", user.ID, "code", code)
		metrics.LanguageChangesTotal.WithLabelValues("unknown_language").Inc()
		return i18n.T(locale, i18n.KeyLanguageUnknown, code)
	}

	updated, err := c.store.Update(ctx, user.ID, map[string]string{"language": match.Code})
	if err != nil {
		c.logger.Error("cannot persist language change", "user", user.ID, "language", match.Code, "err", err)
		metrics.LanguageChangesTotal.WithLabelValues("error").Inc()
		return i18n.T(locale, i18n.KeyLanguageChangeFailed)
	}
	*user = *updated

	c.logger.Info("language changed", "user", user.ID, "language", match.Code)
	metrics.LanguageChangesTotal.WithLabelValues("ok").Inc()
	return i18n.T(locale, i18n.KeyLanguageChanged, match.Name)
}
