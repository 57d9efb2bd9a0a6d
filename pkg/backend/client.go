package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/foodhubhq/storefront-gateway/pkg/config"
	pkgerrors "github.com/foodhubhq/storefront-gateway/pkg/errors"
	"github.com/foodhubhq/storefront-gateway/pkg/logger"
)

type credentialsKey struct{}

// WithCredentials stashes the caller's Cookie header so every backend call
// made on behalf of this request carries the caller's identity.
func WithCredentials(ctx context.Context, cookieHeader string) context.Context {
	if cookieHeader == "" {
		return ctx
	}
	return context.WithValue(ctx, credentialsKey{}, cookieHeader)
}

// CredentialsFromContext returns the stored Cookie header, if any.
func CredentialsFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(credentialsKey{}).(string); ok {
		return v
	}
	return ""
}

// Client is the generic JSON client for the FoodHub backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	logg    *logger.Logger
}

// New builds a backend client from config. The base URL is validated at
// config load; here it is only normalized.
func New(cfg config.BackendConfig, logg *logger.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("backend base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parsing backend base url: %w", err)
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout},
		logg:    logg,
	}, nil
}

func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request body")
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building backend request")
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie := CredentialsFromContext(ctx); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "backend unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeBadGateway, err, "reading backend response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, c.statusError(resp.StatusCode, raw)
	}

	return raw, nil
}

// statusError maps a backend failure onto the gateway taxonomy, preserving
// the backend's human-readable message when the body carries one.
func (c *Client) statusError(status int, body []byte) error {
	message := extractMessage(body)
	if message == "" {
		message = http.StatusText(status)
	}

	code := pkgerrors.CodeBadGateway
	switch status {
	case http.StatusBadRequest:
		code = pkgerrors.CodeValidation
	case http.StatusUnauthorized:
		code = pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		code = pkgerrors.CodeForbidden
	case http.StatusNotFound:
		code = pkgerrors.CodeNotFound
	case http.StatusTooManyRequests:
		code = pkgerrors.CodeRateLimit
	}

	return pkgerrors.New(code, message).WithDetails(map[string]any{"upstream_status": status})
}

func extractMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var flat struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Message != "" {
		return flat.Message
	}

	var enveloped struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &enveloped); err == nil {
		return enveloped.Error.Message
	}
	return ""
}
