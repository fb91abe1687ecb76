// Package client is the typed HTTP client for the AgriScan platform API.
//
// All methods return the taxonomy defined in errors.go: *AuthError for
// credential and token rejections, *ValidationError for field failures,
// *NetworkError when no response arrived, and *APIError for everything else.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/agriscan/platform/internal/dashboard/tokenstore"
)

const defaultTimeout = 15 * time.Second

// Client talks to one AgriScan API server on behalf of one operator.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  tokenstore.Store
}

func New(baseURL string, tokens tokenstore.Store) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
	}
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
	Error   *errorBody      `json:"error"`
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

// do issues a request, attaching the bearer token when one is stored, and
// decodes the success payload into out (when out is non-nil). The returned
// envelope gives callers access to top-level fields like the login token.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) (*envelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	token, err := c.tokens.Get()
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &APIError{Status: resp.StatusCode, Code: "BAD_RESPONSE", Message: "malformed server response"}
	}

	if !env.Success {
		return nil, mapError(resp.StatusCode, env.Error)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &APIError{Status: resp.StatusCode, Code: "BAD_RESPONSE", Message: "malformed response payload"}
		}
	}
	return &env, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	_, err := c.do(ctx, http.MethodGet, path, query, nil, "", out)
	return err
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload, out any) (*envelope, error) {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
	}
	return c.do(ctx, method, path, nil, &body, "application/json", out)
}

// mapError converts the server's error envelope into the client taxonomy.
func mapError(status int, body *errorBody) error {
	if body == nil {
		return &APIError{Status: status, Code: "UNKNOWN", Message: http.StatusText(status)}
	}

	switch {
	case status == http.StatusUnauthorized:
		return &AuthError{Code: body.Code, Message: body.Message}
	case body.Code == "VALIDATION_ERROR":
		return &ValidationError{Message: body.Message, Fields: body.Details}
	default:
		return &APIError{Status: status, Code: body.Code, Message: body.Message}
	}
}
