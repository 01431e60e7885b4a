// Package opsbackend is the HTTP client for the ops backend. It owns no
// business logic: each method builds a path, issues the call, translates
// non-success statuses into typed failures, and extracts the relevant
// field from the JSON envelope.
package opsbackend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hearthview/opsdash/internal/apperrors"
	"github.com/hearthview/opsdash/internal/core/ports/opsapi"
)

var (
	_ opsapi.VenueAPI    = (*Client)(nil)
	_ opsapi.BriefAPI    = (*Client)(nil)
	_ opsapi.VarianceAPI = (*Client)(nil)
	_ opsapi.GuardianAPI = (*Client)(nil)
	_ opsapi.CashAPI     = (*Client)(nil)
	_ opsapi.EvidenceAPI = (*Client)(nil)
)

const defaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Client calls the ops backend under a common base path.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client for the given base URL, e.g.
// "https://ops.example.com/api". A zero timeout falls back to 30s.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// request issues an HTTP call and returns the response when the status is
// 2xx. Any other status is translated to *apperrors.RequestError carrying
// the backend's error field or the HTTP status text.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer resp.Body.Close()
		return nil, readRequestError(resp)
	}
	return resp, nil
}

// readRequestError extracts the backend-supplied error message from a
// failed response body, falling back to the HTTP status text.
func readRequestError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var envelope struct {
		Error string `json:"error"`
	}
	message := ""
	if json.Unmarshal(body, &envelope) == nil {
		message = envelope.Error
	}
	return apperrors.NewRequestError(resp.StatusCode, message)
}

// getEnvelope issues a GET and decodes one envelope field into out. A
// missing or null field leaves out untouched, so list calls yield empty
// collections and single-record calls yield nil.
func (c *Client) getEnvelope(ctx context.Context, path string, query url.Values, key string, out any) error {
	resp, err := c.request(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeField(resp.Body, key, out)
}

// postEnvelope issues a JSON POST and decodes one envelope field.
func (c *Client) postEnvelope(ctx context.Context, path string, payload any, key string, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	resp, err := c.request(ctx, http.MethodPost, path, nil, bytes.NewReader(body), "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeField(resp.Body, key, out)
}

// decodeField pulls a single key out of a JSON envelope.
func decodeField(r io.Reader, key string, out any) error {
	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	raw, ok := envelope[key]
	if !ok || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %q field: %w", key, err)
	}
	return nil
}

// isAbsent reports whether err is the 404 outcome that single-record
// lookups treat as "record does not exist".
func isAbsent(err error) bool {
	var reqErr *apperrors.RequestError
	return errors.As(err, &reqErr) && reqErr.Status == http.StatusNotFound
}
