package hapio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lumera/utils"

	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// Client is the typed HTTP wrapper around the Hapio scheduling API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a client against the given base URL (no trailing slash)
// authenticated with the project API key.
func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

// do issues a single request and decodes the response into out (when out is
// non-nil). Non-2xx responses map to the error taxonomy: 409 becomes a
// ConflictError so callers can distinguish already-in-target-state from an
// outage; everything else becomes a retryable UpstreamError. do never
// retries on its own; creates are not idempotent.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode hapio request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build hapio request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &utils.UpstreamError{Service: "hapio", Body: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &utils.UpstreamError{Service: "hapio", Status: resp.StatusCode, Body: "failed to read response body"}
	}

	if resp.StatusCode == http.StatusConflict {
		return &utils.ConflictError{Msg: string(respBody)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("hapio request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return &utils.UpstreamError{Service: "hapio", Status: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode hapio response: %w", err)
		}
	}
	return nil
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	return q
}
