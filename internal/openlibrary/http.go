package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// getJSON performs one bounded GET against the API and decodes the body
// into target. Every failure is classified into the error taxonomy and
// pushed to the status sink before being returned; this layer never
// swallows an error.
func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	if !c.isOnline() {
		c.reportError(ErrOffline)
		return ErrOffline
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		classified := c.classify(err)
		c.reportError(classified)
		return classified
	}
	defer func() { _ = resp.Body.Close() }()

	if err := statusError(resp.StatusCode); err != nil {
		c.reportError(err)
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		classified := &RemoteError{Err: fmt.Errorf("decoding response: %w", err)}
		c.reportError(classified)
		return classified
	}

	return nil
}

// classify maps a transport failure to the error taxonomy. The offline
// signal overrides all other classification.
func (c *Client) classify(err error) error {
	if !c.isOnline() {
		return ErrOffline
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return ErrTimeout
	}
	return &RemoteError{Err: err}
}

// statusError converts a non-2xx response code to a classified error.
func statusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return &RemoteError{Status: code}
	}
}

// TestConnectivity probes the API with a minimal search. The status sink
// observes loading, then online or error.
func (c *Client) TestConnectivity(ctx context.Context) bool {
	c.report(StatusLoading, "")

	var probe searchResponse
	endpoint := fmt.Sprintf("%s/search.json?q=test&limit=1", c.baseURL)
	if err := c.getJSON(ctx, endpoint, &probe); err != nil {
		return false
	}

	c.report(StatusOnline, "")
	return true
}

// CheckImageURL reports whether an image URL answers within the probe
// timeout. A missing URL is simply not valid, not an error.
func (c *Client) CheckImageURL(ctx context.Context, imageURL string) bool {
	if imageURL == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, imageProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
