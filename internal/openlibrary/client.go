// Package openlibrary provides a client for the OpenLibrary API. It turns
// search and lookup requests into normalized result shapes, enforces a
// bounded wait per call and classifies every failure into a small error
// taxonomy reported to an observable status sink.
package openlibrary

import (
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lepinkainen/bibliotheca/internal/ratelimit"
)

const (
	defaultBaseURL   = "https://openlibrary.org"
	defaultCoversURL = "https://covers.openlibrary.org"

	// Data calls are bounded to 10 seconds, image probes to 5.
	defaultTimeout    = 10 * time.Second
	imageProbeTimeout = 5 * time.Second

	// OpenLibrary asks for at most one request per second.
	defaultRatePerSecond = 1
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is an OpenLibrary API client.
type Client struct {
	baseURL     string
	coversURL   string
	httpClient  HTTPDoer
	rateLimiter *ratelimit.Limiter
	timeout     time.Duration
	statusFn    StatusFunc
	online      atomic.Bool
}

// NewClient creates a new OpenLibrary client. The client starts in the
// online state; SetOnline feeds it an external connectivity signal.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:     defaultBaseURL,
		coversURL:   defaultCoversURL,
		httpClient:  &http.Client{},
		rateLimiter: ratelimit.New("OpenLibrary", defaultRatePerSecond),
		timeout:     defaultTimeout,
	}
	client.online.Store(true)

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the OpenLibrary API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithCoversURL sets a custom base URL for the cover image service.
func WithCoversURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.coversURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithTimeout sets the per-call time bound for data requests.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		if timeout > 0 {
			client.timeout = timeout
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}

// WithStatusFunc registers the observable status sink.
func WithStatusFunc(fn StatusFunc) Option {
	return func(client *Client) {
		client.statusFn = fn
	}
}

// SetOnline feeds the client an external online/offline signal. Going
// offline makes every call fail fast with ErrOffline before any request
// is attempted.
func (c *Client) SetOnline(online bool) {
	c.online.Store(online)
	if online {
		c.report(StatusOnline, "")
	} else {
		c.report(StatusOffline, UserMessage(ErrOffline))
	}
}

func (c *Client) isOnline() bool {
	return c.online.Load()
}

// coverImageURL derives a book cover URL from a numeric cover identifier.
// No identifier means no URL; a placeholder is never guessed.
func (c *Client) coverImageURL(coverID int) string {
	if coverID <= 0 {
		return ""
	}
	return fmt.Sprintf("%s/b/id/%d-M.jpg", c.coversURL, coverID)
}

// photoImageURL derives an author photo URL from a numeric photo identifier.
func (c *Client) photoImageURL(photoID int) string {
	if photoID <= 0 {
		return ""
	}
	return fmt.Sprintf("%s/a/id/%d-M.jpg", c.coversURL, photoID)
}
