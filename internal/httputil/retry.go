// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the outbound HTTP client shared by the
// search and profile registry clients.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/orquideira/internal/logger"
	"github.com/pdiddy/orquideira/pkg/types"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// Client wraps an http.Client with optional request throttling and
// optional backoff on HTTP 429 (Too Many Requests).
type Client struct {
	HTTP *http.Client

	// Limiter throttles every attempt, retries included. Nil means unlimited.
	Limiter *rate.Limiter

	// MaxRetries is how many times a 429 is retried. Zero disables retries.
	MaxRetries int

	// UserAgent is set on requests that do not carry one.
	UserAgent string
}

// NewClient builds a Client from search settings.
func NewClient(cfg types.SearchConfig) *Client {
	c := &Client{
		HTTP:       &http.Client{Timeout: cfg.Timeout},
		MaxRetries: cfg.RateLimitRetries,
		UserAgent:  cfg.UserAgent,
	}
	if cfg.RequestsPerSecond > 0 {
		burst := int(math.Ceil(cfg.RequestsPerSecond))
		c.Limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return c
}

// Do executes req. On HTTP 429 it retries up to MaxRetries times with
// exponential backoff starting at RetryBaseDelay. The body of each retried
// 429 is drained and closed. If ctx is cancelled while waiting, Do returns
// ctx.Err(). After exhausting retries the last 429 response is returned so
// the caller can inspect it; any other status is returned as-is.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	for attempt := 0; ; attempt++ {
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= c.MaxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		logger.For(ctx).WithField("host", req.URL.Host).
			Debugf("rate limited, retrying in %v (attempt %d/%d)", backoff, attempt+1, c.MaxRetries)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
