package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"guildbadge/internal/domain"
)

const maxAttempts = 3

// CallClass selects the timeout budget for a call. Directory lookups
// get the longest budget, presence the shortest since presence is
// optional and must not dominate total request latency.
type CallClass int

const (
	ClassDirectory CallClass = iota
	ClassPresence
	ClassImage
)

// Client is the hardened HTTP client used for every upstream call:
// fixed per-class timeouts, bounded retry with exponential backoff on
// 429/5xx, and identity headers.
type Client struct {
	directory *http.Client
	presence  *http.Client
	image     *http.Client

	userAgent   string
	botToken    string
	backoffBase time.Duration
}

func New(conf domain.Config) *Client {
	c := &Client{
		userAgent:   conf.UserAgent,
		botToken:    conf.BotToken,
		backoffBase: time.Second,
	}
	c.directory = &http.Client{Timeout: conf.DirectoryTimeout, Transport: c}
	c.presence = &http.Client{Timeout: conf.PresenceTimeout, Transport: c}
	c.image = &http.Client{Timeout: conf.ImageTimeout, Transport: c}
	return c
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	return http.DefaultTransport.RoundTrip(req)
}

// SetBackoffBase overrides the retry backoff unit. Tests use this to
// avoid multi-second sleeps.
func (c *Client) SetBackoffBase(d time.Duration) {
	c.backoffBase = d
}

func (c *Client) httpClient(class CallClass) *http.Client {
	switch class {
	case ClassPresence:
		return c.presence
	case ClassImage:
		return c.image
	default:
		return c.directory
	}
}

// GetJSON performs a GET against url and decodes the JSON body into
// response. 429 and 5xx answers are retried up to maxAttempts with
// exponential backoff; callers only observe the final classified
// outcome. When authorized is set and a bot token is configured, the
// request carries bot authentication, otherwise it goes out anonymous.
func (c *Client) GetJSON(ctx context.Context, class CallClass, url string, authorized bool, response any) error {

	client := c.httpClient(class)

	var lastStatus int
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, c.backoffBase<<(attempt-1)); err != nil {
				return domain.Transient("backoff interrupted", err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return domain.Invalid(fmt.Sprintf("failed to create request for %s", url), err)
		}
		if authorized && c.botToken != "" {
			req.Header.Set("Authorization", "Bot "+c.botToken)
		}

		resp, err := client.Do(req)
		if err != nil {
			return domain.Transient(fmt.Sprintf("request to %s failed", url), err)
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastStatus = resp.StatusCode
			resp.Body.Close()
			continue
		}

		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return domain.NotFound(fmt.Sprintf("%s returned 404", url))
		case resp.StatusCode != http.StatusOK:
			return domain.Invalid(fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, url), nil)
		}

		if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
			return domain.Invalid(fmt.Sprintf("failed to decode response from %s", url), err)
		}
		return nil
	}

	if lastStatus == http.StatusTooManyRequests {
		return domain.RateLimited(fmt.Sprintf("%s kept returning 429", url))
	}
	return domain.Transient(fmt.Sprintf("%s kept returning %d", url, lastStatus), nil)
}

// Download fetches raw bytes with a single best-effort attempt and no
// retry. The image pipeline degrades to an empty asset on failure, so
// spending the retry budget here would only add latency.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.Invalid(fmt.Sprintf("failed to create request for %s", url), err)
	}

	resp, err := c.image.Do(req)
	if err != nil {
		return nil, domain.Transient(fmt.Sprintf("download of %s failed", url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NotFound(fmt.Sprintf("%s returned %d", url, resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.Transient(fmt.Sprintf("failed to read body of %s", url), err)
	}
	return body, nil
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
