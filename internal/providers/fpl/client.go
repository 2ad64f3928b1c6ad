// Package fpl fetches the bootstrap-static roster, the fixture list and
// element summaries from the public Fantasy Premier League API.
package fpl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/bootstrap"
	"github.com/preston-bernstein/fpl-squad-service/internal/domain/fixtures"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers"
)

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client fetches FPL API documents.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient httpDoer
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		userAgent:  ua,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// FetchBootstrap downloads and decodes {base}/bootstrap-static/.
func (c *Client) FetchBootstrap(ctx context.Context) (bootstrap.Bootstrap, error) {
	var b bootstrap.Bootstrap
	err := c.get(ctx, bootstrapPath, "bootstrap", func(r io.Reader) error {
		var decodeErr error
		b, decodeErr = bootstrap.Decode(r)
		return decodeErr
	})
	if err != nil {
		return bootstrap.Bootstrap{}, err
	}
	return b, nil
}

// FetchFixtures downloads and decodes {base}/fixtures/.
func (c *Client) FetchFixtures(ctx context.Context) ([]fixtures.Fixture, error) {
	var list []fixtures.Fixture
	err := c.get(ctx, fixturesPath, "fixtures", func(r io.Reader) error {
		var decodeErr error
		list, _, decodeErr = fixtures.Decode(r)
		return decodeErr
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// FetchPlayerHistory downloads {base}/element-summary/{id}/ and returns its
// per-match history.
func (c *Client) FetchPlayerHistory(ctx context.Context, playerID int) ([]fixtures.HistoryEntry, error) {
	var entries []fixtures.HistoryEntry
	path := fmt.Sprintf(elementSummaryPath, playerID)
	err := c.get(ctx, path, "element summary", func(r io.Reader) error {
		var decodeErr error
		entries, decodeErr = fixtures.DecodeSummary(r)
		return decodeErr
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) get(ctx context.Context, path, what string, decode func(io.Reader) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fpl: request %s: %w", what, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &providers.StatusError{
			Provider:   providers.NameFpl,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	if err := decode(resp.Body); err != nil {
		return fmt.Errorf("fpl: %w", err)
	}
	return nil
}
