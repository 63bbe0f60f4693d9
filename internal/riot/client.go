// Package riot provides a minimal, rate-limited client for the Riot
// league-v4 / summoner-v4 / match-v5 endpoints used by the sampler.
package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultRetryAfter is slept on a 429 whose Retry-After header is missing
// or out of bounds.
const DefaultRetryAfter = 10 * time.Second

// Retry-After values outside [1, 300] seconds are not trusted.
const (
	minRetryAfter = 1 * time.Second
	maxRetryAfter = 300 * time.Second
)

// Client is a rate-limited Riot API client. Every outbound call is
// serialized through the limiter; a 429 response is retried exactly once
// after the server-indicated backoff.
type Client struct {
	apiKey     string
	http       *http.Client
	limiter    *RateLimiter
	retryAfter time.Duration

	// Overridable in tests; empty means the real Riot hosts.
	baseURL string

	sleep func(time.Duration)
}

// NewClient returns a client authenticated with the given API key.
// retryAfter is the fallback backoff for 429 responses without a usable
// Retry-After header; zero means DefaultRetryAfter.
func NewClient(apiKey string, limiter *RateLimiter, retryAfter time.Duration) *Client {
	if limiter == nil {
		limiter = NewRateLimiter(0, 0)
	}
	if retryAfter <= 0 {
		retryAfter = DefaultRetryAfter
	}
	return &Client{
		apiKey:     apiKey,
		http:       &http.Client{Timeout: 30 * time.Second},
		limiter:    limiter,
		retryAfter: retryAfter,
		sleep:      time.Sleep,
	}
}

// Regions are stored upper-case throughout the system; hosts are lower-case.
func (c *Client) platformURL(region string) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return fmt.Sprintf("https://%s.api.riotgames.com", strings.ToLower(region))
}

func (c *Client) regionalURL(region string) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return fmt.Sprintf("https://%s.api.riotgames.com", regionalRoute(strings.ToLower(region)))
}

// get performs one rate-limited GET, retrying exactly once on 429, and
// returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		c.limiter.WaitIfNeeded()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Riot-Token", c.apiKey)

		c.limiter.RecordRequest()
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("GET %s: %w", url, err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			wait := parseRetryAfter(resp.Header.Get("Retry-After"), c.retryAfter)
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if attempt >= 1 {
				return nil, fmt.Errorf("GET %s: HTTP 429 after retry", url)
			}
			c.sleep(wait)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode)
		}
		if readErr != nil {
			return nil, fmt.Errorf("GET %s: read body: %w", url, readErr)
		}
		return body, nil
	}
}

// getJSON GETs url and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", url, err)
	}
	return nil
}

// parseRetryAfter returns the header-indicated backoff when it is within
// [1, 300] seconds, else the fallback.
func parseRetryAfter(header string, fallback time.Duration) time.Duration {
	secs, err := strconv.Atoi(header)
	if err != nil {
		return fallback
	}
	d := time.Duration(secs) * time.Second
	if d < minRetryAfter || d > maxRetryAfter {
		return fallback
	}
	return d
}

// LeagueEntries returns the first page of ranked entries for one non-apex
// (queue, tier, division) stratum.
func (c *Client) LeagueEntries(ctx context.Context, region, queueType, tier, division string) ([]LeagueEntry, error) {
	url := fmt.Sprintf("%s/lol/league/v4/entries/%s/%s/%s?page=1",
		c.platformURL(region), queueType, tier, division)
	var entries []LeagueEntry
	if err := c.getJSON(ctx, url, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ApexLeague returns the flat league list for an apex tier.
func (c *Client) ApexLeague(ctx context.Context, region, queueType, tier string) (*LeagueList, error) {
	var endpoint string
	switch tier {
	case "CHALLENGER":
		endpoint = "challengerleagues"
	case "GRANDMASTER":
		endpoint = "grandmasterleagues"
	case "MASTER":
		endpoint = "masterleagues"
	default:
		return nil, fmt.Errorf("not an apex tier: %s", tier)
	}
	url := fmt.Sprintf("%s/lol/league/v4/%s/by-queue/%s",
		c.platformURL(region), endpoint, queueType)
	var list LeagueList
	if err := c.getJSON(ctx, url, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// SummonerByID resolves a legacy encrypted summonerId to a summoner record
// carrying the PUUID.
func (c *Client) SummonerByID(ctx context.Context, region, summonerID string) (*Summoner, error) {
	url := fmt.Sprintf("%s/lol/summoner/v4/summoners/%s", c.platformURL(region), summonerID)
	var s Summoner
	if err := c.getJSON(ctx, url, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// MatchIDs returns up to count recent ranked match ids for a player.
func (c *Client) MatchIDs(ctx context.Context, region, puuid string, queueID, count int) ([]string, error) {
	url := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?queue=%d&count=%d",
		c.regionalURL(region), puuid, queueID, count)
	var ids []string
	if err := c.getJSON(ctx, url, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// MatchByID fetches a full match record. The raw body is returned alongside
// the decoded form so the store can keep an immutable snapshot.
func (c *Client) MatchByID(ctx context.Context, region, matchID string) (*Match, []byte, error) {
	url := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.regionalURL(region), matchID)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	var m Match
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, nil, fmt.Errorf("GET %s: decode: %w", url, err)
	}
	return &m, body, nil
}
