package statcast

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

// ErrDataUnavailable marks a data-source failure. A build that hits this
// fails as a whole; there is no partial leaderboard.
var ErrDataUnavailable = errors.New("statcast data unavailable")

const defaultBaseURL = "https://baseballsavant.mlb.com"

// Client fetches pitch records from Savant's statcast_search CSV endpoint.
type Client struct {
	baseURL   string
	chunkDays int
	client    *http.Client
}

// NewClient creates a Savant CSV client. Large date ranges are fetched in
// chunkDays windows to stay under the endpoint's row limits.
func NewClient(baseURL string, chunkDays int, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if chunkDays <= 0 {
		chunkDays = 5
	}
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		chunkDays: chunkDays,
		client:    &http.Client{Timeout: timeout},
	}
}

// Fetch pulls all pitches in [startDate, endDate], inclusive.
func (c *Client) Fetch(ctx context.Context, startDate, endDate string) ([]Pitch, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("bad start date %q: %w", startDate, err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("bad end date %q: %w", endDate, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s before start date %s", endDate, startDate)
	}

	var all []Pitch
	for chunkStart := start; !chunkStart.After(end); chunkStart = chunkStart.AddDate(0, 0, c.chunkDays) {
		chunkEnd := chunkStart.AddDate(0, 0, c.chunkDays-1)
		if chunkEnd.After(end) {
			chunkEnd = end
		}
		pitches, err := c.fetchChunk(ctx, chunkStart.Format("2006-01-02"), chunkEnd.Format("2006-01-02"))
		if err != nil {
			return nil, err
		}
		all = append(all, pitches...)
	}
	log.Printf("Fetched %d pitches for %s..%s", len(all), startDate, endDate)
	return all, nil
}

func (c *Client) fetchChunk(ctx context.Context, startDate, endDate string) ([]Pitch, error) {
	params := url.Values{
		"all":          {"true"},
		"type":         {"details"},
		"player_type":  {"pitcher"},
		"game_date_gt": {startDate},
		"game_date_lt": {endDate},
		"min_pitches":  {"0"},
		"min_results":  {"0"},
		"min_pas":      {"0"},
	}

	reqURL := c.baseURL + "/statcast_search/csv?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	req.Header.Set("User-Agent", "statcast-highlight-tool/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d for %s..%s", ErrDataUnavailable, resp.StatusCode, startDate, endDate)
	}

	pitches, err := ParseCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return pitches, nil
}
