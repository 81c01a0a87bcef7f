// Package names resolves player ids to display names via the MLB Stats API,
// backed by the local cache.
package names

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUnknownPlayer is returned when the API has no record for an id.
var ErrUnknownPlayer = errors.New("unknown player")

const defaultBaseURL = "https://statsapi.mlb.com"

// Store caches resolved names between runs. Misses are not errors.
type Store interface {
	GetPlayerName(playerID int) (string, bool, error)
	PutPlayerName(playerID int, name string) error
}

// Client resolves names over HTTP with a write-through cache.
type Client struct {
	baseURL string
	store   Store
	client  *http.Client
}

// NewClient creates a resolver. store may be nil to skip caching.
func NewClient(baseURL string, store Store, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		store:   store,
		client:  &http.Client{Timeout: timeout},
	}
}

// ResolveName returns the display name for a player id.
func (c *Client) ResolveName(ctx context.Context, playerID int) (string, error) {
	if c.store != nil {
		if name, ok, err := c.store.GetPlayerName(playerID); err == nil && ok {
			return name, nil
		}
	}

	name, err := c.lookup(ctx, playerID)
	if err != nil {
		return "", err
	}

	if c.store != nil {
		// Cache failures are non-fatal; the name is still good.
		_ = c.store.PutPlayerName(playerID, name)
	}
	return name, nil
}

func (c *Client) lookup(ctx context.Context, playerID int) (string, error) {
	reqURL := fmt.Sprintf("%s/api/v1/people/%d", c.baseURL, playerID)
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "statcast-highlight-tool/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("people lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %d", ErrUnknownPlayer, playerID)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("people lookup: HTTP %d", resp.StatusCode)
	}

	var result struct {
		People []struct {
			FullName string `json:"fullName"`
		} `json:"people"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("people lookup: %w", err)
	}
	if len(result.People) == 0 || result.People[0].FullName == "" {
		return "", fmt.Errorf("%w: %d", ErrUnknownPlayer, playerID)
	}
	return result.People[0].FullName, nil
}
