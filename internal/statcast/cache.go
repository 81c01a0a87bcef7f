package statcast

import (
	"context"
	"fmt"
	"log"
)

// DayStore persists pitches per game date. A date is either fully cached or
// absent.
type DayStore interface {
	MissingDays(startDate, endDate string) ([]string, error)
	CacheDay(date string, pitches []Pitch) error
	GetPitchesForRange(startDate, endDate string) ([]Pitch, error)
}

// CachingSource serves pitches from a DayStore, fetching only the missing
// days from the underlying source.
type CachingSource struct {
	src   Source
	store DayStore
}

// NewCachingSource wraps src with a day-level cache.
func NewCachingSource(src Source, store DayStore) *CachingSource {
	return &CachingSource{src: src, store: store}
}

// Fetch returns all pitches in [startDate, endDate], pulling uncached days
// from the underlying source first.
func (c *CachingSource) Fetch(ctx context.Context, startDate, endDate string) ([]Pitch, error) {
	missing, err := c.store.MissingDays(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("checking cache: %w", err)
	}

	if len(missing) > 0 {
		log.Printf("Cache miss for %d day(s), fetching", len(missing))
	}
	for _, date := range missing {
		pitches, err := c.src.Fetch(ctx, date, date)
		if err != nil {
			return nil, err
		}
		if err := c.store.CacheDay(date, pitches); err != nil {
			return nil, fmt.Errorf("caching %s: %w", date, err)
		}
	}

	return c.store.GetPitchesForRange(startDate, endDate)
}
