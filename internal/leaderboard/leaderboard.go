// Package leaderboard applies a scoring rule to pitch records and produces
// an ordered, size-bounded ranking.
package leaderboard

import (
	"fmt"
	"sort"

	"github.com/ddoberne/statcast-highlight-tool/internal/rules"
	"github.com/ddoberne/statcast-highlight-tool/internal/statcast"
)

// Entry is one ranked pitch with its computed score and flavor text.
type Entry struct {
	Pitch  statcast.Pitch
	Score  float64
	Flavor string
	Rank   int
}

// Options configures a single build. Teams and Players are mutually
// exclusive group filters; Cap bounds the output size; Daily caps per
// calendar date instead of globally; Ascending flips the sort direction
// (default descending, biggest first).
type Options struct {
	Teams     []string
	Players   []int
	Cap       int
	Daily     bool
	Ascending bool
}

// Builder resolves rules and builds leaderboards. Each Build is independent
// and stateless beyond its inputs.
type Builder struct {
	registry *rules.Registry
}

// New creates a builder over a rule registry.
func New(registry *rules.Registry) *Builder {
	return &Builder{registry: registry}
}

// Build produces the leaderboard for one rule over one set of pitches.
// Output length is at most opts.Cap; an empty result is not an error.
func (b *Builder) Build(pitches []statcast.Pitch, ruleName string, opts Options) ([]Entry, error) {
	rule, err := b.registry.Lookup(ruleName)
	if err != nil {
		return nil, err
	}
	if len(opts.Teams) > 0 && len(opts.Players) > 0 {
		return nil, fmt.Errorf("team and player group filters are mutually exclusive")
	}
	if opts.Cap <= 0 {
		return nil, nil
	}

	groups := rules.Groups{Teams: opts.Teams, Players: opts.Players}

	var entries []Entry
	for _, p := range pitches {
		if !rule.Filter(p) {
			continue
		}
		if !inGroup(p, groups) {
			continue
		}
		entries = append(entries, Entry{
			Pitch:  p,
			Score:  rule.Score(p, groups),
			Flavor: rule.Flavor(p, groups),
		})
	}

	// Stable sort: ties preserve arrival order.
	sort.SliceStable(entries, func(i, j int) bool {
		if opts.Ascending {
			return entries[i].Score < entries[j].Score
		}
		return entries[i].Score > entries[j].Score
	})

	if opts.Daily {
		entries = capPerDay(entries, opts.Cap)
	} else if len(entries) > opts.Cap {
		entries = entries[:opts.Cap]
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// inGroup applies the group-membership test uniformly for all rules. A team
// group keeps an event iff the group team is the one batting: the home team
// in the bottom half, the away team in the top half. A player group keeps
// events the player took part in on either side of the ball.
func inGroup(p statcast.Pitch, g rules.Groups) bool {
	if len(g.Teams) > 0 {
		homeBatting := p.Half == statcast.HalfBottom
		return rules.TeamIn(p.HomeTeam, g.Teams) == homeBatting
	}
	if len(g.Players) > 0 {
		return rules.PlayerIn(p.PitcherID, g.Players) || rules.PlayerIn(p.BatterID, g.Players)
	}
	return true
}

// capPerDay takes the top cap entries for each calendar date, then orders
// the days oldest first while preserving each day's internal order.
func capPerDay(entries []Entry, cap int) []Entry {
	perDay := make(map[string][]Entry)
	var dates []string
	for _, e := range entries {
		date := e.Pitch.GameDate
		if _, seen := perDay[date]; !seen {
			dates = append(dates, date)
		}
		if len(perDay[date]) < cap {
			perDay[date] = append(perDay[date], e)
		}
	}
	sort.Strings(dates)

	out := make([]Entry, 0, len(entries))
	for _, date := range dates {
		out = append(out, perDay[date]...)
	}
	return out
}
