// Package rules defines the named scoring rules that select and rank
// notable pitches. The registry is built once at startup and read-only for
// the process lifetime.
package rules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ddoberne/statcast-highlight-tool/internal/statcast"
	"github.com/ddoberne/statcast-highlight-tool/internal/zone"
)

// ErrUnknownRule is returned when a rule name has no registration.
var ErrUnknownRule = errors.New("unknown rule")

// Groups is an optional team-code or player-id filter for a build. At most
// one of the two is set per request.
type Groups struct {
	Teams   []string
	Players []int
}

// Empty reports whether no group filter is set.
func (g Groups) Empty() bool {
	return len(g.Teams) == 0 && len(g.Players) == 0
}

func teamIn(team string, group []string) bool {
	for _, t := range group {
		if t == team {
			return true
		}
	}
	return false
}

func playerIn(id int, group []int) bool {
	for _, p := range group {
		if p == id {
			return true
		}
	}
	return false
}

// TeamIn reports whether team is in group. Exposed for the leaderboard's
// group-membership test.
func TeamIn(team string, group []string) bool { return teamIn(team, group) }

// PlayerIn reports whether id is in group.
func PlayerIn(id int, group []int) bool { return playerIn(id, group) }

// Rule is a stateless scoring strategy. Filter decides membership, Score
// orders (descending score = biggest first), Flavor produces the optional
// caption clause. Scores and flavors may depend on the group filter (clutch
// credits impact to the named side).
type Rule struct {
	Name        string
	Description string
	Filter      func(p statcast.Pitch) bool
	Score       func(p statcast.Pitch, g Groups) float64
	Flavor      func(p statcast.Pitch, g Groups) string
}

// Registry is the closed set of rules, keyed by name (including aliases).
type Registry struct {
	rules map[string]Rule
}

// NewRegistry builds the rule set with the given zone correction tolerance.
func NewRegistry(correction float64) *Registry {
	if correction == 0 {
		correction = zone.DefaultCorrection
	}

	missBy := func(p statcast.Pitch) float64 {
		hl := zone.HighLow(p.SzTop, p.SzBot, p.PlateZ, correction)
		oe := zone.OffEdge(p.PlateX)
		return zone.MissBy(hl, oe)
	}
	offCenter := func(p statcast.Pitch) float64 {
		return zone.OffCenter(p.PlateX, p.PlateZ, p.SzTop, p.SzBot)
	}
	noFlavor := func(statcast.Pitch, Groups) string { return "" }
	missFlavor := func(p statcast.Pitch, _ Groups) string {
		return fmt.Sprintf("miss by %.1f inches", missBy(p)*12)
	}
	launchFlavor := func(p statcast.Pitch, _ Groups) string {
		return fmt.Sprintf("%.1f mph off the bat", p.LaunchSpeed)
	}

	calledStrike := func(p statcast.Pitch) bool {
		return p.HasZone && p.Result == statcast.ResultCalledStrike
	}
	calledBall := func(p statcast.Pitch) bool {
		return p.HasZone && p.Result == statcast.ResultBall
	}

	r := &Registry{rules: make(map[string]Rule)}

	r.add(Rule{
		Name:        "worst_called_strikes",
		Description: "Called strikes ranked by how far they missed the zone",
		Filter:      calledStrike,
		Score:       func(p statcast.Pitch, _ Groups) float64 { return missBy(p) },
		Flavor:      missFlavor,
	})

	r.add(Rule{
		Name:        "worst_called_balls",
		Description: "Called balls ranked by how close to the zone center they were",
		Filter:      calledBall,
		// Negated so descending order puts the most centered ball first.
		Score:  func(p statcast.Pitch, _ Groups) float64 { return -offCenter(p) },
		Flavor: noFlavor,
	}, "blind_umps")

	r.add(Rule{
		Name:        "called_corners",
		Description: "Correct strike calls furthest from the zone center",
		Filter: func(p statcast.Pitch) bool {
			return calledStrike(p) && missBy(p) == 0
		},
		Score:  func(p statcast.Pitch, _ Groups) float64 { return offCenter(p) },
		Flavor: noFlavor,
	})

	r.add(Rule{
		Name:        "ump_show",
		Description: "Batters rung up on pitches outside the zone",
		Filter: func(p statcast.Pitch) bool {
			return calledStrike(p) && p.Strikes == 2
		},
		Score:  func(p statcast.Pitch, _ Groups) float64 { return missBy(p) },
		Flavor: missFlavor,
	})

	r.add(Rule{
		Name:        "takes_of_steel",
		Description: "Two-strike takes over the plate that survived as balls",
		Filter: func(p statcast.Pitch) bool {
			return calledBall(p) && p.Strikes == 2
		},
		Score:  func(p statcast.Pitch, _ Groups) float64 { return -offCenter(p) },
		Flavor: noFlavor,
	})

	r.add(Rule{
		Name:        "scorchers",
		Description: "Hardest-hit balls in the air",
		Filter: func(p statcast.Pitch) bool {
			return p.Result == statcast.ResultHitIntoPlay && p.HasLaunch && p.LaunchAngle > 0
		},
		Score:  func(p statcast.Pitch, _ Groups) float64 { return p.LaunchSpeed },
		Flavor: launchFlavor,
	})

	r.add(Rule{
		Name:        "undergrounders",
		Description: "Hardest-hit balls smashed into the ground",
		Filter: func(p statcast.Pitch) bool {
			return p.Result == statcast.ResultHitIntoPlay && p.HasLaunch && p.LaunchAngle < -10
		},
		Score:  func(p statcast.Pitch, _ Groups) float64 { return p.LaunchSpeed },
		Flavor: launchFlavor,
	})

	r.add(Rule{
		Name:        "walks",
		Description: "Ball four, ranked by distance from the zone center",
		Filter: func(p statcast.Pitch) bool {
			return calledBall(p) && p.Balls == 3
		},
		Score:  func(p statcast.Pitch, _ Groups) float64 { return offCenter(p) },
		Flavor: noFlavor,
	})

	r.add(Rule{
		Name:        "full_count_walks",
		Description: "Ball four on a full count",
		Filter: func(p statcast.Pitch) bool {
			return calledBall(p) && p.Balls == 3 && p.Strikes == 2
		},
		Score:  func(p statcast.Pitch, _ Groups) float64 { return offCenter(p) },
		Flavor: noFlavor,
	})

	r.add(Rule{
		Name:        "clutch",
		Description: "Biggest swings in win probability",
		Filter:      func(p statcast.Pitch) bool { return p.HasWinExp },
		Score:       clutchScore,
		Flavor: func(p statcast.Pitch, g Groups) string {
			return fmt.Sprintf("%+.2f change in WPA", clutchScore(p, g))
		},
	})

	return r
}

func (r *Registry) add(rule Rule, aliases ...string) {
	r.rules[rule.Name] = rule
	for _, alias := range aliases {
		r.rules[alias] = rule
	}
}

// Lookup resolves a rule by name.
func (r *Registry) Lookup(name string) (Rule, error) {
	rule, ok := r.rules[name]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return rule, nil
}

// Names returns all registered rule names (aliases included), sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// clutchScore measures win-probability impact. Without a group it is the
// absolute swing. With a team group, impact is credited to the group's side.
// With a player group, the home-side delta is flipped by inning half and by
// whether the group player was pitching, so the score always measures impact
// for the named side.
func clutchScore(p statcast.Pitch, g Groups) float64 {
	delta := p.DeltaHomeWinExp

	if len(g.Teams) > 0 {
		if teamIn(p.HomeTeam, g.Teams) {
			return delta
		}
		return -delta
	}

	if len(g.Players) > 0 {
		sign := 1.0
		if p.Half != statcast.HalfTop {
			sign = -sign
		}
		if !playerIn(p.PitcherID, g.Players) {
			sign = -sign
		}
		return delta * sign
	}

	if delta < 0 {
		return -delta
	}
	return delta
}
