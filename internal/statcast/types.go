// Package statcast pulls pitch-level Statcast records from Baseball Savant.
package statcast

import "context"

// Inning halves as they appear in Statcast exports.
const (
	HalfTop    = "Top"
	HalfBottom = "Bot"
)

// Pitch result descriptions the tool cares about. Statcast uses more, but
// these are the ones the scoring rules key on.
const (
	ResultCalledStrike   = "called_strike"
	ResultBall           = "ball"
	ResultHitIntoPlay    = "hit_into_play"
	ResultFoul           = "foul"
	ResultSwingingStrike = "swinging_strike"
	ResultHitByPitch     = "hit_by_pitch"
)

// Pitch is one pitch-level Statcast record. It is immutable input: scoring
// never mutates a Pitch, derived values live on leaderboard entries.
type Pitch struct {
	PitcherID int
	BatterID  int
	GameDate  string // YYYY-MM-DD
	Inning    int
	Half      string // HalfTop or HalfBottom
	Balls     int
	Strikes   int
	Result    string

	// Plate location and batter zone bounds, feet. Valid only when HasZone.
	PlateX  float64
	PlateZ  float64
	SzTop   float64
	SzBot   float64
	HasZone bool

	// Batted-ball readings. Valid only when HasLaunch (hit_into_play rows).
	LaunchSpeed float64
	LaunchAngle float64
	HasLaunch   bool

	HomeTeam string
	AwayTeam string

	// Change in home win probability caused by this pitch.
	DeltaHomeWinExp float64
	HasWinExp       bool
}

// Source supplies pitch records for a date range. Order is arbitrary; the
// leaderboard sorts before use.
type Source interface {
	Fetch(ctx context.Context, startDate, endDate string) ([]Pitch, error)
}
