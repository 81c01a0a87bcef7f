// Package savant locates playable video clips for individual pitches on
// Baseball Savant.
package savant

import "fmt"

// DefaultBaseURL is the Savant site root.
const DefaultBaseURL = "https://baseballsavant.mlb.com"

// resultTokens maps pitch result descriptions to the pre-encoded tokens the
// statcast search page expects. Multi-result searches concatenate tokens
// with %7C.
var resultTokens = map[string]string{
	"called_strike":            `called%5C.%5C.strike`,
	"ball":                     `ball`,
	"blocked_ball":             `blocked%5C.%5C.ball`,
	"foul":                     `foul`,
	"foul_bunt":                `foul%5C.%5C.bunt`,
	"bunt_foul_tip":            `bunt%5C.%5C.foul%5C.%5C.tip`,
	"foul_pitchout":            `foul%5C.%5C.pitchout`,
	"pitchout":                 `pitchout`,
	"hit_by_pitch":             `hit%5C.%5C.by%5C.%5C.pitch`,
	"intent_ball":              `intent%5C.%5C.ball`,
	"hit_into_play":            `hit%5C.%5C.into%5C.%5C.play`,
	"missed_bunt":              `missed%5C.%5C.bunt`,
	"foul_tip":                 `foul%5C.%5C.tip`,
	"swinging_pitchout":        `swinging%5C.%5C.pitchout`,
	"swinging_strike":          `swinging%5C.%5C.strike`,
	"swinging_strike_blocked":  `swinging%5C.%5C.strike%5C.%5C.blocked`,
}

// Search identifies a single pitch on the statcast search page.
type Search struct {
	PitcherID int
	BatterID  int
	Date      string // YYYY-MM-DD
	Inning    int
	Balls     int
	Strikes   int
	Result    string
	Away      bool // prefer the away broadcast feed
}

// SearchURL builds the statcast search URL whose first result is the pitch.
// Returns an error for result descriptions the search page cannot express.
func SearchURL(baseURL string, q Search) (string, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	token, ok := resultTokens[q.Result]
	if !ok {
		return "", fmt.Errorf("no search token for result %q", q.Result)
	}
	season := ""
	if len(q.Date) >= 4 {
		season = q.Date[:4]
	}

	url := baseURL + "/statcast_search?"
	url += fmt.Sprintf("hfPTM=&hfPT=&hfAB=&hfGT=R%%7C&hfPR=%s%%7C&hfZ=&hfStadium=&hfBBL=&hf", token)
	url += fmt.Sprintf("NewZones=&hfPull=&hfC=%d%d%%7C&hfSea=%s%%7C&hfSit=&player_type=pitcher&hfOuts=&hfOpponent=&pitcher_throws=&batter_stands=&hfSA=&game_date_gt=%s&game_date_lt=%s&hfMo=&hfTeam=&home_road=&hfRO=&position=&hfInfield=&hfOutfield=&hfInn=%d%%7C&hfBBT=&",
		q.Balls, q.Strikes, season, q.Date, q.Date, q.Inning)
	url += fmt.Sprintf("batters_lookup%%5B%%5D=%d&hfFlag=&pitchers_lookup%%5B%%5D=%d", q.BatterID, q.PitcherID)
	url += "&metric_1=&group_by=name&min_pitches=0&min_results=0&min_pas=0&sort_col=pitches&player_event_sort=api_p_release_speed&sort_order=desc#results"
	return url, nil
}
