package rules

import (
	"errors"
	"strings"
	"testing"

	"github.com/ddoberne/statcast-highlight-tool/internal/statcast"
)

func zonePitch(result string, plateX, plateZ float64) statcast.Pitch {
	return statcast.Pitch{
		Result:  result,
		PlateX:  plateX,
		PlateZ:  plateZ,
		SzTop:   3.5,
		SzBot:   1.5,
		HasZone: true,
	}
}

func TestLookupUnknownRule(t *testing.T) {
	r := NewRegistry(0.3)
	if _, err := r.Lookup("nope"); !errors.Is(err, ErrUnknownRule) {
		t.Errorf("expected ErrUnknownRule, got %v", err)
	}
}

func TestBlindUmpsIsAlias(t *testing.T) {
	r := NewRegistry(0.3)
	a, err := r.Lookup("worst_called_balls")
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Lookup("blind_umps")
	if err != nil {
		t.Fatal(err)
	}
	if a.Name != b.Name {
		t.Errorf("alias resolves to %q, want %q", b.Name, a.Name)
	}
}

func TestWorstCalledStrikes(t *testing.T) {
	r := NewRegistry(0.3)
	rule, _ := r.Lookup("worst_called_strikes")

	wild := zonePitch(statcast.ResultCalledStrike, 2.0, 2.5)
	if !rule.Filter(wild) {
		t.Fatal("called strike with zone data should pass filter")
	}
	// off_edge = 2.0 - 0.75 = 1.25, high_low = 0
	if got := rule.Score(wild, Groups{}); got != 1.25 {
		t.Errorf("score = %v, want 1.25", got)
	}
	if flavor := rule.Flavor(wild, Groups{}); !strings.Contains(flavor, "15.0 inches") {
		t.Errorf("flavor = %q, want miss in inches", flavor)
	}

	if rule.Filter(zonePitch(statcast.ResultBall, 2.0, 2.5)) {
		t.Error("ball should not pass called-strike filter")
	}
	noZone := statcast.Pitch{Result: statcast.ResultCalledStrike}
	if rule.Filter(noZone) {
		t.Error("missing zone data should be excluded before scoring")
	}
}

func TestWorstCalledBallsScoreOrientation(t *testing.T) {
	r := NewRegistry(0.3)
	rule, _ := r.Lookup("worst_called_balls")

	centered := zonePitch(statcast.ResultBall, 0.05, 2.5)
	edge := zonePitch(statcast.ResultBall, 1.5, 2.5)
	// Descending order must put the centered call first.
	if rule.Score(centered, Groups{}) <= rule.Score(edge, Groups{}) {
		t.Error("centered ball should outscore edge ball")
	}
}

func TestCalledCorners(t *testing.T) {
	r := NewRegistry(0.3)
	rule, _ := r.Lookup("called_corners")

	corner := zonePitch(statcast.ResultCalledStrike, 0.7, 1.6)
	if !rule.Filter(corner) {
		t.Error("in-zone corner call should pass")
	}
	outside := zonePitch(statcast.ResultCalledStrike, 2.0, 2.5)
	if rule.Filter(outside) {
		t.Error("pitch outside tolerant zone should fail called_corners")
	}
	center := zonePitch(statcast.ResultCalledStrike, 0, 2.5)
	if rule.Score(corner, Groups{}) <= rule.Score(center, Groups{}) {
		t.Error("corner should outscore center")
	}
}

func TestUmpShowRequiresTwoStrikes(t *testing.T) {
	r := NewRegistry(0.3)
	rule, _ := r.Lookup("ump_show")

	p := zonePitch(statcast.ResultCalledStrike, 2.0, 2.5)
	p.Strikes = 2
	if !rule.Filter(p) {
		t.Error("called third strike should pass")
	}
	p.Strikes = 1
	if rule.Filter(p) {
		t.Error("non-two-strike count should fail ump_show")
	}
}

func TestTakesOfSteelRequiresTwoStrikes(t *testing.T) {
	r := NewRegistry(0.3)
	rule, _ := r.Lookup("takes_of_steel")

	p := zonePitch(statcast.ResultBall, 0.1, 2.5)
	p.Strikes = 2
	if !rule.Filter(p) {
		t.Error("two-strike take should pass")
	}
	p.Strikes = 0
	if rule.Filter(p) {
		t.Error("zero-strike take should fail")
	}
}

func TestScorchersAndUndergrounders(t *testing.T) {
	r := NewRegistry(0.3)
	scorchers, _ := r.Lookup("scorchers")
	undergrounders, _ := r.Lookup("undergrounders")

	liner := statcast.Pitch{Result: statcast.ResultHitIntoPlay, HasLaunch: true, LaunchSpeed: 110, LaunchAngle: 15}
	chopper := statcast.Pitch{Result: statcast.ResultHitIntoPlay, HasLaunch: true, LaunchSpeed: 105, LaunchAngle: -20}
	grounder := statcast.Pitch{Result: statcast.ResultHitIntoPlay, HasLaunch: true, LaunchSpeed: 99, LaunchAngle: -5}

	if !scorchers.Filter(liner) || scorchers.Filter(chopper) || scorchers.Filter(grounder) {
		t.Error("scorchers filter wants launch_angle > 0")
	}
	if !undergrounders.Filter(chopper) || undergrounders.Filter(liner) || undergrounders.Filter(grounder) {
		t.Error("undergrounders filter wants launch_angle < -10")
	}
	if scorchers.Score(liner, Groups{}) != 110 {
		t.Error("scorchers score should be launch speed")
	}
	noLaunch := statcast.Pitch{Result: statcast.ResultHitIntoPlay}
	if scorchers.Filter(noLaunch) {
		t.Error("missing launch data should be excluded")
	}
}

func TestWalks(t *testing.T) {
	r := NewRegistry(0.3)
	walks, _ := r.Lookup("walks")
	fullCount, _ := r.Lookup("full_count_walks")

	ballFour := zonePitch(statcast.ResultBall, 1.5, 4.0)
	ballFour.Balls = 3
	ballFour.Strikes = 1
	if !walks.Filter(ballFour) {
		t.Error("ball four should pass walks")
	}
	if fullCount.Filter(ballFour) {
		t.Error("1-strike walk should fail full_count_walks")
	}
	ballFour.Strikes = 2
	if !fullCount.Filter(ballFour) {
		t.Error("full-count walk should pass")
	}
	ballThree := zonePitch(statcast.ResultBall, 1.5, 4.0)
	ballThree.Balls = 2
	if walks.Filter(ballThree) {
		t.Error("non-walk ball should fail")
	}
}

func TestClutchScoreNoGroup(t *testing.T) {
	r := NewRegistry(0.3)
	rule, _ := r.Lookup("clutch")

	p := statcast.Pitch{HasWinExp: true, DeltaHomeWinExp: -0.4}
	if got := rule.Score(p, Groups{}); got != 0.4 {
		t.Errorf("ungrouped clutch = %v, want 0.4", got)
	}
}

func TestClutchScoreTeamGroup(t *testing.T) {
	p := statcast.Pitch{HasWinExp: true, DeltaHomeWinExp: 0.25, HomeTeam: "BOS", AwayTeam: "NYY"}

	g := Groups{Teams: []string{"BOS"}}
	if got := clutchScore(p, g); got != 0.25 {
		t.Errorf("home-team group = %v, want 0.25", got)
	}
	g = Groups{Teams: []string{"NYY"}}
	if got := clutchScore(p, g); got != -0.25 {
		t.Errorf("away-team group = %v, want -0.25", got)
	}
}

func TestClutchScorePlayerGroup(t *testing.T) {
	p := statcast.Pitch{
		HasWinExp:       true,
		DeltaHomeWinExp: 0.2,
		PitcherID:       100,
		BatterID:        200,
		Half:            statcast.HalfTop,
	}

	// Group pitcher working the top half pitches for the home side; the
	// home delta is credit for him.
	if got := clutchScore(p, Groups{Players: []int{100}}); got != 0.2 {
		t.Errorf("pitcher top half = %v, want 0.2", got)
	}
	p.Half = statcast.HalfBottom
	if got := clutchScore(p, Groups{Players: []int{100}}); got != -0.2 {
		t.Errorf("pitcher bottom half = %v, want -0.2", got)
	}
	// Non-pitcher group member flips again.
	if got := clutchScore(p, Groups{Players: []int{200}}); got != 0.2 {
		t.Errorf("batter bottom half = %v, want 0.2", got)
	}
}

func TestClutchFlavor(t *testing.T) {
	r := NewRegistry(0.3)
	rule, _ := r.Lookup("clutch")
	p := statcast.Pitch{HasWinExp: true, DeltaHomeWinExp: 0.31}
	if flavor := rule.Flavor(p, Groups{}); !strings.Contains(flavor, "0.31 change in WPA") {
		t.Errorf("flavor = %q", flavor)
	}
}

func TestNamesIncludesAllRules(t *testing.T) {
	r := NewRegistry(0.3)
	names := r.Names()
	want := []string{
		"blind_umps", "called_corners", "clutch", "full_count_walks",
		"scorchers", "takes_of_steel", "ump_show", "undergrounders",
		"walks", "worst_called_balls", "worst_called_strikes",
	}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d: %v", len(names), len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestDefaultCorrectionApplied(t *testing.T) {
	// Registry built with zero correction falls back to the default 0.3.
	r := NewRegistry(0)
	rule, _ := r.Lookup("worst_called_strikes")
	borderline := zonePitch(statcast.ResultCalledStrike, 0, 1.25)
	if got := rule.Score(borderline, Groups{}); got != 0 {
		t.Errorf("score = %v, want 0 inside tolerant zone", got)
	}
}
