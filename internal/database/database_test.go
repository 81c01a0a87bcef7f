package database

import (
	"path/filepath"
	"testing"

	"github.com/ddoberne/statcast-highlight-tool/internal/statcast"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func samplePitch(date string) statcast.Pitch {
	return statcast.Pitch{
		PitcherID: 100,
		BatterID:  200,
		GameDate:  date,
		Inning:    4,
		Half:      statcast.HalfBottom,
		Balls:     1,
		Strikes:   2,
		Result:    statcast.ResultCalledStrike,
		PlateX:    0.9,
		PlateZ:    3.6,
		SzTop:     3.4,
		SzBot:     1.6,
		HasZone:   true,
		HomeTeam:  "BOS",
		AwayTeam:  "NYY",
	}
}

func TestCacheDayRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if err := db.CacheDay("2023-06-01", []statcast.Pitch{samplePitch("2023-06-01")}); err != nil {
		t.Fatalf("CacheDay: %v", err)
	}

	pitches, err := db.GetPitchesForRange("2023-06-01", "2023-06-01")
	if err != nil {
		t.Fatalf("GetPitchesForRange: %v", err)
	}
	if len(pitches) != 1 {
		t.Fatalf("expected 1 pitch, got %d", len(pitches))
	}
	p := pitches[0]
	if p.PitcherID != 100 || p.Result != statcast.ResultCalledStrike || !p.HasZone {
		t.Errorf("round trip mismatch: %+v", p)
	}
	if p.HasLaunch || p.HasWinExp {
		t.Error("absent optional fields should stay absent")
	}
}

func TestCacheDayReplacesExistingRows(t *testing.T) {
	db := openTestDB(t)

	db.CacheDay("2023-06-01", []statcast.Pitch{samplePitch("2023-06-01"), samplePitch("2023-06-01")})
	db.CacheDay("2023-06-01", []statcast.Pitch{samplePitch("2023-06-01")})

	pitches, _ := db.GetPitchesForRange("2023-06-01", "2023-06-01")
	if len(pitches) != 1 {
		t.Errorf("re-cache should replace rows, got %d", len(pitches))
	}
}

func TestCacheDayIgnoresOtherDates(t *testing.T) {
	db := openTestDB(t)

	db.CacheDay("2023-06-01", []statcast.Pitch{samplePitch("2023-06-02")})
	pitches, _ := db.GetPitchesForRange("2023-06-01", "2023-06-02")
	if len(pitches) != 0 {
		t.Errorf("pitches from other dates should not be stored, got %d", len(pitches))
	}
}

func TestMissingDays(t *testing.T) {
	db := openTestDB(t)

	db.CacheDay("2023-06-02", nil)
	missing, err := db.MissingDays("2023-06-01", "2023-06-03")
	if err != nil {
		t.Fatalf("MissingDays: %v", err)
	}
	if len(missing) != 2 || missing[0] != "2023-06-01" || missing[1] != "2023-06-03" {
		t.Errorf("missing = %v", missing)
	}
}

func TestPlayerNameCache(t *testing.T) {
	db := openTestDB(t)

	if _, ok, _ := db.GetPlayerName(42); ok {
		t.Error("unexpected hit on empty cache")
	}
	if err := db.PutPlayerName(42, "Mookie Betts"); err != nil {
		t.Fatalf("PutPlayerName: %v", err)
	}
	name, ok, err := db.GetPlayerName(42)
	if err != nil || !ok || name != "Mookie Betts" {
		t.Errorf("got %q, %v, %v", name, ok, err)
	}
}

func TestRunsAndStats(t *testing.T) {
	db := openTestDB(t)

	db.CacheDay("2023-06-01", []statcast.Pitch{samplePitch("2023-06-01")})
	db.PutPlayerName(1, "A")
	if err := db.InsertRun("ump_show", "2023-06-01", "2023-06-07", 5, 4, 1, "/tmp/reel.mp4"); err != nil {
		t.Fatalf("InsertRun: %v", err)
	}

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.CachedDays != 1 || stats.CachedPitches != 1 || stats.ResolvedPlayers != 1 || stats.Runs != 1 {
		t.Errorf("stats = %+v", stats)
	}

	runs, err := db.GetRecentRuns(10)
	if err != nil || len(runs) != 1 {
		t.Fatalf("GetRecentRuns: %v, %d", err, len(runs))
	}
	if runs[0].Rule != "ump_show" || runs[0].Compiled != 4 {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestReopenKeepsSchemaAndData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := db.CacheDay("2023-06-01", []statcast.Pitch{samplePitch("2023-06-01")}); err != nil {
		t.Fatalf("CacheDay: %v", err)
	}
	db.Close()

	// Second open must see the recorded version, skip the applied steps,
	// and serve the previously cached day.
	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	pitches, err := db.GetPitchesForRange("2023-06-01", "2023-06-01")
	if err != nil {
		t.Fatalf("GetPitchesForRange: %v", err)
	}
	if len(pitches) != 1 {
		t.Errorf("expected cached pitch to survive reopen, got %d", len(pitches))
	}
}
