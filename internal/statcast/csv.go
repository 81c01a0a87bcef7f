package statcast

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column names in Savant's statcast_search CSV export.
const (
	colGameDate        = "game_date"
	colPitcher         = "pitcher"
	colBatter          = "batter"
	colDescription     = "description"
	colInning          = "inning"
	colTopbot          = "inning_topbot"
	colBalls           = "balls"
	colStrikes         = "strikes"
	colPlateX          = "plate_x"
	colPlateZ          = "plate_z"
	colSzTop           = "sz_top"
	colSzBot           = "sz_bot"
	colLaunchSpeed     = "launch_speed"
	colLaunchAngle     = "launch_angle"
	colHomeTeam        = "home_team"
	colAwayTeam        = "away_team"
	colDeltaHomeWinExp = "delta_home_win_exp"
)

// ParseCSV decodes a Savant CSV export into pitches. Rows with malformed
// required fields are dropped rather than failing the whole export; optional
// numeric columns record presence on the Pitch.
func ParseCSV(r io.Reader) ([]Pitch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colGameDate, colPitcher, colBatter, colDescription} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("CSV missing column %q", required)
		}
	}

	var pitches []Pitch
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}

		p, ok := parseRow(idx, record)
		if !ok {
			continue
		}
		pitches = append(pitches, p)
	}
	return pitches, nil
}

func parseRow(idx map[string]int, record []string) (Pitch, bool) {
	field := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	pitcher, err1 := strconv.Atoi(field(colPitcher))
	batter, err2 := strconv.Atoi(field(colBatter))
	date := field(colGameDate)
	if err1 != nil || err2 != nil || date == "" {
		return Pitch{}, false
	}
	if len(date) > 10 {
		date = date[:10]
	}

	p := Pitch{
		PitcherID: pitcher,
		BatterID:  batter,
		GameDate:  date,
		Result:    field(colDescription),
		Half:      field(colTopbot),
		HomeTeam:  field(colHomeTeam),
		AwayTeam:  field(colAwayTeam),
	}
	p.Inning, _ = strconv.Atoi(field(colInning))
	p.Balls, _ = strconv.Atoi(field(colBalls))
	p.Strikes, _ = strconv.Atoi(field(colStrikes))

	var zoneOK [4]bool
	p.PlateX, zoneOK[0] = parseFloat(field(colPlateX))
	p.PlateZ, zoneOK[1] = parseFloat(field(colPlateZ))
	p.SzTop, zoneOK[2] = parseFloat(field(colSzTop))
	p.SzBot, zoneOK[3] = parseFloat(field(colSzBot))
	p.HasZone = zoneOK[0] && zoneOK[1] && zoneOK[2] && zoneOK[3]

	var speedOK, angleOK bool
	p.LaunchSpeed, speedOK = parseFloat(field(colLaunchSpeed))
	p.LaunchAngle, angleOK = parseFloat(field(colLaunchAngle))
	p.HasLaunch = speedOK && angleOK

	p.DeltaHomeWinExp, p.HasWinExp = parseFloat(field(colDeltaHomeWinExp))

	return p, true
}

// parseFloat handles Savant's empty and "null" cells.
func parseFloat(s string) (float64, bool) {
	if s == "" || s == "null" || s == "NA" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
