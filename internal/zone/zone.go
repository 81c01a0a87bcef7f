// Package zone computes pitch displacement from the strike zone.
//
// The strike zone is a batter-specific vertical interval [szBot, szTop]
// combined with a fixed horizontal half-width of 0.75 ft centered on the
// plate. A configurable correction widens the zone to account for
// measurement and calling slack.
package zone

import "math"

// HalfWidth is the horizontal half-width of the strike zone in feet.
const HalfWidth = 0.75

// DefaultCorrection is the default zone tolerance in feet.
const DefaultCorrection = 0.3

// HighLow returns the vertical distance by which plateZ misses the tolerant
// zone, or 0 if it lies within [szBot-correction, szTop+correction].
func HighLow(szTop, szBot, plateZ, correction float64) float64 {
	if plateZ > szBot-correction && plateZ < szTop+correction {
		return 0
	}
	below := math.Abs(szBot - plateZ + correction)
	above := math.Abs(plateZ - szTop - correction)
	return math.Min(below, above)
}

// OffEdge returns the horizontal distance by which plateX misses the zone
// edge, or 0 if it lies within [-HalfWidth, HalfWidth].
func OffEdge(plateX float64) float64 {
	if plateX > -HalfWidth && plateX < HalfWidth {
		return 0
	}
	return math.Abs(plateX) - HalfWidth
}

// MissBy combines the vertical and horizontal misses into the Euclidean
// distance a pitch missed the tolerant zone by, rounded to two decimals.
// Zero for any pitch inside the tolerant zone.
func MissBy(highLow, offEdge float64) float64 {
	d := math.Sqrt(highLow*highLow + offEdge*offEdge)
	return math.Round(d*100) / 100
}

// OffCenter returns the raw distance from the geometric center of the
// (non-tolerant) strike zone. Always >= 0.
func OffCenter(plateX, plateZ, szTop, szBot float64) float64 {
	dz := plateZ - (szTop+szBot)/2
	return math.Sqrt(plateX*plateX + dz*dz)
}
