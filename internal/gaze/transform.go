// Package gaze converts raw eye tracker samples into the direction-and-flags
// form the host input component expects. It is free of I/O so the numeric
// path can be tested with literal inputs.
package gaze

import "math"

// Sample is one raw cycle from the tracker service. Left and Right are the
// per-eye gaze tangents (x horizontal, y vertical) in the tracker's frame.
type Sample struct {
	OK          bool
	TimeSeconds float64
	Left        [2]float64
	Right       [2]float64
}

// Published is the transformed representation delivered to the host: a unit
// gaze direction with -Z forward, plus the component state flags.
type Published struct {
	Direction [3]float64
	Valid     bool
	Tracked   bool
	Active    bool
}

// LegacyBits encodes the flags the way the older host input interface takes
// them. The exact meaning of the individual bits is not documented; these are
// the values the host accepts as "data present".
func (p Published) LegacyBits() (uint16, uint8) {
	if p.Valid {
		return 0x101, 0x01
	}
	return 0, 0
}

// forward is what the host sees when no gaze data is available: looking
// straight ahead, flags cleared.
var forward = [3]float64{0, 0, -1}

// Transform converts one raw sample. A sample that failed or carries a
// non-positive timestamp yields the fixed forward vector with all flags off.
func Transform(s Sample) Published {
	if !s.OK || s.TimeSeconds <= 0 {
		return Published{Direction: forward}
	}

	// Average both eyes' tangents, then convert the pitch/yaw pair to a
	// unit vector in polar form.
	h := math.Atan((s.Left[0] + s.Right[0]) / 2)
	v := math.Atan((s.Left[1] + s.Right[1]) / 2)

	dir := [3]float64{
		math.Sin(h) * math.Cos(v),
		math.Sin(v),
		-math.Cos(h) * math.Cos(v),
	}
	if n := math.Sqrt(dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2]); n > 0 {
		dir[0] /= n
		dir[1] /= n
		dir[2] /= n
	}

	return Published{Direction: dir, Valid: true, Tracked: true, Active: true}
}
