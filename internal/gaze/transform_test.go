package gaze

import (
	"math"
	"testing"
)

const tolerance = 1e-5

func vecNorm(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func TestTransformInvalidSamples(t *testing.T) {
	tests := []struct {
		name   string
		sample Sample
	}{
		{"tracker failure", Sample{OK: false, TimeSeconds: 1.5}},
		{"zero timestamp", Sample{OK: true, TimeSeconds: 0}},
		{"negative timestamp", Sample{OK: true, TimeSeconds: -3}},
		{"failure with gaze data", Sample{OK: false, TimeSeconds: 2, Left: [2]float64{1, 1}, Right: [2]float64{1, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Transform(tt.sample)
			if p.Direction != [3]float64{0, 0, -1} {
				t.Errorf("direction = %v, want (0,0,-1)", p.Direction)
			}
			if p.Valid || p.Tracked || p.Active {
				t.Errorf("flags = %v/%v/%v, want all false", p.Valid, p.Tracked, p.Active)
			}
			if f, e := p.LegacyBits(); f != 0 || e != 0 {
				t.Errorf("legacy bits = %#x/%#x, want 0/0", f, e)
			}
		})
	}
}

func TestTransformCenteredGaze(t *testing.T) {
	p := Transform(Sample{OK: true, TimeSeconds: 1})

	if p.Direction != [3]float64{0, 0, -1} {
		t.Fatalf("direction = %v, want (0,0,-1)", p.Direction)
	}
	if !p.Valid || !p.Tracked || !p.Active {
		t.Fatalf("flags = %v/%v/%v, want all true", p.Valid, p.Tracked, p.Active)
	}
	if f, e := p.LegacyBits(); f != 0x101 || e != 0x01 {
		t.Fatalf("legacy bits = %#x/%#x, want 0x101/0x1", f, e)
	}
}

func TestTransformHorizontal45(t *testing.T) {
	// Both eyes at tangent 1 horizontally: 45 degrees to the right.
	p := Transform(Sample{
		OK:          true,
		TimeSeconds: 1,
		Left:        [2]float64{1, 0},
		Right:       [2]float64{1, 0},
	})

	if p.Direction[0] <= 0 {
		t.Errorf("x = %v, want > 0", p.Direction[0])
	}
	if p.Direction[2] >= 0 {
		t.Errorf("z = %v, want < 0", p.Direction[2])
	}
	if d := math.Abs(p.Direction[0] + p.Direction[2]); d > tolerance {
		t.Errorf("|x| and |z| differ by %v, want equal magnitude", d)
	}
	if math.Abs(p.Direction[1]) > tolerance {
		t.Errorf("y = %v, want ~0", p.Direction[1])
	}
	if d := math.Abs(vecNorm(p.Direction) - 1); d > tolerance {
		t.Errorf("norm off unit by %v", d)
	}
}

func TestTransformVertical45(t *testing.T) {
	p := Transform(Sample{
		OK:          true,
		TimeSeconds: 1,
		Left:        [2]float64{0, 1},
		Right:       [2]float64{0, 1},
	})

	want := math.Sin(math.Pi / 4)
	if math.Abs(p.Direction[1]-want) > tolerance {
		t.Errorf("y = %v, want %v", p.Direction[1], want)
	}
	if d := math.Abs(vecNorm(p.Direction) - 1); d > tolerance {
		t.Errorf("norm off unit by %v", d)
	}
}

func TestTransformAveragesEyes(t *testing.T) {
	// One eye looking right, the other centered: the published angle is the
	// arctangent of the averaged tangents.
	p := Transform(Sample{
		OK:          true,
		TimeSeconds: 1,
		Left:        [2]float64{1, 0},
		Right:       [2]float64{0, 0},
	})

	h := math.Atan(0.5)
	if math.Abs(p.Direction[0]-math.Sin(h)) > tolerance {
		t.Errorf("x = %v, want %v", p.Direction[0], math.Sin(h))
	}
	if math.Abs(p.Direction[2]+math.Cos(h)) > tolerance {
		t.Errorf("z = %v, want %v", p.Direction[2], -math.Cos(h))
	}
}
