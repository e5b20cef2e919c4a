package physics

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

type fixedMover struct {
	vx, vy Velocity[Pixels]
}

func (m fixedMover) HorizontalVelocity(time.Duration) Velocity[Pixels] { return m.vx }
func (m fixedMover) VerticalVelocity(time.Duration) Velocity[Pixels]   { return m.vy }

func TestVelocity_Distance(t *testing.T) {
	tests := []struct {
		name    string
		perMs   Pixels
		elapsed time.Duration
		want    Pixels
	}{
		{"zero elapsed", 2, 0, 0},
		{"one second up", -0.5, time.Second, -500},
		{"fractional ms", 0.25, 1500 * time.Microsecond, 0.375},
		{"stationary", 0, time.Hour, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewVelocity(tt.perMs).Distance(tt.elapsed)
			if got != tt.want {
				t.Errorf("Distance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDisplace_AxesIndependent(t *testing.T) {
	pos := NewPosition[Pixels](10, 20)
	m := fixedMover{vx: NewVelocity[Pixels](0.5), vy: NewVelocity[Pixels](-0.25)}

	got := Displace(pos, m, 100*time.Millisecond)
	if got.X != 60 || got.Y != -5 {
		t.Errorf("Displace = (%v, %v), want (60, -5)", got.X, got.Y)
	}
}

func TestDisplace_DiagonalFasterThanAxial(t *testing.T) {
	origin := NewPosition[Pixels](0, 0)
	axial := Displace(origin, fixedMover{vx: NewVelocity[Pixels](1)}, time.Second)
	diagonal := Displace(origin, fixedMover{vx: NewVelocity[Pixels](1), vy: NewVelocity[Pixels](1)}, time.Second)

	axialSq := axial.X*axial.X + axial.Y*axial.Y
	diagonalSq := diagonal.X*diagonal.X + diagonal.Y*diagonal.Y
	if diagonalSq <= axialSq {
		t.Errorf("diagonal distance^2 = %v, want > %v", diagonalSq, axialSq)
	}
}

func TestRect_Intersects(t *testing.T) {
	base := Rect[Pixels]{X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name  string
		other Rect[Pixels]
		want  bool
	}{
		{"overlap", Rect[Pixels]{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"contained", Rect[Pixels]{X: 2, Y: 2, Width: 2, Height: 2}, true},
		{"touching right edge", Rect[Pixels]{X: 10, Y: 0, Width: 5, Height: 5}, false},
		{"touching bottom edge", Rect[Pixels]{X: 0, Y: 10, Width: 5, Height: 5}, false},
		{"touching corner", Rect[Pixels]{X: 10, Y: 10, Width: 5, Height: 5}, false},
		{"far away", Rect[Pixels]{X: 100, Y: 100, Width: 5, Height: 5}, false},
		{"only x overlaps", Rect[Pixels]{X: 5, Y: 20, Width: 5, Height: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
			if got := tt.other.Intersects(base); got != tt.want {
				t.Errorf("Intersects (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClamp_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lo := rapid.Float64Range(-1000, 1000).Draw(t, "lo")
		hi := lo + rapid.Float64Range(0, 1000).Draw(t, "span")
		v := rapid.Float64Range(-5000, 5000).Draw(t, "v")

		got := Clamp(Pixels(v), Pixels(lo), Pixels(hi))
		if got < Pixels(lo) || got > Pixels(hi) {
			t.Fatalf("Clamp(%v, %v, %v) = %v, outside range", v, lo, hi, got)
		}
		if v >= lo && v <= hi && got != Pixels(v) {
			t.Fatalf("Clamp(%v, %v, %v) = %v, want unchanged", v, lo, hi, got)
		}
	})
}

func TestDirection_Axis(t *testing.T) {
	tests := []struct {
		dir  Direction
		axis Axis
		sign float64
	}{
		{Up, AxisVertical, -1},
		{Down, AxisVertical, 1},
		{Left, AxisHorizontal, -1},
		{Right, AxisHorizontal, 1},
		{Stationary, AxisNeutral, 0},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			if got := tt.dir.Axis(); got != tt.axis {
				t.Errorf("Axis = %v, want %v", got, tt.axis)
			}
			if got := tt.dir.Sign(); got != tt.sign {
				t.Errorf("Sign = %v, want %v", got, tt.sign)
			}
			parsed, ok := ParseDirection(tt.dir.String())
			if !ok || parsed != tt.dir {
				t.Errorf("ParseDirection(%q) = %v, %v", tt.dir.String(), parsed, ok)
			}
		})
	}

	if _, ok := ParseDirection("sideways"); ok {
		t.Error("ParseDirection should reject unknown names")
	}
}
