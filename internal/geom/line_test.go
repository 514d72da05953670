package geom

import (
	"math"
	"testing"
)

func TestLerp(t *testing.T) {
	v1, v2 := Vec(10, 20), Vec(30, -40)
	tests := []struct {
		alpha float64
		want  Vector
	}{
		{0, v1},
		{1, v2},
		{-0.5, v1},
		{1.5, v2},
		{0.5, Vec(20, -10)},
		{0.25, Vec(15, 5)},
	}
	for _, tt := range tests {
		if got := Lerp(v1, v2, tt.alpha); !nearVec(got, tt.want) {
			t.Errorf("Lerp(alpha=%v) = %v, want %v", tt.alpha, got, tt.want)
		}
	}
}

func TestInsidePoints(t *testing.T) {
	tests := []struct {
		name      string
		distance  float64
		wantCount int
		interval  float64
	}{
		{"shorter than minimum", 10, 0, 0},
		{"just under midpoint threshold", 15, 0, 0},
		{"midpoint threshold", 20, 1, 10},
		{"midpoint fallback", 30, 1, 15},
		{"single subdivision", 50, 1, 25},
		{"three subdivisions", 100, 3, 25},
		{"full density", 300, 10, 300.0 / 11},
		{"long beam", 1000, 10, 1000.0 / 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := Vec(5, 5)
			end := start.Add(AxisX.Mul(tt.distance))
			got := InsidePoints(start, end, AxisX)
			if len(got) != tt.wantCount {
				t.Fatalf("InsidePoints(d=%v) returned %d points, want %d", tt.distance, len(got), tt.wantCount)
			}
			for i, p := range got {
				want := start.Add(AxisX.Mul(tt.interval * float64(i+1)))
				if !nearVec(p, want) {
					t.Errorf("point %d = %v, want %v", i, p, want)
				}
			}
		})
	}
}

func TestInsidePointsFollowsDirection(t *testing.T) {
	start, end := Vec(0, 0), Vec(0, -100)
	dir, _ := Direction(start, end)
	got := InsidePoints(start, end, dir)
	want := []Vector{Vec(0, -25), Vec(0, -50), Vec(0, -75)}
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if !nearVec(got[i], want[i]) {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNewLine(t *testing.T) {
	l := NewLine(Vec(0, 1), Vec(2, 5))
	if l.Slope != 2 || l.Intercept != 1 {
		t.Errorf("NewLine slope/intercept = %v/%v, want 2/1", l.Slope, l.Intercept)
	}
	v := NewLine(Vec(3, 0), Vec(3, 9))
	if !v.Vertical() || !math.IsNaN(v.Intercept) {
		t.Errorf("vertical line = %+v, want NaN slope and intercept", v)
	}
}

func TestIntersectPoint(t *testing.T) {
	tests := []struct {
		name   string
		target Line
		start  Vector
		dir    Vector
		want   Vector
		wantOK bool
	}{
		{
			name:   "diagonal crossing",
			target: NewLine(Vec(0, 0), Vec(10, 10)),
			start:  Vec(0, 10), dir: Vec(1, -1),
			want: Vec(5, 5), wantOK: true,
		},
		{
			name:   "parallel",
			target: NewLine(Vec(0, 0), Vec(10, 0)),
			start:  Vec(0, 5), dir: Vec(1, 0),
		},
		{
			name:   "both vertical",
			target: NewLine(Vec(0, 0), Vec(0, 10)),
			start:  Vec(5, 0), dir: Vec(0, 1),
		},
		{
			name:   "vertical ray onto endpoint",
			target: NewLine(Vec(0, 0), Vec(10, 0)),
			start:  Vec(10, 5), dir: Vec(0, -1),
			want: Vec(10, 0), wantOK: true,
		},
		{
			name:   "vertical target",
			target: NewLine(Vec(4, 0), Vec(4, 10)),
			start:  Vec(0, 0), dir: Vec(1, 1),
			want: Vec(4, 4), wantOK: true,
		},
		{
			name:   "outside target box",
			target: NewLine(Vec(0, 0), Vec(10, 0)),
			start:  Vec(20, 5), dir: Vec(0, -1),
		},
		{
			name:   "behind the ray start is accepted",
			target: NewLine(Vec(0, 0), Vec(10, 0)),
			start:  Vec(5, 5), dir: Vec(0, 1),
			want: Vec(5, 0), wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IntersectPoint(tt.target, tt.start, tt.dir)
			if ok != tt.wantOK {
				t.Fatalf("IntersectPoint() ok = %v, want %v (point %v)", ok, tt.wantOK, got)
			}
			if ok && !nearVec(got, tt.want) {
				t.Errorf("IntersectPoint() = %v, want %v", got, tt.want)
			}
		})
	}
}
