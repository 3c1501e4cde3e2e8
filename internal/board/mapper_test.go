package board

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestToLogical_ScalesLinearly(t *testing.T) {
	box := Rect{Left: 100, Top: 50, Width: 200, Height: 350}
	got := ToLogical(Point{X: 200, Y: 225}, box, DefaultViewbox)
	if !approx(got.X, 200) || !approx(got.Y, 350) {
		t.Errorf("ToLogical = %+v, want {200 350}", got)
	}

	corner := ToLogical(Point{X: 100, Y: 50}, box, DefaultViewbox)
	if corner.X != 0 || corner.Y != 0 {
		t.Errorf("top-left corner maps to %+v, want origin", corner)
	}
}

func TestToLogical_NoRounding(t *testing.T) {
	box := Rect{Width: 3, Height: 7}
	got := ToLogical(Point{X: 1, Y: 1}, box, Viewbox{Width: 1, Height: 1})
	if !approx(got.X, 1.0/3.0) || !approx(got.Y, 1.0/7.0) {
		t.Errorf("ToLogical = %+v, want fractional coordinates", got)
	}
}

func TestToLogical_UnmeasuredBoxIsDegenerate(t *testing.T) {
	box := Rect{Left: 10, Top: 10}
	if box.Measured() {
		t.Fatal("zero-sized box should not count as measured")
	}
	got := ToLogical(Point{X: 20, Y: 20}, box, DefaultViewbox)
	if got.IsFinite() {
		t.Errorf("mapping through an unmeasured box gave finite %+v", got)
	}
}

func TestToClient_RoundTrip(t *testing.T) {
	boxes := []Rect{
		{Left: 0, Top: 0, Width: 400, Height: 700},
		{Left: 37.5, Top: 112.25, Width: 321.7, Height: 563},
		{Left: -20, Top: -400, Width: 80, Height: 140},
	}
	points := []Point{{0, 0}, {200, 280}, {399.9, 699.9}, {13.37, 421.42}}
	for _, box := range boxes {
		for _, p := range points {
			back := ToLogical(ToClient(p, box, DefaultViewbox), box, DefaultViewbox)
			if !approx(back.X, p.X) || !approx(back.Y, p.Y) {
				t.Errorf("round trip of %+v through %+v gave %+v", p, box, back)
			}
		}
	}
}

func TestPercent(t *testing.T) {
	got := Percent(Point{X: 200, Y: 350}, DefaultViewbox)
	if !approx(got.X, 50) || !approx(got.Y, 50) {
		t.Errorf("Percent = %+v, want {50 50}", got)
	}
}
