package board

// DefaultSnapMultiplier widens every target's radius when deciding a snap.
const DefaultSnapMultiplier = 1.2

// Target is a named circular acceptance zone in logical units.
type Target struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	R  float64 `json:"r"`
}

// Center returns the target's centre point.
func (t Target) Center() Point {
	return Point{X: t.X, Y: t.Y}
}

// SnapRadius is the effective acceptance radius under multiplier.
func (t Target) SnapRadius(multiplier float64) float64 {
	return t.R * multiplier
}

// WithinSnap reports whether p lies within the target's snap radius. The
// boundary counts as inside.
func WithinSnap(p Point, t Target, multiplier float64) bool {
	return p.Distance(t.Center()) <= t.SnapRadius(multiplier)
}

// Nearest returns the target closest to p among those p snaps into. Ties go
// to the earlier target. ok is false when p snaps into none of them.
func Nearest(p Point, targets []Target, multiplier float64) (best Target, distance float64, ok bool) {
	for _, t := range targets {
		if !WithinSnap(p, t, multiplier) {
			continue
		}
		d := p.Distance(t.Center())
		if !ok || d < distance {
			best, distance, ok = t, d, true
		}
	}
	return best, distance, ok
}
