package board

import "math"

// Point is a position, either in client pixels or logical board units
// depending on context.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// IsFinite reports whether both coordinates are real numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Rect is the board element's on-screen bounding box in client pixels.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Measured reports whether the box has been laid out. Mapping through an
// unmeasured box produces NaN or infinite coordinates.
func (r Rect) Measured() bool {
	return r.Width > 0 && r.Height > 0
}

// Viewbox is the logical coordinate space of the board.
type Viewbox struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultViewbox matches the body outline artwork.
var DefaultViewbox = Viewbox{Width: 400, Height: 700}

// ToLogical maps a client position into the viewbox by linear scaling.
// No rounding is applied.
func ToLogical(client Point, box Rect, view Viewbox) Point {
	return Point{
		X: (client.X - box.Left) / box.Width * view.Width,
		Y: (client.Y - box.Top) / box.Height * view.Height,
	}
}

// ToClient is the inverse of ToLogical; it positions overlays drawn over the
// board element.
func ToClient(logical Point, box Rect, view Viewbox) Point {
	return Point{
		X: logical.X/view.Width*box.Width + box.Left,
		Y: logical.Y/view.Height*box.Height + box.Top,
	}
}

// Percent places a logical point as percentages of the board element, the
// form CSS absolute positioning wants.
func Percent(logical Point, view Viewbox) Point {
	return ToClient(logical, Rect{Width: 100, Height: 100}, view)
}
