package ringtarget

import "math"

// Position is a point in canvas pixels before rounding.
type Position struct {
	X, Y float64
}

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// ToPoint converts polar coordinates to a pixel.
// Angle 0 = up (north), increasing clockwise. Coordinates are truncated
// toward zero, so the point lies within a pixel of the true circle.
func ToPoint(angleDeg, radius float64, center Position) Point {
	rad := angleDeg * math.Pi / 180.0
	x := center.X + radius*math.Sin(rad)
	y := center.Y - radius*math.Cos(rad) // screen Y grows downward
	return Point{X: int(x), Y: int(y)}
}
