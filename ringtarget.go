// Package ringtarget generates coded circular targets for photogrammetry.
//
// Each target carries a short binary word as a ring of filled and unfilled
// angular segments around a bullseye. Codes are chosen so that no two
// targets can be confused when the camera sees them rotated.
package ringtarget

import "fmt"

// Bit width limits for a code ring.
const (
	MinBits = 2
	MaxBits = 32
)

// Config controls code generation and target geometry.
// Radii and sizes are in pixels.
type Config struct {
	// Bits is the number of ring segments (default: 12). Must be even.
	Bits int

	// Concentric circle radii, innermost first (defaults: 24, 288, 660, 1032).
	RadiusInnerDot   int
	RadiusInnerBlack int
	RadiusOuterWhite int
	RadiusOuterBlack int

	// Width and Height of the output canvas (default: 3000x3000).
	Width  int
	Height int

	// ArcMargin pushes the code slices past the outer black circle so their
	// truncated endpoints never leave a gap at the edge (default: 2).
	ArcMargin int

	// Label draws the code number in the top-left corner.
	Label bool

	// QR draws a QR code of the code number in the top-right corner.
	QR bool
}

// DefaultConfig returns the standard 12-bit target on a 3000px canvas.
func DefaultConfig() Config {
	return Config{
		Bits:             12,
		RadiusInnerDot:   24,
		RadiusInnerBlack: 288,
		RadiusOuterWhite: 660,
		RadiusOuterBlack: 1032,
		Width:            3000,
		Height:           3000,
		ArcMargin:        2,
	}
}

// Validate reports whether the config describes a drawable target.
func (c Config) Validate() error {
	if err := ValidateBits(c.Bits); err != nil {
		return err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.ArcMargin < 0 {
		return fmt.Errorf("%w: negative arc margin %d", ErrInvalidConfig, c.ArcMargin)
	}
	radii := [...]int{c.RadiusInnerDot, c.RadiusInnerBlack, c.RadiusOuterWhite, c.RadiusOuterBlack}
	if radii[0] <= 0 {
		return fmt.Errorf("%w: inner dot radius %d", ErrInvalidConfig, radii[0])
	}
	for i := 1; i < len(radii); i++ {
		if radii[i] <= radii[i-1] {
			return fmt.Errorf("%w: radii must be strictly increasing, got %v", ErrInvalidConfig, radii)
		}
	}
	if 2*c.RadiusOuterBlack > min(c.Width, c.Height) {
		return fmt.Errorf("%w: outer radius %d does not fit %dx%d canvas",
			ErrInvalidConfig, c.RadiusOuterBlack, c.Width, c.Height)
	}
	return nil
}

// Scaled returns a copy with the canvas, radii and arc margin multiplied by
// f. Each value is truncated and kept at least 1; a positive margin stays
// positive.
func (c Config) Scaled(f float64) Config {
	scale := func(v, floor int) int {
		return max(floor, int(float64(v)*f))
	}
	s := c
	s.RadiusInnerDot = scale(c.RadiusInnerDot, 1)
	s.RadiusInnerBlack = scale(c.RadiusInnerBlack, 1)
	s.RadiusOuterWhite = scale(c.RadiusOuterWhite, 1)
	s.RadiusOuterBlack = scale(c.RadiusOuterBlack, 1)
	s.Width = scale(c.Width, 1)
	s.Height = scale(c.Height, 1)
	s.ArcMargin = scale(c.ArcMargin, min(1, c.ArcMargin))
	return s
}

// Center returns the canvas center.
func (c Config) Center() Position {
	return Position{X: float64(c.Width) / 2, Y: float64(c.Height) / 2}
}

// OuterArcRadius returns the radius the code slices are drawn to.
func (c Config) OuterArcRadius() float64 {
	return float64(c.RadiusOuterBlack + c.ArcMargin)
}

// SegmentAngle returns the angular width of one ring segment in degrees.
func (c Config) SegmentAngle() float64 {
	if c.Bits <= 0 {
		return 0
	}
	return 360.0 / float64(c.Bits)
}

// CodeRadius returns the radius midway through the code ring, between the
// outer white and outer black circles.
func (c Config) CodeRadius() float64 {
	return float64(c.RadiusOuterWhite+c.RadiusOuterBlack) / 2
}
