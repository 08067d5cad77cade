package ringtarget

// ArcDescriptor is one filled segment of a code ring: a pie slice from the
// center out to the arc between Start and End.
type ArcDescriptor struct {
	Segment    int     // Segment index, 0 at north
	StartAngle float64 // Degrees, clockwise from north
	EndAngle   float64
	Start      Point // Outer arc start
	End        Point // Outer arc end
}

// Target holds the computed ring geometry for one code.
type Target struct {
	Code        Code
	Bits        int
	Center      Position
	OuterRadius float64
	Arcs        []ArcDescriptor
}

// Layout computes the filled segments for code on a ring of the given
// radius. Segment i carries bit bits-1-i, so the most significant bit sits
// just clockwise of north. Unset bits produce no descriptor.
func Layout(code Code, bits int, center Position, outerRadius float64) []ArcDescriptor {
	if bits <= 0 || bits > MaxBits {
		return nil
	}
	perSegment := 360.0 / float64(bits)

	var arcs []ArcDescriptor
	for i := 0; i < bits; i++ {
		if code&(1<<uint(bits-1-i)) == 0 {
			continue
		}
		start := float64(i) * perSegment
		end := float64(i+1) * perSegment
		arcs = append(arcs, ArcDescriptor{
			Segment:    i,
			StartAngle: start,
			EndAngle:   end,
			Start:      ToPoint(start, outerRadius, center),
			End:        ToPoint(end, outerRadius, center),
		})
	}
	return arcs
}

// NewTarget lays out code using the config's width, canvas center and
// outer arc radius.
func NewTarget(code Code, config Config) Target {
	center := config.Center()
	radius := config.OuterArcRadius()
	return Target{
		Code:        code,
		Bits:        config.Bits,
		Center:      center,
		OuterRadius: radius,
		Arcs:        Layout(code, config.Bits, center, radius),
	}
}

// Bit reports whether segment i of the target is filled.
func (t Target) Bit(segment int) bool {
	if segment < 0 || segment >= t.Bits {
		return false
	}
	return t.Code&(1<<uint(t.Bits-1-segment)) != 0
}
