package ringtarget

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
)

const (
	svgBlack = "fill:black;stroke:none"
	svgWhite = "fill:white;stroke:none"
)

// SlicePath returns the path data for one filled segment: move to the
// center, line to the start point, clockwise arc to the end point, close.
func SlicePath(t Target, arc ArcDescriptor) string {
	r := int(t.OuterRadius)
	return fmt.Sprintf("M %d,%d L %d,%d A %d,%d 0 0,1 %d,%d Z",
		int(t.Center.X), int(t.Center.Y),
		arc.Start.X, arc.Start.Y,
		r, r,
		arc.End.X, arc.End.Y)
}

// WriteSVG writes the target as an SVG document, in the same paint order
// as Render. Corner overlays are raster-only and are not written.
func WriteSVG(w io.Writer, t Target, config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	cx, cy := int(t.Center.X), int(t.Center.Y)

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(config.Width, config.Height)
	canvas.Title(LabelText(t))
	canvas.Rect(0, 0, config.Width, config.Height, svgWhite)
	canvas.Circle(cx, cy, config.RadiusOuterBlack, svgBlack)
	canvas.Group(`id="code"`, svgWhite)
	for _, arc := range t.Arcs {
		canvas.Path(SlicePath(t, arc))
	}
	canvas.Gend()
	canvas.Circle(cx, cy, config.RadiusOuterWhite, svgWhite)
	canvas.Circle(cx, cy, config.RadiusInnerBlack, svgBlack)
	canvas.Circle(cx, cy, config.RadiusInnerDot, svgWhite)
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("write svg %d: %w", t.Code, ew.err)
	}
	Logger().Debug("ringtarget: svg written", "code", uint32(t.Code), "arcs", len(t.Arcs))
	return nil
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
