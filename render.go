package ringtarget

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// Render draws a target as an RGBA image.
//
// Paint order: white canvas, outer black disc, one white slice per filled
// segment, then the outer white, inner black and inner white discs on top.
// The later discs cut the slices down to the code ring.
func Render(t Target, config Config) (*image.RGBA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	dc := gg.NewContext(config.Width, config.Height)
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	cx, cy := t.Center.X, t.Center.Y

	if err := fillDisc(dc, cx, cy, float64(config.RadiusOuterBlack), gg.Black); err != nil {
		return nil, err
	}
	for _, arc := range t.Arcs {
		if err := fillSlice(dc, t, arc); err != nil {
			return nil, fmt.Errorf("segment %d: %w", arc.Segment, err)
		}
	}
	rings := []struct {
		radius int
		color  gg.RGBA
	}{
		{config.RadiusOuterWhite, gg.White},
		{config.RadiusInnerBlack, gg.Black},
		{config.RadiusInnerDot, gg.White},
	}
	for _, r := range rings {
		if err := fillDisc(dc, cx, cy, float64(r.radius), r.color); err != nil {
			return nil, err
		}
	}

	img := toRGBA(dc.Image())
	if config.Label {
		drawLabel(img, t)
	}
	if config.QR {
		if err := drawQR(img, t, config); err != nil {
			return nil, err
		}
	}

	Logger().Debug("ringtarget: target rendered",
		"code", uint32(t.Code),
		"bits", t.Bits,
		"arcs", len(t.Arcs),
		"size", fmt.Sprintf("%dx%d", config.Width, config.Height))
	return img, nil
}

// RenderPNG renders the target and writes it as PNG.
func RenderPNG(w io.Writer, t Target, config Config) error {
	img, err := Render(t, config)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func fillDisc(dc *gg.Context, cx, cy, r float64, col gg.RGBA) error {
	dc.SetColor(col.Color())
	dc.DrawCircle(cx, cy, r)
	return dc.Fill()
}

// fillSlice draws center → start point → clockwise arc → close.
func fillSlice(dc *gg.Context, t Target, arc ArcDescriptor) error {
	cx, cy := t.Center.X, t.Center.Y
	dc.SetColor(gg.White.Color())
	dc.MoveTo(cx, cy)
	dc.LineTo(float64(arc.Start.X), float64(arc.Start.Y))
	dc.DrawArc(cx, cy, t.OuterRadius, canvasAngle(arc.StartAngle), canvasAngle(arc.EndAngle))
	dc.ClosePath()
	return dc.Fill()
}

// canvasAngle converts a compass angle (degrees, 0 = north, clockwise) to
// gg's convention (radians, 0 = +X, increasing toward +Y).
func canvasAngle(deg float64) float64 {
	return (deg - 90) * math.Pi / 180
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
