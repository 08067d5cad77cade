package ringtarget

import (
	"fmt"
	"image"
	"image/color"
	"math"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Overlays sit in the canvas corners, outside the outer black circle.
const (
	overlayMarginDiv = 40 // margin = min(w, h) / 40
	qrSizeDiv        = 8  // QR side = min(w, h) / 8
	labelScaleDiv    = 300
)

// LabelText is the caption drawn for a target.
func LabelText(t Target) string {
	return fmt.Sprintf("%d (%d-bit)", t.Code, t.Bits)
}

// QRPayload is the string encoded in a target's QR label.
func QRPayload(t Target) string {
	return fmt.Sprintf("ringtarget/%d/%d", t.Bits, t.Code)
}

// drawLabel writes the caption in the top-left corner. basicfont glyphs are
// 7x13, so the caption is drawn small and scaled up with the canvas.
func drawLabel(dst *image.RGBA, t Target) {
	text := LabelText(t)
	face := basicfont.Face7x13

	d := &font.Drawer{Face: face}
	w := d.MeasureString(text).Ceil()
	h := face.Metrics().Height.Ceil()

	small := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	d.Dst = small
	d.Src = image.Black
	d.Dot = fixed.P(0, face.Metrics().Ascent.Ceil())
	d.DrawString(text)

	side := min(dst.Bounds().Dx(), dst.Bounds().Dy())
	scale := max(1, side/labelScaleDiv)
	margin := side / overlayMarginDiv
	rect := image.Rect(margin, margin, margin+w*scale, margin+h*scale)
	if overlapsTarget(rect, t) {
		Logger().Warn("ringtarget: label skipped, canvas too small", "code", uint32(t.Code))
		return
	}
	draw.NearestNeighbor.Scale(dst, rect, small, small.Bounds(), draw.Src, nil)
}

// drawQR places a QR code of QRPayload in the top-right corner.
func drawQR(dst *image.RGBA, t Target, config Config) error {
	qr, err := qrcode.New(QRPayload(t), qrcode.Medium)
	if err != nil {
		return fmt.Errorf("qr code %d: %w", t.Code, err)
	}
	qr.ForegroundColor = color.Black
	qr.BackgroundColor = color.White

	// One pixel per module; scaled below without smoothing.
	src := qr.Image(-1)

	side := min(config.Width, config.Height)
	size := side / qrSizeDiv
	margin := side / overlayMarginDiv
	rect := image.Rect(config.Width-margin-size, margin, config.Width-margin, margin+size)
	if overlapsTarget(rect, t) {
		Logger().Warn("ringtarget: qr label skipped, canvas too small", "code", uint32(t.Code))
		return nil
	}
	draw.NearestNeighbor.Scale(dst, rect, src, src.Bounds(), draw.Src, nil)
	return nil
}

// overlapsTarget reports whether rect comes within the target's outer
// radius of its center.
func overlapsTarget(rect image.Rectangle, t Target) bool {
	nx := math.Max(float64(rect.Min.X), math.Min(t.Center.X, float64(rect.Max.X)))
	ny := math.Max(float64(rect.Min.Y), math.Min(t.Center.Y, float64(rect.Max.Y)))
	return math.Hypot(nx-t.Center.X, ny-t.Center.Y) <= t.OuterRadius
}
