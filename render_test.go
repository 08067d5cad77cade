package ringtarget

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// smallConfig is the default geometry scaled down to keep rendering fast.
func smallConfig() Config {
	return DefaultConfig().Scaled(0.125) // 375x375, radii 3/36/82/129
}

// isWhite thresholds a pixel's luminance.
func isWhite(img image.Image, p Point) bool {
	g := color.GrayModel.Convert(img.At(p.X, p.Y)).(color.Gray)
	return g.Y > 128
}

// readRing samples the middle of each code segment and returns the ring as
// a code, starting offset segments clockwise of north. A non-zero offset
// reads the target as a camera rotated by that many segments would.
func readRing(img image.Image, cfg Config, offset int) Code {
	var observed Code
	for i := 0; i < cfg.Bits; i++ {
		angle := (float64(i+offset) + 0.5) * cfg.SegmentAngle()
		if isWhite(img, ToPoint(angle, cfg.CodeRadius(), cfg.Center())) {
			observed |= 1 << uint(cfg.Bits-1-i)
		}
	}
	return observed
}

func TestRenderRoundTrip(t *testing.T) {
	cfg := smallConfig()
	codes, err := Generate(cfg.Bits, WithMaxCodes(12))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	cb, err := NewCodebook(cfg.Bits, codes)
	if err != nil {
		t.Fatalf("NewCodebook: %v", err)
	}

	for _, code := range codes {
		img, err := Render(NewTarget(code, cfg), cfg)
		if err != nil {
			t.Fatalf("Render(%d): %v", code, err)
		}
		if got := readRing(img, cfg, 0); got != code {
			t.Errorf("ring of %d read back as %d", code, got)
		}

		for offset := 1; offset < cfg.Bits; offset += 5 {
			observed := readRing(img, cfg, offset)
			got, shift, err := cb.Lookup(observed)
			if err != nil {
				t.Fatalf("code %d offset %d: Lookup(%b): %v", code, offset, observed, err)
			}
			if got != code {
				t.Errorf("code %d offset %d: identified as %d", code, offset, got)
			}
			if r, _ := RotateLeft(code, shift, cfg.Bits); r != observed {
				t.Errorf("code %d offset %d: shift %d does not reproduce %b", code, offset, shift, observed)
			}
		}
	}
}

func TestRenderRings(t *testing.T) {
	cfg := smallConfig()
	img, err := Render(NewTarget(65, cfg), cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != cfg.Width || bounds.Dy() != cfg.Height {
		t.Fatalf("image size = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), cfg.Width, cfg.Height)
	}

	c := cfg.Center()
	tests := []struct {
		name   string
		radius float64
		white  bool
	}{
		{"inner dot", 0, true},
		{"inner black", float64(cfg.RadiusInnerDot+cfg.RadiusInnerBlack) / 2, false},
		{"outer white", float64(cfg.RadiusInnerBlack+cfg.RadiusOuterWhite) / 2, true},
		{"background", float64(cfg.RadiusOuterBlack) + 20, true},
	}
	for _, tt := range tests {
		// Sample off the segment boundaries and inside an unset segment.
		p := ToPoint(45, tt.radius, c)
		if got := isWhite(img, p); got != tt.white {
			t.Errorf("%s at %v: white = %v, want %v", tt.name, p, got, tt.white)
		}
	}
	if !isWhite(img, Point{0, 0}) {
		t.Error("corner should be white background")
	}
}

func TestRenderRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Width = 10
	if _, err := Render(NewTarget(9, cfg), cfg); err == nil {
		t.Fatal("expected error for ring larger than canvas")
	}
}

func TestRenderPNG(t *testing.T) {
	cfg := smallConfig()
	var buf bytes.Buffer
	if err := RenderPNG(&buf, NewTarget(23, cfg), cfg); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if got := readRing(img, cfg, 0); got != 23 {
		t.Errorf("decoded ring = %d, want 23", got)
	}
}

// countDark counts pixels below mid-grey inside r.
func countDark(img image.Image, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if !isWhite(img, Point{x, y}) {
				n++
			}
		}
	}
	return n
}

func TestRenderOverlays(t *testing.T) {
	cfg := DefaultConfig().Scaled(0.25) // 750x750
	tgt := NewTarget(23, cfg)

	side := min(cfg.Width, cfg.Height)
	margin := side / overlayMarginDiv
	size := side / qrSizeDiv
	qrRect := image.Rect(cfg.Width-margin-size, margin, cfg.Width-margin, margin+size)
	labelRect := image.Rect(margin, margin, margin+60, margin+20)

	plain, err := Render(tgt, cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n := countDark(plain, qrRect); n != 0 {
		t.Fatalf("plain render has %d dark pixels in the QR corner", n)
	}
	if n := countDark(plain, labelRect); n != 0 {
		t.Fatalf("plain render has %d dark pixels in the label corner", n)
	}

	cfg.Label = true
	cfg.QR = true
	marked, err := Render(tgt, cfg)
	if err != nil {
		t.Fatalf("Render with overlays: %v", err)
	}
	if countDark(marked, qrRect) == 0 {
		t.Error("QR corner is blank")
	}
	if countDark(marked, labelRect) == 0 {
		t.Error("label corner is blank")
	}
	if got := readRing(marked, cfg, 0); got != 23 {
		t.Errorf("overlays changed the ring: read %d, want 23", got)
	}
}

func TestRenderSkipsOverlappingOverlay(t *testing.T) {
	cfg := Config{
		Bits:             6,
		RadiusInnerDot:   5,
		RadiusInnerBlack: 20,
		RadiusOuterWhite: 60,
		RadiusOuterBlack: 100,
		Width:            200,
		Height:           200,
		QR:               true,
	}
	img, err := Render(NewTarget(9, cfg), cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// The QR would overlap the ring; its corner must stay background.
	if n := countDark(img, image.Rect(175, 5, 195, 25)); n != 0 {
		t.Errorf("expected the QR to be skipped, found %d dark pixels", n)
	}
}

func TestLabelText(t *testing.T) {
	tgt := NewTarget(65, DefaultConfig())
	if got := LabelText(tgt); got != "65 (12-bit)" {
		t.Errorf("LabelText = %q", got)
	}
	if got := QRPayload(tgt); got != "ringtarget/12/65" {
		t.Errorf("QRPayload = %q", got)
	}
}
