package ringtarget

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// MagickBinary is the ImageMagick 7 entry point.
const MagickBinary = "magick"

// MagickArgs builds the magick argument list that paints t into output.
// The paint order matches Render.
func MagickArgs(t Target, config Config, output string) []string {
	cx, cy := int(t.Center.X), int(t.Center.Y)
	circle := func(fill string, r int) []string {
		return []string{"-fill", fill, "-draw", fmt.Sprintf("circle %d,%d %d,%d", cx, cy, cx, cy+r)}
	}

	args := []string{"-size", fmt.Sprintf("%dx%d", config.Width, config.Height), "xc:white"}
	args = append(args, circle("black", config.RadiusOuterBlack)...)
	for _, arc := range t.Arcs {
		args = append(args, "-fill", "white", "-draw", fmt.Sprintf("path '%s'", SlicePath(t, arc)))
	}
	args = append(args, circle("white", config.RadiusOuterWhite)...)
	args = append(args, circle("black", config.RadiusInnerBlack)...)
	args = append(args, circle("white", config.RadiusInnerDot)...)
	return append(args, output)
}

// RunMagick runs ImageMagick with args. It returns ErrMagickNotFound when
// the binary is not on PATH.
func RunMagick(ctx context.Context, args []string) error {
	bin, err := exec.LookPath(MagickBinary)
	if err != nil {
		return ErrMagickNotFound
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		Logger().Warn("ringtarget: magick failed", "err", err, "stderr", strings.TrimSpace(stderr.String()))
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("magick: %w: %s", err, msg)
		}
		return fmt.Errorf("magick: %w", err)
	}
	return nil
}
