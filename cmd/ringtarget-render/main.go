// Command ringtarget-render generates the rotation-unique codes for a ring
// width and writes one target image per code. Images are drawn in-process
// (PNG or SVG) or handed to ImageMagick.
//
// Usage:
//
//	ringtarget-render -bits 12 -max-codes 20 -output-dir targets/
//	ringtarget-render -bits 8 -transitions 2 -format svg -output-dir svg/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/satindergrewal/ringtarget"
)

func main() {
	def := ringtarget.DefaultConfig()

	bits := flag.Int("bits", def.Bits, "Number of bits to encode (even, 2-32)")
	outDir := flag.String("output-dir", ".", "Directory where target images will be written")
	radiusInnerDot := flag.Int("radius-inner-dot", def.RadiusInnerDot, "Radius of the inner dot")
	radiusInnerBlack := flag.Int("radius-inner-black", def.RadiusInnerBlack, "Radius of the inner black circle")
	radiusOuterWhite := flag.Int("radius-outer-white", def.RadiusOuterWhite, "Radius of the outer white circle")
	radiusOuterBlack := flag.Int("radius-outer-black", def.RadiusOuterBlack, "Radius of the outer black circle")
	width := flag.Int("width", def.Width, "Width of the image")
	height := flag.Int("height", def.Height, "Height of the image")
	transitions := flag.Int("transitions", -1, "Required number of rising bit transitions (-1 = any)")
	maxCodes := flag.Int("max-codes", 0, "Maximum number of codes to generate (0 = all)")
	format := flag.String("format", "png", "Output format: png or svg")
	backend := flag.String("backend", "gg", "PNG renderer: gg (built in) or magick (ImageMagick)")
	label := flag.Bool("label", false, "Print the code number in the top-left corner")
	qr := flag.Bool("qr", false, "Add a QR code of the code number in the top-right corner")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	ringtarget.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := ringtarget.Config{
		Bits:             *bits,
		RadiusInnerDot:   *radiusInnerDot,
		RadiusInnerBlack: *radiusInnerBlack,
		RadiusOuterWhite: *radiusOuterWhite,
		RadiusOuterBlack: *radiusOuterBlack,
		Width:            *width,
		Height:           *height,
		ArcMargin:        def.ArcMargin,
		Label:            *label,
		QR:               *qr,
	}
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}
	if *format != "png" && *format != "svg" {
		fatalf("unknown format %q (want png or svg)", *format)
	}
	if *backend != "gg" && *backend != "magick" {
		fatalf("unknown backend %q (want gg or magick)", *backend)
	}
	if *backend == "magick" && *format != "png" {
		fatalf("backend magick only writes png")
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fatalf("creating output dir: %v", err)
	}

	var opts []ringtarget.GenerateOption
	if *transitions >= 0 {
		opts = append(opts, ringtarget.WithTransitions(*transitions))
	}
	if *maxCodes > 0 {
		opts = append(opts, ringtarget.WithMaxCodes(*maxCodes))
	}
	codes, err := ringtarget.Generate(cfg.Bits, opts...)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println(codes)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for _, code := range codes {
		t := ringtarget.NewTarget(code, cfg)
		filename := filepath.Join(*outDir, fmt.Sprintf("%d.%s", code, *format))

		switch {
		case *backend == "magick":
			err = ringtarget.RunMagick(ctx, ringtarget.MagickArgs(t, cfg, filename))
		case *format == "svg":
			err = writeFile(filename, func(f *os.File) error { return ringtarget.WriteSVG(f, t, cfg) })
		default:
			err = writeFile(filename, func(f *os.File) error { return ringtarget.RenderPNG(f, t, cfg) })
		}
		if errors.Is(err, ringtarget.ErrMagickNotFound) {
			fatalf("%v", err)
		}
		if err != nil {
			fatalf("generating %s: %v", filename, err)
		}
		fmt.Printf("Generated %s\n", filename)
	}
}

func writeFile(name string, write func(*os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
