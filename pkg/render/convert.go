package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/matzehuels/featuremap/pkg/errors"
)

// Converter is the librsvg command line tool used to rasterize SVG.
const Converter = "rsvg-convert"

const installHint = "install librsvg (macOS: brew install librsvg, Linux: apt install librsvg2-bin)"

// ToPDF converts an SVG document to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return Convert(context.Background(), svg, "pdf", 1)
}

// ToPNG converts an SVG document to PNG, zoomed by scale.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return Convert(context.Background(), svg, "png", scale)
}

// Available reports whether the converter is on PATH.
func Available() bool {
	_, err := exec.LookPath(Converter)
	return err == nil
}

// Convert pipes svg through the converter and returns the output in format
// ("pdf" or "png"). The process is killed when ctx ends.
func Convert(ctx context.Context, svg []byte, format string, scale float64) ([]byte, error) {
	path, err := exec.LookPath(Converter)
	if err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s export needs %s: %s", format, Converter, installHint)
	}

	args := []string{"-f", format}
	if scale > 0 && scale != 1 {
		args = append(args, "-z", strconv.FormatFloat(scale, 'f', 2, 64))
	}
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = bytes.NewReader(svg)
	var out, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &out, &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "%s conversion interrupted", format)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", Converter, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
