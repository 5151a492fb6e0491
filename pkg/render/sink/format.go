package sink

import (
	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/layout"
)

// Format is an output format name.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// ContentType returns the MIME type of a format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// Render dispatches to the sink for format.
func Render(p *layout.Plan, format Format, opts ...Option) ([]byte, error) {
	switch format {
	case FormatSVG:
		return RenderSVG(p, opts...), nil
	case FormatPNG:
		return RenderPNG(p, opts...)
	case FormatPDF:
		return RenderPDF(p, opts...)
	case FormatJSON:
		return RenderJSON(p, opts...)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q", format)
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q (want svg, png, pdf or json)", s)
}
