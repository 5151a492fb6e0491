package sink

import (
	"github.com/matzehuels/featuremap/pkg/layout"
	"github.com/matzehuels/featuremap/pkg/render"
)

// RenderPDF renders the plan as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(p *layout.Plan, opts ...Option) ([]byte, error) {
	return render.ToPDF(RenderSVG(p, opts...))
}
