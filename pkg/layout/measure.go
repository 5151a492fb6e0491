package layout

import (
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Default text metrics, in drawing units (pixels).
const (
	DefaultFontSize  = 11.0
	DefaultCharWidth = 0.55 // average glyph advance as a fraction of font size
)

// Measurer reports the drawn width of a label in drawing units.
type Measurer interface {
	Measure(text string) float64
}

// MeasureFunc adapts a plain function to [Measurer].
type MeasureFunc func(text string) float64

func (f MeasureFunc) Measure(text string) float64 { return f(text) }

// HeuristicMeasurer estimates width as rune count times a fixed advance.
type HeuristicMeasurer struct {
	CharWidth float64 // fraction of FontSize per glyph
	FontSize  float64
}

// DefaultMeasurer returns the measurer used when none is configured.
func DefaultMeasurer() Measurer {
	return HeuristicMeasurer{CharWidth: DefaultCharWidth, FontSize: DefaultFontSize}
}

func (m HeuristicMeasurer) Measure(text string) float64 {
	return float64(utf8.RuneCountInString(text)) * m.CharWidth * m.FontSize
}

// FaceMeasurer measures text with a font face, scaled to FontSize.
type FaceMeasurer struct {
	face  font.Face
	scale float64
}

// NewFaceMeasurer returns a measurer for face rendered at fontSize. A nil
// face selects basicfont.Face7x13.
func NewFaceMeasurer(face font.Face, fontSize float64) *FaceMeasurer {
	if face == nil {
		face = basicfont.Face7x13
	}
	scale := 1.0
	if h := face.Metrics().Height.Ceil(); h > 0 && fontSize > 0 {
		scale = fontSize / float64(h)
	}
	return &FaceMeasurer{face: face, scale: scale}
}

func (m *FaceMeasurer) Measure(text string) float64 {
	adv := font.MeasureString(m.face, text)
	return float64(adv) / 64 * m.scale
}
