package styles

import (
	"bytes"
	"encoding/xml"
	"unicode/utf8"
)

// FontFamily is the CSS font stack for labels.
const FontFamily = `'Helvetica Neue', Helvetica, Arial, sans-serif`

// EscapeXML escapes s for use in SVG text and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// TruncateLabel shortens label to at most maxChars runes, ending in "..".
// Limits below 3 are raised to 3.
func TruncateLabel(label string, maxChars int) string {
	maxChars = max(maxChars, 3)
	if utf8.RuneCountInString(label) <= maxChars {
		return label
	}
	r := []rune(label)
	return string(r[:maxChars-2]) + ".."
}
