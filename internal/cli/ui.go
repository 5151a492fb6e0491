package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives all status output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// Palette. ANSI 256 codes so output stays stable across terminals.
var (
	colorAccent = lipgloss.Color("36")  // teal
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorFail   = lipgloss.Color("167") // soft red
	colorLink   = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

// Exported styles, shared with the inspect view.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleNumber    = StyleHighlight
	StyleLink      = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorOK)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand     = lipgloss.NewStyle().Foreground(colorLink)
	statSeparator    = StyleDim.Render(" · ")
)

// marker is the leading glyph of a status line.
type marker struct {
	glyph string
	style lipgloss.Style
}

var (
	markSuccess = marker{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	markError   = marker{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	markWarning = marker{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	markInfo    = marker{"›", lipgloss.NewStyle().Foreground(colorMuted)}
)

func statusLine(m marker, text string) {
	fmt.Fprintln(stdout, m.style.Render(m.glyph)+" "+text)
}

func printSuccess(format string, args ...any) {
	statusLine(markSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	statusLine(markError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	statusLine(markWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	statusLine(markInfo, fmt.Sprintf(format, args...))
}

// printDetail prints a dimmed, indented line under the previous status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// printStats prints the layout summary of a render, e.g.
// "12 features · 3 levels · 2 label rows · cached".
func printStats(features, levels, labelRows int, cached bool) {
	fmt.Fprintln(stdout, "  "+statsLine(features, levels, labelRows, cached))
}

func statsLine(features, levels, labelRows int, cached bool) string {
	parts := []string{
		StyleDim.Render(plural(features, "feature")),
		StyleDim.Render(plural(levels, "level")),
	}
	if labelRows > 0 {
		parts = append(parts, StyleDim.Render(plural(labelRows, "label row")))
	}
	if cached {
		parts = append(parts, StyleSuccess.Render("cached"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorMuted).Render("fresh"))
	}
	return strings.Join(parts, statSeparator)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}
