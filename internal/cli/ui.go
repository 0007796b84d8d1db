package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/autogrid/pkg/sink"
)

var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorCmd    = lipgloss.Color("75")
	colorBright = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

// Styles shared by the status output and the watch view.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorBright)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)
)

// marker is the leading glyph of a status line.
type marker struct {
	glyph string
	style lipgloss.Style
}

var (
	markOK    = marker{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	markFail  = marker{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	markWarn  = marker{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	markInfo  = marker{"›", lipgloss.NewStyle().Foreground(colorMuted)}
	markSpin  = lipgloss.NewStyle().Foreground(colorAccent)
	styleKey  = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleCmd  = lipgloss.NewStyle().Foreground(colorCmd)
	styleHit  = lipgloss.NewStyle().Foreground(colorOK)
	styleMiss = lipgloss.NewStyle().Foreground(colorMuted)
)

// printer writes human-readable status lines to a command's output.
type printer struct {
	w io.Writer
}

func (p printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

func (p printer) mark(m marker, format string, args ...any) {
	p.line(m.style.Render(m.glyph) + " " + fmt.Sprintf(format, args...))
}

func (p printer) success(format string, args ...any) { p.mark(markOK, format, args...) }
func (p printer) failure(format string, args ...any) { p.mark(markFail, format, args...) }
func (p printer) info(format string, args ...any)    { p.mark(markInfo, format, args...) }

func (p printer) warning(format string, args ...any) {
	p.line(markWarn.style.Render(markWarn.glyph) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// detail prints an indented secondary line.
func (p printer) detail(format string, args ...any) {
	p.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints a written output path.
func (p printer) file(path string) {
	p.line("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	p.line(styleKey.Render(key) + " " + StyleValue.Render(value))
}

func (p printer) stats(l sink.Layout, cached bool) {
	p.line(statsLine(l, cached))
}

func (p printer) nextStep(description, cmd string) {
	p.line(StyleDim.Render(description+":") + " " + styleCmd.Render(cmd))
}

func (p printer) blank() {
	p.line("")
}

// statsLine summarizes a layout: "  4 cells · 3 columns · 200px tall · fresh".
func statsLine(l sink.Layout, cached bool) string {
	parts := []string{
		fmt.Sprintf("%d cells", len(l.Cells)),
		fmt.Sprintf("%d columns", l.Columns),
		fmt.Sprintf("%gpx tall", l.Height),
	}
	if l.Viewport.Scrolling {
		parts = append(parts, "scrolling")
	}
	if l.Restarts > 0 {
		parts = append(parts, fmt.Sprintf("%d restarts", l.Restarts))
	}

	sep := StyleDim.Render(" · ")
	dimmed := make([]string, len(parts))
	for i, s := range parts {
		dimmed[i] = StyleDim.Render(s)
	}
	status := styleMiss.Render("fresh")
	if cached {
		status = styleHit.Render("cached")
	}
	return "  " + strings.Join(dimmed, sep) + sep + status
}
