// Package style renders terminal output for the unbox CLI, themed by the
// terminal color codes from the collaborator configuration.
package style

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Message kinds a palette can style
const (
	KindInfo    = "info"
	KindAdded   = "added"
	KindWarning = "warning"
	KindError   = "error"
)

// colorByName maps the configuration's color names to pterm foregrounds.
var colorByName = map[string]pterm.Color{
	"black":   pterm.FgBlack,
	"red":     pterm.FgRed,
	"green":   pterm.FgGreen,
	"yellow":  pterm.FgYellow,
	"blue":    pterm.FgBlue,
	"magenta": pterm.FgMagenta,
	"cyan":    pterm.FgCyan,
	"white":   pterm.FgWhite,
	"gray":    pterm.FgGray,
}

// Palette holds the styles for each message kind.
type Palette struct {
	styles  map[string]*pterm.Style
	enabled bool
}

// NewPalette builds a palette from the configured kind -> color-name map.
// Unknown kinds and color names fall back to the default style. Color is
// disabled when stdout is not a terminal.
func NewPalette(colorCodes map[string]string) *Palette {
	p := &Palette{
		styles:  make(map[string]*pterm.Style, len(colorCodes)),
		enabled: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
	for kind, name := range colorCodes {
		if color, ok := colorByName[strings.ToLower(name)]; ok {
			p.styles[kind] = pterm.NewStyle(color)
		}
	}
	return p
}

// Render styles text according to the kind's configured color.
func (p *Palette) Render(kind, text string) string {
	if !p.enabled {
		return text
	}
	if s, ok := p.styles[kind]; ok {
		return s.Sprint(text)
	}
	return text
}

// Info styles an informational message.
func (p *Palette) Info(text string) string { return p.Render(KindInfo, text) }

// Added styles a success/creation message.
func (p *Palette) Added(text string) string { return p.Render(KindAdded, text) }

// Warning styles a warning message.
func (p *Palette) Warning(text string) string { return p.Render(KindWarning, text) }

// Error styles an error message.
func (p *Palette) Error(text string) string { return p.Render(KindError, text) }
