// Package output provides styled terminal rendering helpers for funnelplan.
package output

import (
	"os"

	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorSuccess is used for healthy indicators.
	ColorSuccess = lipgloss.Color("#66bb6a")

	// ColorError is used for blocking problems.
	ColorError = lipgloss.Color("#ef5350")

	// ColorWarning is used for caution indicators.
	ColorWarning = lipgloss.Color("#fff59d")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles provides reusable lipgloss styles.
var (
	StyleHeader  lipgloss.Style
	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
	StyleWarning lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleBold    lipgloss.Style
	StyleLabel   lipgloss.Style
	StyleValue   lipgloss.Style
)

func init() {
	applyStyles(false)
}

func applyStyles(plain bool) {
	base := lipgloss.NewStyle()
	if plain {
		StyleHeader = base
		StyleSuccess = base
		StyleError = base
		StyleWarning = base
		StyleMuted = base
		StyleBold = base
		StyleLabel = base.Width(24)
		StyleValue = base.Width(14)
		return
	}
	StyleHeader = base.Foreground(ColorPrimary).Bold(true)
	StyleSuccess = base.Foreground(ColorSuccess)
	StyleError = base.Foreground(ColorError)
	StyleWarning = base.Foreground(ColorWarning)
	StyleMuted = base.Foreground(ColorMuted)
	StyleBold = base.Bold(true)
	StyleLabel = base.Width(24)
	StyleValue = base.Bold(true).Width(14)
}

// noColor tracks whether color output is disabled.
var noColor bool

// SetNoColor disables or enables color output globally.
func SetNoColor(disabled bool) {
	noColor = disabled
	applyStyles(disabled)
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// ColorAllowed reports whether color should be used for f given the user's
// preference. Color is never used when f is not a terminal.
func ColorAllowed(f *os.File, preferred bool) bool {
	if !preferred || f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SeverityStyle returns the style for a recommendation severity.
func SeverityStyle(s diagnostic.Severity) lipgloss.Style {
	switch s {
	case diagnostic.SeverityError:
		return StyleError
	case diagnostic.SeverityWarning:
		return StyleWarning
	case diagnostic.SeveritySuccess:
		return StyleSuccess
	default:
		return StyleMuted
	}
}

// SeverityIcon returns a one-character marker for a severity.
func SeverityIcon(s diagnostic.Severity) string {
	switch s {
	case diagnostic.SeverityError:
		return "✗"
	case diagnostic.SeverityWarning:
		return "!"
	case diagnostic.SeveritySuccess:
		return "✓"
	default:
		return "·"
	}
}
