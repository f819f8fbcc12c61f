package output

import (
	"fmt"
	"strings"
)

// bar renders a filled/empty bar for a 0-100 percentage.
func bar(percent float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int((percent / 100.0) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// CoverageBar renders how much of the viable investment the budget covers.
// Example: "███████░░░ 74%"
func CoverageBar(percent float64, width int) string {
	var style func(string) string
	switch {
	case percent >= 100:
		style = func(s string) string { return StyleSuccess.Render(s) }
	case percent >= 50:
		style = func(s string) string { return StyleWarning.Render(s) }
	default:
		style = func(s string) string { return StyleError.Render(s) }
	}

	return fmt.Sprintf("%s %s", style(bar(percent, width)), StyleMuted.Render(Percent(percent, 0)))
}

// FunnelBar renders one stage of the funnel, scaled against the top stage.
func FunnelBar(widthPercent float64, width int) string {
	return StyleHeader.Render(bar(widthPercent, width))
}

// ruleWidth is the length of section rules.
var ruleWidth = 66

// SetWidth fits section rules to a terminal of the given width. Widths under
// 20 columns are ignored.
func SetWidth(columns int) {
	if columns >= 20 {
		ruleWidth = columns - 2
	}
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", ruleWidth))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
