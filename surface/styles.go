package surface

import "github.com/charmbracelet/lipgloss"

var (
	colorRed = lipgloss.Color("#FF5555")

	plainStyle = lipgloss.NewStyle()
	warnStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// styleFor maps surface attributes onto a lipgloss style.
func styleFor(attr Attr) lipgloss.Style {
	s := plainStyle
	if attr.Has(AttrWarn) {
		s = warnStyle
	}
	if attr.Has(AttrBold) {
		s = s.Bold(true)
	}
	if attr.Has(AttrUnderline) {
		s = s.Underline(true)
	}
	if attr.Has(AttrReverse) {
		s = s.Reverse(true)
	}
	return s
}

func renderRun(text string, attr Attr) string {
	if attr == AttrNormal {
		return text
	}
	return styleFor(attr).Render(text)
}
