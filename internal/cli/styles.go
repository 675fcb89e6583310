package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ironsheep/bannercopy/internal/copygen"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	overStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("241")).
			PaddingLeft(1)
)

// platformStyle renders a platform name in its brand color.
func platformStyle(p copygen.Platform) lipgloss.Style {
	fg := lipgloss.Color("15")
	if p.Key == "kakao" {
		// Kakao yellow needs dark text.
		fg = lipgloss.Color("0")
	}
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(fg).
		Background(lipgloss.Color(p.Color))
}

// lengthBadge renders "used/limit" green when within the limit, red otherwise.
func lengthBadge(used, limit int) string {
	text := fmt.Sprintf("%d/%d", used, limit)
	if used > limit {
		return overStyle.Render(text)
	}
	return okStyle.Render(text)
}
