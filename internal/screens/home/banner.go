package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

const titleFull = ` ██╗    ██╗ ██████╗ ██████╗ ██████╗ ██╗███████╗
 ██║    ██║██╔═══██╗██╔══██╗██╔══██╗██║╚══███╔╝
 ██║ █╗ ██║██║   ██║██████╔╝██║  ██║██║  ███╔╝
 ██║███╗██║██║   ██║██╔══██╗██║  ██║██║ ███╔╝
 ╚███╔███╔╝╚██████╔╝██║  ██║██████╔╝██║███████╗
  ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═════╝ ╚═╝╚══════╝`

const titleCompact = "W · O · R · D · I · Z"

// contentWidth is the shared inner width of every home section.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(art))
}

// renderStatsBar shows the stored mastered total and the size of the
// loaded word list.
func renderStatsBar(mastered, words, cw int, compact bool) string {
	masteredStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	wordStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	format := "%s   %s"
	m, w := fmt.Sprintf("★ %d MASTERED", mastered), fmt.Sprintf("▤ %d WORDS", words)
	if compact {
		format = "%s %s"
		m, w = fmt.Sprintf("★%d", mastered), fmt.Sprintf("▤%d", words)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(fmt.Sprintf(format, masteredStyle.Render(m), wordStyle.Render(w)))
}

func renderBlock(s string, cw int) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s)
}

func renderWarning(s string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + s)
}

func renderCabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
