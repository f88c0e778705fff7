package log

import (
	"fmt"

	"yieldsynth-tui/helpers"
	"yieldsynth-tui/styles"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// PanelHeight is the viewport height for a terminal of the given height:
// at most a third of the screen or 15 lines, at least 5.
func PanelHeight(height int) int {
	// header (3 lines), nav (1 line), title + borders (4 lines), margins (2 lines)
	reservedHeight := 10
	availableHeight := helpers.Max(5, height-reservedHeight)
	maxLogHeight := helpers.Min(height/3, 15)
	return helpers.Max(1, helpers.Min(availableHeight, maxLogHeight))
}

// Render renders the log panel
func Render(width, height int, logReady bool, logSpinnerView string, vp viewport.Model) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Render("Log")

	logPanelHeight := PanelHeight(height)
	vp.Height = logPanelHeight

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(helpers.Max(0, width-2)).
		Height(logPanelHeight + 2) // +2 for title and spacing

	if !logReady {
		return border.Render(title + "\n\ninitializing...\n" + logSpinnerView)
	}

	scrollInfo := ""
	if vp.TotalLineCount() > vp.Height {
		scrollInfo = lipgloss.NewStyle().
			Foreground(styles.CMuted).
			Render(fmt.Sprintf(" [%d%%]", int(vp.ScrollPercent()*100)))
	}

	return border.Render(title + scrollInfo + "\n\n" + vp.View())
}
