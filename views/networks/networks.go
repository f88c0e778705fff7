package networks

import (
	"fmt"
	"strings"

	"yieldsynth-tui/config"
	"yieldsynth-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the networks view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("↑/↓") + " select",
		styles.Key("Enter") + " switch",
		styles.Key("1-5") + " pages",
		styles.Key("l") + " debug log",
		styles.Key("q") + " quit",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Render lists the configured networks, marking the session's current one
func Render(nets []config.Network, selectedIdx int, current string, connected, switching bool, spinnerView string) string {
	h := styles.TitleStyle.Render("Networks")

	lines := []string{h, ""}

	if len(nets) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("No networks configured."))
		return strings.Join(lines, "\n")
	}

	if !connected {
		lines = append(lines, styles.MutedStyle.Render("Connect a wallet to switch networks."), "")
	}

	for i, n := range nets {
		var marker string
		if n.Name == current {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("● ")
		} else {
			marker = lipgloss.NewStyle().Foreground(styles.CMuted).Render("○ ")
		}

		nameStyle := lipgloss.NewStyle().Foreground(styles.CText)
		urlStyle := lipgloss.NewStyle().Foreground(styles.CMuted)

		if i == selectedIdx {
			nameStyle = nameStyle.Background(styles.CPanel).Foreground(styles.CAccent2).Bold(true)
			urlStyle = urlStyle.Background(styles.CPanel)
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Render("▶ ")
		}

		name := fmt.Sprintf("%s %s", n.Icon, n.Name)
		if switching && i == selectedIdx {
			name += " " + spinnerView
		}
		lines = append(lines, marker+nameStyle.Render(name))
		detail := fmt.Sprintf("chain %d", n.ChainID)
		if n.RPCURL != "" {
			detail += " · " + n.RPCURL
		}
		lines = append(lines, "  "+urlStyle.Render(detail))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
