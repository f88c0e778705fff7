package strategies

import (
	"fmt"
	"strings"

	"yieldsynth-tui/data"
	"yieldsynth-tui/helpers"
	"yieldsynth-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Params is everything the strategies page reads
type Params struct {
	Strategies  []data.Strategy // already filtered
	Counts      map[data.Category]int
	Category    data.Category
	SearchView  string
	Searching   bool
	Selected    int
	Connected   bool
	Deploying   bool
	SpinnerView string
}

// Nav returns the navigation bar for the strategies page
func Nav(width int, searching bool) string {
	var left string
	if searching {
		left = strings.Join([]string{
			styles.Key("Enter") + " apply",
			styles.Key("Esc") + " clear",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("←/→") + " select",
			styles.Key("Tab") + " filter",
			styles.Key("/") + " search",
			styles.Key("Enter") + " deploy",
			styles.Key("1-5") + " pages",
			styles.Key("l") + " logger",
			styles.Key("q") + " quit",
		}, "   ")
	}
	return styles.NavStyle.Width(width).Render(left)
}

// Tabs renders the category filter tabs with counts
func Tabs(active data.Category, counts map[data.Category]int) string {
	var tabs []string
	for _, c := range data.Categories {
		label := fmt.Sprintf("%s (%d)", c.Label(), counts[c])
		if c == active {
			tabs = append(tabs, styles.TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, styles.TabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func renderCard(s data.Strategy, focused bool) string {
	risk := lipgloss.NewStyle().Foreground(helpers.RiskColor(s.RiskLevel)).
		Render(fmt.Sprintf("%s %d/10", helpers.RiskLabel(s.RiskLevel), s.RiskLevel))

	body := lipgloss.NewStyle().Foreground(styles.CText).Bold(true).Render(s.Name) + "\n" +
		styles.MutedStyle.Width(32).Render(s.Description) + "\n\n" +
		"APY " + styles.Value(helpers.FormatPercent(s.APY)) + "   " + risk + "\n" +
		styles.MutedStyle.Render(fmt.Sprintf("%s TVL · %d users · %s", s.TotalValue, s.Users, s.Performance)) + "\n" +
		styles.MutedStyle.Render(strings.Join(s.Tokens, " "))

	style := styles.CardStyle.Width(36).Height(9)
	if focused {
		style = styles.CardFocusedStyle.Width(36).Height(9)
	}
	return style.Render(body)
}

// Render renders the strategies page as a three-column grid of cards
func Render(p Params) string {
	h := styles.TitleStyle.Render("AI Strategies")
	sub := styles.MutedStyle.Render("Deploy a strategy template tuned by the optimization engine")

	header := h + "\n" + sub + "\n\n" + Tabs(p.Category, p.Counts)
	if p.Searching || p.SearchView != "" {
		header += "\n" + p.SearchView
	}

	if len(p.Strategies) == 0 {
		return header + "\n\n" +
			styles.MutedStyle.Render("No strategies found") + "\n" +
			styles.MutedStyle.Render("Try adjusting your search or filter criteria")
	}

	const columnsPerRow = 3
	var rows []string
	for i := 0; i < len(p.Strategies); i += columnsPerRow {
		var rowCards []string
		for j := 0; j < columnsPerRow && i+j < len(p.Strategies); j++ {
			idx := i + j
			rowCards = append(rowCards, renderCard(p.Strategies[idx], idx == p.Selected))
			if j < columnsPerRow-1 && idx+1 < len(p.Strategies) {
				rowCards = append(rowCards, "  ")
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rowCards...))
	}

	footer := ""
	switch {
	case p.Deploying:
		footer = p.SpinnerView + " Waiting for signature…"
	case !p.Connected:
		footer = styles.MutedStyle.Render("Connect a wallet with ") + styles.Key("w") + styles.MutedStyle.Render(" to deploy")
	}

	out := header + "\n\n" + strings.Join(rows, "\n")
	if footer != "" {
		out += "\n\n" + footer
	}
	return out
}

// RenderResult renders the signed deployment with its QR code
func RenderResult(s data.Strategy, txID, errMsg string) string {
	out := styles.TitleStyle.Render("Deploy "+s.Name) + "\n\n"
	if errMsg != "" {
		return out + lipgloss.NewStyle().Foreground(styles.CError).Bold(true).Render("Error: "+errMsg) +
			"\n\n" + styles.MutedStyle.Render("Press ESC or Enter to close")
	}
	out += helpers.QRCode(txID) + "\n"
	out += lipgloss.NewStyle().Foreground(styles.CAccent).Render("Transaction ID:") + "\n" + txID
	out += "\n\n" + styles.MutedStyle.Render("Press c to copy • ESC or Enter to close")
	return out
}
