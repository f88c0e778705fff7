package analytics

import (
	"fmt"
	"strings"

	"yieldsynth-tui/data"
	"yieldsynth-tui/helpers"
	"yieldsynth-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the analytics page
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("s") + " sort",
		styles.Key("1-5") + " pages",
		styles.Key("r") + " refresh",
		styles.Key("l") + " logger",
		styles.Key("q") + " quit",
	}, "   ")
	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the protocol comparison table and the insight cards
func Render(protocols []data.Protocol, sortKey data.SortKey, loading bool, spinnerView string) string {
	h := styles.TitleStyle.Render("Analytics")
	sub := styles.MutedStyle.Render("Advanced machine learning insights and predictions")
	if loading {
		return h + "\n\n" + spinnerView + " Crunching market data…"
	}

	return strings.Join([]string{
		h + "\n" + sub,
		comparison(data.SortProtocols(protocols, sortKey), sortKey),
		insights(),
	}, "\n\n")
}

func comparison(protocols []data.Protocol, sortKey data.SortKey) string {
	maxAPY := 0.0
	for _, p := range protocols {
		maxAPY = max(maxAPY, p.APY)
	}

	lines := []string{
		styles.TitleStyle.Render("Protocol Comparison") + "  " + styles.MutedStyle.Render("sorted by "+sortKey.String()),
		styles.MutedStyle.Render(fmt.Sprintf("%-3s%-12s %-22s %-20s %s", "", "Protocol", "APY", "Risk", "TVL")),
	}
	for _, p := range protocols {
		apyFrac := 0.0
		if maxAPY > 0 {
			apyFrac = p.APY / maxAPY
		}
		apy := lipgloss.NewStyle().Foreground(styles.CAccent).Render(helpers.Bar(apyFrac, 14))
		riskLevel := p.RiskScore / 10
		risk := lipgloss.NewStyle().Foreground(helpers.RiskColor(riskLevel)).
			Render(helpers.Bar(float64(p.RiskScore)/float64(data.MaxRiskScore), 14))

		lines = append(lines, fmt.Sprintf("%-3s%-12s %s %6s  %s %3d  %s",
			p.Logo, p.Name, apy, helpers.FormatPercent(p.APY), risk, p.RiskScore, p.TVL))
	}
	return styles.CardStyle.Render(strings.Join(lines, "\n"))
}

func insights() string {
	var cards []string
	for _, in := range data.Insights {
		impact := styles.MutedStyle
		if in.Impact == "High" {
			impact = lipgloss.NewStyle().Foreground(styles.CWarn)
		}
		body := lipgloss.NewStyle().Bold(true).Render(in.Title) + "\n" +
			styles.MutedStyle.Width(34).Render(in.Description) + "\n" +
			impact.Render(in.Impact+" impact") + styles.MutedStyle.Render(fmt.Sprintf(" · %d%% confidence", in.Confidence)) + "\n" +
			lipgloss.NewStyle().Foreground(styles.CAccent2).Render("→ "+in.Action)
		cards = append(cards, styles.CardStyle.Width(38).Render(body))
	}

	var rows []string
	for i := 0; i < len(cards); i += 2 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:min(i+2, len(cards))]...))
	}
	return styles.TitleStyle.Render("AI Insights") + "\n" + strings.Join(rows, "\n")
}
