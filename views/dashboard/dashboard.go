package dashboard

import (
	"fmt"
	"strings"

	"yieldsynth-tui/data"
	"yieldsynth-tui/helpers"
	"yieldsynth-tui/styles"
	"yieldsynth-tui/wallet"

	"github.com/charmbracelet/lipgloss"
)

// Params is everything the dashboard reads
type Params struct {
	Width       int
	Snapshot    data.Snapshot
	Wallet      wallet.State
	Action      int    // highlighted quick action
	Rec         int    // highlighted recommendation
	Running     string // id of the quick action or recommendation in flight
	SpinnerView string
	UpdatedAt   string
}

// Nav returns the navigation bar for the dashboard
func Nav(width int, connected bool) string {
	keys := []string{
		styles.Key("1-5") + " pages",
	}
	if connected {
		keys = append(keys,
			styles.Key("←/→")+" action",
			styles.Key("Enter")+" run",
			styles.Key("↑/↓")+" recommendation",
			styles.Key("e")+" execute",
			styles.Key("c")+" copy address",
			styles.Key("x")+" disconnect",
		)
	} else {
		keys = append(keys, styles.Key("w")+" connect")
	}
	keys = append(keys,
		styles.Key("r")+" refresh",
		styles.Key("l")+" logger",
		styles.Key("q")+" quit",
	)
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

// Render renders the dashboard page
func Render(p Params) string {
	h := styles.TitleStyle.Render("YieldSynth AI Dashboard")
	sub := styles.MutedStyle.Render("Intelligent yield farming powered by genetic algorithms and reinforcement learning")

	if p.Snapshot.Loading {
		return h + "\n\n" + p.SpinnerView + " Loading Dashboard\n" +
			styles.MutedStyle.Render("Initializing AI optimization engine...")
	}

	if !p.Wallet.Connected {
		card := styles.CardStyle.Width(48).Render(
			lipgloss.NewStyle().Foreground(styles.CAccent).Bold(true).Render("🛡  Get Started") + "\n\n" +
				styles.MutedStyle.Render("Connect your wallet to access AI-powered yield optimization") + "\n\n" +
				"Press " + styles.Key("w") + " to connect",
		)
		return h + "\n" + sub + "\n\n" + card
	}

	sections := []string{
		h + "  " + styles.MutedStyle.Render("updated "+p.UpdatedAt),
		renderStats(p.Snapshot, p.Wallet),
		lipgloss.JoinHorizontal(lipgloss.Top,
			renderPositions(p.Snapshot.Vaults),
			"  ",
			renderProtocols(p.Snapshot.Protocols),
		),
		renderActions(p.Action, p.Running, p.SpinnerView),
		renderRecommendations(p.Rec, p.Running, p.SpinnerView),
	}
	return strings.Join(sections, "\n\n")
}

func statCard(label, value, foot string) string {
	return styles.CardStyle.Width(22).Render(
		styles.MutedStyle.Render(label) + "\n" +
			styles.Value(value) + "\n" +
			styles.MutedStyle.Render(foot),
	)
}

func renderStats(s data.Snapshot, w wallet.State) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Total TVL", s.TotalTVL, "across protocols"),
		statCard("Total Yield", s.TotalYield, "earned to date"),
		statCard("Active Strategies", fmt.Sprintf("%d", s.ActiveStrategies), "AI managed"),
		statCard("Balance", w.Balance+" ETH", "on "+w.Network),
	)
}

func renderPositions(vaults []data.Vault) string {
	lines := []string{styles.TitleStyle.Render("Active Positions")}
	for _, v := range vaults {
		risk := lipgloss.NewStyle().Foreground(helpers.RiskColor(v.RiskLevel)).Render(helpers.RiskLabel(v.RiskLevel))
		lines = append(lines,
			lipgloss.NewStyle().Foreground(styles.CText).Bold(true).Render(v.Name)+"  "+risk,
			fmt.Sprintf("  %s  APY %s  24h %s",
				styles.Value(v.TotalValue),
				helpers.FormatPercent(v.APY),
				helpers.FormatChange(v.Performance.Daily)),
			"  "+styles.MutedStyle.Render(strings.Join(v.Tokens, " · ")),
		)
	}
	return styles.CardStyle.Render(strings.Join(lines, "\n"))
}

func renderProtocols(protocols []data.Protocol) string {
	top := data.SortProtocols(protocols, data.ByAPY)
	if len(top) > 4 {
		top = top[:4]
	}
	lines := []string{styles.TitleStyle.Render("Top Protocols")}
	for _, pr := range top {
		lines = append(lines, fmt.Sprintf("%s %-11s %6s  %s",
			pr.Logo, pr.Name, helpers.FormatPercent(pr.APY), styles.MutedStyle.Render(pr.TVL)))
	}
	return styles.CardStyle.Render(strings.Join(lines, "\n"))
}

func renderActions(selected int, running, spinnerView string) string {
	var cards []string
	for i, a := range data.QuickActions {
		title := a.Title
		if a.ID == running {
			title = spinnerView + " " + title
		}
		body := lipgloss.NewStyle().Bold(true).Render(title) + "\n" +
			styles.MutedStyle.Render(a.Description) + "\n" +
			styles.MutedStyle.Render(a.Estimate)
		style := styles.CardStyle.Width(22)
		if i == selected {
			style = styles.CardFocusedStyle.Width(22)
		}
		cards = append(cards, style.Render(body))
	}
	return styles.TitleStyle.Render("Quick Actions") + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderRecommendations(selected int, running, spinnerView string) string {
	lines := []string{styles.TitleStyle.Render("AI Recommendations")}
	for i, r := range data.Recommendations {
		marker := "  "
		if i == selected {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("▸ ")
		}
		action := styles.Key(r.Action)
		if r.ID == running {
			action = spinnerView + " executing"
		}
		lines = append(lines,
			marker+lipgloss.NewStyle().Bold(true).Render(r.Title)+"  "+styles.MutedStyle.Render(r.Type),
			"  "+styles.MutedStyle.Render(r.Description),
			fmt.Sprintf("  %s  %d%% confidence  %s risk  %s", styles.Value(r.Impact), r.Confidence, r.Risk, action),
		)
	}
	return styles.CardStyle.Render(strings.Join(lines, "\n"))
}
