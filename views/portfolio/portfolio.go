package portfolio

import (
	"fmt"
	"strings"

	"yieldsynth-tui/data"
	"yieldsynth-tui/helpers"
	"yieldsynth-tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Params is everything the portfolio page reads
type Params struct {
	Snapshot     data.Snapshot
	Connected    bool
	SpinnerView  string
	Transactions []data.Transaction // already filtered
	Filter       data.TxType
	SearchView   string
	Horizon      data.Horizon
	Compounding  data.Compounding
}

// Nav returns the navigation bar for the portfolio page
func Nav(width int, searching bool) string {
	var left string
	if searching {
		left = strings.Join([]string{
			styles.Key("Enter") + " apply",
			styles.Key("Esc") + " clear",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("1-5") + " pages",
			styles.Key("Tab") + " filter",
			styles.Key("/") + " search",
			styles.Key("p") + " period",
			styles.Key("f") + " compounding",
			styles.Key("r") + " refresh",
			styles.Key("l") + " logger",
			styles.Key("q") + " quit",
		}, "   ")
	}
	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the portfolio overview, allocation, risk, performance,
// projection and history panels
func Render(p Params) string {
	snap := p.Snapshot
	h := styles.TitleStyle.Render("Portfolio")
	if snap.Loading {
		return h + "\n\n" + p.SpinnerView + " Refreshing positions…"
	}
	if !p.Connected {
		return h + "\n\n" + styles.MutedStyle.Render("Connect your wallet to view your portfolio")
	}

	sum := data.Summarize(snap.Vaults)

	overview := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Value", helpers.FormatUSD(sum.TotalValue)),
		card("Weighted APY", sum.WeightedAPY.StringFixed(2)+"%"),
		card("Daily Yield", helpers.FormatUSD(sum.DailyYield)),
		card("Positions", fmt.Sprintf("%d", len(snap.Vaults))),
	)

	return strings.Join([]string{
		h,
		overview,
		lipgloss.JoinHorizontal(lipgloss.Top, allocation(snap.Vaults, sum), "  ", risk(sum)),
		performance(snap.Vaults),
		projections(sum.TotalValue, p.Horizon, p.Compounding),
		history(p),
	}, "\n\n")
}

func card(label, value string) string {
	return styles.CardStyle.Width(20).Render(styles.MutedStyle.Render(label) + "\n" + styles.Value(value))
}

func share(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	f, _ := part.Div(total).Float64()
	return f
}

func allocation(vaults []data.Vault, sum data.Portfolio) string {
	lines := []string{styles.TitleStyle.Render("Asset Allocation")}
	for _, v := range vaults {
		value, err := data.ParseUSD(v.TotalValue)
		if err != nil {
			continue
		}
		f := share(value, sum.TotalValue)
		lines = append(lines, fmt.Sprintf("%-19s %s %5.1f%%", v.Name, helpers.Bar(f, 16), f*100))
	}
	return styles.CardStyle.Render(strings.Join(lines, "\n"))
}

func risk(sum data.Portfolio) string {
	lines := []string{styles.TitleStyle.Render("Risk Analysis")}
	for _, b := range []struct {
		bucket data.RiskBucket
		level  int
	}{{data.RiskLow, 2}, {data.RiskMedium, 5}, {data.RiskHigh, 8}} {
		f, _ := sum.RiskShare(b.bucket).Float64()
		bar := lipgloss.NewStyle().Foreground(helpers.RiskColor(b.level)).Render(helpers.Bar(f, 16))
		lines = append(lines, fmt.Sprintf("%-7s %s %5.1f%%", b.bucket, bar, f*100))
	}
	return styles.CardStyle.Render(strings.Join(lines, "\n"))
}

func performance(vaults []data.Vault) string {
	lines := []string{
		styles.TitleStyle.Render("Performance Metrics"),
		styles.MutedStyle.Render(fmt.Sprintf("%-19s %9s %9s %9s", "Vault", "24h", "7d", "30d")),
	}
	for _, v := range vaults {
		lines = append(lines, fmt.Sprintf("%-19s %9s %9s %9s", v.Name,
			helpers.FormatChange(v.Performance.Daily),
			helpers.FormatChange(v.Performance.Weekly),
			helpers.FormatChange(v.Performance.Monthly)))
	}
	return styles.CardStyle.Render(strings.Join(lines, "\n"))
}

func projections(value decimal.Decimal, h data.Horizon, c data.Compounding) string {
	lines := []string{
		styles.TitleStyle.Render("Yield Projections") + "  " +
			styles.MutedStyle.Render(fmt.Sprintf("%s · %s compounding", h.Label, c)),
	}
	for _, sc := range data.Scenarios {
		end := data.Project(value, sc.APY, h.Months, c)
		lines = append(lines, fmt.Sprintf("%-13s %6s%%  %12s  %s", sc.Name,
			sc.APY.StringFixed(1),
			helpers.FormatUSD(end),
			styles.Value("+"+helpers.FormatUSD(end.Sub(value)))))
	}
	return styles.CardStyle.Render(strings.Join(lines, "\n"))
}

func history(p Params) string {
	lines := []string{styles.TitleStyle.Render("Transaction History") + "  " + styles.MutedStyle.Render(p.Filter.Label())}
	if p.SearchView != "" {
		lines = append(lines, p.SearchView)
	}
	if len(p.Transactions) == 0 {
		lines = append(lines, styles.MutedStyle.Render("No transactions match"))
	}
	for _, tx := range p.Transactions {
		lines = append(lines, fmt.Sprintf("%-10s %-5s %10s %11s  %-11s %s",
			tx.Type, tx.Asset, tx.Amount, tx.Value, tx.Protocol,
			styles.MutedStyle.Render(tx.Timestamp.Format("2006-01-02 15:04")+"  "+helpers.ShortenAddr(tx.TxHash))))
	}
	return styles.CardStyle.Render(strings.Join(lines, "\n"))
}
