package main

import (
	"strings"
	"time"

	"yieldsynth-tui/config"
	"yieldsynth-tui/data"
	"yieldsynth-tui/helpers"
	"yieldsynth-tui/styles"
	"yieldsynth-tui/views/analytics"
	"yieldsynth-tui/views/connect"
	"yieldsynth-tui/views/dashboard"
	"yieldsynth-tui/views/home"
	logview "yieldsynth-tui/views/log"
	"yieldsynth-tui/views/networks"
	"yieldsynth-tui/views/portfolio"
	"yieldsynth-tui/views/strategies"
	"yieldsynth-tui/views/toasts"
	"yieldsynth-tui/wallet"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

// header layout inside panelStyle: border + padding
const (
	headerContentX = 3
	headerTabsY    = 3
)

func (m *model) renderConnectModal() string {
	dialogBoxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cAccent2).
		Background(cPanel).
		Padding(1, 2).
		Width(56)

	st := m.session.State()
	body := connect.Render(m.connectForm, m.session.Registry().Descriptors(), st.Connecting, m.spin.View())
	dialog := lipgloss.JoinVertical(lipgloss.Left, dialogBoxStyle.Render(body), connect.Nav(58))

	return lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

func (m *model) renderTxResultPanel() string {
	contentWidth := max(0, m.w-8)
	result := strategies.RenderResult(m.txStrategy, m.txID, m.txErr)
	centeredContent := lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center).Render(result)
	content := panelStyle.Width(max(0, m.w-4)).Render(centeredContent)
	return appStyle.Render(lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		content,
	))
}

// walletBadge is the left side of the header
func walletBadge(st wallet.State) string {
	switch st.Status() {
	case wallet.Connected:
		return lipgloss.NewStyle().Foreground(cAccent2).Bold(true).
			Render("Wallet: " + helpers.FadeString(helpers.ShortenAddr(st.Address), styles.GradFrom, styles.GradTo))
	case wallet.Connecting:
		return lipgloss.NewStyle().Foreground(cWarn).Render("Wallet: connecting…")
	default:
		return lipgloss.NewStyle().Foreground(cMuted).Render("Wallet: not connected")
	}
}

// networkBadge is the right side of the header
func networkBadge(st wallet.State) string {
	icon, color, text := "○", cError, st.Network
	if st.Connected {
		icon, color = "●", cAccent
		text += " · " + st.Balance + " ETH"
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon + " " + text)
}

// pageTabs renders the page tabs and registers them as click targets
func (m *model) pageTabs() string {
	x := headerContentX
	var tabs []string
	for i, p := range config.Pages {
		label := string(rune('1'+i)) + " " + p.String()
		var tab string
		if p == m.activePage {
			tab = styles.TabActiveStyle.Render(label)
		} else {
			tab = styles.TabStyle.Render(label)
		}
		w := lipgloss.Width(tab)
		m.clickableAreas = append(m.clickableAreas, config.ClickableArea{
			X: x, Y: headerTabsY, Width: w, Height: 1, Page: p,
		})
		x += w
		tabs = append(tabs, tab)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *model) globalHeader() string {
	availableWidth := max(0, m.w-8) // Account for panel padding

	st := m.session.State()
	addrDisplay := walletBadge(st)
	netDisplay := networkBadge(st)
	titleText := lipgloss.NewStyle().Bold(true).Render(helpers.FadeString("yieldsynth", "#7EE787", "#82CFFD"))

	addrWidth := lipgloss.Width(addrDisplay)
	netWidth := lipgloss.Width(netDisplay)
	titleWidth := lipgloss.Width(titleText)
	totalOtherWidth := addrWidth + netWidth + titleWidth

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		// Not enough space, stack vertically
		headerLine = addrDisplay + "\n" + titleText + "\n" + netDisplay
	} else {
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding

		headerLine = addrDisplay + strings.Repeat(" ", max(1, leftPadding)) +
			titleText + strings.Repeat(" ", max(1, rightPadding)) + netDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	// tabs only register as click targets when they sit on their fixed row
	if strings.Contains(headerLine, "\n") {
		return headerLine + "\n" + separator
	}
	return headerLine + "\n" + m.pageTabs() + "\n" + separator
}

func (m *model) View() string {
	// Clear clickable areas for fresh render
	m.clickableAreas = nil

	if m.showTxResult {
		return m.withToasts(m.renderTxResultPanel())
	}
	if m.showConnect {
		return m.withToasts(m.renderConnectModal())
	}

	headerPanel := panelStyle.Width(max(0, m.w-2)).Render(m.globalHeader())

	st := m.session.State()
	snap := m.store.Snapshot()
	spinnerView := m.spin.View()

	var pageContent, nav string
	switch m.activePage {
	case config.PageHome:
		pageContent = home.Render(m.homeForm)
		nav = home.Nav(m.w - 2)

	case config.PageDashboard:
		pageContent = dashboard.Render(dashboard.Params{
			Width:       m.w - 8,
			Snapshot:    snap,
			Wallet:      st,
			Action:      m.actionIdx,
			Rec:         m.recIdx,
			Running:     m.runningAction,
			SpinnerView: spinnerView,
			UpdatedAt:   helpers.LoadedAt(m.refreshedAt, snap.Loading),
		})
		nav = dashboard.Nav(m.w-2, st.Connected)

	case config.PageStrategies:
		var searchView string
		if m.searching || m.search.Value() != "" {
			searchView = m.search.View()
		}
		pageContent = strategies.Render(strategies.Params{
			Strategies:  m.visibleStrategies(),
			Counts:      data.CategoryCounts(m.templates),
			Category:    m.category,
			SearchView:  searchView,
			Searching:   m.searching,
			Selected:    m.strategyIdx,
			Connected:   st.Connected,
			Deploying:   m.deploying,
			SpinnerView: spinnerView,
		})
		nav = strategies.Nav(m.w-2, m.searching)

	case config.PagePortfolio:
		var searchView string
		if m.searching || m.txSearch.Value() != "" {
			searchView = m.txSearch.View()
		}
		pageContent = portfolio.Render(portfolio.Params{
			Snapshot:     snap,
			Connected:    st.Connected,
			SpinnerView:  spinnerView,
			Transactions: m.visibleTransactions(),
			Filter:       m.txFilter,
			SearchView:   searchView,
			Horizon:      data.Horizons[m.horizon],
			Compounding:  m.compounding,
		})
		nav = portfolio.Nav(m.w-2, m.searching)

	case config.PageAnalytics:
		pageContent = analytics.Render(snap.Protocols, m.sortKey, snap.Loading, spinnerView)
		nav = analytics.Nav(m.w - 2)

	case config.PageNetworks:
		pageContent = networks.Render(m.cfg.Networks, m.networkIdx, st.Network, st.Connected, m.switching, spinnerView)
		nav = networks.Nav(m.w - 2)
	}

	views := []string{headerPanel, panelStyle.Width(max(0, m.w-2)).Render(pageContent), nav}
	if m.logEnabled {
		views = append(views, logview.Render(m.w, m.h, m.logReady, m.logSpinner.View(), m.logViewport))
	}

	return m.withToasts(appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, views...)))
}

// withToasts draws the visible notifications over the top-right corner
func (m *model) withToasts(base string) string {
	return toasts.Overlay(base, toasts.Render(m.queue.Visible(), time.Now()), m.w)
}
