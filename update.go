package main

import (
	"errors"
	"fmt"
	"time"

	"yieldsynth-tui/config"
	"yieldsynth-tui/data"
	"yieldsynth-tui/helpers"
	"yieldsynth-tui/notify"
	"yieldsynth-tui/views/connect"
	"yieldsynth-tui/views/home"
	logview "yieldsynth-tui/views/log"
	"yieldsynth-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// -------------------- UPDATE --------------------

// updateConnectForm feeds msg to the connect modal. It reports whether the
// message was consumed.
func (m *model) updateConnectForm(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey && keyMsg.String() == "esc" {
		m.showConnect = false
		m.connectForm = nil
		return true, nil
	}

	form, cmd := m.connectForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.connectForm = f
	}

	switch m.connectForm.State {
	case huh.StateCompleted:
		providerID := connect.TempSelection
		m.connectForm = nil
		complete, err := m.session.StartConnect(providerID)
		if err != nil {
			m.showConnect = false
			m.addLog("error", fmt.Sprintf("Connect %s: %v", providerID, err))
			return true, nil
		}
		m.addLog("info", fmt.Sprintf("Connecting via %s", providerID))
		return true, completeConnect(m.ctx, providerID, complete)
	case huh.StateAborted:
		m.showConnect = false
		m.connectForm = nil
		return true, nil
	}
	return isKey, cmd
}

// updateHomeForm feeds msg to the home menu
func (m *model) updateHomeForm(msg tea.Msg) (bool, tea.Cmd) {
	form, cmd := m.homeForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.homeForm = f
	}

	if m.homeForm.State == huh.StateCompleted {
		m.homeForm = nil
		if page, ok := config.PageForID(home.TempSelection); ok {
			m.setPage(page)
		}
		return true, nil
	}
	_, isKey := msg.(tea.KeyMsg)
	return isKey, cmd
}

// setPage switches the active page, rebuilding the home menu when returning to it
func (m *model) setPage(p config.Page) {
	if m.searching {
		m.searching = false
		m.searchInput().Blur()
	}
	m.activePage = p
	if p == config.PageHome {
		m.homeForm = home.CreateForm()
	}
	m.addLog("debug", "Page: "+p.String())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// the connect modal owns the keyboard while its form is open
	if m.showConnect && m.connectForm != nil {
		handled, cmd := m.updateConnectForm(msg)
		if handled {
			return m, cmd
		}
		cmds = append(cmds, cmd)
	} else if m.activePage == config.PageHome && m.homeForm != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); !ok || !m.isGlobalKey(keyMsg.String()) {
			handled, cmd := m.updateHomeForm(msg)
			if handled {
				return m, cmd
			}
			cmds = append(cmds, cmd)
		}
	}

	switch msg := msg.(type) {
	case logInitMsg:
		if !m.logEnabled {
			return m, tea.Batch(cmds...)
		}
		m.logger = log.NewWithOptions(m.logBuffer, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Prefix:          "",
		})
		m.logger.SetLevel(log.DebugLevel)
		m.logger.SetStyles(&log.Styles{
			Timestamp: lipgloss.NewStyle().Foreground(cMuted),
			Caller:    lipgloss.NewStyle().Faint(true),
			Prefix:    lipgloss.NewStyle().Bold(true).Foreground(cAccent2),
			Message:   lipgloss.NewStyle().Foreground(cText),
			Key:       lipgloss.NewStyle().Foreground(cAccent),
			Value:     lipgloss.NewStyle().Foreground(cText),
			Separator: lipgloss.NewStyle().Faint(true),
			Levels: map[log.Level]lipgloss.Style{
				log.DebugLevel: lipgloss.NewStyle().Foreground(cMuted).SetString("DEBUG"),
				log.InfoLevel:  lipgloss.NewStyle().Foreground(cAccent2).SetString("INFO"),
				log.WarnLevel:  lipgloss.NewStyle().Foreground(cWarn).SetString("WARN"),
				log.ErrorLevel: lipgloss.NewStyle().Foreground(cError).SetString("ERROR"),
			},
		})
		m.attachLogger(m.logger)
		m.logReady = true
		m.addLog("info", "Logger enabled")
		return m, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		if m.logEnabled {
			m.logViewport.Width = max(0, msg.Width-6)
			m.logViewport.Height = logview.PanelHeight(msg.Height)
			if m.logReady {
				m.updateLogViewport()
			}
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		// notifications mirror into the log buffer from other goroutines
		m.updateLogViewport()
		return m, tea.Batch(cmds...)

	case toastsChangedMsg:
		return m, tea.Batch(append(cmds, waitForToasts(m.queue))...)

	case walletConnectedMsg:
		m.showConnect = false
		switch {
		case errors.Is(msg.err, wallet.ErrSuperseded):
			m.addLog("debug", "Connect via "+msg.providerID+" superseded")
		case msg.err != nil:
			m.addLog("error", msg.err.Error())
		default:
			st := m.session.State()
			m.addLog("success", fmt.Sprintf("Connected %s via %s", helpers.ShortenAddr(st.Address), msg.providerID))
			m.syncNetworkIdx(st.Network)
			m.cfg.Provider = msg.providerID
			m.saveConfig()
		}
		return m, tea.Batch(cmds...)

	case networkSwitchedMsg:
		m.switching = false
		switch {
		case errors.Is(msg.err, wallet.ErrSuperseded):
			m.addLog("debug", "Network switch to "+msg.network+" dropped")
		case msg.err != nil:
			m.addLog("error", msg.err.Error())
		default:
			if err := m.cfg.SetActive(msg.network); err == nil {
				m.saveConfig()
			}
			m.addLog("success", "Network: "+msg.network)
		}
		return m, tea.Batch(cmds...)

	case txSignedMsg:
		m.deploying = false
		if errors.Is(msg.err, wallet.ErrSuperseded) {
			m.addLog("debug", "Deployment of "+msg.strategy.Name+" dropped")
			return m, tea.Batch(cmds...)
		}
		if errors.Is(msg.err, wallet.ErrNotConnected) {
			m.addLog("warning", "Deploy needs a connected wallet")
			return m, tea.Batch(cmds...)
		}
		m.showTxResult = true
		m.txStrategy = msg.strategy
		m.txID = msg.txID
		m.txErr = ""
		if msg.err != nil {
			m.txErr = msg.err.Error()
			m.addLog("error", "Deploy failed: "+msg.err.Error())
		} else {
			m.store.Record(data.DeployTransaction(msg.strategy, msg.txID, time.Now()))
			m.addLog("success", fmt.Sprintf("Deployed %s: %s", msg.strategy.Name, msg.txID))
		}
		return m, tea.Batch(cmds...)

	case refreshDoneMsg:
		m.refreshedAt = time.Now()
		m.addLog("info", "Data refreshed")
		return m, tea.Batch(cmds...)

	case actionDoneMsg:
		if m.runningAction == msg.id {
			m.runningAction = ""
		}
		if msg.err != nil {
			m.addLog("warning", fmt.Sprintf("Action %s: %v", msg.id, msg.err))
		} else {
			m.addLog("success", "Action "+msg.id+" completed")
		}
		return m, tea.Batch(cmds...)

	case clipboardCopiedMsg:
		if msg.err != nil {
			m.queue.Notify("Failed to copy "+msg.what, notify.Error, 0)
			m.addLog("error", fmt.Sprintf("Clipboard: %v", msg.err))
		} else {
			m.queue.Notify(msg.what+" copied to clipboard", notify.Success, 0)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			for _, area := range m.clickableAreas {
				if area.Contains(msg.X, msg.Y) {
					m.addLog("debug", fmt.Sprintf("Click at (%d,%d) on %s tab", msg.X, msg.Y, area.Page))
					m.setPage(area.Page)
					return m, nil
				}
			}
		}
		if m.logEnabled && m.logReady {
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// isGlobalKey reports keys that act on every page outside text inputs
func (m *model) isGlobalKey(k string) bool {
	switch k {
	case "ctrl+c", "q", "l", "L", "w", "x", "r", "d", "pageup", "pagedown", "esc":
		return true
	}
	_, isPage := config.PageForKey(k)
	return isPage
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// transaction result panel takes precedence
	if m.showTxResult {
		switch msg.String() {
		case "c":
			if m.txID != "" {
				return m, copyToClipboard(m.txID, "Transaction ID")
			}
		case "esc", "enter":
			m.showTxResult = false
			m.txID = ""
			m.txErr = ""
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
		return m, nil
	}

	if m.searching {
		in := m.searchInput()
		switch msg.String() {
		case "esc":
			in.SetValue("")
			m.searching = false
			in.Blur()
			m.strategyIdx = 0
			return m, nil
		case "enter":
			m.searching = false
			in.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		m.strategyIdx = 0
		return m, cmd
	}

	// the connect modal is showing its spinner, only disconnect and quit apply
	if m.showConnect && msg.String() != "x" && msg.String() != "ctrl+c" {
		return m, nil
	}

	if !m.textInputActive() {
		if page, ok := config.PageForKey(msg.String()); ok {
			m.setPage(page)
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.activePage == config.PageHome {
				m.cancel()
				return m, tea.Quit
			}
			m.setPage(config.PageHome)
			return m, nil

		case "l", "L":
			m.logEnabled = !m.logEnabled
			m.saveConfig()
			if m.logEnabled {
				if m.w > 0 {
					m.logViewport.Width = m.w - 6
					m.logViewport.Height = logview.PanelHeight(m.h)
				}
				m.logReady = false
				return m, tea.Batch(initLogViewport(), m.logSpinner.Tick)
			}
			m.attachLogger(nil)
			m.logBuffer.Reset()
			m.logger = nil
			m.logReady = false
			return m, nil

		case "pageup", "pagedown":
			if m.logEnabled && m.logReady {
				var cmd tea.Cmd
				m.logViewport, cmd = m.logViewport.Update(msg)
				return m, cmd
			}
			return m, nil

		case "w":
			st := m.session.State()
			if st.Connected || st.Connecting {
				m.addLog("warning", "Wallet already "+st.Status().String())
				return m, nil
			}
			m.showConnect = true
			m.connectForm = connect.CreateForm(m.session.Registry().Descriptors(), m.cfg.Provider)
			return m, nil

		case "x":
			m.session.Disconnect()
			m.showConnect = false
			m.connectForm = nil
			m.deploying = false
			m.switching = false
			m.addLog("info", "Disconnected")
			return m, nil

		case "r":
			done := m.store.Refresh()
			m.addLog("info", "Refreshing data")
			return m, waitForRefresh(done)

		case "d":
			m.queue.DismissNewest()
			return m, nil

		case "c":
			if st := m.session.State(); st.Connected {
				return m, copyToClipboard(st.Address, "Address")
			}
			m.addLog("warning", "No wallet connected")
			return m, nil
		}
	}

	// page-specific behavior
	switch m.activePage {
	case config.PageDashboard:
		return m.dashboardKey(msg)
	case config.PageStrategies:
		return m.strategiesKey(msg)
	case config.PagePortfolio:
		return m.portfolioKey(msg)
	case config.PageAnalytics:
		if msg.String() == "s" {
			m.sortKey = m.sortKey.Next()
			m.addLog("debug", "Sort protocols by "+m.sortKey.String())
		}
		return m, nil
	case config.PageNetworks:
		return m.networksKey(msg)
	}
	return m, nil
}

func (m *model) dashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(data.QuickActions)
	switch msg.String() {
	case "left", "h", "shift+tab":
		m.actionIdx = (m.actionIdx + n - 1) % n
	case "right", "tab":
		m.actionIdx = (m.actionIdx + 1) % n
	case "enter":
		if !m.session.State().Connected || m.runningAction != "" {
			return m, nil
		}
		a := data.QuickActions[m.actionIdx]
		m.runningAction = a.ID
		m.addLog("info", "Running "+a.Title)
		return m, runQuickAction(m.ctx, a, m.queue, m.cfg.Timings.Action())
	case "up", "k":
		if m.recIdx > 0 {
			m.recIdx--
		}
	case "down", "j":
		if m.recIdx < len(data.Recommendations)-1 {
			m.recIdx++
		}
	case "e":
		if !m.session.State().Connected || m.runningAction != "" {
			return m, nil
		}
		r := data.Recommendations[m.recIdx]
		m.runningAction = r.ID
		m.addLog("info", "Executing "+r.Title)
		return m, runRecommendation(m.ctx, r, m.queue, m.cfg.Timings.Action())
	}
	return m, nil
}

func (m *model) portfolioKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.txFilter = m.txFilter.Next()
	case "/":
		m.searching = true
		return m, tea.Batch(m.txSearch.Focus(), textinput.Blink)
	case "p":
		m.horizon = (m.horizon + 1) % len(data.Horizons)
	case "f":
		m.compounding = m.compounding.Next()
	}
	return m, nil
}

func (m *model) strategiesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleStrategies()
	switch msg.String() {
	case "tab":
		m.category = m.category.Next()
		m.strategyIdx = 0
	case "/":
		m.searching = true
		return m, tea.Batch(m.search.Focus(), textinput.Blink)
	case "left", "h":
		if m.strategyIdx > 0 {
			m.strategyIdx--
		}
	case "right":
		if m.strategyIdx < len(visible)-1 {
			m.strategyIdx++
		}
	case "up", "k":
		if m.strategyIdx >= 3 {
			m.strategyIdx -= 3
		}
	case "down", "j":
		if m.strategyIdx+3 < len(visible) {
			m.strategyIdx += 3
		}
	case "enter":
		if m.deploying || m.strategyIdx >= len(visible) {
			return m, nil
		}
		s := visible[m.strategyIdx]
		m.deploying = m.session.State().Connected
		m.addLog("info", "Deploying "+s.Name)
		return m, deployStrategy(m.ctx, m.session, s)
	}
	return m, nil
}

func (m *model) networksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.networkIdx > 0 {
			m.networkIdx--
		}
	case "down", "j":
		if m.networkIdx < len(m.cfg.Networks)-1 {
			m.networkIdx++
		}
	case "enter":
		if m.switching || m.networkIdx >= len(m.cfg.Networks) {
			return m, nil
		}
		target := m.cfg.Networks[m.networkIdx].Name
		m.switching = m.session.State().Connected
		m.addLog("info", "Switching to "+target)
		return m, switchNetwork(m.ctx, m.session, target)
	}
	return m, nil
}

// syncNetworkIdx highlights network in the networks list
func (m *model) syncNetworkIdx(network string) {
	for i, n := range m.cfg.Networks {
		if n.Name == network {
			m.networkIdx = i
			return
		}
	}
}
