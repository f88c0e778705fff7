package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"yieldsynth-tui/config"
	"yieldsynth-tui/data"
	"yieldsynth-tui/notify"
	"yieldsynth-tui/wallet"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// waitForToasts blocks until the notification queue changes
func waitForToasts(q *notify.Queue) tea.Cmd {
	ch := q.Changes()
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return toastsChangedMsg{}
	}
}

// completeConnect runs the provider side of a connect already started on the session
func completeConnect(ctx context.Context, providerID string, complete func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return walletConnectedMsg{providerID: providerID, err: complete(ctx)}
	}
}

// switchNetwork asks the session to move to another network
func switchNetwork(ctx context.Context, s *wallet.Session, network string) tea.Cmd {
	return func() tea.Msg {
		return networkSwitchedMsg{network: network, err: s.SwitchNetwork(ctx, network)}
	}
}

// deployStrategy signs the deployment payload of a strategy
func deployStrategy(ctx context.Context, s *wallet.Session, strategy data.Strategy) tea.Cmd {
	return func() tea.Msg {
		payload, err := strategy.DeployPayload(s.State().Address)
		if err != nil {
			return txSignedMsg{strategy: strategy, err: err}
		}
		txID, err := s.SignTransaction(ctx, payload)
		return txSignedMsg{strategy: strategy, txID: txID, err: err}
	}
}

// waitForRefresh waits for a refresh started in Update to finish
func waitForRefresh(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return refreshDoneMsg{}
	}
}

// runQuickAction runs a dashboard quick action to completion
func runQuickAction(ctx context.Context, a data.QuickAction, n notify.Notifier, delay time.Duration) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{id: a.ID, err: a.Run(ctx, n, delay)}
	}
}

// runRecommendation executes a dashboard recommendation
func runRecommendation(ctx context.Context, r data.Recommendation, n notify.Notifier, delay time.Duration) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{id: r.ID, err: r.Run(ctx, n, delay)}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text, what string) tea.Cmd {
	return func() tea.Msg {
		return clipboardCopiedMsg{what: what, err: clipboard.WriteAll(text)}
	}
}

// -------------------- MODEL HELPER METHODS --------------------
// These methods help with state management and command generation

// logBuffer is the log panel's backing store. Notifications and session
// transitions are logged from command goroutines, so writes are locked.
type logBuffer struct {
	mu sync.Mutex
	b  strings.Builder
}

func (l *logBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func (l *logBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.String()
}

func (l *logBuffer) Reset() {
	l.mu.Lock()
	l.b.Reset()
	l.mu.Unlock()
}

// addLog adds a log entry with timestamp and type
func (m *model) addLog(logType, message string) {
	if !m.logEnabled || !m.logReady || m.logger == nil {
		return
	}

	switch logType {
	case "info":
		m.logger.Info(message)
	case "success":
		m.logger.Info("✓", "msg", message)
	case "error":
		m.logger.Error(message)
	case "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Print(message)
	}

	m.updateLogViewport()
}

// attachLogger points the queue, session and store at l, or detaches them when nil
func (m *model) attachLogger(l *log.Logger) {
	m.queue.SetLogger(l)
	m.session.SetLogger(l)
	if s, ok := m.store.(*data.Store); ok {
		s.SetLogger(l)
	}
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logReady || m.logBuffer == nil {
		return
	}
	m.logViewport.SetContent(m.logBuffer.String())
	m.logViewport.GotoBottom()
}

// textInputActive returns true if a form or the search box owns the keyboard
func (m model) textInputActive() bool {
	if m.searching {
		return true
	}
	return m.showConnect && m.connectForm != nil
}

// visibleStrategies applies the strategy filter and search
func (m model) visibleStrategies() []data.Strategy {
	return data.FilterStrategies(m.templates, m.category, m.search.Value())
}

// searchInput is the search box of the active page
func (m *model) searchInput() *textinput.Model {
	if m.activePage == config.PagePortfolio {
		return &m.txSearch
	}
	return &m.search
}

// visibleTransactions applies the history filter and search
func (m model) visibleTransactions() []data.Transaction {
	return data.FilterTransactions(m.store.Transactions(), m.txFilter, m.txSearch.Value())
}

// saveConfig persists the config, logging failures
func (m *model) saveConfig() {
	m.cfg.Logger = m.logEnabled
	if m.configPath == "" {
		return
	}
	if err := config.Save(m.configPath, m.cfg); err != nil {
		m.addLog("error", fmt.Sprintf("Saving config: %v", err))
	}
}
