package main

import (
	"context"
	"time"

	"yieldsynth-tui/config"
	"yieldsynth-tui/data"
	"yieldsynth-tui/notify"
	"yieldsynth-tui/styles"
	"yieldsynth-tui/views/home"
	"yieldsynth-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// -------------------- MODEL --------------------

// model represents the application state following The Elm Architecture
type model struct {
	w, h int

	activePage config.Page

	cfg        config.Config
	configPath string

	// stores, all mutation goes through them
	queue   *notify.Queue
	session *wallet.Session
	store   data.Repository

	// cancels in-flight provider calls on quit
	ctx    context.Context
	cancel context.CancelFunc

	spin     spinner.Model
	homeForm *huh.Form

	// connect modal
	showConnect bool
	connectForm *huh.Form

	// dashboard
	actionIdx     int
	recIdx        int
	runningAction string // quick action or recommendation in flight
	refreshedAt   time.Time

	// strategies
	templates   []data.Strategy
	category    data.Category
	search      textinput.Model
	searching   bool // the active page's search box has focus
	strategyIdx int
	deploying   bool

	// transaction result panel
	showTxResult bool
	txStrategy   data.Strategy
	txID         string
	txErr        string

	// portfolio
	txFilter    data.TxType
	txSearch    textinput.Model
	horizon     int
	compounding data.Compounding

	// analytics
	sortKey data.SortKey

	// networks
	networkIdx int
	switching  bool

	// clickable page tabs for mouse support
	clickableAreas []config.ClickableArea

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *logBuffer
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// -------------------- INIT --------------------

// newModel wires the UI to its stores. The session and store are required.
func newModel(cfg config.Config, configPath string, q *notify.Queue, s *wallet.Session, store data.Repository) model {
	if s == nil || store == nil {
		panic("yieldsynth: newModel requires a wallet session and a data store")
	}

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	// Initialize log viewport, resized on first WindowSizeMsg
	vp := viewport.New(0, 20)
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	// highlight the network the session starts on
	netIdx := 0
	if active, ok := cfg.ActiveNetwork(); ok {
		for i, n := range cfg.Networks {
			if n.Name == active.Name {
				netIdx = i
			}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return model{
		activePage:  config.PageHome,
		cfg:         cfg,
		configPath:  configPath,
		queue:       q,
		session:     s,
		store:       store,
		ctx:         ctx,
		cancel:      cancel,
		spin:        sp,
		homeForm:    home.CreateForm(),
		templates:   data.Templates(),
		category:    data.CategoryAll,
		search:      newSearchInput("Search strategies…"),
		txFilter:    data.TxAll,
		txSearch:    newSearchInput("Search by asset, protocol or strategy…"),
		horizon:     data.DefaultHorizon,
		compounding: data.Daily,
		networkIdx:  netIdx,
		refreshedAt: time.Now(),
		logEnabled:  cfg.Logger,
		logBuffer:   &logBuffer{},
		logViewport: vp,
		logSpinner:  logSpin,
	}
}

func newSearchInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = "/ "
	in.PromptStyle = lipgloss.NewStyle().Foreground(styles.CAccent)
	in.TextStyle = lipgloss.NewStyle().Foreground(styles.CText)
	in.Cursor.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)
	in.CharLimit = 40
	in.Width = 40
	return in
}

// Init implements tea.Model interface and returns initial commands
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, waitForToasts(m.queue)}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	return tea.Batch(cmds...)
}
