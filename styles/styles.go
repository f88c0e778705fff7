package styles

import "github.com/charmbracelet/lipgloss"

// Theme colors
var (
	CBg      = lipgloss.Color("#0A0B14") // near-black, blue tint
	CPanel   = lipgloss.Color("#12132A")
	CBorder  = lipgloss.Color("#667EEA") // indigo
	CMuted   = lipgloss.Color("#8A8FB6")
	CText    = lipgloss.Color("#E2E4F0")
	CAccent  = lipgloss.Color("#00F5A0") // yield green
	CAccent2 = lipgloss.Color("#A78BFA") // violet
	CWarn    = lipgloss.Color("#FFB74D") // orange
	CError   = lipgloss.Color("#F5576C")

	// gradient stops for titles and addresses
	GradFrom = "#667EEA"
	GradTo   = "#F093FB"
)

// Shared styles
var (
	AppStyle = lipgloss.NewStyle().
			Background(CBg).
			Foreground(CText)

	TitleStyle = lipgloss.NewStyle().
			Foreground(CAccent2).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(CMuted)

	PanelStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(CBorder).
			Padding(1, 2)

	CardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(CMuted).
			Padding(0, 1)

	CardFocusedStyle = CardStyle.
				BorderForeground(CAccent2)

	NavStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(CBorder).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(CMuted).
			Padding(0, 1)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(CBg).
			Background(CAccent2).
			Bold(true).
			Padding(0, 1)

	HotkeyKeyStyle = lipgloss.NewStyle().
			Foreground(CAccent).
			Bold(true)

	ToastStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(40)
)

// Key renders a key with accent styling
func Key(s string) string {
	return HotkeyKeyStyle.Render(s)
}

// Value renders a figure in the accent color
func Value(s string) string {
	return lipgloss.NewStyle().Foreground(CAccent).Bold(true).Render(s)
}
