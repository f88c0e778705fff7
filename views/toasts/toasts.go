package toasts

import (
	"strings"
	"time"

	"yieldsynth-tui/helpers"
	"yieldsynth-tui/notify"
	"yieldsynth-tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Icon returns the glyph for a notification kind
func Icon(k notify.Kind) string {
	switch k {
	case notify.Success:
		return "✓"
	case notify.Error:
		return "✗"
	case notify.Warning:
		return "⚠"
	default:
		return "ℹ"
	}
}

// Color returns the border color for a notification kind
func Color(k notify.Kind) lipgloss.Color {
	switch k {
	case notify.Success:
		return styles.CAccent
	case notify.Error:
		return styles.CError
	case notify.Warning:
		return styles.CWarn
	default:
		return lipgloss.Color("#60A5FA")
	}
}

// Render stacks the visible notifications, oldest on top. Each toast shows a
// bar draining over its TTL.
func Render(ns []notify.Notification, now time.Time) string {
	if len(ns) == 0 {
		return ""
	}

	var cards []string
	for _, n := range ns {
		left := 0.0
		if n.TTL > 0 {
			left = 1 - float64(now.Sub(n.CreatedAt))/float64(n.TTL)
		}
		color := Color(n.Kind)
		icon := lipgloss.NewStyle().Foreground(color).Bold(true).Render(Icon(n.Kind))
		msg := lipgloss.NewStyle().Foreground(styles.CText).Width(34).Render(n.Message)
		bar := lipgloss.NewStyle().Foreground(color).Render(helpers.Bar(left, 34))

		card := styles.ToastStyle.
			BorderForeground(color).
			Render(lipgloss.JoinHorizontal(lipgloss.Top, icon, " ", msg) + "\n  " + bar)
		cards = append(cards, card)
	}
	return strings.Join(cards, "\n")
}

// Overlay places the toast stack over the top-right corner of base.
func Overlay(base, stack string, width int) string {
	if stack == "" {
		return base
	}
	baseLines := strings.Split(base, "\n")
	stackLines := strings.Split(stack, "\n")
	stackWidth := lipgloss.Width(stack)
	col := helpers.Max(0, width-stackWidth-1)

	for i, sl := range stackLines {
		row := i + 1
		if row >= len(baseLines) {
			baseLines = append(baseLines, "")
		}
		baseLines[row] = spliceRight(baseLines[row], sl, col)
	}
	return strings.Join(baseLines, "\n")
}

// spliceRight keeps the first col cells of line and appends overlay after them.
func spliceRight(line, overlay string, col int) string {
	w := lipgloss.Width(line)
	if w < col {
		return line + strings.Repeat(" ", col-w) + overlay
	}
	return ansi.Truncate(line, col, "") + overlay
}
