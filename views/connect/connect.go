package connect

import (
	"strings"

	"yieldsynth-tui/styles"
	"yieldsynth-tui/wallet"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// TempSelection stores the chosen provider id
var TempSelection string

// CreateForm builds the provider picker, preselecting preferred when it is listed.
func CreateForm(descs []wallet.Descriptor, preferred string) *huh.Form {
	TempSelection = preferred

	opts := make([]huh.Option[string], 0, len(descs))
	for _, d := range descs {
		label := d.Icon + " " + d.Name
		if d.Popular {
			label += " ★"
		}
		opts = append(opts, huh.NewOption(label, d.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(opts...).
				Title("Connect Wallet").
				Description("Choose how you want to connect").
				Value(&TempSelection),
		),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}

// Render renders the connect modal body
func Render(form *huh.Form, descs []wallet.Descriptor, connecting bool, spinnerView string) string {
	if connecting {
		name := TempSelection
		for _, d := range descs {
			if d.ID == TempSelection {
				name = d.Name
			}
		}
		return styles.TitleStyle.Render("Connect Wallet") + "\n\n" +
			spinnerView + " Connecting to " + name + "…\n\n" +
			styles.MutedStyle.Render("Approve the request in your wallet")
	}
	if form == nil {
		return "Loading providers..."
	}

	var hints []string
	for _, d := range descs {
		if d.ID == TempSelection && d.Description != "" {
			hints = append(hints, styles.MutedStyle.Render(d.Description))
		}
	}
	footer := lipgloss.NewStyle().Foreground(styles.CMuted).Italic(true).
		Render("By connecting, you agree to the Terms of Service")

	return form.View() + "\n" + strings.Join(hints, "\n") + "\n\n" + footer
}

// Nav returns the navigation bar for the connect modal
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("↑/↓") + " select",
		styles.Key("Enter") + " connect",
		styles.Key("Esc") + " cancel",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}
