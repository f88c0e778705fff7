package home

import (
	"strings"

	"yieldsynth-tui/config"
	"yieldsynth-tui/helpers"
	"yieldsynth-tui/styles"

	"github.com/charmbracelet/huh"
)

// TempSelection stores the home menu selection
var TempSelection string

// CreateForm creates the home menu form
func CreateForm() *huh.Form {
	TempSelection = ""

	opts := make([]huh.Option[string], 0, len(config.Pages))
	for _, p := range config.Pages {
		opts = append(opts, huh.NewOption(p.String(), p.ID()))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(opts...).
				Title("YieldSynth").
				Description("AI-optimised yield farming. Select a view").
				Value(&TempSelection),
		),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}

// Render renders the home view
func Render(form *huh.Form) string {
	banner := helpers.FadeString("YieldSynth AI Dashboard", styles.GradFrom, styles.GradTo)
	if form != nil {
		return banner + "\n\n" + form.View()
	}
	return banner + "\n\nLoading menu..."
}

// Nav returns the navigation bar for home view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("↑/↓") + " select",
		styles.Key("Enter") + " go",
		styles.Key("w") + " connect",
		styles.Key("l") + " logger",
		styles.Key("Esc") + " quit",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}
