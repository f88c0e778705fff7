package config

// Page identifies a top-level view
type Page int

const (
	PageHome Page = iota
	PageDashboard
	PageStrategies
	PagePortfolio
	PageAnalytics
	PageNetworks
)

// Pages reachable with the number keys, in key order
var Pages = []Page{PageDashboard, PageStrategies, PagePortfolio, PageAnalytics, PageNetworks}

func (p Page) String() string {
	switch p {
	case PageDashboard:
		return "Dashboard"
	case PageStrategies:
		return "Strategies"
	case PagePortfolio:
		return "Portfolio"
	case PageAnalytics:
		return "Analytics"
	case PageNetworks:
		return "Networks"
	default:
		return "Home"
	}
}

// PageForKey maps "1".."5" to a page
func PageForKey(k string) (Page, bool) {
	if len(k) != 1 || k[0] < '1' || int(k[0]-'1') >= len(Pages) {
		return PageHome, false
	}
	return Pages[k[0]-'1'], true
}

// PageForID maps a home menu value to a page
func PageForID(id string) (Page, bool) {
	for _, p := range Pages {
		if p.ID() == id {
			return p, true
		}
	}
	return PageHome, false
}

// ID is the lower-case page name used by the home menu
func (p Page) ID() string {
	switch p {
	case PageDashboard:
		return "dashboard"
	case PageStrategies:
		return "strategies"
	case PagePortfolio:
		return "portfolio"
	case PageAnalytics:
		return "analytics"
	case PageNetworks:
		return "networks"
	default:
		return "home"
	}
}

// ClickableArea represents a clickable region for mouse support
type ClickableArea struct {
	X, Y          int
	Width, Height int
	Page          Page
}

// Contains reports whether the cell x,y falls inside the area.
func (a ClickableArea) Contains(x, y int) bool {
	return x >= a.X && x < a.X+a.Width && y >= a.Y && y < a.Y+a.Height
}
