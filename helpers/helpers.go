package helpers

import (
	"bytes"
	"fmt"
	"image/color"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mdp/qrterminal/v3"
	"github.com/muesli/gamut"
	"github.com/shopspring/decimal"
)

var ethAddressRe = regexp.MustCompile("^0x[0-9a-fA-F]{40}$")

// ShortenAddr shortens an Ethereum address for display
func ShortenAddr(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// IsValidEthAddress checks if a string is a valid Ethereum address
func IsValidEthAddress(s string) bool {
	return ethAddressRe.MatchString(s)
}

// FormatUSD renders d as dollars with thousands separators, e.g. $77,061.37
func FormatUSD(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	whole, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + frac
}

// FormatPercent renders a percentage with one decimal, e.g. 8.5%
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatChange renders a signed percentage, e.g. +0.34%
func FormatChange(p float64) string {
	return fmt.Sprintf("%+.2f%%", p)
}

// RiskLabel names a 0-10 risk level
func RiskLabel(level int) string {
	switch {
	case level <= 3:
		return "Conservative"
	case level <= 7:
		return "Balanced"
	default:
		return "Aggressive"
	}
}

// RiskColor picks green, yellow or red for a 0-10 risk level
func RiskColor(level int) lipgloss.Color {
	switch {
	case level <= 3:
		return lipgloss.Color("#4ADE80")
	case level <= 7:
		return lipgloss.Color("#FACC15")
	default:
		return lipgloss.Color("#F87171")
	}
}

// Bar draws a horizontal bar filled to frac (0..1) of width cells
func Bar(frac float64, width int) string {
	if width <= 0 {
		return ""
	}
	frac = max(0, min(1, frac))
	filled := int(frac*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// QRCode renders text as a half-block QR code
func QRCode(text string) string {
	var buf bytes.Buffer
	qrterminal.GenerateHalfBlock(text, qrterminal.L, &buf)
	return buf.String()
}

// LoadedAt formats the loaded timestamp
func LoadedAt(t time.Time, loading bool) string {
	if loading {
		return "loading…"
	}
	if t.IsZero() {
		return "never"
	}
	return t.Format("15:04:05")
}

// FadeString creates a gradient colored string
func FadeString(s string, firstColor string, lastColor string) string {
	n := len([]rune(s))
	if n == 0 {
		return ""
	}
	blends := gamut.Blends(lipgloss.Color(firstColor), lipgloss.Color(lastColor), n)
	return rainbow(lipgloss.NewStyle(), s, blends)
}

func rainbow(baseStyle lipgloss.Style, str string, colors []color.Color) string {
	var b strings.Builder
	for i, c := range []rune(str) {
		col, _ := colorful.MakeColor(colors[i%len(colors)])
		b.WriteString(baseStyle.Foreground(lipgloss.Color(col.Hex())).Render(string(c)))
	}
	return b.String()
}

// Max returns the maximum of two integers
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Min returns the minimum of two integers
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
