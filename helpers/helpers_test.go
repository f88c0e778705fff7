package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestShortenAddr(t *testing.T) {
	assert.Equal(t, "0x742d…C9c9", ShortenAddr("0x742d35Cc2C3c3c2Cb8c8C8C9c9c9C9c9C9c9C9c9"))
	assert.Equal(t, "0x12", ShortenAddr("0x12"))
}

func TestIsValidEthAddress(t *testing.T) {
	assert.True(t, IsValidEthAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"))
	assert.False(t, IsValidEthAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA9604"))
	assert.False(t, IsValidEthAddress("vitalik.eth"))
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"77061.37", "$77,061.37"},
		{"0", "$0.00"},
		{"999.999", "$1,000.00"},
		{"1234567.8", "$1,234,567.80"},
		{"-18.3146", "-$18.31"},
		{"100", "$100.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatUSD(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "8.5%", FormatPercent(8.5))
	assert.Equal(t, "+0.34%", FormatChange(0.34))
	assert.Equal(t, "-1.20%", FormatChange(-1.2))
}

func TestRisk(t *testing.T) {
	assert.Equal(t, "Conservative", RiskLabel(2))
	assert.Equal(t, "Balanced", RiskLabel(5))
	assert.Equal(t, "Aggressive", RiskLabel(8))
	assert.NotEqual(t, RiskColor(2), RiskColor(9))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░", Bar(0.5, 10))
	assert.Equal(t, "░░░░", Bar(-1, 4))
	assert.Equal(t, "████", Bar(2, 4))
	assert.Equal(t, "", Bar(0.5, 0))
}

func TestQRCode(t *testing.T) {
	qr := QRCode("0xabc")
	assert.NotEmpty(t, qr)
	assert.Greater(t, strings.Count(qr, "\n"), 5)
}

func TestLoadedAt(t *testing.T) {
	assert.Equal(t, "loading…", LoadedAt(time.Now(), true))
	assert.Equal(t, "never", LoadedAt(time.Time{}, false))
	assert.Equal(t, "13:04:05", LoadedAt(time.Date(2024, 1, 1, 13, 4, 5, 0, time.UTC), false))
}

func TestFadeString(t *testing.T) {
	assert.Equal(t, "", FadeString("", "#F25D94", "#EDFF82"))
	assert.Contains(t, stripANSI(FadeString("yield…", "#F25D94", "#EDFF82")), "yield…")
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, 3, Max(1, 3))
	assert.Equal(t, 1, Min(1, 3))
}

func stripANSI(s string) string {
	var b strings.Builder
	esc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			esc = true
		case esc && r == 'm':
			esc = false
		case !esc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
