package data

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Risk buckets for vault risk levels
type RiskBucket string

const (
	RiskLow    RiskBucket = "low"
	RiskMedium RiskBucket = "medium"
	RiskHigh   RiskBucket = "high"
)

// BucketFor maps a 0-10 risk level to its bucket: low up to 3, medium up to 7.
func BucketFor(level int) RiskBucket {
	switch {
	case level <= 3:
		return RiskLow
	case level <= 7:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// ParseUSD parses display amounts like "$25,420.80".
func ParseUSD(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d, nil
}

// Portfolio is the aggregate view over the user's vaults
type Portfolio struct {
	TotalValue  decimal.Decimal
	WeightedAPY decimal.Decimal
	ByRisk      map[RiskBucket]decimal.Decimal
	// DailyYield is the expected yield per day at WeightedAPY percent
	DailyYield decimal.Decimal
}

// RiskShare returns the fraction of value held in bucket b, 0 when empty.
func (p Portfolio) RiskShare(b RiskBucket) decimal.Decimal {
	if p.TotalValue.IsZero() {
		return decimal.Zero
	}
	return p.ByRisk[b].Div(p.TotalValue)
}

// Summarize aggregates vault values. Vaults with unparseable values are skipped.
func Summarize(vaults []Vault) Portfolio {
	p := Portfolio{
		TotalValue:  decimal.Zero,
		WeightedAPY: decimal.Zero,
		DailyYield:  decimal.Zero,
		ByRisk: map[RiskBucket]decimal.Decimal{
			RiskLow:    decimal.Zero,
			RiskMedium: decimal.Zero,
			RiskHigh:   decimal.Zero,
		},
	}

	weighted := decimal.Zero
	for _, v := range vaults {
		value, err := ParseUSD(v.TotalValue)
		if err != nil {
			continue
		}
		p.TotalValue = p.TotalValue.Add(value)
		weighted = weighted.Add(value.Mul(decimal.NewFromFloat(v.APY)))
		b := BucketFor(v.RiskLevel)
		p.ByRisk[b] = p.ByRisk[b].Add(value)
	}
	if !p.TotalValue.IsZero() {
		p.WeightedAPY = weighted.Div(p.TotalValue)
		p.DailyYield = weighted.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(365))
	}
	return p
}

// SortKey orders protocol comparisons
type SortKey int

const (
	ByAPY SortKey = iota
	ByRisk
	ByName
)

func (k SortKey) String() string {
	switch k {
	case ByRisk:
		return "risk"
	case ByName:
		return "name"
	default:
		return "apy"
	}
}

// Next cycles through the sort keys
func (k SortKey) Next() SortKey {
	return (k + 1) % 3
}

// SortProtocols returns a sorted copy: APY descending, risk ascending, or name.
func SortProtocols(ps []Protocol, key SortKey) []Protocol {
	out := append([]Protocol(nil), ps...)
	sort.SliceStable(out, func(i, j int) bool {
		switch key {
		case ByRisk:
			return out[i].RiskScore < out[j].RiskScore
		case ByName:
			return out[i].Name < out[j].Name
		default:
			return out[i].APY > out[j].APY
		}
	})
	return out
}
