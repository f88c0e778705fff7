package data

import "github.com/shopspring/decimal"

// Compounding is how often projected yield is reinvested
type Compounding string

const (
	Daily   Compounding = "daily"
	Weekly  Compounding = "weekly"
	Monthly Compounding = "monthly"
)

// Compoundings in cycle order
var Compoundings = []Compounding{Daily, Weekly, Monthly}

// PeriodsPerYear is the number of reinvestments in a year
func (c Compounding) PeriodsPerYear() int {
	switch c {
	case Weekly:
		return 52
	case Monthly:
		return 12
	default:
		return 365
	}
}

func (c Compounding) Next() Compounding {
	for i, x := range Compoundings {
		if x == c {
			return Compoundings[(i+1)%len(Compoundings)]
		}
	}
	return Daily
}

// Horizon is a projection length
type Horizon struct {
	Label  string
	Months int
}

// Horizons the portfolio page cycles through; DefaultHorizon indexes 1Y
var Horizons = []Horizon{{"6M", 6}, {"1Y", 12}, {"2Y", 24}, {"5Y", 60}}

const DefaultHorizon = 1

// Scenario is a canned strategy profile to project against
type Scenario struct {
	Name string
	APY  decimal.Decimal
	Risk RiskBucket
}

var Scenarios = []Scenario{
	{Name: "Conservative", APY: decimal.RequireFromString("4.5"), Risk: RiskLow},
	{Name: "Balanced", APY: decimal.RequireFromString("8.4"), Risk: RiskMedium},
	{Name: "Aggressive", APY: decimal.RequireFromString("12.8"), Risk: RiskHigh},
}

// Project compounds value at apy percent for months, reinvesting c times a
// year. Partial periods are dropped. The result is rounded to cents.
func Project(value, apy decimal.Decimal, months int, c Compounding) decimal.Decimal {
	if months <= 0 {
		return value.Round(2)
	}
	n := c.PeriodsPerYear()
	periods := n * months / 12
	factor := decimal.NewFromInt(1).Add(apy.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(n))))
	v := value
	for i := 0; i < periods; i++ {
		v = v.Mul(factor).Round(18)
	}
	return v.Round(2)
}
