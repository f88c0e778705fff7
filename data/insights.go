package data

import (
	"context"
	"time"

	"yieldsynth-tui/notify"
)

// Insight is a canned optimisation hint shown on the analytics page
type Insight struct {
	Type        string
	Title       string
	Description string
	Confidence  int
	Impact      string
	Timeframe   string
	Action      string
}

// Insights in display order
var Insights = []Insight{
	{
		Type:        "opportunity",
		Title:       "High-Yield Arbitrage Detected",
		Description: "AI identified a 2.3% yield differential between Curve and Balancer for USDC-DAI pairs",
		Confidence:  94, Impact: "High", Timeframe: "24 hours", Action: "Rebalance to Curve",
	},
	{
		Type:        "risk",
		Title:       "Correlation Risk Increasing",
		Description: "Portfolio correlation with ETH has increased to 0.78, suggesting reduced diversification",
		Confidence:  87, Impact: "Medium", Timeframe: "7 days", Action: "Diversify assets",
	},
	{
		Type:        "optimization",
		Title:       "Gas Efficiency Improvement",
		Description: "Batching transactions could reduce gas costs by 35% while maintaining yield performance",
		Confidence:  91, Impact: "Medium", Timeframe: "3 days", Action: "Enable batching",
	},
	{
		Type:        "market",
		Title:       "New Protocol Launch",
		Description: "Newly launched protocol offering 15.2% APY with acceptable risk metrics",
		Confidence:  76, Impact: "High", Timeframe: "48 hours", Action: "Evaluate allocation",
	},
}

// Recommendation is an executable suggestion shown on the dashboard
type Recommendation struct {
	ID          string
	Type        string
	Title       string
	Description string
	Impact      string
	Confidence  int
	Risk        RiskBucket
	Action      string
}

// Recommendations in display order
var Recommendations = []Recommendation{
	{
		ID: "rec-curve", Type: "Optimization",
		Title:       "Rebalance to Curve Finance",
		Description: "AI detected 2.3% higher yield opportunity in Curve stablecoin pools",
		Impact:      "+$124.50/month", Confidence: 94, Risk: RiskLow, Action: "Rebalance Now",
	},
	{
		ID: "rec-uniswap", Type: "Risk Management",
		Title:       "Reduce Uniswap V3 Position",
		Description: "High impermanent loss risk detected due to increased ETH volatility",
		Impact:      "Protect $890.20", Confidence: 87, Risk: RiskMedium, Action: "Adjust Position",
	},
	{
		ID: "rec-balancer", Type: "Opportunity",
		Title:       "New Yield Farm Detected",
		Description: "Balancer V2 pool offering 12.8% APY with acceptable risk profile",
		Impact:      "+$287.30/month", Confidence: 78, Risk: RiskMedium, Action: "Deploy Funds",
	},
}

// Run executes the recommendation after delay. Cancelling ctx aborts without
// a notification.
func (r Recommendation) Run(ctx context.Context, n notify.Notifier, delay time.Duration) error {
	if err := wait(ctx, delay); err != nil {
		return err
	}
	notifier(n).Notify("Recommendation executed successfully!", notify.Success, 0)
	return nil
}
