package data

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category groups strategy templates by risk appetite
type Category string

const (
	CategoryAll          Category = "all"
	CategoryConservative Category = "conservative"
	CategoryBalanced     Category = "balanced"
	CategoryAggressive   Category = "aggressive"
)

// Categories is the filter tab order
var Categories = []Category{CategoryAll, CategoryConservative, CategoryBalanced, CategoryAggressive}

// Label is the tab title
func (c Category) Label() string {
	if c == "" {
		return "All"
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// Next returns the following tab, wrapping around.
func (c Category) Next() Category {
	for i, cat := range Categories {
		if cat == c {
			return Categories[(i+1)%len(Categories)]
		}
	}
	return CategoryAll
}

// Strategy is a deployable yield farming template
type Strategy struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	APY         float64  `json:"apy"`
	RiskLevel   int      `json:"riskLevel"`
	Protocols   []string `json:"protocols"`
	Tokens      []string `json:"tokens"`
	TotalValue  string   `json:"totalValue"`
	Users       int      `json:"users"`
	Performance string   `json:"performance"`
	Category    Category `json:"category"`
}

// Templates returns the strategy catalogue.
func Templates() []Strategy {
	return []Strategy{
		{
			ID: "1", Name: "Conservative Yield",
			Description: "Low-risk stablecoin farming with consistent returns",
			APY:         4.5, RiskLevel: 2,
			Protocols: []string{"Aave", "Compound"}, Tokens: []string{"USDC", "DAI", "USDT"},
			TotalValue: "$2.8M", Users: 1250, Performance: "+3.2%", Category: CategoryConservative,
		},
		{
			ID: "2", Name: "Balanced Growth",
			Description: "Diversified portfolio with moderate risk exposure",
			APY:         7.8, RiskLevel: 5,
			Protocols: []string{"Uniswap V3", "Curve", "Balancer"}, Tokens: []string{"ETH", "WBTC", "DAI"},
			TotalValue: "$1.9M", Users: 850, Performance: "+6.7%", Category: CategoryBalanced,
		},
		{
			ID: "3", Name: "Aggressive Alpha",
			Description: "High-yield strategies with advanced DeFi protocols",
			APY:         12.4, RiskLevel: 8,
			Protocols: []string{"Yearn", "Convex", "Frax"}, Tokens: []string{"ETH", "LINK", "UNI", "AAVE"},
			TotalValue: "$980K", Users: 420, Performance: "+9.8%", Category: CategoryAggressive,
		},
		{
			ID: "4", Name: "DeFi Blue Chip",
			Description: "Focus on established protocols with proven track records",
			APY:         6.2, RiskLevel: 3,
			Protocols: []string{"Aave", "Compound", "MakerDAO"}, Tokens: []string{"ETH", "DAI", "USDC"},
			TotalValue: "$3.2M", Users: 1850, Performance: "+4.8%", Category: CategoryConservative,
		},
		{
			ID: "5", Name: "Liquidity Mining Pro",
			Description: "Advanced liquidity provision strategies",
			APY:         15.7, RiskLevel: 9,
			Protocols: []string{"Uniswap V3", "SushiSwap", "Bancor"}, Tokens: []string{"ETH", "WBTC", "LINK", "UNI"},
			TotalValue: "$720K", Users: 280, Performance: "+12.1%", Category: CategoryAggressive,
		},
		{
			ID: "6", Name: "Stable Plus",
			Description: "Enhanced stablecoin strategies with yield optimization",
			APY:         5.9, RiskLevel: 2,
			Protocols: []string{"Curve", "Yearn", "Convex"}, Tokens: []string{"USDC", "DAI", "FRAX", "LUSD"},
			TotalValue: "$4.1M", Users: 2100, Performance: "+4.2%", Category: CategoryConservative,
		},
	}
}

// FilterStrategies keeps templates in category whose name or description contains
// search, case-insensitively. CategoryAll and "" match every category.
func FilterStrategies(templates []Strategy, category Category, search string) []Strategy {
	needle := strings.ToLower(strings.TrimSpace(search))
	var out []Strategy
	for _, s := range templates {
		if category != CategoryAll && category != "" && s.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(s.Name), needle) &&
			!strings.Contains(strings.ToLower(s.Description), needle) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// CategoryCounts counts templates per category, with the total under CategoryAll.
func CategoryCounts(templates []Strategy) map[Category]int {
	counts := map[Category]int{CategoryAll: len(templates)}
	for _, s := range templates {
		counts[s.Category]++
	}
	return counts
}

// DeployPayload is the message signed when a strategy is deployed
func (s Strategy) DeployPayload(account string) ([]byte, error) {
	b, err := json.Marshal(struct {
		Action   string   `json:"action"`
		Strategy string   `json:"strategy"`
		Account  string   `json:"account"`
		Tokens   []string `json:"tokens"`
	}{"deploy", s.ID, account, s.Tokens})
	if err != nil {
		return nil, fmt.Errorf("encode deploy payload: %w", err)
	}
	return b, nil
}
