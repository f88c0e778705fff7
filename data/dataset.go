package data

// Static returns the built-in dataset the dashboard ships with.
func Static() Snapshot {
	return Snapshot{
		Protocols: []Protocol{
			{Name: "Aave", APY: 4.2, TVL: "$12.8B", RiskScore: 20, Logo: "🅰️"},
			{Name: "Compound", APY: 3.8, TVL: "$8.5B", RiskScore: 25, Logo: "🔄"},
			{Name: "Uniswap V3", APY: 8.5, TVL: "$5.2B", RiskScore: 45, Logo: "🦄"},
			{Name: "Curve", APY: 6.3, TVL: "$4.1B", RiskScore: 30, Logo: "⚡"},
			{Name: "Balancer", APY: 7.8, TVL: "$2.9B", RiskScore: 40, Logo: "⚖️"},
			{Name: "Yearn", APY: 9.2, TVL: "$1.8B", RiskScore: 35, Logo: "💰"},
		},
		Vaults: []Vault{
			{
				ID:          "1",
				Name:        "Conservative Yield",
				TotalValue:  "$25,420.80",
				APY:         4.5,
				RiskLevel:   2,
				Tokens:      []string{"USDC", "DAI", "USDT"},
				Protocols:   []string{"Aave", "Compound"},
				Performance: Performance{Daily: 0.12, Weekly: 0.85, Monthly: 3.2},
			},
			{
				ID:          "2",
				Name:        "Balanced Growth",
				TotalValue:  "$18,750.45",
				APY:         7.8,
				RiskLevel:   5,
				Tokens:      []string{"ETH", "WBTC", "DAI"},
				Protocols:   []string{"Uniswap V3", "Curve"},
				Performance: Performance{Daily: 0.21, Weekly: 1.48, Monthly: 6.7},
			},
			{
				ID:          "3",
				Name:        "Aggressive Alpha",
				TotalValue:  "$32,890.12",
				APY:         12.4,
				RiskLevel:   8,
				Tokens:      []string{"ETH", "LINK", "UNI", "AAVE"},
				Protocols:   []string{"Balancer", "Yearn"},
				Performance: Performance{Daily: 0.34, Weekly: 2.12, Monthly: 9.8},
			},
		},
		TotalTVL:         "$127.8M",
		TotalYield:       "$2,847.32",
		ActiveStrategies: 3,
	}
}
