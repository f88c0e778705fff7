package data

import (
	"strings"
	"time"
)

// TxType classifies a portfolio transaction
type TxType string

const (
	TxAll        TxType = "all"
	TxDeposit    TxType = "deposit"
	TxWithdrawal TxType = "withdrawal"
	TxYield      TxType = "yield"
	TxRebalance  TxType = "rebalance"
	TxCompound   TxType = "compound"
)

// TxTypes is the filter order on the portfolio page
var TxTypes = []TxType{TxAll, TxDeposit, TxWithdrawal, TxYield, TxRebalance, TxCompound}

var txLabels = map[TxType]string{
	TxAll:        "All Transactions",
	TxDeposit:    "Deposits",
	TxWithdrawal: "Withdrawals",
	TxYield:      "Yield Claims",
	TxRebalance:  "Rebalances",
	TxCompound:   "Compounds",
}

func (t TxType) Label() string {
	if l, ok := txLabels[t]; ok {
		return l
	}
	return string(t)
}

// Next cycles through TxTypes, wrapping to TxAll
func (t TxType) Next() TxType {
	for i, c := range TxTypes {
		if c == t {
			return TxTypes[(i+1)%len(TxTypes)]
		}
	}
	return TxAll
}

// Transaction is one entry of the portfolio history
type Transaction struct {
	ID        string
	Type      TxType
	Asset     string
	Amount    string
	Value     string
	Protocol  string
	Strategy  string
	Timestamp time.Time
	TxHash    string
	Status    string
	GasUsed   string
}

// History returns the seeded transaction history, newest first.
func History() []Transaction {
	at := func(day, h, m, s int) time.Time { return time.Date(2024, time.June, day, h, m, s, 0, time.UTC) }
	return []Transaction{
		{
			ID: "1", Type: TxDeposit, Asset: "ETH", Amount: "5.2847", Value: "$8,420.50",
			Protocol: "Aave", Strategy: "Balanced Growth", Timestamp: at(15, 14, 32, 18),
			TxHash: "0x742d35Cc2C3c3c2Cb8c8C8C9c9c9C9c9C9c9C9c9", Status: "completed", GasUsed: "0.0024 ETH",
		},
		{
			ID: "2", Type: TxYield, Asset: "USDC", Amount: "127.45", Value: "$127.45",
			Protocol: "Compound", Strategy: "Conservative Yield", Timestamp: at(15, 12, 15, 42),
			TxHash: "0x8f3e2a1b9c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f", Status: "completed", GasUsed: "0.0018 ETH",
		},
		{
			ID: "3", Type: TxRebalance, Asset: "WBTC", Amount: "0.1847", Value: "$5,240.80",
			Protocol: "Uniswap V3", Strategy: "Aggressive Alpha", Timestamp: at(14, 16, 45, 33),
			TxHash: "0x1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b", Status: "completed", GasUsed: "0.0032 ETH",
		},
		{
			ID: "4", Type: TxWithdrawal, Asset: "DAI", Amount: "2,500.00", Value: "$2,500.00",
			Protocol: "Curve", Strategy: "Conservative Yield", Timestamp: at(14, 9, 22, 15),
			TxHash: "0x9b8c7d6e5f4a3b2c1d0e9f8a7b6c5d4e3f2a1b0c", Status: "completed", GasUsed: "0.0021 ETH",
		},
		{
			ID: "5", Type: TxCompound, Asset: "LINK", Amount: "45.67", Value: "$892.15",
			Protocol: "Balancer", Strategy: "Balanced Growth", Timestamp: at(13, 20, 18, 47),
			TxHash: "0x5c4d3e2f1a0b9c8d7e6f5a4b3c2d1e0f9a8b7c6d", Status: "completed", GasUsed: "0.0019 ETH",
		},
	}
}

// FilterTransactions keeps transactions of type t (TxAll keeps every type)
// whose asset, protocol or strategy contains search, ignoring case.
func FilterTransactions(txs []Transaction, t TxType, search string) []Transaction {
	q := strings.ToLower(strings.TrimSpace(search))
	var out []Transaction
	for _, tx := range txs {
		if t != TxAll && tx.Type != t {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(tx.Asset), q) &&
			!strings.Contains(strings.ToLower(tx.Protocol), q) &&
			!strings.Contains(strings.ToLower(tx.Strategy), q) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// DeployTransaction records a signed strategy deployment as a deposit into
// the strategy's first protocol.
func DeployTransaction(s Strategy, txHash string, at time.Time) Transaction {
	tx := Transaction{
		ID:        txHash,
		Type:      TxDeposit,
		Asset:     "ETH",
		Amount:    "-",
		Value:     "-",
		Strategy:  s.Name,
		Timestamp: at,
		TxHash:    txHash,
		Status:    "signed",
		GasUsed:   "-",
	}
	if len(s.Tokens) > 0 {
		tx.Asset = s.Tokens[0]
	}
	if len(s.Protocols) > 0 {
		tx.Protocol = s.Protocols[0]
	}
	return tx
}
