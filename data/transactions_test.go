package data

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yieldsynth-tui/notify"
)

func ids(txs []Transaction) []string {
	var out []string
	for _, tx := range txs {
		out = append(out, tx.ID)
	}
	return out
}

func TestFilterTransactions(t *testing.T) {
	tests := []struct {
		name   string
		typ    TxType
		search string
		want   []string
	}{
		{"all", TxAll, "", []string{"1", "2", "3", "4", "5"}},
		{"deposits", TxDeposit, "", []string{"1"}},
		{"compounds", TxCompound, "", []string{"5"}},
		{"strategy search ignores case", TxAll, "conservative", []string{"2", "4"}},
		{"protocol search", TxAll, "UNISWAP", []string{"3"}},
		{"asset search", TxAll, "link", []string{"5"}},
		{"type and search", TxYield, "conservative", []string{"2"}},
		{"no match", TxWithdrawal, "aave", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterTransactions(History(), tt.typ, tt.search)))
		})
	}
}

func TestTxTypeCycle(t *testing.T) {
	typ := TxAll
	for range TxTypes {
		typ = typ.Next()
	}
	assert.Equal(t, TxAll, typ)
	assert.Equal(t, "Yield Claims", TxYield.Label())
	assert.Equal(t, TxAll, TxType("bogus").Next())
}

func TestDeployTransaction(t *testing.T) {
	at := time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)
	tx := DeployTransaction(Templates()[0], "0xfeed", at)
	assert.Equal(t, TxDeposit, tx.Type)
	assert.Equal(t, "USDC", tx.Asset)
	assert.Equal(t, Templates()[0].Protocols[0], tx.Protocol)
	assert.Equal(t, Templates()[0].Name, tx.Strategy)
	assert.Equal(t, "0xfeed", tx.TxHash)
	assert.Equal(t, at, tx.Timestamp)

	bare := DeployTransaction(Strategy{Name: "Empty"}, "0x1", at)
	assert.Equal(t, "ETH", bare.Asset)
	assert.Empty(t, bare.Protocol)
}

func TestStoreRecordsTransactions(t *testing.T) {
	s, err := NewStore(WithHistory(History()[:2]))
	require.NoError(t, err)
	defer s.Close()

	s.Record(Transaction{ID: "new", Type: TxDeposit})
	got := s.Transactions()
	assert.Equal(t, []string{"new", "1", "2"}, ids(got))

	got[0].ID = "mutated"
	assert.Equal(t, "new", s.Transactions()[0].ID)
}

func TestProject(t *testing.T) {
	value := decimal.NewFromInt(10000)
	apy := decimal.NewFromInt(12)

	assert.Equal(t, "10000", Project(value, apy, 0, Daily).String())
	assert.Equal(t, "10000", Project(value, apy, -3, Monthly).String())

	// 1.01^12 and 1.01^6
	assert.Equal(t, "11268.25", Project(value, apy, 12, Monthly).StringFixed(2))
	assert.Equal(t, "10615.2", Project(value, apy, 6, Monthly).String())

	daily := Project(value, apy, 12, Daily)
	weekly := Project(value, apy, 12, Weekly)
	monthly := Project(value, apy, 12, Monthly)
	assert.True(t, daily.GreaterThan(weekly), "daily %s weekly %s", daily, weekly)
	assert.True(t, weekly.GreaterThan(monthly), "weekly %s monthly %s", weekly, monthly)
	assert.True(t, monthly.GreaterThan(decimal.NewFromInt(11200)))

	assert.True(t, Project(value, decimal.Zero, 60, Daily).Equal(value))
}

func TestCompoundingCycle(t *testing.T) {
	assert.Equal(t, Weekly, Daily.Next())
	assert.Equal(t, Daily, Monthly.Next())
	assert.Equal(t, 52, Weekly.PeriodsPerYear())
	assert.Equal(t, "1Y", Horizons[DefaultHorizon].Label)
}

func TestRecommendationRun(t *testing.T) {
	q := notify.New()
	defer q.Close()

	r := Recommendations[0]
	require.NoError(t, r.Run(context.Background(), q, time.Millisecond))
	visible := q.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Recommendation executed successfully!", visible[0].Message)
	assert.Equal(t, notify.Success, visible[0].Kind)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, errors.Is(r.Run(ctx, q, time.Hour), context.Canceled))
	assert.Equal(t, 1, q.Len())

	seen := map[string]bool{}
	for _, rec := range Recommendations {
		assert.False(t, seen[rec.ID], rec.ID)
		seen[rec.ID] = true
		_, clash := LookupAction(rec.ID)
		assert.False(t, clash, rec.ID)
	}
}
