package data

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"yieldsynth-tui/notify"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStaticDatasetWithinRiskBounds(t *testing.T) {
	snap := Static()
	require.NoError(t, snap.Validate())

	for _, p := range snap.Protocols {
		assert.GreaterOrEqual(t, p.RiskScore, 0, p.Name)
		assert.LessOrEqual(t, p.RiskScore, MaxRiskScore, p.Name)
	}
	for _, v := range snap.Vaults {
		assert.GreaterOrEqual(t, v.RiskLevel, 0, v.Name)
		assert.LessOrEqual(t, v.RiskLevel, MaxRiskLevel, v.Name)
	}
	assert.Len(t, snap.Protocols, 6)
	assert.Len(t, snap.Vaults, 3)
	assert.Equal(t, "$127.8M", snap.TotalTVL)
	assert.Equal(t, "$2,847.32", snap.TotalYield)
	assert.Equal(t, 3, snap.ActiveStrategies)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"protocol above range", Snapshot{Protocols: []Protocol{{Name: "x", RiskScore: 101}}}},
		{"protocol negative", Snapshot{Protocols: []Protocol{{Name: "x", RiskScore: -1}}}},
		{"vault above range", Snapshot{Vaults: []Vault{{Name: "v", RiskLevel: 11, TotalValue: "$1"}}}},
		{"vault bad value", Snapshot{Vaults: []Vault{{Name: "v", RiskLevel: 1, TotalValue: "lots"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.snap.Validate(), ErrInvalidSnapshot)
		})
	}

	_, err := NewStore(WithDataset(tests[0].snap))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestRefreshPulsesLoading(t *testing.T) {
	s, err := NewStore(WithRefreshDelay(30 * time.Millisecond))
	require.NoError(t, err)
	defer s.Close()

	before := s.Snapshot()
	require.False(t, before.Loading)

	done := s.Refresh()
	assert.True(t, s.Snapshot().Loading, "loading must be visible right after Refresh returns")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresh never finished")
	}

	after := s.Snapshot()
	assert.False(t, after.Loading)
	after.Loading = before.Loading
	assert.Equal(t, before, after)
}

func TestOverlappingRefreshes(t *testing.T) {
	s, err := NewStore(WithRefreshDelay(200 * time.Millisecond))
	require.NoError(t, err)
	defer s.Close()

	first := s.Refresh()
	time.Sleep(100 * time.Millisecond)
	second := s.Refresh()

	// the first delay has elapsed but the second refresh still holds the flag
	time.Sleep(130 * time.Millisecond)
	assert.True(t, s.Loading())
	select {
	case <-first:
		t.Fatal("first refresh released before the latest one finished")
	default:
	}

	<-second
	<-first
	assert.False(t, s.Loading())
}

func TestStoreClose(t *testing.T) {
	s, err := NewStore(WithRefreshDelay(time.Hour))
	require.NoError(t, err)

	done := s.Refresh()
	require.True(t, s.Loading())
	s.Close()
	s.Close()

	<-done
	assert.False(t, s.Loading())

	// refresh after close completes immediately
	<-s.Refresh()
	assert.False(t, s.Loading())
}

func TestSnapshotIsACopy(t *testing.T) {
	s, err := NewStore()
	require.NoError(t, err)
	defer s.Close()

	snap := s.Snapshot()
	snap.Protocols[0].Name = "changed"
	snap.Vaults[0].Tokens[0] = "changed"

	fresh := s.Snapshot()
	assert.Equal(t, "Aave", fresh.Protocols[0].Name)
	assert.Equal(t, "USDC", fresh.Vaults[0].Tokens[0])
}

func TestSummarize(t *testing.T) {
	p := Summarize(Static().Vaults)

	assert.True(t, p.TotalValue.Equal(decimal.RequireFromString("77061.37")), p.TotalValue.String())
	assert.Equal(t, "8.67", p.WeightedAPY.StringFixed(2))
	assert.True(t, p.ByRisk[RiskLow].Equal(decimal.RequireFromString("25420.80")))
	assert.True(t, p.ByRisk[RiskMedium].Equal(decimal.RequireFromString("18750.45")))
	assert.True(t, p.ByRisk[RiskHigh].Equal(decimal.RequireFromString("32890.12")))
	assert.Equal(t, "18.31", p.DailyYield.StringFixed(2))

	empty := Summarize(nil)
	assert.True(t, empty.TotalValue.IsZero())
	assert.True(t, empty.RiskShare(RiskLow).IsZero())
}

func TestParseUSD(t *testing.T) {
	d, err := ParseUSD("$25,420.80")
	require.NoError(t, err)
	assert.Equal(t, "25420.8", d.String())

	_, err = ParseUSD("$12.8B")
	assert.Error(t, err)
}

func TestBucketFor(t *testing.T) {
	assert.Equal(t, RiskLow, BucketFor(0))
	assert.Equal(t, RiskLow, BucketFor(3))
	assert.Equal(t, RiskMedium, BucketFor(4))
	assert.Equal(t, RiskMedium, BucketFor(7))
	assert.Equal(t, RiskHigh, BucketFor(8))
}

func TestSortProtocols(t *testing.T) {
	ps := Static().Protocols

	byAPY := SortProtocols(ps, ByAPY)
	assert.Equal(t, "Yearn", byAPY[0].Name)
	assert.Equal(t, "Compound", byAPY[len(byAPY)-1].Name)

	byRisk := SortProtocols(ps, ByRisk)
	assert.Equal(t, "Aave", byRisk[0].Name)
	assert.Equal(t, "Uniswap V3", byRisk[len(byRisk)-1].Name)

	assert.Equal(t, "Aave", ps[0].Name, "input must not be reordered")
	assert.Equal(t, ByRisk, ByAPY.Next())
	assert.Equal(t, ByAPY, ByName.Next())
}

func TestFilterStrategies(t *testing.T) {
	templates := Templates()

	tests := []struct {
		name     string
		category Category
		search   string
		want     []string
	}{
		{"all", CategoryAll, "", []string{"1", "2", "3", "4", "5", "6"}},
		{"empty category is all", "", "", []string{"1", "2", "3", "4", "5", "6"}},
		{"conservative", CategoryConservative, "", []string{"1", "4", "6"}},
		{"aggressive", CategoryAggressive, "", []string{"3", "5"}},
		{"search name", CategoryAll, "alpha", []string{"3"}},
		{"case insensitive", CategoryAll, "STABLE", []string{"1", "6"}},
		{"search description", CategoryAll, "stablecoin", []string{"1", "6"}},
		{"search within category", CategoryConservative, "yield", []string{"1", "6"}},
		{"no match", CategoryBalanced, "stable", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, s := range FilterStrategies(templates, tt.category, tt.search) {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestCategories(t *testing.T) {
	counts := CategoryCounts(Templates())
	assert.Equal(t, 6, counts[CategoryAll])
	assert.Equal(t, 3, counts[CategoryConservative])
	assert.Equal(t, 1, counts[CategoryBalanced])
	assert.Equal(t, 2, counts[CategoryAggressive])

	assert.Equal(t, "Conservative", CategoryConservative.Label())
	assert.Equal(t, CategoryConservative, CategoryAll.Next())
	assert.Equal(t, CategoryAll, CategoryAggressive.Next())
}

func TestDeployPayload(t *testing.T) {
	b, err := Templates()[0].DeployPayload("0xabc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"deploy","strategy":"1","account":"0xabc","tokens":["USDC","DAI","USDT"]}`, string(b))
}

func TestQuickAction(t *testing.T) {
	q := notify.New()
	defer q.Close()

	a, ok := LookupAction("harvest")
	require.True(t, ok)
	require.NoError(t, a.Run(context.Background(), q, time.Millisecond))

	visible := q.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Harvest Yields completed successfully!", visible[0].Message)
	assert.Equal(t, notify.Success, visible[0].Kind)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := a.Run(ctx, q, time.Hour)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, q.Len())

	_, ok = LookupAction("nope")
	assert.False(t, ok)
}
