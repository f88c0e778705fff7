package wallet

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"yieldsynth-tui/notify"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type sent struct {
	msg  string
	kind notify.Kind
}

// recorder is a Notifier that keeps every message
type recorder struct {
	mu   sync.Mutex
	sent []sent
}

func (r *recorder) Notify(msg string, kind notify.Kind, _ time.Duration) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sent{msg, kind})
	return msg
}

func (r *recorder) Dismiss(string) {}

func (r *recorder) kinds() []notify.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notify.Kind
	for _, s := range r.sent {
		out = append(out, s.kind)
	}
	return out
}

func (r *recorder) last() sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return sent{}
	}
	return r.sent[len(r.sent)-1]
}

// gated is a Provider whose Connect blocks until release is closed
type gated struct {
	release      chan struct{}
	entered      chan struct{}
	mu           sync.Mutex
	disconnected int
}

func newGated() *gated {
	return &gated{release: make(chan struct{}), entered: make(chan struct{}, 1)}
}

func (g *gated) ID() string { return "gated" }

func (g *gated) Connect(ctx context.Context) (Account, error) {
	select {
	case <-g.release:
		return Account{Address: MockAddress, Balance: "1.0"}, nil
	case <-ctx.Done():
		return Account{}, ctx.Err()
	}
}

func (g *gated) SwitchNetwork(ctx context.Context, network string) error {
	g.entered <- struct{}{}
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *gated) Sign(context.Context, []byte) (string, error) { return "0xabc", nil }

func (g *gated) Disconnect() error {
	g.mu.Lock()
	g.disconnected++
	g.mu.Unlock()
	return nil
}

// turnstile is a Provider whose every Connect call waits on its own gate,
// handed to the test through calls
type turnstile struct {
	calls chan chan struct{}

	mu          sync.Mutex
	online      bool
	disconnects int
}

func newTurnstile() *turnstile {
	return &turnstile{calls: make(chan chan struct{}, 2)}
}

func (p *turnstile) ID() string { return "shared" }

func (p *turnstile) Connect(ctx context.Context) (Account, error) {
	gate := make(chan struct{})
	p.calls <- gate
	select {
	case <-gate:
	case <-ctx.Done():
		return Account{}, ctx.Err()
	}
	p.mu.Lock()
	p.online = true
	p.mu.Unlock()
	return Account{Address: MockAddress, Balance: "2.0"}, nil
}

func (p *turnstile) SwitchNetwork(context.Context, string) error { return nil }

func (p *turnstile) Sign(context.Context, []byte) (string, error) { return "0xabc", nil }

func (p *turnstile) Disconnect() error {
	p.mu.Lock()
	p.online = false
	p.disconnects++
	p.mu.Unlock()
	return nil
}

func (p *turnstile) status() (bool, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.online, p.disconnects
}

func fastRegistry(t *testing.T, opts ...SimOption) *Registry {
	t.Helper()
	opts = append([]SimOption{WithDelays(5*time.Millisecond, 5*time.Millisecond, 5*time.Millisecond)}, opts...)
	return DefaultRegistry(opts...)
}

func TestNewSessionInitialState(t *testing.T) {
	s := NewSession(fastRegistry(t), nil)
	st := s.State()

	assert.Equal(t, Disconnected, st.Status())
	assert.False(t, st.Connected)
	assert.False(t, st.Connecting)
	assert.Empty(t, st.Address)
	assert.Empty(t, st.ProviderID)
	assert.Equal(t, "0", st.Balance)
	assert.Equal(t, DefaultNetwork, st.Network)
}

func TestNewSessionRequiresRegistry(t *testing.T) {
	assert.Panics(t, func() { NewSession(nil, notify.Discard) })
}

func TestConnectScenario(t *testing.T) {
	rec := &recorder{}
	s := NewSession(fastRegistry(t), rec)

	complete, err := s.StartConnect("metamask")
	require.NoError(t, err)

	st := s.State()
	assert.True(t, st.Connecting)
	assert.False(t, st.Connected)
	assert.Equal(t, Connecting, st.Status())

	require.NoError(t, complete(context.Background()))

	st = s.State()
	assert.False(t, st.Connecting)
	assert.True(t, st.Connected)
	assert.Equal(t, "metamask", st.ProviderID)
	assert.Equal(t, MockAddress.Hex(), st.Address)
	assert.Equal(t, MockBalance, st.Balance)
	assert.Equal(t, sent{"Wallet connected successfully!", notify.Success}, rec.last())
}

func TestConnectWhilePendingIsRejected(t *testing.T) {
	s := NewSession(fastRegistry(t), nil)

	complete, err := s.StartConnect("metamask")
	require.NoError(t, err)

	_, err = s.StartConnect("ledger")
	assert.ErrorIs(t, err, ErrAlreadyConnecting)
	assert.ErrorIs(t, s.Connect(context.Background(), "coinbase"), ErrAlreadyConnecting)

	require.NoError(t, complete(context.Background()))
	assert.Equal(t, "metamask", s.State().ProviderID)

	assert.ErrorIs(t, s.Connect(context.Background(), "ledger"), ErrAlreadyConnected)
}

func TestConnectUnknownProvider(t *testing.T) {
	rec := &recorder{}
	s := NewSession(fastRegistry(t), rec)

	err := s.Connect(context.Background(), "phantom")
	assert.ErrorIs(t, err, ErrUnknownProvider)
	assert.Equal(t, Disconnected, s.State().Status())
	assert.Equal(t, notify.Error, rec.last().kind)
}

func TestConnectFailure(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("user closed popup")
	reg := fastRegistry(t, WithReject(func(op Op) error {
		if op == OpConnect {
			return boom
		}
		return nil
	}))
	s := NewSession(reg, rec)

	err := s.Connect(context.Background(), "walletconnect")
	assert.ErrorIs(t, err, boom)

	st := s.State()
	assert.False(t, st.Connecting)
	assert.False(t, st.Connected)
	assert.Equal(t, sent{"Failed to connect wallet", notify.Error}, rec.last())

	// a failed attempt leaves the session free to retry
	_, err = s.StartConnect("walletconnect")
	assert.NoError(t, err)
}

func TestDisconnectAlwaysResets(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, s *Session)
	}{
		{"already disconnected", func(t *testing.T, s *Session) {}},
		{"connecting", func(t *testing.T, s *Session) {
			_, err := s.StartConnect("metamask")
			require.NoError(t, err)
		}},
		{"connected", func(t *testing.T, s *Session) {
			require.NoError(t, s.Connect(context.Background(), "ledger"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			s := NewSession(fastRegistry(t), rec)
			tt.setup(t, s)

			s.Disconnect()

			st := s.State()
			assert.False(t, st.Connected)
			assert.False(t, st.Connecting)
			assert.Empty(t, st.Address)
			assert.Empty(t, st.ProviderID)
			assert.Equal(t, sent{"Wallet disconnected", notify.Info}, rec.last())
		})
	}
}

func TestDisconnectDuringPendingConnectWins(t *testing.T) {
	g := newGated()
	reg := NewRegistry()
	require.NoError(t, reg.Register(Descriptor{ID: "gated", Name: "Gated"}, g))
	rec := &recorder{}
	s := NewSession(reg, rec)

	complete, err := s.StartConnect("gated")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- complete(context.Background()) }()

	s.Disconnect()
	close(g.release)

	assert.ErrorIs(t, <-done, ErrSuperseded)
	st := s.State()
	assert.False(t, st.Connected)
	assert.False(t, st.Connecting)
	assert.Empty(t, st.Address)

	g.mu.Lock()
	assert.Equal(t, 1, g.disconnected, "late connection should be released")
	g.mu.Unlock()

	// only the disconnect notification, no late success
	assert.Equal(t, []notify.Kind{notify.Info}, rec.kinds())
}

func TestStaleConnectKeepsSharedProvider(t *testing.T) {
	// first connect is abandoned by a disconnect, then the same provider id is
	// connected again; the stale completion must not tear the shared provider down
	setup := func(t *testing.T) (*Session, *turnstile, chan struct{}, chan error, chan struct{}, chan error) {
		p := newTurnstile()
		reg := NewRegistry()
		require.NoError(t, reg.Register(Descriptor{ID: "shared", Name: "Shared"}, p))
		s := NewSession(reg, &recorder{})

		first, err := s.StartConnect("shared")
		require.NoError(t, err)
		firstDone := make(chan error, 1)
		go func() { firstDone <- first(context.Background()) }()
		firstGate := <-p.calls

		s.Disconnect()

		second, err := s.StartConnect("shared")
		require.NoError(t, err)
		secondDone := make(chan error, 1)
		go func() { secondDone <- second(context.Background()) }()
		secondGate := <-p.calls

		return s, p, firstGate, firstDone, secondGate, secondDone
	}

	t.Run("stale completes after the newer connect", func(t *testing.T) {
		s, p, firstGate, firstDone, secondGate, secondDone := setup(t)

		close(secondGate)
		require.NoError(t, <-secondDone)
		require.True(t, s.State().Connected)

		close(firstGate)
		assert.ErrorIs(t, <-firstDone, ErrSuperseded)

		online, disconnects := p.status()
		assert.True(t, s.State().Connected)
		assert.True(t, online)
		assert.Equal(t, 0, disconnects)
	})

	t.Run("stale completes while the newer connect is pending", func(t *testing.T) {
		s, p, firstGate, firstDone, secondGate, secondDone := setup(t)

		close(firstGate)
		assert.ErrorIs(t, <-firstDone, ErrSuperseded)
		assert.True(t, s.State().Connecting)

		close(secondGate)
		require.NoError(t, <-secondDone)

		online, disconnects := p.status()
		assert.True(t, s.State().Connected)
		assert.True(t, online)
		assert.Equal(t, 0, disconnects)
	})
}

func TestSimulatedStartsOnInitialNetwork(t *testing.T) {
	s := NewSession(fastRegistry(t, WithInitialNetwork("base")), nil)
	require.NoError(t, s.Connect(context.Background(), "metamask"))
	assert.Equal(t, "base", s.State().Network)

	// a switch sticks across reconnects of the same provider
	require.NoError(t, s.SwitchNetwork(context.Background(), "polygon"))
	s.Disconnect()
	require.NoError(t, s.Connect(context.Background(), "metamask"))
	assert.Equal(t, "polygon", s.State().Network)
}

func TestSwitchNetwork(t *testing.T) {
	t.Run("requires connection", func(t *testing.T) {
		rec := &recorder{}
		s := NewSession(fastRegistry(t), rec)
		err := s.SwitchNetwork(context.Background(), "polygon")
		assert.ErrorIs(t, err, ErrNotConnected)
		assert.Equal(t, notify.Error, rec.last().kind)
		assert.Equal(t, DefaultNetwork, s.State().Network)
	})

	t.Run("connected", func(t *testing.T) {
		rec := &recorder{}
		s := NewSession(fastRegistry(t), rec)
		require.NoError(t, s.Connect(context.Background(), "metamask"))

		require.NoError(t, s.SwitchNetwork(context.Background(), "arbitrum"))
		assert.Equal(t, "arbitrum", s.State().Network)
		assert.Equal(t, sent{"Switched to arbitrum", notify.Success}, rec.last())
	})

	t.Run("unsupported network", func(t *testing.T) {
		rec := &recorder{}
		s := NewSession(fastRegistry(t, WithNetworks("ethereum", "polygon")), rec)
		require.NoError(t, s.Connect(context.Background(), "metamask"))

		err := s.SwitchNetwork(context.Background(), "solana")
		assert.ErrorIs(t, err, ErrUnsupportedNetwork)
		assert.Equal(t, DefaultNetwork, s.State().Network)
		assert.Equal(t, sent{"Failed to switch network", notify.Error}, rec.last())
	})

	t.Run("completion after disconnect is dropped", func(t *testing.T) {
		g := newGated()
		close(g.release)
		reg := NewRegistry()
		require.NoError(t, reg.Register(Descriptor{ID: "gated"}, g))
		s := NewSession(reg, nil)
		require.NoError(t, s.Connect(context.Background(), "gated"))

		g.release = make(chan struct{})
		done := make(chan error, 1)
		go func() { done <- s.SwitchNetwork(context.Background(), "base") }()
		<-g.entered
		s.Disconnect()
		close(g.release)

		assert.ErrorIs(t, <-done, ErrSuperseded)
		assert.Equal(t, DefaultNetwork, s.State().Network)
	})
}

func TestSignTransaction(t *testing.T) {
	t.Run("requires connection", func(t *testing.T) {
		rec := &recorder{}
		s := NewSession(fastRegistry(t), rec)
		_, err := s.SignTransaction(context.Background(), []byte("deposit"))
		assert.ErrorIs(t, err, ErrNotConnected)
		assert.Equal(t, notify.Error, rec.last().kind)
	})

	t.Run("returns tx hash", func(t *testing.T) {
		rec := &recorder{}
		s := NewSession(fastRegistry(t), rec)
		require.NoError(t, s.Connect(context.Background(), "metamask"))

		first, err := s.SignTransaction(context.Background(), []byte("deposit"))
		require.NoError(t, err)
		second, err := s.SignTransaction(context.Background(), []byte("deposit"))
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(first, "0x"))
		assert.Len(t, first, 66)
		assert.NotEqual(t, first, second)
		assert.Equal(t, sent{"Transaction signed successfully!", notify.Success}, rec.last())
	})

	t.Run("rejection propagates", func(t *testing.T) {
		rec := &recorder{}
		reg := fastRegistry(t, WithReject(func(op Op) error {
			if op == OpSign {
				return ErrRejected
			}
			return nil
		}))
		s := NewSession(reg, rec)
		require.NoError(t, s.Connect(context.Background(), "metamask"))

		_, err := s.SignTransaction(context.Background(), []byte("deposit"))
		assert.ErrorIs(t, err, ErrRejected)
		assert.Equal(t, sent{"Transaction failed", notify.Error}, rec.last())
		assert.True(t, s.State().Connected)
	})
}

func TestSessionWithQueue(t *testing.T) {
	q := notify.New()
	defer q.Close()
	s := NewSession(fastRegistry(t), q)

	require.NoError(t, s.Connect(context.Background(), "coinbase"))
	s.Disconnect()

	vis := q.Visible()
	require.Len(t, vis, 2)
	assert.Equal(t, notify.Success, vis[0].Kind)
	assert.Equal(t, notify.Info, vis[1].Kind)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	sim := NewSimulated("metamask")

	require.NoError(t, r.Register(Descriptor{ID: "metamask"}, sim))
	assert.Error(t, r.Register(Descriptor{ID: "metamask"}, sim), "duplicate")
	assert.Error(t, r.Register(Descriptor{ID: "ledger"}, sim), "id mismatch")
	assert.Error(t, r.Register(Descriptor{ID: "ledger"}, nil), "nil provider")

	p, ok := r.Get("metamask")
	assert.True(t, ok)
	assert.Equal(t, sim, p)
	_, ok = r.Get("ledger")
	assert.False(t, ok)

	def := DefaultRegistry()
	assert.Equal(t, len(BrowserWallets), def.Len())
	for i, d := range def.Descriptors() {
		assert.Equal(t, BrowserWallets[i].ID, d.ID)
	}
}

func TestSimulatedHonoursContext(t *testing.T) {
	sim := NewSimulated("metamask", WithDelays(time.Minute, time.Minute, time.Minute))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Connect(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, sim.SwitchNetwork(ctx, "polygon"), context.Canceled)
	_, err = sim.Sign(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, sim.Online())
}

func TestSimulatedFailureRate(t *testing.T) {
	always := NewSimulated("metamask", WithDelays(0, 0, 0), WithFailureRate(1, 1))
	_, err := always.Connect(context.Background())
	assert.ErrorIs(t, err, ErrRejected)

	never := NewSimulated("metamask", WithDelays(0, 0, 0), WithFailureRate(0, 1))
	acct, err := never.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MockAddress, acct.Address)
	assert.True(t, never.Online())
	require.NoError(t, never.Disconnect())
	assert.False(t, never.Online())
}

func TestSimulatedWithAccount(t *testing.T) {
	addr := common.HexToAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	sim := NewSimulated("ledger", WithDelays(0, 0, 0), WithAccount(addr, "3.2"))
	acct, err := sim.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, addr, acct.Address)
	assert.Equal(t, "3.2", acct.Balance)
}
