package wallet

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Op names a provider operation for failure injection
type Op string

const (
	OpConnect       Op = "connect"
	OpSwitchNetwork Op = "switch_network"
	OpSign          Op = "sign"
)

// Default simulated latencies
const (
	DefaultConnectDelay = 2 * time.Second
	DefaultSwitchDelay  = 1 * time.Second
	DefaultSignDelay    = 2 * time.Second
)

var (
	// MockAddress is the account every simulated wallet connects as.
	MockAddress = common.HexToAddress("0x742d35Cc2C3c3c2Cb8c8C8C9c9c9C9c9C9c9C9c9")
	// MockBalance is the ETH balance reported by simulated wallets.
	MockBalance = "12.5847"
)

// Simulated is a Provider that fakes wallet latency with timers
type Simulated struct {
	id           string
	connectDelay time.Duration
	switchDelay  time.Duration
	signDelay    time.Duration
	address      common.Address
	balance      string
	networks     map[string]bool
	failureRate  float64
	reject       func(Op) error

	mu      sync.Mutex
	rng     *rand.Rand
	nonce   uint64
	online  bool
	network string
}

// SimOption configures a Simulated provider
type SimOption func(*Simulated)

// WithDelays overrides the connect, switch and sign latencies.
func WithDelays(connect, switchNet, sign time.Duration) SimOption {
	return func(s *Simulated) {
		s.connectDelay, s.switchDelay, s.signDelay = connect, switchNet, sign
	}
}

// WithAccount sets the address and balance reported on connect.
func WithAccount(addr common.Address, balance string) SimOption {
	return func(s *Simulated) {
		s.address, s.balance = addr, balance
	}
}

// WithNetworks restricts SwitchNetwork to the given names. An empty list accepts any network.
func WithNetworks(names ...string) SimOption {
	return func(s *Simulated) {
		if len(names) == 0 {
			s.networks = nil
			return
		}
		s.networks = make(map[string]bool, len(names))
		for _, n := range names {
			s.networks[n] = true
		}
	}
}

// WithInitialNetwork sets the network reported by the first Connect.
func WithInitialNetwork(name string) SimOption {
	return func(s *Simulated) {
		if name != "" {
			s.network = name
		}
	}
}

// WithFailureRate makes each operation fail with probability p.
func WithFailureRate(p float64, seed int64) SimOption {
	return func(s *Simulated) {
		s.failureRate = p
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithReject injects a failure hook consulted after the delay of every operation.
func WithReject(fn func(Op) error) SimOption {
	return func(s *Simulated) { s.reject = fn }
}

// NewSimulated creates a simulated provider registered under id
func NewSimulated(id string, opts ...SimOption) *Simulated {
	s := &Simulated{
		id:           id,
		connectDelay: DefaultConnectDelay,
		switchDelay:  DefaultSwitchDelay,
		signDelay:    DefaultSignDelay,
		address:      MockAddress,
		balance:      MockBalance,
		network:      DefaultNetwork,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulated) ID() string { return s.id }

func (s *Simulated) Connect(ctx context.Context) (Account, error) {
	if err := s.wait(ctx, OpConnect, s.connectDelay); err != nil {
		return Account{}, err
	}
	s.mu.Lock()
	s.online = true
	network := s.network
	s.mu.Unlock()
	return Account{Address: s.address, Balance: s.balance, Network: network}, nil
}

func (s *Simulated) SwitchNetwork(ctx context.Context, network string) error {
	if s.networks != nil && !s.networks[network] {
		return fmt.Errorf("%w: %s", ErrUnsupportedNetwork, network)
	}
	if err := s.wait(ctx, OpSwitchNetwork, s.switchDelay); err != nil {
		return err
	}
	s.mu.Lock()
	s.network = network
	s.mu.Unlock()
	return nil
}

func (s *Simulated) Sign(ctx context.Context, payload []byte) (string, error) {
	if err := s.wait(ctx, OpSign, s.signDelay); err != nil {
		return "", err
	}
	s.mu.Lock()
	s.nonce++
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], s.nonce)
	s.mu.Unlock()
	return crypto.Keccak256Hash(payload, n[:]).Hex(), nil
}

func (s *Simulated) Disconnect() error {
	s.mu.Lock()
	s.online = false
	s.mu.Unlock()
	return nil
}

// Online reports whether the provider considers itself connected.
func (s *Simulated) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

func (s *Simulated) wait(ctx context.Context, op Op, d time.Duration) error {
	if err := sleep(ctx, d); err != nil {
		return err
	}
	if s.reject != nil {
		if err := s.reject(op); err != nil {
			return err
		}
	}
	if s.failureRate > 0 {
		s.mu.Lock()
		roll := s.rng.Float64()
		s.mu.Unlock()
		if roll < s.failureRate {
			return fmt.Errorf("%w: simulated %s failure", ErrRejected, op)
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
