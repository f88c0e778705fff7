package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"yieldsynth-tui/notify"
)

// DefaultNetwork is the network a fresh session reports
const DefaultNetwork = "ethereum"

// Status is the coarse connection state
type Status int

const (
	Disconnected Status = iota
	Connecting
	Connected
)

func (s Status) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// State is a snapshot of the session. Connected implies Address is set,
// and Connecting and Connected are never both true.
type State struct {
	Address    string
	Connecting bool
	Connected  bool
	Balance    string
	Network    string
	ProviderID string
}

// Status derives the state machine position from the flags.
func (s State) Status() Status {
	switch {
	case s.Connected:
		return Connected
	case s.Connecting:
		return Connecting
	default:
		return Disconnected
	}
}

func initialState() State {
	return State{Balance: "0", Network: DefaultNetwork}
}

// Session owns the wallet connection lifecycle.
//
// Every Connect and Disconnect bumps a generation counter. A provider call that
// completes after the generation moved on is discarded with ErrSuperseded and
// produces no notification, so a Disconnect issued while a Connect is pending wins.
type Session struct {
	registry *Registry
	notifier notify.Notifier
	logger   *log.Logger

	mu       sync.Mutex
	state    State
	gen      uint64
	provider Provider
	// provider of the connect in flight; registry providers are shared per id
	pending Provider
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithLogger records state transitions at debug level.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// NewSession creates a disconnected session. It panics when reg is nil since every
// operation depends on it. A nil notifier discards notifications.
func NewSession(reg *Registry, n notify.Notifier, opts ...SessionOption) *Session {
	if reg == nil {
		panic("wallet: NewSession requires a provider registry")
	}
	if n == nil {
		n = notify.Discard
	}
	s := &Session{
		registry: reg,
		notifier: n,
		state:    initialState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the providers the session can connect through.
func (s *Session) Registry() *Registry {
	return s.registry
}

// SetLogger swaps the transition logger.
func (s *Session) SetLogger(l *log.Logger) {
	s.mu.Lock()
	s.logger = l
	s.mu.Unlock()
}

// State returns a copy of the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// StartConnect moves the session into Connecting before returning, and hands back
// the completion that performs the provider call. The completion must be run
// exactly once; until it returns the session stays Connecting.
func (s *Session) StartConnect(providerID string) (func(context.Context) error, error) {
	p, ok := s.registry.Get(providerID)
	if !ok {
		s.notifier.Notify("Failed to connect wallet", notify.Error, 0)
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, providerID)
	}

	s.mu.Lock()
	if s.state.Connecting {
		s.mu.Unlock()
		return nil, ErrAlreadyConnecting
	}
	if s.state.Connected {
		s.mu.Unlock()
		return nil, ErrAlreadyConnected
	}
	s.gen++
	gen := s.gen
	s.pending = p
	s.state.Connecting = true
	s.debug("connecting", "provider", providerID, "gen", gen)
	s.mu.Unlock()

	return func(ctx context.Context) error {
		return s.finishConnect(ctx, p, gen)
	}, nil
}

// Connect runs StartConnect and its completion.
func (s *Session) Connect(ctx context.Context, providerID string) error {
	complete, err := s.StartConnect(providerID)
	if err != nil {
		return err
	}
	return complete(ctx)
}

func (s *Session) finishConnect(ctx context.Context, p Provider, gen uint64) error {
	acct, err := p.Connect(ctx)

	s.mu.Lock()
	if s.gen != gen {
		s.debug("connect superseded", "provider", p.ID(), "gen", gen)
		// release the late connection unless a newer one is using the same provider
		if err == nil && p != s.provider && p != s.pending {
			if derr := p.Disconnect(); derr != nil && s.logger != nil {
				s.logger.Warn("provider disconnect", "provider", p.ID(), "err", derr)
			}
		}
		s.mu.Unlock()
		return ErrSuperseded
	}
	s.pending = nil
	if err != nil {
		s.state.Connecting = false
		s.debug("connect failed", "provider", p.ID(), "err", err)
		s.mu.Unlock()
		s.notifier.Notify("Failed to connect wallet", notify.Error, 0)
		return fmt.Errorf("connect %s: %w", p.ID(), err)
	}

	network := acct.Network
	if network == "" {
		network = DefaultNetwork
	}
	s.state = State{
		Address:    acct.Address.Hex(),
		Connected:  true,
		Balance:    acct.Balance,
		Network:    network,
		ProviderID: p.ID(),
	}
	s.provider = p
	s.debug("connected", "provider", p.ID(), "address", s.state.Address)
	s.mu.Unlock()

	s.notifier.Notify("Wallet connected successfully!", notify.Success, 0)
	return nil
}

// Disconnect resets the session unconditionally, abandoning any pending operation.
func (s *Session) Disconnect() {
	s.mu.Lock()
	p, logger := s.provider, s.logger
	s.provider = nil
	s.pending = nil
	s.gen++
	s.state = initialState()
	s.debug("disconnected", "gen", s.gen)
	s.mu.Unlock()

	if p != nil {
		if err := p.Disconnect(); err != nil && logger != nil {
			logger.Warn("provider disconnect", "provider", p.ID(), "err", err)
		}
	}
	s.notifier.Notify("Wallet disconnected", notify.Info, 0)
}

// SwitchNetwork asks the connected provider to change network.
func (s *Session) SwitchNetwork(ctx context.Context, network string) error {
	p, gen, err := s.connected()
	if err != nil {
		s.notifier.Notify("Failed to switch network: wallet not connected", notify.Error, 0)
		return err
	}

	err = p.SwitchNetwork(ctx, network)

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return ErrSuperseded
	}
	if err != nil {
		s.mu.Unlock()
		s.notifier.Notify("Failed to switch network", notify.Error, 0)
		return fmt.Errorf("switch network to %s: %w", network, err)
	}
	s.state.Network = network
	s.debug("network switched", "network", network)
	s.mu.Unlock()

	s.notifier.Notify(fmt.Sprintf("Switched to %s", network), notify.Success, 0)
	return nil
}

// SignTransaction signs payload with the connected provider and returns the transaction id.
func (s *Session) SignTransaction(ctx context.Context, payload []byte) (string, error) {
	p, gen, err := s.connected()
	if err != nil {
		s.notifier.Notify("Transaction failed: wallet not connected", notify.Error, 0)
		return "", err
	}

	txID, err := p.Sign(ctx, payload)

	s.mu.Lock()
	stale := s.gen != gen
	s.mu.Unlock()
	if stale {
		return "", ErrSuperseded
	}
	if err != nil {
		s.notifier.Notify("Transaction failed", notify.Error, 0)
		return "", fmt.Errorf("sign transaction: %w", err)
	}

	s.notifier.Notify("Transaction signed successfully!", notify.Success, 0)
	return txID, nil
}

func (s *Session) connected() (Provider, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Connected || s.provider == nil {
		return nil, 0, ErrNotConnected
	}
	return s.provider, s.gen, nil
}

// debug must be called with s.mu held.
func (s *Session) debug(msg string, keyvals ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, keyvals...)
	}
}
