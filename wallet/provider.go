package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrAlreadyConnecting  = errors.New("wallet connection already in progress")
	ErrAlreadyConnected   = errors.New("wallet already connected")
	ErrNotConnected       = errors.New("wallet not connected")
	ErrUnknownProvider    = errors.New("unknown wallet provider")
	ErrSuperseded         = errors.New("operation superseded by a newer session change")
	ErrUnsupportedNetwork = errors.New("unsupported network")
	ErrWatchOnly          = errors.New("watch-only account cannot sign")
	ErrRejected           = errors.New("request rejected by wallet")
)

// Account is what a provider reports after a successful connect
type Account struct {
	Address common.Address
	Balance string
	Network string
}

// Provider is a wallet capability. Implementations may be simulated or backed by a real node.
type Provider interface {
	// ID is the stable key the provider is registered under (e.g. "metamask").
	ID() string
	Connect(ctx context.Context) (Account, error)
	SwitchNetwork(ctx context.Context, network string) error
	// Sign returns a transaction identifier for payload.
	Sign(ctx context.Context, payload []byte) (string, error)
	// Disconnect releases the connection. It is called with session locks held and must not block.
	Disconnect() error
}

// Descriptor is the display metadata for a provider in the connect dialog
type Descriptor struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Popular     bool
}

// Registry maps provider ids to providers, keeping registration order for display.
type Registry struct {
	providers map[string]Provider
	order     []Descriptor
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds p under d.ID. The descriptor id must match p.ID().
func (r *Registry) Register(d Descriptor, p Provider) error {
	if p == nil {
		return fmt.Errorf("register %q: nil provider", d.ID)
	}
	if d.ID != p.ID() {
		return fmt.Errorf("register %q: provider reports id %q", d.ID, p.ID())
	}
	if _, dup := r.providers[d.ID]; dup {
		return fmt.Errorf("register %q: already registered", d.ID)
	}
	r.providers[d.ID] = p
	r.order = append(r.order, d)
	return nil
}

// Get looks up a provider by id
func (r *Registry) Get(id string) (Provider, bool) {
	p, ok := r.providers[id]
	return p, ok
}

// Descriptors returns providers in registration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered providers
func (r *Registry) Len() int {
	return len(r.order)
}

// BrowserWallets lists the wallets offered in the connect dialog.
var BrowserWallets = []Descriptor{
	{ID: "metamask", Name: "MetaMask", Description: "Connect using MetaMask wallet", Icon: "🦊", Popular: true},
	{ID: "walletconnect", Name: "WalletConnect", Description: "Connect using WalletConnect protocol", Icon: "🔗", Popular: true},
	{ID: "coinbase", Name: "Coinbase Wallet", Description: "Connect using Coinbase Wallet", Icon: "🔵"},
	{ID: "ledger", Name: "Ledger", Description: "Connect using Ledger hardware wallet", Icon: "🔐"},
}

// DefaultRegistry registers a simulated provider for every entry in BrowserWallets.
func DefaultRegistry(opts ...SimOption) *Registry {
	r := NewRegistry()
	for _, d := range BrowserWallets {
		// ids are unique and match, Register cannot fail here
		_ = r.Register(d, NewSimulated(d.ID, opts...))
	}
	return r
}
