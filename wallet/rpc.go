package wallet

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// DefaultDialTimeout bounds a single RPC dial plus the first balance read.
const DefaultDialTimeout = 8 * time.Second

// ChainNames maps well-known chain ids to network names
var ChainNames = map[int64]string{
	1:        "ethereum",
	10:       "optimism",
	137:      "polygon",
	8453:     "base",
	42161:    "arbitrum",
	11155111: "sepolia",
}

// RPC is a watch-only Provider backed by an Ethereum JSON-RPC endpoint.
// It reads the balance of a fixed address and cannot sign.
type RPC struct {
	watch    common.Address
	networks map[string]string // network name -> RPC URL
	initial  string
	timeout  time.Duration

	mu      sync.Mutex
	client  *ethclient.Client
	url     string
	network string
}

// NewRPC creates a provider that connects to networks[initial] and watches addr.
func NewRPC(addr common.Address, networks map[string]string, initial string) *RPC {
	nets := make(map[string]string, len(networks))
	for k, v := range networks {
		nets[k] = v
	}
	return &RPC{
		watch:    addr,
		networks: nets,
		initial:  initial,
		timeout:  DefaultDialTimeout,
	}
}

func (r *RPC) ID() string { return "rpc" }

// URL returns the endpoint currently in use, empty when disconnected.
func (r *RPC) URL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.url
}

func (r *RPC) Connect(ctx context.Context) (Account, error) {
	url, ok := r.networks[r.initial]
	if !ok || url == "" {
		return Account{}, fmt.Errorf("%w: no RPC URL for %q", ErrUnsupportedNetwork, r.initial)
	}
	client, network, err := r.dial(ctx, url, r.initial)
	if err != nil {
		return Account{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	wei, err := client.BalanceAt(ctx, r.watch, nil)
	if err != nil {
		client.Close()
		return Account{}, fmt.Errorf("load balance: %w", err)
	}

	r.swap(client, url, network)
	return Account{Address: r.watch, Balance: formatEther(wei), Network: network}, nil
}

func (r *RPC) SwitchNetwork(ctx context.Context, network string) error {
	url, ok := r.networks[network]
	if !ok || url == "" {
		return fmt.Errorf("%w: %s", ErrUnsupportedNetwork, network)
	}
	client, _, err := r.dial(ctx, url, network)
	if err != nil {
		return err
	}
	r.swap(client, url, network)
	return nil
}

func (r *RPC) Sign(context.Context, []byte) (string, error) {
	return "", ErrWatchOnly
}

func (r *RPC) Disconnect() error {
	r.swap(nil, "", "")
	return nil
}

// dial connects to url and names the network from its chain id, falling back to name.
func (r *RPC) dial(ctx context.Context, url, name string) (*ethclient.Client, string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, "", fmt.Errorf("dial %s: %w", url, err)
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, "", fmt.Errorf("chain id: %w", err)
	}
	if known, ok := ChainNames[chainID.Int64()]; ok {
		name = known
	}
	return client, name, nil
}

func (r *RPC) swap(client *ethclient.Client, url, network string) {
	r.mu.Lock()
	old := r.client
	r.client, r.url, r.network = client, url, network
	r.mu.Unlock()
	if old != nil {
		old.Close()
	}
}

func formatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	eth := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(1e18))
	return eth.Text('f', 4)
}
