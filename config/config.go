package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileName is the config file created in the user's home directory
const FileName = ".yieldsynth-config.json"

var ErrUnknownNetwork = errors.New("unknown network")

// Config represents the application configuration
type Config struct {
	Networks     []Network `json:"networks"`
	Provider     string    `json:"provider,omitempty"`
	WatchAddress string    `json:"watch_address,omitempty"`
	Logger       bool      `json:"logger"`
	Timings      Timings   `json:"timings"`
}

// Network is a chain the session can switch to
type Network struct {
	Name    string `json:"name"`
	ChainID int64  `json:"chain_id"`
	RPCURL  string `json:"rpc_url,omitempty"`
	Icon    string `json:"icon,omitempty"`
	Active  bool   `json:"active"`
}

// Timings holds the simulated latencies in milliseconds. Zero means default.
type Timings struct {
	ConnectMs int `json:"connect_ms,omitempty"`
	SwitchMs  int `json:"switch_ms,omitempty"`
	SignMs    int `json:"sign_ms,omitempty"`
	RefreshMs int `json:"refresh_ms,omitempty"`
	ActionMs  int `json:"action_ms,omitempty"`
	ToastMs   int `json:"toast_ms,omitempty"`
}

func ms(v, def int) time.Duration {
	if v <= 0 {
		v = def
	}
	return time.Duration(v) * time.Millisecond
}

func (t Timings) Connect() time.Duration { return ms(t.ConnectMs, 2000) }
func (t Timings) Switch() time.Duration  { return ms(t.SwitchMs, 1000) }
func (t Timings) Sign() time.Duration    { return ms(t.SignMs, 2000) }
func (t Timings) Refresh() time.Duration { return ms(t.RefreshMs, 1500) }
func (t Timings) Action() time.Duration  { return ms(t.ActionMs, 2000) }
func (t Timings) Toast() time.Duration   { return ms(t.ToastMs, 5000) }

// FastTimings shortens every simulated delay for demos. Toasts keep their default.
func FastTimings() Timings {
	return Timings{ConnectMs: 200, SwitchMs: 100, SignMs: 200, RefreshMs: 150, ActionMs: 200}
}

// DefaultPath returns ~/.yieldsynth-config.json, or the bare file name without a home dir.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(homeDir, FileName)
}

// Load reads the config from the specified path
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the specified path
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Networks: []Network{
			{Name: "ethereum", ChainID: 1, RPCURL: "https://ethereum-rpc.publicnode.com", Icon: "⟠", Active: true},
			{Name: "polygon", ChainID: 137, RPCURL: "https://polygon-bor-rpc.publicnode.com", Icon: "⬡"},
			{Name: "arbitrum", ChainID: 42161, RPCURL: "https://arbitrum-one-rpc.publicnode.com", Icon: "◆"},
			{Name: "optimism", ChainID: 10, RPCURL: "https://optimism-rpc.publicnode.com", Icon: "◯"},
			{Name: "base", ChainID: 8453, RPCURL: "https://base-rpc.publicnode.com", Icon: "■"},
		},
		Provider: "metamask",
		// vitalik.eth
		WatchAddress: "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045",
		Logger:       false,
	}
}

// LoadOrCreate loads config from path, or creates a default one if not found.
// An unreadable config falls back to defaults without overwriting the file.
func LoadOrCreate(path string) Config {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
		_ = Save(path, cfg)
		return cfg
	}
	if err != nil || len(cfg.Networks) == 0 {
		return DefaultConfig()
	}
	return cfg
}

// ApplyEnv overrides the ethereum RPC URL with ETH_RPC_URL and the watched
// address with YIELDSYNTH_WATCH_ADDRESS.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if url := strings.TrimSpace(getenv("ETH_RPC_URL")); url != "" {
		found := false
		for i := range c.Networks {
			if c.Networks[i].Name == "ethereum" {
				c.Networks[i].RPCURL = url
				found = true
			}
		}
		if !found {
			c.Networks = append(c.Networks, Network{Name: "ethereum", ChainID: 1, RPCURL: url, Active: len(c.Networks) == 0})
		}
	}
	if addr := strings.TrimSpace(getenv("YIELDSYNTH_WATCH_ADDRESS")); addr != "" {
		c.WatchAddress = addr
	}
}

// ActiveNetwork returns the active network, the first one if none is marked.
func (c Config) ActiveNetwork() (Network, bool) {
	for _, n := range c.Networks {
		if n.Active {
			return n, true
		}
	}
	if len(c.Networks) > 0 {
		return c.Networks[0], true
	}
	return Network{}, false
}

// SetActive marks name as the only active network.
func (c *Config) SetActive(name string) error {
	idx := -1
	for i, n := range c.Networks {
		if n.Name == name {
			idx = i
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownNetwork, name)
	}
	for i := range c.Networks {
		c.Networks[i].Active = i == idx
	}
	return nil
}

// NetworkNames lists networks in config order
func (c Config) NetworkNames() []string {
	names := make([]string, 0, len(c.Networks))
	for _, n := range c.Networks {
		names = append(names, n.Name)
	}
	return names
}

// RPCURLs maps network names to their RPC endpoint, skipping networks without one.
func (c Config) RPCURLs() map[string]string {
	urls := make(map[string]string)
	for _, n := range c.Networks {
		if n.RPCURL != "" {
			urls[n.Name] = n.RPCURL
		}
	}
	return urls
}
