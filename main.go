package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"yieldsynth-tui/config"
	"yieldsynth-tui/data"
	"yieldsynth-tui/helpers"
	"yieldsynth-tui/notify"
	"yieldsynth-tui/wallet"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// -------------------- MAIN --------------------

var (
	configPath string
	logFlag    bool
	fastFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "yieldsynth",
	Short: "Terminal dashboard for AI-optimised yield farming",
	Long: `yieldsynth is a terminal dashboard for a simulated yield farming
platform: connect a wallet, browse strategy templates, follow your
portfolio and compare protocols.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", config.DefaultPath(), "path to the config file")
	rootCmd.Flags().BoolVar(&logFlag, "log", false, "open with the log panel enabled")
	rootCmd.Flags().BoolVar(&fastFlag, "fast", false, "shorten simulated wallet and refresh delays")
}

// buildRegistry lists the simulated browser wallets, plus a watch-only RPC
// provider when a valid address and at least one endpoint are configured.
func buildRegistry(cfg config.Config) *wallet.Registry {
	initial := wallet.DefaultNetwork
	if active, ok := cfg.ActiveNetwork(); ok {
		initial = active.Name
	}

	t := cfg.Timings
	reg := wallet.DefaultRegistry(
		wallet.WithDelays(t.Connect(), t.Switch(), t.Sign()),
		wallet.WithNetworks(cfg.NetworkNames()...),
		wallet.WithInitialNetwork(initial),
	)

	urls := cfg.RPCURLs()
	if !helpers.IsValidEthAddress(cfg.WatchAddress) || len(urls) == 0 {
		return reg
	}
	// Register only fails on duplicate ids
	_ = reg.Register(wallet.Descriptor{
		ID:          "rpc",
		Name:        "Watch-only (RPC)",
		Description: "Follow " + helpers.ShortenAddr(cfg.WatchAddress) + " over JSON-RPC",
		Icon:        "👁",
	}, wallet.NewRPC(common.HexToAddress(cfg.WatchAddress), urls, initial))
	return reg
}

func run(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg := config.LoadOrCreate(configPath)
	cfg.ApplyEnv(os.Getenv)
	if fastFlag {
		cfg.Timings = config.FastTimings()
	}
	if logFlag {
		cfg.Logger = true
	}

	queue := notify.New(
		notify.WithDefaultTTL(cfg.Timings.Toast()),
		notify.WithMaxVisible(5),
	)
	defer queue.Close()

	session := wallet.NewSession(buildRegistry(cfg), queue)

	store, err := data.NewStore(data.WithRefreshDelay(cfg.Timings.Refresh()))
	if err != nil {
		return err
	}
	defer store.Close()

	m := newModel(cfg, configPath, queue, session, store)
	defer m.cancel()

	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
