// Package cli wires the command line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/artpar/lumebar/internal/action"
	"github.com/artpar/lumebar/internal/config"
	"github.com/artpar/lumebar/internal/feed"
	"github.com/artpar/lumebar/internal/logging"
	"github.com/artpar/lumebar/internal/state"
	"github.com/artpar/lumebar/internal/state/sqlite"
	"github.com/artpar/lumebar/internal/tui/views"
)

// RootOptions holds the root command flags, layered over the config file.
type RootOptions struct {
	ConfigPath     string
	Source         string
	StatePath      string
	LogPath        string
	ActionEndpoint string
	NoWatch        bool
}

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "lumebar",
		Short:   "Lumebar - a collapsible diagnostics bar",
		Long:    "Lumebar renders collections of diagnostic items from a dev server's data document\nin a collapsible, tabbed terminal bar with persistent UI state.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBar(opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file path")
	cmd.Flags().StringVarP(&opts.Source, "source", "s", "", "Data document URL or file path")
	cmd.Flags().StringVar(&opts.StatePath, "state", "", "SQLite file for persisted UI state")
	cmd.Flags().StringVar(&opts.LogPath, "log", "", "Diagnostic log file")
	cmd.Flags().StringVar(&opts.ActionEndpoint, "action-endpoint", "", "WebSocket URL receiving activated actions")
	cmd.Flags().BoolVar(&opts.NoWatch, "no-watch", false, "Do not reload when a file source changes")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewCheckCommand())

	return cmd
}

func loadConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Source != "" {
		cfg.Source = opts.Source
	}
	if opts.StatePath != "" {
		cfg.StatePath = opts.StatePath
	}
	if opts.LogPath != "" {
		cfg.LogPath = opts.LogPath
	}
	if opts.ActionEndpoint != "" {
		cfg.ActionEndpoint = opts.ActionEndpoint
	}
	if opts.NoWatch {
		cfg.Watch = false
	}
	return cfg, nil
}

func runBar(opts *RootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logging.Configure(cfg.LogPath)

	if cfg.Source == "" {
		return fmt.Errorf("no data source configured; pass --source or set it in the config file")
	}

	var store state.Store
	if cfg.StatePath != "" {
		store, err = sqlite.New(cfg.StatePath)
		if err != nil {
			return err
		}
	} else {
		store = state.NewMemoryStore()
	}
	defer store.Close()

	var sender action.Sender = action.LogSender{}
	if cfg.ActionEndpoint != "" {
		sender = action.NewWebSocketSender(cfg.ActionEndpoint)
	}
	defer sender.Close()

	source := feed.New(cfg.Source)
	var watcher *feed.Watcher
	if cfg.Watch && !strings.HasPrefix(cfg.Source, "http://") && !strings.HasPrefix(cfg.Source, "https://") {
		watcher, err = feed.Watch(cfg.Source)
		if err != nil {
			logging.Error(err)
		} else {
			defer watcher.Close()
		}
	}

	view := views.NewBarView(state.New(store), source, watcher, sender)
	p := tea.NewProgram(view, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		return err
	}
	return nil
}
