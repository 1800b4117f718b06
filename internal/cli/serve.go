package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/artpar/lumebar/internal/config"
	"github.com/artpar/lumebar/internal/demo"
	"github.com/artpar/lumebar/internal/logging"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Addr     string
	DataFile string
}

// NewServeCommand creates the demo server command. The root options carry
// the config file path set by the persistent flag.
func NewServeCommand(root *RootOptions) *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo server",
		Long: `Run a local server exposing a sample page, a data document at /data.json,
and a WebSocket reload channel at /ws.

Examples:
  # Serve the embedded sample document
  lumebar serve

  # Serve your own document and broadcast reloads when it changes
  lumebar serve --data ./data.json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Addr, "addr", "a", "", "Listen address (default localhost:8000)")
	cmd.Flags().StringVarP(&opts.DataFile, "data", "d", "", "Data document file served at /data.json")

	return cmd
}

func runServe(root *RootOptions, opts *ServeOptions) error {
	cfg, err := config.Load(root.ConfigPath)
	if err != nil {
		return err
	}
	logging.Configure(cfg.LogPath)

	addr := cfg.Demo.Addr
	if opts.Addr != "" {
		addr = opts.Addr
	}
	dataFile := cfg.Demo.DataFile
	if opts.DataFile != "" {
		dataFile = opts.DataFile
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	server := demo.NewServer(addr, dataFile)
	fmt.Printf("Demo server listening on http://%s\n", addr)
	return server.Start(ctx)
}
