package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ukaji3/tablenorm-go/internal/server"
)

var port string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload API over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (default: $PORT or 8000)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Server.Port = port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, log)
	return srv.Run(ctx, net.JoinHostPort("", cfg.Server.Port))
}
