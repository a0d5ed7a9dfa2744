package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"otaserve/internal/config"
	"otaserve/internal/payload"
	"otaserve/internal/server"
)

type serveOverrides struct {
	addr string
	dir  string
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	var overrides serveOverrides

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the OTA payload server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, cfg, overrides)
		},
	}

	cmd.Flags().StringVar(&overrides.addr, "addr", "", "listen address (host:port), overrides listen_addr")
	cmd.Flags().StringVar(&overrides.dir, "dir", "", "directory holding "+payload.FileName+", overrides payload_dir")
	return cmd
}

func runServer(cmd *cobra.Command, cfg *config.Config, overrides serveOverrides) error {
	if cfg == nil {
		return fmt.Errorf("config not initialized")
	}

	addr := cfg.ListenAddr
	if overrides.addr != "" {
		addr = overrides.addr
	}
	if err := config.ValidateListenAddr(addr); err != nil {
		return err
	}
	dir := cfg.PayloadDir
	if overrides.dir != "" {
		dir = overrides.dir
	}

	logger := slog.Default().With("component", "server")
	source := payload.NewSource(dir)
	logger.Info("serving payload", "file", source.Path(), "route", server.OTAPath)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	srv := server.New(addr, source, logger)
	ln, err := srv.Listen(ctx)
	if err != nil {
		return err
	}

	if err := writePlain(cmd, "Server running at %s\n", server.DisplayURL(ln.Addr().String())); err != nil {
		logger.Warn("write startup message", "error", err)
	}
	return srv.Serve(ctx, ln)
}
