package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"otaserve/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "otaserve",
		Short:         "Otaserve answers POST /ota.json with the local OTA payload file",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configLevel := ""
			if cfg != nil {
				configLevel = cfg.LogLevel
			}
			warning, err := configureLoggerForCLI(logLevel, configLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), warning)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, cfg, serveOverrides{})
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCmd(cfg),
		newConfigCmd(cfg),
	)

	return cmd
}
