package commands

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/teller-dev/teller/internal/bank"
	"github.com/teller-dev/teller/internal/server"
)

func newServeCommand() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Logging)

			reg, err := bank.NewRegistry()
			if err != nil {
				return fmt.Errorf("creating registry: %w", err)
			}

			srv := server.New(reg, cfg, &logger)
			logger.Info().Str("listen", cfg.Server.Listen).Str("bank", cfg.Bank.Name).Msg("starting HTTP API")
			return http.ListenAndServe(cfg.Server.Listen, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "path to teller.yaml")

	return cmd
}
