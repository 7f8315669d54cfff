package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/estate-office/internal/config"
	"github.com/evcraddock/estate-office/internal/contract"
	"github.com/evcraddock/estate-office/internal/db"
	"github.com/evcraddock/estate-office/internal/jobs"
	"github.com/evcraddock/estate-office/internal/logging"
	"github.com/evcraddock/estate-office/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the REST API server. Settings come from the environment and .env; --port and --db override them.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", config.DefaultPort, "port to listen on (default: $PORT or 3000)")

	return cmd
}

func runServe(cmd *cobra.Command, port int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}
	if flagDB != "" {
		cfg.DatabaseURL = flagDB
	}

	logging.Setup(cfg.DevMode)

	target, err := cfg.Target()
	if err != nil {
		return err
	}
	database, err := db.Connect(target)
	if err != nil {
		return err
	}
	defer closeDB(database)
	slog.Info("database ready", "dialect", database.Dialect())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ExpireCron != "" {
		sweeper, err := jobs.NewExpirySweeper(ctx, contract.NewRepository(database), cfg.ExpireCron)
		if err != nil {
			return fmt.Errorf("EO_EXPIRE_CRON: %w", err)
		}
		sweeper.Start()
		defer sweeper.Stop()
		slog.Info("contract expiry sweep scheduled", "schedule", cfg.ExpireCron)
	}

	srv := web.NewServer(database, web.WithCORSOrigin(cfg.CORSOrigin))
	return srv.ListenAndServe(ctx, cfg.Addr())
}
