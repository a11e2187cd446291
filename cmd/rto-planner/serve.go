package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/rto-planner/internal/api"
	"github.com/username/rto-planner/internal/daemon"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning JSON API for the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			p, svc, err := initializePlanner(cmd.Context(), cfg, true)
			if err != nil {
				return err
			}

			limiter := api.NewRateLimiter(cfg.Server.AdvicePerMinute, cfg.Server.AdviceBurst, logger)
			handler := api.NewHandler(p, svc, cfg.Plan, logger)
			router := api.NewRouter(handler, api.RouterOptions{
				CORSOrigins:   cfg.Server.CORSOrigins,
				AdviceLimiter: limiter,
				Logger:        logger,
			})

			// Responses wait for the slowest advisory call.
			server := api.NewServer(cfg.Server.Addr, router, cfg.Advisory.GetTimeout()+30*time.Second)

			logger.Info("Starting API server",
				zap.String("addr", cfg.Server.Addr),
				zap.Bool("advice", svc.Enabled()),
				zap.Strings("cors_origins", cfg.Server.CORSOrigins))

			d := daemon.NewDaemon(server, logger, daemon.WithOnStop(limiter.Stop))
			return d.Start()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}
