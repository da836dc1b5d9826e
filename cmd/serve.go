package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leko-robotics/leko-server/internal/pipeline"
	"github.com/leko-robotics/leko-server/internal/queue"
	"github.com/leko-robotics/leko-server/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP answer service",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		p, err := pipeline.FromConfig(cfg)
		if err != nil {
			return err
		}

		q, err := queue.Open(ctx, cfg.Queue.Driver, cfg.Queue.DSN)
		if err != nil {
			return err
		}
		defer q.Close()

		zap.L().Info("queue ready",
			zap.String("driver", cfg.Queue.Driver),
		)

		return server.New(cfg, p, q).ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
