package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leko-robotics/leko-server/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "leko",
	Short: "Question-answering backend for the Leko robot",
	Long:  "Answers children's questions in Turkish: classifies freshness, grounds live questions in web search, generates answers over a model chain, and queues robot commands.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
