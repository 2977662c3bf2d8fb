package cmd

import (
	"fmt"
	"os"

	"github.com/danomnoms/server/internal/config"
	logx "github.com/danomnoms/server/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	envFile string
	appCfg  *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "danomnoms",
	Short: "Food delivery backend with a tool-calling assistant",
	Long: `danomnoms serves the restaurant catalog, cart pricing and DoorDash delivery APIs,
plus a conversational assistant that drives those same operations through tool calls.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(envFile)
		if err != nil {
			return err
		}
		appCfg = cfg
		logx.Init(logx.LoggerOpts{Environment: cfg.Environment()})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(seedCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
