package commands

import (
	"github.com/spf13/cobra"

	"shipfee/internal/pkg/config"
	"shipfee/internal/pkg/logger"
)

var (
	configPath string
	logLevel   string
	cfg        *config.Config
)

// NewRootCmd 构建 shipfee 命令树
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shipfee",
		Short:         "Compute multi-seller shipping fees offline",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.InitTo(cmd.ErrOrStderr(), "shipfee", logLevel)
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/shipping.yaml", "config file (fee table under shipping.fee_table)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")

	root.AddCommand(quoteCmd(), tableCmd(), distanceCmd())
	return root
}

// Execute 运行 CLI
func Execute() error {
	return NewRootCmd().Execute()
}
