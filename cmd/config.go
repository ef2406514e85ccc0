package cmd

import (
	"github.com/ftahirops/hostdash/config"
	"github.com/spf13/cobra"
)

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration hostdash would run with, after applying the
config file and flags to the defaults. The output is a valid config file.

Examples:
  hostdash config
  hostdash config > ~/.config/hostdash/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		out, err := cfg.YAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
