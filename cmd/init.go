package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a kaftar configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that asks for the content API, environment and server settings and writes them to the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
