package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ostafen/fileinfo/internal/env"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   env.AppName,
		Short: env.AppName + " - image header and CSV structure inspector",
	}
	rootCmd.PersistentFlags().String("log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(
		DefineImageCommand(),
		DefineCSVCommand(),
		DefineDescribeCommand(),
		DefineFormatsCommand(),
		DefineServeCommand(),
		DefineVersionCommand(),
	)
	return rootCmd
}

func Execute() error {
	return NewRootCommand().Execute()
}
