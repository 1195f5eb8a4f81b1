package main

import (
	"github.com/guanggu/icollege/models"
	"github.com/spf13/cobra"
)

func newRootCommand(info models.AppBuildInfo) *cobra.Command {
	cc := &commandContext{buildInfo: info}

	rootCmd := &cobra.Command{
		Use:           "icollege",
		Short:         "icollege blogging platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cc.configFlag, "config", "c", "", "Configuration file path (GHOST_CONFIG takes precedence)")
	rootCmd.PersistentFlags().StringVarP(&cc.envFlag, "env", "e", "", "Environment section to use (overrides NODE_ENV)")
	rootCmd.PersistentFlags().StringVar(&cc.logLevel, "log-level", "", "Minimum log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cc.appRootFlag, "app-root", "", "Application root (defaults to the working directory)")

	rootCmd.AddCommand(newServeCommand(cc))
	rootCmd.AddCommand(newConfigCommand(cc))
	rootCmd.AddCommand(newVersionCommand(cc))

	return rootCmd
}
