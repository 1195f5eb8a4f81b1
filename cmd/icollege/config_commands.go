package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/guanggu/icollege/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCommand(cc *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigCheckCommand(cc))
	configCmd.AddCommand(newConfigInitCommand(cc))

	return configCmd
}

func newConfigCheckCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load and validate the configuration without connecting to the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := cc.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			m, cfg, err := cc.loadConfig(log)
			if err != nil {
				return err
			}

			deprecated := m.CheckDeprecated()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration valid for environment %q\n", m.Environment().Name)
			fmt.Fprintf(out, "  file:   %s\n", cfg.Paths.Config)
			fmt.Fprintf(out, "  url:    %s\n", cfg.URL)
			if socket, ok := m.Socket(); ok {
				fmt.Fprintf(out, "  listen: unix:%s\n", socket)
			} else {
				fmt.Fprintf(out, "  listen: %s:%d\n", cfg.Server.Host, cfg.Server.Port)
			}
			if deprecated > 0 {
				fmt.Fprintf(out, "%d deprecated setting(s) in use, see the log for details\n", deprecated)
			}
			return nil
		},
	}
}

func newConfigInitCommand(cc *commandContext) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create config.yaml from config.example.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := cc.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			m, err := cc.newManager(log)
			if err != nil {
				return err
			}
			if path := cc.configPath(m); path != "" {
				m.Set(config.Config{Paths: config.Paths{Config: path}})
			}
			target := m.Get().Paths.Config

			if !overwrite {
				if _, err = os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err = m.WriteFile(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing configuration file")
	return cmd
}
