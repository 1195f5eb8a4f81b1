package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "icollege %s\n", cc.buildInfo)
			return err
		},
	}
}
