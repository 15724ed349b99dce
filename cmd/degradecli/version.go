package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"degradecli/pkg/contracts"
)

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(contracts.GetVersionInfo())
			}
			fmt.Fprintln(cmd.OutOrStdout(), contracts.GetFullVersionString())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
