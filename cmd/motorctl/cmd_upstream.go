package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"motorhub/pkg/secrets"
)

func newUpstreamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upstream",
		Short: "Manage credentials for the insurer and e-challan upstreams",
	}

	var asJSON bool
	key := &cobra.Command{
		Use:   "key",
		Short: "Generate an API key and the bcrypt hash the mock upstream stores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := secrets.NewAPIKey()
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), k)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "# motorhub server\nAPI_KEY=%s\n", k.Plain)
			fmt.Fprintf(w, "# mock-upstream\nAPI_KEY_HASH='%s'\n", k.Hash)
			return nil
		},
	}
	key.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.AddCommand(key)

	return cmd
}
