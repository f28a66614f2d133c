// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ketketm/linkedin-company-link-finder/internal/keypool"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the API keys in rotation order",
	Long: `Keys loads the credentials spreadsheet the way enrich does and prints the
keys in the order they will be used, masked, with the search engine id every
request will carry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := baseDir()
		if err != nil {
			return err
		}
		pool, err := loadPool(resolvePath(base, viper.GetString("enrich.keys_file")))
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Key", "cx"})
		for i, c := range pool.Credentials {
			t.AppendRow(table.Row{i + 1, keypool.Mask(c.Key), c.SearchEngineID})
		}
		t.Render()

		if pool.Mismatched > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%d row(s) list a different cx; only %s is used.\n",
				pool.Mismatched, pool.SearchEngineID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
