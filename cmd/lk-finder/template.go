// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ketketm/linkedin-company-link-finder/internal/keypool"
	"github.com/Ketketm/linkedin-company-link-finder/internal/sheet"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Create empty company and credentials spreadsheets",
	Long: `Template writes a company spreadsheet (Company, Linkedin_URL) and a
credentials spreadsheet (key, cx) at the configured paths. Existing files are
left alone unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := baseDir()
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		targets := []struct {
			path  string
			write func(string) error
		}{
			{
				path:  resolvePath(base, viper.GetString("enrich.companies_file")),
				write: func(p string) error { return sheet.WriteCompanyTemplate(p, nil) },
			},
			{
				path:  resolvePath(base, viper.GetString("enrich.keys_file")),
				write: keypool.WriteTemplate,
			},
		}
		for _, tgt := range targets {
			if _, err := os.Stat(tgt.path); err == nil && !force {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped: %s (already exists)\n", tgt.path)
				continue
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", tgt.path, err)
			}
			if err := tgt.write(tgt.path); err != nil {
				return fmt.Errorf("writing %s: %w", tgt.path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created: %s\n", tgt.path)
		}
		return nil
	},
}

func init() {
	templateCmd.Flags().Bool("force", false, "overwrite existing files")
	rootCmd.AddCommand(templateCmd)
}
