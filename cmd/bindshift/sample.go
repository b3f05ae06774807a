// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bindshift/internal/pdffixture"
)

var sampleCmd = &cobra.Command{
	Use:   "sample <output>",
	Short: "Write a small test PDF with numbered A4 pages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pages, _ := cmd.Flags().GetInt("pages")
		if pages < 1 {
			return fmt.Errorf("--pages must be at least 1")
		}
		if err := os.WriteFile(args[0], pdffixture.Build(pages), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d pages)\n", args[0], pages)
		return nil
	},
}

func init() {
	sampleCmd.Flags().Int("pages", 4, "number of pages")

	rootCmd.AddCommand(sampleCmd)
}
