// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bindshift/internal/document"
	"github.com/pdiddy/bindshift/pkg/types"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show page count and page sizes of a PDF",
	Long: `Info prints the page count and media box of every page as read by an
independent PDF reader. With --shifts it also lists the horizontal
translation bindshift applied to each page.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().Bool("shifts", false, "list the translation applied to each page")
	infoCmd.Flags().String("password", "", "password of an encrypted file (with --shifts)")

	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	info, err := document.Inspect(data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d pages (read by %s)\n", args[0], info.Pages, info.Backend)
	for i, size := range info.Sizes {
		fmt.Fprintf(out, "  page %d: %g x %g pt (%.1f x %.1f cm)\n", i+1,
			size.Width, size.Height,
			size.Width/types.PointsPerCM, size.Height/types.PointsPerCM)
	}

	if shifts, _ := cmd.Flags().GetBool("shifts"); shifts {
		password, _ := cmd.Flags().GetString("password")
		return printShifts(out, data, password)
	}
	return nil
}

// printShifts lists the translation of every page, or "none" for pages
// bindshift did not move.
func printShifts(w io.Writer, data []byte, password string) error {
	doc, err := document.Load(bytes.NewReader(data), password)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "shifts:")
	for p := 1; p <= doc.PageCount(); p++ {
		tx, _, ok, err := doc.Translation(p)
		if err != nil {
			return fmt.Errorf("page %d: %w", p, err)
		}
		if !ok {
			fmt.Fprintf(w, "  page %d: none\n", p)
			continue
		}
		fmt.Fprintf(w, "  page %d: %+.2f pt (%+.2f cm)\n", p, tx, tx/types.PointsPerCM)
	}
	return nil
}
