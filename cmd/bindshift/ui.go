// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bindshift/internal/batch"
	"github.com/pdiddy/bindshift/internal/logging"
	"github.com/pdiddy/bindshift/internal/shift"
	"github.com/pdiddy/bindshift/internal/tui"
	"github.com/pdiddy/bindshift/pkg/types"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive shift form",
	Args:  cobra.NoArgs,
	RunE:  runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())

	pw, err := loadPasswords(cmd.Context(), cfg.Secrets)
	if err != nil {
		return err
	}
	rec, closeHistory := openHistory(cmd.Context(), cfg.History)
	defer closeHistory()

	// Log lines would tear the alternate screen; the status line reports
	// the outcome instead.
	ctx := logging.WithLogger(cmd.Context(), logging.New(io.Discard, logging.ParseLevel("error")))

	runner := batch.NewRunner(shift.NewOSTransformer(), rec, "ui")
	run := withPasswords(pw, func(ctx context.Context, input, output string, spec types.ShiftSpec) error {
		_, err := runner.Run(ctx, input, output, spec)
		return err
	})

	p := tea.NewProgram(tui.New(ctx, afero.NewOsFs(), run), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
