// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bindshift/internal/history"
	"github.com/pdiddy/bindshift/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recent shift runs",
	Long: `History lists the most recent runs recorded by shift, batch, ui and serve,
newest first. Given a run ID it prints that run only.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	if !cfg.History.Enabled {
		return fmt.Errorf("history is disabled (history.enabled: false)")
	}

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	var runs []types.Run
	if len(args) == 1 {
		run, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		runs = []types.Run{run}
	} else {
		limit, _ := cmd.Flags().GetInt("limit")
		runs, err = store.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}
	printRuns(out, runs)
	return nil
}

var (
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
)

func printRuns(w io.Writer, runs []types.Run) {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		end := "last"
		if r.Spec.EndPage != nil {
			end = strconv.Itoa(*r.Spec.EndPage)
		}
		status := string(r.Status)
		if r.Message != "" {
			status += ": " + r.Message
		}
		rows = append(rows, []string{
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Source,
			r.Input,
			r.Output,
			fmt.Sprintf("%g cm, %d-%s", r.Spec.ShiftCM, r.Spec.StartPage, end),
			fmt.Sprintf("%d/%d", r.Shifted, r.Pages),
			r.Duration.Round(time.Millisecond).String(),
			status,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Started", "Source", "Input", "Output", "Shift", "Pages", "Took", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 7 && row >= 0 && row < len(runs) {
				if runs[row].Status == types.RunFailed {
					return lipgloss.NewStyle().Foreground(colorRed)
				}
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle()
		})
	fmt.Fprintln(w, t.Render())
}
