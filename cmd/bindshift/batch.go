// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bindshift/internal/batch"
	"github.com/pdiddy/bindshift/internal/shift"
)

var batchCmd = &cobra.Command{
	Use:   "batch <jobfile>",
	Short: "Shift every PDF listed in a YAML or TOML job file",
	Long: `Batch reads a job file (.yaml, .yml or .toml) listing input files with
optional output names and shift settings, and processes the jobs in order.
A failed job does not stop the batch. The command exits non-zero when any
job failed.

Example job file:

  defaults:
    shift_cm: 1.2
  jobs:
    - input: thesis.pdf
    - input: appendix.pdf
      output: appendix-bound.pdf
      start_page: 3
      first_right: false`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())

	jf, err := batch.ReadJobFile(afero.NewOsFs(), args[0])
	if err != nil {
		return err
	}

	pw, err := loadPasswords(cmd.Context(), cfg.Secrets)
	if err != nil {
		return err
	}
	for i := range jf.Jobs {
		if jf.Jobs[i].Password == "" {
			jf.Jobs[i].Password = pw.For(jf.Jobs[i].Input)
		}
	}

	rec, closeHistory := openHistory(cmd.Context(), cfg.History)
	defer closeHistory()

	runner := batch.NewRunner(shift.NewOSTransformer(), rec, "batch")
	summary := runner.RunJobs(cmd.Context(), jf, cfg.Shift.Spec(), cmd.OutOrStdout())
	if summary.HasFailures() {
		return errReported
	}
	return nil
}
