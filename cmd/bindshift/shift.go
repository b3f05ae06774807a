// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bindshift/internal/batch"
	"github.com/pdiddy/bindshift/internal/form"
	"github.com/pdiddy/bindshift/internal/shift"
)

// errReported marks a failure whose status line has already been printed.
var errReported = errors.New("failed")

var shiftCmd = &cobra.Command{
	Use:   "shift <input> [output]",
	Short: "Shift alternating pages of one PDF",
	Long: `Shift writes a copy of input in which every page of the chosen range is moved
horizontally by --shift-cm centimeters. The first page of the range moves
right when --first-right is set, and the direction alternates from there.

The output defaults to "<input name>(binding-layout).pdf" in the current
directory. Unset flags take their values from the shift section of the
config file. The password of an encrypted input is read from --password or
from the file named after the input in the secrets directory (.secrets/).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runShift,
}

func init() {
	shiftCmd.Flags().String("shift-cm", "", "distance in centimeters (default from config, 1)")
	shiftCmd.Flags().String("start", "", "first page to move, 1-based (default from config, 1)")
	shiftCmd.Flags().String("end", "", "last page to move (default: last page)")
	shiftCmd.Flags().Bool("first-right", true, "move the first page of the range to the right")
	shiftCmd.Flags().String("password", "", "password of an encrypted input (default from the secrets directory)")

	rootCmd.AddCommand(shiftCmd)
}

func runShift(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())

	fields, err := shiftFields(cmd, args, cfg.Shift.ShiftCM, cfg.Shift.StartPage, cfg.Shift.FirstRight)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	spec, err := fields.Validate(afero.NewOsFs())
	if err != nil {
		fmt.Fprintln(out, form.Message(err))
		return errReported
	}
	spec.Password, _ = cmd.Flags().GetString("password")
	if spec.Password == "" {
		pw, err := loadPasswords(cmd.Context(), cfg.Secrets)
		if err != nil {
			return err
		}
		spec.Password = pw.For(fields.Input)
	}

	rec, closeHistory := openHistory(cmd.Context(), cfg.History)
	defer closeHistory()

	fmt.Fprintln(out, form.StatusProcessing)
	runner := batch.NewRunner(shift.NewOSTransformer(), rec, "cli")
	res, err := runner.Run(cmd.Context(), fields.Input, fields.Output, spec)
	fmt.Fprintln(out, form.Message(err))
	if err != nil {
		return errReported
	}
	fmt.Fprintf(out, "%s: %d of %d pages shifted\n", fields.Output, res.Shifted(), res.Pages)
	return nil
}

// shiftFields collects the arguments and flags into form fields, filling
// unset flags from the configured defaults.
func shiftFields(cmd *cobra.Command, args []string, shiftCM float64, start int, firstRight bool) (form.Fields, error) {
	fields := form.NewFields()
	fields.SelectInput(args[0])
	if len(args) == 2 {
		fields.Output = args[1]
	}

	flags := cmd.Flags()
	fields.Shift = strconv.FormatFloat(shiftCM, 'f', -1, 64)
	if flags.Changed("shift-cm") {
		fields.Shift, _ = flags.GetString("shift-cm")
	}
	fields.Start = strconv.Itoa(start)
	if flags.Changed("start") {
		fields.Start, _ = flags.GetString("start")
	}
	fields.End, _ = flags.GetString("end")

	fields.FirstRight = firstRight
	if flags.Changed("first-right") {
		v, err := flags.GetBool("first-right")
		if err != nil {
			return form.Fields{}, err
		}
		fields.FirstRight = v
	}
	return fields, nil
}
