// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package form turns the free-text fields of the shift form into a typed
// ShiftSpec and holds the status lines every front end shows.
package form

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/pdiddy/bindshift/pkg/types"
)

// Status lines shown to the user.
const (
	StatusProcessing = "processing"
	StatusDone       = "done"
)

var (
	// ErrInvalidFile is returned when no input is selected or it is not an
	// existing file.
	ErrInvalidFile = errors.New("please select a valid file")

	// ErrInvalidParams is returned when a numeric field does not parse.
	ErrInvalidParams = errors.New("please enter valid parameters")
)

// StatusFailed formats the terminal status of a failed run.
func StatusFailed(err error) string {
	return "failed: " + err.Error()
}

// outputSuffix is appended to the input's base name for the default output.
const outputSuffix = "(binding-layout).pdf"

// Fields is the raw state of the form.
type Fields struct {
	Input  string
	Output string

	// Shift is the distance in centimeters, parsed as a float.
	Shift string

	// Start is the first page, parsed as an integer.
	Start string

	// End is the last page; blank means the last page of the document.
	End string

	FirstRight bool
}

// NewFields returns the form's initial state.
func NewFields() Fields {
	return Fields{
		Output:     "output.pdf",
		Shift:      "1",
		Start:      "1",
		FirstRight: true,
	}
}

// SelectInput records a newly chosen input file and resets the output name
// to the default derived from it.
func (f *Fields) SelectInput(path string) {
	f.Input = path
	f.Output = DefaultOutput(path)
}

// DefaultOutput returns "<input-basename>(binding-layout).pdf".
func DefaultOutput(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + outputSuffix
}

// Validate checks the input selection against fs and parses the numeric
// fields. The input is checked first, so a missing file wins over a bad
// number.
func (f Fields) Validate(fs afero.Fs) (types.ShiftSpec, error) {
	if strings.TrimSpace(f.Input) == "" {
		return types.ShiftSpec{}, ErrInvalidFile
	}
	info, err := fs.Stat(f.Input)
	if err != nil || info.IsDir() {
		return types.ShiftSpec{}, ErrInvalidFile
	}
	return f.Spec()
}

// Spec parses the numeric fields without looking at the input selection.
func (f Fields) Spec() (types.ShiftSpec, error) {
	shift, err := strconv.ParseFloat(strings.TrimSpace(f.Shift), 64)
	if err != nil {
		return types.ShiftSpec{}, fmt.Errorf("%w: shift %q", ErrInvalidParams, f.Shift)
	}
	start, err := strconv.Atoi(strings.TrimSpace(f.Start))
	if err != nil {
		return types.ShiftSpec{}, fmt.Errorf("%w: start page %q", ErrInvalidParams, f.Start)
	}

	spec := types.ShiftSpec{
		ShiftCM:    shift,
		StartPage:  start,
		FirstRight: f.FirstRight,
	}
	if end := strings.TrimSpace(f.End); end != "" {
		n, err := strconv.Atoi(end)
		if err != nil {
			return types.ShiftSpec{}, fmt.Errorf("%w: end page %q", ErrInvalidParams, f.End)
		}
		spec.EndPage = &n
	}
	return spec, nil
}

// Message returns the line to show for err: the fixed text for the two
// validation errors, "failed: <message>" otherwise.
func Message(err error) string {
	switch {
	case err == nil:
		return StatusDone
	case errors.Is(err, ErrInvalidFile):
		return ErrInvalidFile.Error()
	case errors.Is(err, ErrInvalidParams):
		return ErrInvalidParams.Error()
	}
	return StatusFailed(err)
}
