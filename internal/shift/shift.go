// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package shift moves alternating pages of a PDF left and right by a fixed
// distance to make room for a binding margin.
//
// Pages inside [StartPage, EndPage] are translated horizontally; the first
// in-range page goes toward the side chosen by FirstRight and every following
// page flips side. Pages outside the range are copied as they are. The whole
// output is assembled in memory before anything is written.
package shift

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/pdiddy/bindshift/internal/document"
	"github.com/pdiddy/bindshift/internal/logging"
	"github.com/pdiddy/bindshift/pkg/types"
)

var (
	// ErrRead marks failures to read or parse the source document.
	ErrRead = errors.New("read error")

	// ErrWrite marks failures to serialize or store the output document.
	ErrWrite = errors.New("write error")
)

// Result describes a completed shift.
type Result struct {
	// Pages is the page count of both source and output.
	Pages int `json:"pages" yaml:"pages"`

	// EndPage is the effective last page of the range after clamping.
	EndPage int `json:"end_page" yaml:"end_page"`

	// Shifts lists the translation applied to every in-range page in order.
	Shifts []types.PageShift `json:"shifts" yaml:"shifts"`
}

// Shifted returns the number of translated pages.
func (r Result) Shifted() int {
	return len(r.Shifts)
}

// Direction returns the side page p moves toward when the range starts at
// start. It depends only on the parity of p - start.
func Direction(p, start int, firstRight bool) types.Direction {
	if ((p-start)%2 == 0) == firstRight {
		return types.DirectionRight
	}
	return types.DirectionLeft
}

// Plan computes the translation of every page of a document with total pages.
// Pages outside the range get DirectionNone and a zero offset.
func Plan(total int, spec types.ShiftSpec) []types.PageShift {
	end := spec.EffectiveEnd(total)
	dist := spec.Points()

	plan := make([]types.PageShift, total)
	for i := range plan {
		p := i + 1
		plan[i] = types.PageShift{Page: p, Direction: types.DirectionNone}
		if p < spec.StartPage || p > end {
			continue
		}
		dir := Direction(p, spec.StartPage, spec.FirstRight)
		plan[i].Direction = dir
		plan[i].TX = dir.Sign() * dist
	}
	return plan
}

// Transform reads a document from src, translates the pages selected by spec
// and writes the complete result to dst.
func Transform(src io.ReadSeeker, dst io.Writer, spec types.ShiftSpec) (Result, error) {
	return transform(context.Background(), src, dst, spec)
}

func transform(ctx context.Context, src io.ReadSeeker, dst io.Writer, spec types.ShiftSpec) (Result, error) {
	logger := logging.FromContext(ctx)

	doc, err := document.Load(src, spec.Password)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrRead, err)
	}

	total := doc.PageCount()
	result := Result{
		Pages:   total,
		EndPage: spec.EffectiveEnd(total),
	}

	for _, ps := range Plan(total, spec) {
		if ps.Direction == types.DirectionNone {
			continue
		}
		logger.Debug("translating page", "page", ps.Page, "direction", ps.Direction, "tx", ps.TX)
		if err := doc.Translate(ps.Page, ps.TX, 0); err != nil {
			return Result{}, fmt.Errorf("transforming page %d: %w", ps.Page, err)
		}
		result.Shifts = append(result.Shifts, ps)
	}

	if err := doc.Write(dst); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return result, nil
}

// Transformer runs shifts between files of a filesystem.
type Transformer struct {
	fs afero.Fs
}

// NewTransformer returns a Transformer operating on fs.
func NewTransformer(fs afero.Fs) *Transformer {
	return &Transformer{fs: fs}
}

// NewOSTransformer returns a Transformer on the operating system filesystem.
func NewOSTransformer() *Transformer {
	return NewTransformer(afero.NewOsFs())
}

// ShiftFile shifts inputPath into outputPath. The output is written to a
// temporary file in the destination directory and renamed into place, so
// outputPath is either the complete document or left as it was.
func (t *Transformer) ShiftFile(ctx context.Context, inputPath, outputPath string, spec types.ShiftSpec) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	logger := logging.FromContext(ctx).With("input", inputPath)
	progress := logging.NewProgress(logger)

	data, err := afero.ReadFile(t.fs, inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrRead, err)
	}

	var out bytes.Buffer
	result, err := transform(logging.WithLogger(ctx, logger), bytes.NewReader(data), &out, spec)
	if err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := t.writeFile(outputPath, out.Bytes()); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	progress.Done(fmt.Sprintf("Shifted %d of %d pages", result.Shifted(), result.Pages), "output", outputPath)
	return result, nil
}

func (t *Transformer) writeFile(path string, data []byte) (err error) {
	f, err := afero.TempFile(t.fs, filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			t.fs.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := t.fs.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("setting mode of %s: %w", path, err)
	}
	if err := t.fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}
