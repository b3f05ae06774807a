// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs shift jobs, one at a time, on behalf of every front end
// and records each run in the history.
package batch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/bindshift/internal/history"
	"github.com/pdiddy/bindshift/internal/logging"
	"github.com/pdiddy/bindshift/internal/shift"
	"github.com/pdiddy/bindshift/pkg/types"
)

// Summary holds the outcome of a batch run.
type Summary struct {
	Shifted int
	Failed  int
}

// Total returns the number of jobs processed.
func (s Summary) Total() int {
	return s.Shifted + s.Failed
}

// HasFailures reports whether any job failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Runner executes shifts through a Transformer and records them.
type Runner struct {
	transformer *shift.Transformer
	recorder    history.Recorder
	source      string
}

// NewRunner returns a Runner. rec may be nil to disable recording; source
// names the front end in recorded runs (cli, batch, ui).
func NewRunner(t *shift.Transformer, rec history.Recorder, source string) *Runner {
	return &Runner{transformer: t, recorder: rec, source: source}
}

// Run shifts input into output and records the outcome. Recording failures
// are logged and do not change the returned error.
func (r *Runner) Run(ctx context.Context, input, output string, spec types.ShiftSpec) (shift.Result, error) {
	started := time.Now()
	res, err := r.transformer.ShiftFile(ctx, input, output, spec)

	run := types.Run{
		Source:    r.source,
		StartedAt: started,
		Duration:  time.Since(started),
		Input:     input,
		Output:    output,
		Spec:      spec,
		Pages:     res.Pages,
		Shifted:   res.Shifted(),
		Status:    types.RunDone,
	}
	if err != nil {
		run.Status = types.RunFailed
		run.Message = err.Error()
	}
	r.record(ctx, run)

	return res, err
}

func (r *Runner) record(ctx context.Context, run types.Run) {
	if r.recorder == nil {
		return
	}
	run.Spec.Password = ""
	if _, err := r.recorder.Record(ctx, run); err != nil {
		logging.FromContext(ctx).Warn("could not record run", "err", err)
	}
}

// RunJobs processes jobs in order, printing one status line per job to w
// followed by a summary line.
func (r *Runner) RunJobs(ctx context.Context, jf *JobFile, cfg types.ShiftSpec, w io.Writer) Summary {
	var summary Summary
	for _, job := range jf.Jobs {
		if ctx.Err() != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", job.Input, ctx.Err())
			summary.Failed++
			continue
		}

		res, err := r.Run(ctx, job.Input, job.Output, job.Spec(cfg, jf.Defaults))
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", job.Input, err)
			summary.Failed++
			continue
		}
		fmt.Fprintf(w, "shifted: %s -> %s (%d of %d pages)\n", job.Input, job.Output, res.Shifted(), res.Pages)
		summary.Shifted++
	}

	fmt.Fprintf(w, "\nBatch summary: %d shifted, %d failed (total: %d)\n",
		summary.Shifted, summary.Failed, summary.Total())
	return summary
}
