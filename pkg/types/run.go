// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunStatus is the terminal state of a shift invocation.
type RunStatus string

const (
	RunDone   RunStatus = "done"
	RunFailed RunStatus = "failed"
)

// Run is one recorded shift invocation, whichever host triggered it.
type Run struct {
	// ID is a random UUID assigned when the run is recorded.
	ID string `json:"id" yaml:"id"`

	// Source identifies the host that triggered the run (cli, batch, ui, http).
	Source string `json:"source" yaml:"source"`

	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`

	Input  string    `json:"input" yaml:"input"`
	Output string    `json:"output" yaml:"output"`
	Spec   ShiftSpec `json:"spec" yaml:"spec"`

	// Pages is the page count of the source document; zero when it could
	// not be read.
	Pages int `json:"pages" yaml:"pages"`

	// Shifted is the number of pages that received a translation.
	Shifted int `json:"shifted" yaml:"shifted"`

	Status  RunStatus `json:"status" yaml:"status"`
	Message string    `json:"message,omitempty" yaml:"message,omitempty"`
}
