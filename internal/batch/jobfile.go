// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bindshift/internal/form"
	"github.com/pdiddy/bindshift/pkg/types"
)

// Defaults overrides the configured parameters for every job in a file.
type Defaults struct {
	ShiftCM    *float64 `yaml:"shift_cm,omitempty" toml:"shift_cm"`
	StartPage  *int     `yaml:"start_page,omitempty" toml:"start_page"`
	FirstRight *bool    `yaml:"first_right,omitempty" toml:"first_right"`
}

// Job is one entry of a job file. Unset parameters fall back to the file's
// defaults, then to the configured ones.
type Job struct {
	Input      string   `yaml:"input" toml:"input"`
	Output     string   `yaml:"output,omitempty" toml:"output"`
	ShiftCM    *float64 `yaml:"shift_cm,omitempty" toml:"shift_cm"`
	StartPage  *int     `yaml:"start_page,omitempty" toml:"start_page"`
	EndPage    *int     `yaml:"end_page,omitempty" toml:"end_page"`
	FirstRight *bool    `yaml:"first_right,omitempty" toml:"first_right"`
	Password   string   `yaml:"password,omitempty" toml:"password"`
}

// JobFile is the on-disk list of shift jobs.
//
//	defaults:
//	  shift_cm: 0.8
//	jobs:
//	  - input: thesis.pdf
//	    start_page: 3
//	  - input: appendix.pdf
//	    output: appendix-bound.pdf
//	    first_right: false
type JobFile struct {
	Defaults Defaults `yaml:"defaults" toml:"defaults"`
	Jobs     []Job    `yaml:"jobs" toml:"jobs"`
}

// ReadJobFile loads a YAML (.yaml, .yml) or TOML (.toml) job file. Relative
// input and output paths are resolved against the file's directory, and
// missing outputs default to "<input>(binding-layout).pdf" next to the input.
func ReadJobFile(fs afero.Fs, path string) (*JobFile, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}

	var jf JobFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &jf); err != nil {
			return nil, fmt.Errorf("parsing job file: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &jf); err != nil {
			return nil, fmt.Errorf("parsing job file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported job file extension %q (want .yaml, .yml or .toml)", ext)
	}

	base := filepath.Dir(path)
	for i := range jf.Jobs {
		j := &jf.Jobs[i]
		if strings.TrimSpace(j.Input) == "" {
			return nil, fmt.Errorf("job %d: input is required", i+1)
		}
		j.Input = resolve(base, j.Input)
		if j.Output == "" {
			j.Output = filepath.Join(filepath.Dir(j.Input), form.DefaultOutput(j.Input))
		} else {
			j.Output = resolve(base, j.Output)
		}
	}
	return &jf, nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Spec merges the job's parameters over the file defaults and cfg.
func (j Job) Spec(cfg types.ShiftSpec, d Defaults) types.ShiftSpec {
	spec := cfg
	if d.ShiftCM != nil {
		spec.ShiftCM = *d.ShiftCM
	}
	if d.StartPage != nil {
		spec.StartPage = *d.StartPage
	}
	if d.FirstRight != nil {
		spec.FirstRight = *d.FirstRight
	}

	if j.ShiftCM != nil {
		spec.ShiftCM = *j.ShiftCM
	}
	if j.StartPage != nil {
		spec.StartPage = *j.StartPage
	}
	if j.EndPage != nil {
		end := *j.EndPage
		spec.EndPage = &end
	}
	if j.FirstRight != nil {
		spec.FirstRight = *j.FirstRight
	}
	if j.Password != "" {
		spec.Password = j.Password
	}
	return spec
}
