// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ShiftConfig holds the defaults applied to shift runs when a flag or job
// entry leaves a value unset.
type ShiftConfig struct {
	// ShiftCM is the default distance in centimeters (default 1).
	ShiftCM float64 `json:"shift_cm" yaml:"shift_cm"`

	// StartPage is the default first translated page (default 1).
	StartPage int `json:"start_page" yaml:"start_page"`

	// FirstRight moves the first in-range page right (default true).
	FirstRight bool `json:"first_right" yaml:"first_right"`
}

// Spec returns the configured defaults as a ShiftSpec.
func (c ShiftConfig) Spec() ShiftSpec {
	return ShiftSpec{
		ShiftCM:    c.ShiftCM,
		StartPage:  c.StartPage,
		FirstRight: c.FirstRight,
	}
}

// HistoryConfig holds settings for the run history database.
type HistoryConfig struct {
	// Enabled turns recording on. Commands still work without history.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory holding history.db
	// (default ~/.local/share/bindshift).
	Dir string `json:"dir" yaml:"dir"`
}

// ServerConfig holds settings for the HTTP front end.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// MaxUploadBytes caps the request body (default 64 MiB).
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`

	// ReadTimeout bounds reading a full request (default 60s).
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout bounds writing a response (default 60s).
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`
}

// SecretsConfig locates password files for encrypted inputs.
type SecretsConfig struct {
	// Dir holds one file per PDF base name (default .secrets).
	Dir string `json:"dir" yaml:"dir"`
}

// Config groups all settings read from bindshift.yaml and the environment.
type Config struct {
	Shift   ShiftConfig   `json:"shift" yaml:"shift"`
	History HistoryConfig `json:"history" yaml:"history"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	Secrets SecretsConfig `json:"secrets" yaml:"secrets"`
	Log     LogConfig     `json:"log" yaml:"log"`
}
