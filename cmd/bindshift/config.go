// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/pdiddy/bindshift/internal/history"
	"github.com/pdiddy/bindshift/internal/logging"
	"github.com/pdiddy/bindshift/internal/secrets"
	"github.com/pdiddy/bindshift/internal/tui"
	"github.com/pdiddy/bindshift/pkg/types"
)

// envKeyReplacer maps shift.shift_cm to BINDSHIFT_SHIFT_SHIFT_CM.
var envKeyReplacer = strings.NewReplacer(".", "_")

// loadConfig reads the typed configuration out of v.
func loadConfig(v *viper.Viper) types.Config {
	return types.Config{
		Shift: types.ShiftConfig{
			ShiftCM:    v.GetFloat64("shift.shift_cm"),
			StartPage:  v.GetInt("shift.start_page"),
			FirstRight: v.GetBool("shift.first_right"),
		},
		History: types.HistoryConfig{
			Enabled: v.GetBool("history.enabled"),
			Dir:     v.GetString("history.dir"),
		},
		Server: types.ServerConfig{
			Addr:           v.GetString("server.addr"),
			MaxUploadBytes: v.GetInt64("server.max_upload_bytes"),
			ReadTimeout:    v.GetDuration("server.read_timeout"),
			WriteTimeout:   v.GetDuration("server.write_timeout"),
		},
		Secrets: types.SecretsConfig{
			Dir: v.GetString("secrets.dir"),
		},
		Log: types.LogConfig{
			Level: v.GetString("log.level"),
		},
	}
}

// loadPasswords reads the password files for encrypted inputs and logs
// which ones were found.
func loadPasswords(ctx context.Context, cfg types.SecretsConfig) (secrets.Passwords, error) {
	pw, err := secrets.Load(ctx, afero.NewOsFs(), cfg.Dir)
	if err != nil {
		return nil, err
	}
	if len(pw) > 0 {
		names := pw.Names()
		sort.Strings(names)
		logging.FromContext(ctx).Debug("loaded passwords", "files", names)
	}
	return pw, nil
}

// openHistory opens the history store when recording is enabled. The
// recorder is nil when recording is off or the store cannot be opened; runs
// go ahead without history in both cases. closeFn is always safe to call.
func openHistory(ctx context.Context, cfg types.HistoryConfig) (rec history.Recorder, closeFn func()) {
	if !cfg.Enabled {
		return nil, func() {}
	}
	store, err := history.NewStore(cfg)
	if err != nil {
		logging.FromContext(ctx).Warn("history disabled", "err", err)
		return nil, func() {}
	}
	return store, func() { store.Close() }
}

// withPasswords fills in the password of inputs that have a password file
// when the caller left it unset.
func withPasswords(pw secrets.Passwords, run tui.RunFunc) tui.RunFunc {
	return func(ctx context.Context, input, output string, spec types.ShiftSpec) error {
		if spec.Password == "" {
			spec.Password = pw.For(input)
		}
		return run(ctx, input, output, spec)
	}
}
