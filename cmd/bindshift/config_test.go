// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bindshift/internal/secrets"
	"github.com/pdiddy/bindshift/pkg/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := loadConfig(v)
	assert.Equal(t, 1.0, cfg.Shift.ShiftCM)
	assert.Equal(t, 1, cfg.Shift.StartPage)
	assert.True(t, cfg.Shift.FirstRight)
	assert.True(t, cfg.History.Enabled)
	assert.NotEmpty(t, cfg.History.Dir)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, int64(64<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, ".secrets", cfg.Secrets.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigFile(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
shift:
  shift_cm: 1.5
  first_right: false
history:
  enabled: false
server:
  addr: 127.0.0.1:9000
  write_timeout: 5s
log:
  level: debug
`)))

	cfg := loadConfig(v)
	assert.Equal(t, 1.5, cfg.Shift.ShiftCM)
	assert.Equal(t, 1, cfg.Shift.StartPage)
	assert.False(t, cfg.Shift.FirstRight)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("BINDSHIFT_SHIFT_SHIFT_CM", "2.25")
	t.Setenv("BINDSHIFT_SHIFT_START_PAGE", "3")

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("BINDSHIFT")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	cfg := loadConfig(v)
	assert.Equal(t, 2.25, cfg.Shift.ShiftCM)
	assert.Equal(t, 3, cfg.Shift.StartPage)
}

func TestOpenHistoryDisabled(t *testing.T) {
	cfg := loadConfig(viper.New())
	rec, closeFn := openHistory(context.Background(), cfg.History)
	assert.Nil(t, rec)
	closeFn()
}

func TestOpenHistory(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("history.dir", t.TempDir())

	rec, closeFn := openHistory(context.Background(), loadConfig(v).History)
	defer closeFn()
	assert.NotNil(t, rec)
}

func TestOpenHistoryUnavailable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	v := viper.New()
	setDefaults(v)
	v.Set("history.dir", filepath.Join(blocker, "hist"))

	rec, closeFn := openHistory(context.Background(), loadConfig(v).History)
	assert.Nil(t, rec)
	closeFn()
}

func TestWithPasswords(t *testing.T) {
	pw := secrets.Passwords{"locked.pdf": "s3cret"}

	var got []string
	run := withPasswords(pw, func(_ context.Context, _, _ string, spec types.ShiftSpec) error {
		got = append(got, spec.Password)
		return nil
	})

	explicit := types.DefaultShiftSpec()
	explicit.Password = "typed"

	ctx := context.Background()
	require.NoError(t, run(ctx, "/docs/locked.pdf", "out.pdf", types.DefaultShiftSpec()))
	require.NoError(t, run(ctx, "/docs/open.pdf", "out.pdf", types.DefaultShiftSpec()))
	require.NoError(t, run(ctx, "/docs/locked.pdf", "out.pdf", explicit))
	assert.Equal(t, []string{"s3cret", "", "typed"}, got)
}
