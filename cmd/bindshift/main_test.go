// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bindshift/internal/pdffixture"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestCommands(t *testing.T) {
	t.Setenv("BINDSHIFT_HISTORY_ENABLED", "false")
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	out := filepath.Join(dir, "out.pdf")

	got, err := execute(t, "sample", in, "--pages", "4")
	require.NoError(t, err)
	assert.Contains(t, got, "Wrote "+in+" (4 pages)")

	got, err = execute(t, "shift", in, out, "--shift-cm", "1")
	require.NoError(t, err)
	assert.Equal(t, "processing\ndone\n"+out+": 4 of 4 pages shifted\n", got)

	got, err = execute(t, "info", out, "--shifts")
	require.NoError(t, err)
	assert.Contains(t, got, "4 pages")
	assert.Contains(t, got, "page 1: 595 x 842 pt (21.0 x 29.7 cm)")
	assert.Contains(t, got, "page 1: +28.35 pt (+1.00 cm)")
	assert.Contains(t, got, "page 2: -28.35 pt (-1.00 cm)")

	got, err = execute(t, "shift", filepath.Join(dir, "missing.pdf"))
	assert.ErrorIs(t, err, errReported)
	assert.Equal(t, "please select a valid file\n", got)

	got, err = execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "bindshift dev\n", got)
}

func TestShiftRunsWithoutHistory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	t.Setenv("BINDSHIFT_HISTORY_ENABLED", "true")
	t.Setenv("BINDSHIFT_HISTORY_DIR", filepath.Join(blocker, "hist"))

	in := filepath.Join(dir, "in.pdf")
	out := filepath.Join(dir, "out.pdf")
	require.NoError(t, os.WriteFile(in, pdffixture.Build(2), 0o644))

	got, err := execute(t, "shift", in, out)
	require.NoError(t, err)
	assert.Contains(t, got, "done\n")
	assert.FileExists(t, out)
}
