// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bindshift/pkg/types"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{Enabled: true, Dir: filepath.Join(t.TempDir(), "hist")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAssignsIDAndTime(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	run, err := s.Record(ctx, types.Run{
		Source: "cli",
		Input:  "book.pdf",
		Output: "book(binding-layout).pdf",
		Spec:   types.DefaultShiftSpec(),
		Status: types.RunDone,
	})
	require.NoError(t, err)

	_, err = uuid.Parse(run.ID)
	assert.NoError(t, err, "ID should be a UUID")
	assert.False(t, run.StartedAt.IsZero())
}

func TestRecordAndGet(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 10, 30, 0, 123456789, time.UTC)

	want := types.Run{
		ID:        "run-1",
		Source:    "batch",
		StartedAt: started,
		Duration:  1500 * time.Millisecond,
		Input:     "in.pdf",
		Output:    "out.pdf",
		Spec:      types.ShiftSpec{ShiftCM: 0.8, StartPage: 3, EndPage: types.IntPtr(9), FirstRight: false},
		Pages:     12,
		Shifted:   7,
		Status:    types.RunFailed,
		Message:   "write error: disk full",
	}
	_, err := s.Record(ctx, want)
	require.NoError(t, err)

	got, err := s.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.True(t, want.StartedAt.Equal(got.StartedAt))
	got.StartedAt = want.StartedAt
	assert.Equal(t, want, got)
}

func TestGetUnknown(t *testing.T) {
	s := newStore(t)
	_, err := s.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRecentNewestFirst(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, off := range []time.Duration{0, 100 * time.Millisecond, 120 * time.Millisecond, time.Hour} {
		_, err := s.Record(ctx, types.Run{
			ID:        string(rune('a' + i)),
			Source:    "cli",
			StartedAt: base.Add(off),
			Spec:      types.DefaultShiftSpec(),
			Status:    types.RunDone,
		})
		require.NoError(t, err)
	}

	runs, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"d", "c", "b"}, []string{runs[0].ID, runs[1].ID, runs[2].ID})
	assert.Nil(t, runs[0].Spec.EndPage)

	all, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestStoreReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := types.HistoryConfig{Enabled: true, Dir: dir}

	s, err := NewStore(cfg)
	require.NoError(t, err)
	_, err = s.Record(context.Background(), types.Run{ID: "keep", Source: "ui", Status: types.RunDone})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewStore(cfg)
	require.NoError(t, err)
	defer s.Close()
	run, err := s.Get(context.Background(), "keep")
	require.NoError(t, err)
	assert.Equal(t, "ui", run.Source)
}
