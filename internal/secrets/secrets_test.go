// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bindshift/internal/logging"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, fs afero.Fs)
		want  Passwords
	}{
		{
			name: "reads password files and trims whitespace",
			setup: func(t *testing.T, fs afero.Fs) {
				writeFile(t, fs, "thesis.pdf", "  s3cret  \n")
				writeFile(t, fs, "default", "fallback")
			},
			want: Passwords{
				"thesis.pdf": "s3cret",
				"default":    "fallback",
			},
		},
		{
			name:  "returns empty map for nonexistent directory",
			setup: func(t *testing.T, fs afero.Fs) {},
			want:  Passwords{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T, fs afero.Fs) {
				writeFile(t, fs, "a.pdf", "pw")
				writeFile(t, fs, "b.pdf", "")
				writeFile(t, fs, "c.pdf", "   \n\t  ")
			},
			want: Passwords{"a.pdf": "pw"},
		},
		{
			name: "skips dotfiles and subdirectories",
			setup: func(t *testing.T, fs afero.Fs) {
				writeFile(t, fs, ".gitkeep", "x")
				writeFile(t, fs, "a.pdf", "pw")
				require.NoError(t, fs.MkdirAll(DefaultDir+"/nested", 0o755))
			},
			want: Passwords{"a.pdf": "pw"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			tt.setup(t, fs)

			got, err := Load(context.Background(), fs, DefaultDir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// unreadableFs fails to open one file name.
type unreadableFs struct {
	afero.Fs
	name string
}

func (u unreadableFs) Open(name string) (afero.File, error) {
	if filepath.Base(name) == u.name {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return u.Fs.Open(name)
}

func TestLoadSkipsUnreadableFiles(t *testing.T) {
	mem := afero.NewMemMapFs()
	writeFile(t, mem, "a.pdf", "pw")
	writeFile(t, mem, "locked.pdf", "hidden")

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.New(&buf, logging.ParseLevel("warn")))

	got, err := Load(ctx, unreadableFs{Fs: mem, name: "locked.pdf"}, DefaultDir)
	require.NoError(t, err)
	assert.Equal(t, Passwords{"a.pdf": "pw"}, got)
	assert.Contains(t, buf.String(), "could not read password file")
	assert.Contains(t, buf.String(), "locked.pdf")
}

func TestFor(t *testing.T) {
	p := Passwords{"thesis.pdf": "s3cret", "default": "fallback"}
	assert.Equal(t, "s3cret", p.For("/home/me/docs/thesis.pdf"))
	assert.Equal(t, "fallback", p.For("other.pdf"))
	assert.Empty(t, Passwords{"thesis.pdf": "s3cret"}.For("other.pdf"))
}

func TestNames(t *testing.T) {
	p := Passwords{"a.pdf": "1", "b.pdf": "2"}
	assert.ElementsMatch(t, []string{"a.pdf", "b.pdf"}, p.Names())
}

func writeFile(t *testing.T, fs afero.Fs, name, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, DefaultDir+"/"+name, []byte(content), 0o600))
}
