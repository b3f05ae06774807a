package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectStats(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"go.mod":                      "module x\n",
		"a/a.go":                      "package a\n\nfunc A() {}\n",
		"a/a_test.go":                 "package a\n\n\nimport \"testing\"\n",
		"b/b.go":                      "package b\n",
		"README.md":                   "one two  three\nfour\n",
		"_examples/skip/c.go":         "package c\nvar x = 1\n",
		".hidden/d.md":                "ignored words here",
		filepath.Join(binDir, "x.md"): "ignored",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	st, err := collectStats(root)
	require.NoError(t, err)
	assert.Equal(t, 3, st.prodLines)
	assert.Equal(t, 2, st.testLines)
	assert.Equal(t, 4, st.docWords)
	assert.Len(t, st.packages, 2)
}

func TestSkipDir(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{".", false},
		{"internal", false},
		{".git", true},
		{"_examples", true},
		{"bin", true},
		{"testdata", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, skipDir(tt.path), tt.path)
	}
}
