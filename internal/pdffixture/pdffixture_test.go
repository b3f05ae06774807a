// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdffixture

import (
	"bytes"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildXrefOffsets(t *testing.T) {
	data := Build(3)

	m := regexp.MustCompile(`startxref\n(\d+)\n`).FindSubmatch(data)
	require.NotNil(t, m, "startxref missing")
	off, err := strconv.Atoi(string(m[1]))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data[off:], []byte("xref\n0 10\n")), "startxref must point at the xref table")

	entries := regexp.MustCompile(`(\d{10}) 00000 n \n`).FindAllSubmatch(data[off:], -1)
	require.Len(t, entries, 9)
	for i, e := range entries {
		pos, err := strconv.Atoi(string(e[1]))
		require.NoError(t, err)
		want := strconv.Itoa(i+1) + " 0 obj\n"
		assert.Equal(t, want, string(data[pos:pos+len(want)]), "object %d offset", i+1)
	}
}

func TestBuildPageCount(t *testing.T) {
	tests := []struct {
		pages int
		want  string
	}{
		{pages: 4, want: "/Count 4"},
		{pages: 1, want: "/Count 1"},
		{pages: 0, want: "/Count 1"},
	}
	for _, tt := range tests {
		data := Build(tt.pages)
		assert.Contains(t, string(data), tt.want)
	}
}

func TestContent(t *testing.T) {
	assert.Equal(t, "BT /F1 24 Tf 72 720 Td (Page 2) Tj ET", Content(2))
}
