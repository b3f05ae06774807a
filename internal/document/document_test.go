// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bindshift/internal/pdffixture"
)

func loadFixture(t *testing.T, pages int) *Document {
	t.Helper()
	doc, err := Load(bytes.NewReader(pdffixture.Build(pages)), "")
	require.NoError(t, err)
	return doc
}

// roundTrip writes doc and parses the result again.
func roundTrip(t *testing.T, doc *Document) *Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))
	out, err := Load(bytes.NewReader(buf.Bytes()), "")
	require.NoError(t, err)
	return out
}

func TestLoad(t *testing.T) {
	doc := loadFixture(t, 4)
	assert.Equal(t, 4, doc.PageCount())

	w, h, err := doc.PageSize(2)
	require.NoError(t, err)
	assert.InDelta(t, float64(pdffixture.PageWidth), w, 0.001)
	assert.InDelta(t, float64(pdffixture.PageHeight), h, 0.001)
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("not a pdf at all")), "")
	require.Error(t, err)
}

func TestTranslateRoundTrip(t *testing.T) {
	doc := loadFixture(t, 3)
	require.NoError(t, doc.Translate(1, 28.35, 0))
	require.NoError(t, doc.Translate(3, -28.35, 0))

	out := roundTrip(t, doc)
	require.Equal(t, 3, out.PageCount())

	tests := []struct {
		page   int
		wantOK bool
		wantTX float64
	}{
		{page: 1, wantOK: true, wantTX: 28.35},
		{page: 2, wantOK: false},
		{page: 3, wantOK: true, wantTX: -28.35},
	}
	for _, tt := range tests {
		tx, ty, ok, err := out.Translation(tt.page)
		require.NoError(t, err)
		assert.Equal(t, tt.wantOK, ok, "page %d", tt.page)
		if tt.wantOK {
			assert.InDelta(t, tt.wantTX, tx, 1e-9, "page %d", tt.page)
			assert.Zero(t, ty, "page %d", tt.page)
		}
	}
}

func TestTranslateKeepsOriginalContent(t *testing.T) {
	doc := loadFixture(t, 2)
	require.NoError(t, doc.Translate(2, 10, 0))
	out := roundTrip(t, doc)

	untouched, err := out.Content(1)
	require.NoError(t, err)
	assert.Equal(t, pdffixture.Content(1), string(bytes.TrimSpace(untouched)))

	moved, err := out.Content(2)
	require.NoError(t, err)
	assert.Contains(t, string(moved), "q 1 0 0 1 10 0 cm")
	assert.Contains(t, string(moved), pdffixture.Content(2))
	assert.True(t, bytes.HasSuffix(bytes.TrimSpace(moved), []byte("Q")), "content must end by restoring the graphics state")
}

func TestPageRange(t *testing.T) {
	doc := loadFixture(t, 2)

	for _, n := range []int{0, 3, -1} {
		assert.Error(t, doc.Translate(n, 1, 0), "page %d", n)
		_, _, _, err := doc.Translation(n)
		assert.Error(t, err, "page %d", n)
		_, _, err = doc.PageSize(n)
		assert.Error(t, err, "page %d", n)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 28.35, want: "28.35"},
		{in: -28.35, want: "-28.35"},
		{in: 0, want: "0"},
		{in: -0.00001, want: "0"},
		{in: 0.1 * 28.35, want: "2.835"},
		{in: 70.875, want: "70.875"},
		{in: 100, want: "100"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.in), "formatNumber(%v)", tt.in)
	}
}

func TestInspect(t *testing.T) {
	info, err := Inspect(pdffixture.Build(4))
	require.NoError(t, err)
	assert.Equal(t, BackendLedongthuc, info.Backend)
	assert.Equal(t, 4, info.Pages)
	require.Len(t, info.Sizes, 4)
	for _, s := range info.Sizes {
		assert.InDelta(t, float64(pdffixture.PageWidth), s.Width, 0.001)
		assert.InDelta(t, float64(pdffixture.PageHeight), s.Height, 0.001)
	}
}

func TestInspectPDFCPUBackend(t *testing.T) {
	info, err := inspectPDFCPU(pdffixture.Build(2))
	require.NoError(t, err)
	assert.Equal(t, BackendPDFCPU, info.Backend)
	assert.Equal(t, 2, info.Pages)
	assert.Len(t, info.Sizes, 2)
}

func TestInspectGarbage(t *testing.T) {
	_, err := Inspect([]byte("%PDF-1.4\nnothing here"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), BackendLedongthuc)
	assert.Contains(t, err.Error(), BackendPDFCPU)
}
