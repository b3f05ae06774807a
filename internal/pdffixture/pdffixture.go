// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdffixture writes small, deterministic PDF documents. Every page
// carries the text "Page N" at a known position so translated output can be
// checked by reading text coordinates back.
package pdffixture

import (
	"bytes"
	"fmt"
)

const (
	// PageWidth and PageHeight are the A4 media box in points.
	PageWidth  = 595
	PageHeight = 842

	// TextX and TextY locate the "Page N" label on every page.
	TextX = 72
	TextY = 720
)

// Build returns an uncompressed PDF 1.4 document with the given number of
// pages. pages below 1 are treated as 1.
func Build(pages int) []byte {
	if pages < 1 {
		pages = 1
	}

	var buf bytes.Buffer
	offsets := []int{0} // object 0 is the free-list head

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets)-1, body)
	}

	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	kids := make([]byte, 0, pages*8)
	for i := 0; i < pages; i++ {
		kids = fmt.Appendf(kids, "%d 0 R ", pageObj(i))
	}

	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [ %s] /Count %d >>", kids, pages))
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i := 0; i < pages; i++ {
		obj(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			PageWidth, PageHeight, pageObj(i)+1))
		content := Content(i + 1)
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets[1:] {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets), xref)

	return buf.Bytes()
}

// Content returns the content stream of page n (1-based).
func Content(n int) string {
	return fmt.Sprintf("BT /F1 24 Tf %d %d Td (Page %d) Tj ET", TextX, TextY, n)
}

// pageObj returns the object number of the i-th page (0-based). Objects 1-3
// are the catalog, page tree and font; each page is followed by its content
// stream.
func pageObj(i int) int {
	return 4 + 2*i
}
