// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document wraps a pdfcpu context with the few page operations a
// binding shift needs: counting pages, translating page content, reading a
// translation back, and serializing the result.
package document

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func init() {
	// pdfcpu otherwise installs a config dir under the user's home on first use.
	model.ConfigPath = "disable"
}

// Document is a parsed PDF held in memory.
type Document struct {
	ctx *model.Context
}

// Load parses and validates a PDF from rs. password is used for both the
// user and owner password when non-empty.
func Load(rs io.ReadSeeker, password string) (*Document, error) {
	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
		conf.OwnerPW = password
	}

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("reading PDF context: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	return &Document{ctx: ctx}, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// PageSize returns the media box width and height of page pageNr (1-based).
func (d *Document) PageSize(pageNr int) (width, height float64, err error) {
	if err := d.checkPage(pageNr); err != nil {
		return 0, 0, err
	}
	_, _, attrs, err := d.ctx.PageDict(pageNr, false)
	if err != nil {
		return 0, 0, fmt.Errorf("page %d: %w", pageNr, err)
	}
	if attrs == nil || attrs.MediaBox == nil {
		// US Letter, the PDF default.
		return 612, 792, nil
	}
	return attrs.MediaBox.Width(), attrs.MediaBox.Height(), nil
}

// Translate moves the rendered content of page pageNr by (tx, ty) points.
// The page's existing content streams are left untouched: the page's
// Contents becomes [prefix, original..., suffix], where the prefix saves the
// graphics state and concatenates the translation matrix and the suffix
// restores it.
func (d *Document) Translate(pageNr int, tx, ty float64) error {
	if err := d.checkPage(pageNr); err != nil {
		return err
	}
	pageDict, _, _, err := d.ctx.PageDict(pageNr, false)
	if err != nil {
		return fmt.Errorf("page %d: %w", pageNr, err)
	}

	refs, err := d.contentRefs(pageDict)
	if err != nil {
		return fmt.Errorf("page %d contents: %w", pageNr, err)
	}

	prefix, err := d.newContentStream(translationPrefix(tx, ty))
	if err != nil {
		return fmt.Errorf("page %d: %w", pageNr, err)
	}
	suffix, err := d.newContentStream("\nQ\n")
	if err != nil {
		return fmt.Errorf("page %d: %w", pageNr, err)
	}

	contents := make(types.Array, 0, len(refs)+2)
	contents = append(contents, *prefix)
	contents = append(contents, refs...)
	contents = append(contents, *suffix)
	pageDict.Update("Contents", contents)

	return nil
}

var translationRE = regexp.MustCompile(`^\s*q\s+1 0 0 1 (\S+) (\S+) cm\s*$`)

// Translation reports the translation applied to page pageNr by Translate.
// ok is false when the page does not start with a translation prefix.
func (d *Document) Translation(pageNr int) (tx, ty float64, ok bool, err error) {
	if err := d.checkPage(pageNr); err != nil {
		return 0, 0, false, err
	}
	pageDict, _, _, err := d.ctx.PageDict(pageNr, false)
	if err != nil {
		return 0, 0, false, fmt.Errorf("page %d: %w", pageNr, err)
	}
	streams, err := d.contentStreams(pageDict)
	if err != nil {
		return 0, 0, false, fmt.Errorf("page %d contents: %w", pageNr, err)
	}
	if len(streams) < 2 || string(bytes.TrimSpace(streams[len(streams)-1])) != "Q" {
		return 0, 0, false, nil
	}

	m := translationRE.FindSubmatch(streams[0])
	if m == nil {
		return 0, 0, false, nil
	}
	if tx, err = strconv.ParseFloat(string(m[1]), 64); err != nil {
		return 0, 0, false, nil
	}
	if ty, err = strconv.ParseFloat(string(m[2]), 64); err != nil {
		return 0, 0, false, nil
	}
	return tx, ty, true, nil
}

// Content returns the decoded content streams of page pageNr joined by
// newlines.
func (d *Document) Content(pageNr int) ([]byte, error) {
	if err := d.checkPage(pageNr); err != nil {
		return nil, err
	}
	pageDict, _, _, err := d.ctx.PageDict(pageNr, false)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", pageNr, err)
	}
	streams, err := d.contentStreams(pageDict)
	if err != nil {
		return nil, fmt.Errorf("page %d contents: %w", pageNr, err)
	}
	return bytes.Join(streams, []byte("\n")), nil
}

// Write serializes the document to w. The document is rendered in memory
// first so that a failing w sees either nothing or the complete output.
func (d *Document) Write(w io.Writer) error {
	var buf bytes.Buffer
	if err := api.WriteContext(d.ctx, &buf); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

func (d *Document) checkPage(pageNr int) error {
	if pageNr < 1 || pageNr > d.ctx.PageCount {
		return fmt.Errorf("page number %d out of range [1, %d]", pageNr, d.ctx.PageCount)
	}
	return nil
}

// contentRefs flattens a page's Contents entry into the list of stream
// references it draws, in order. An indirect array is resolved.
func (d *Document) contentRefs(pageDict types.Dict) (types.Array, error) {
	obj, found := pageDict.Find("Contents")
	if !found || obj == nil {
		return nil, nil
	}

	switch v := obj.(type) {
	case types.Array:
		return v, nil
	case types.IndirectRef:
		return d.resolveContentRef(v)
	case *types.IndirectRef:
		return d.resolveContentRef(*v)
	}
	return nil, fmt.Errorf("unexpected Contents type %T", obj)
}

func (d *Document) resolveContentRef(ref types.IndirectRef) (types.Array, error) {
	o, err := d.ctx.Dereference(ref)
	if err != nil {
		return nil, fmt.Errorf("dereferencing %s: %w", ref, err)
	}
	if arr, ok := o.(types.Array); ok {
		return arr, nil
	}
	return types.Array{ref}, nil
}

func (d *Document) contentStreams(pageDict types.Dict) ([][]byte, error) {
	refs, err := d.contentRefs(pageDict)
	if err != nil {
		return nil, err
	}

	streams := make([][]byte, 0, len(refs))
	for _, ref := range refs {
		if p, ok := ref.(*types.IndirectRef); ok {
			ref = *p
		}
		sd, _, err := d.ctx.DereferenceStreamDict(ref)
		if err != nil {
			return nil, fmt.Errorf("dereferencing stream: %w", err)
		}
		if sd == nil {
			continue
		}
		if len(sd.Content) == 0 {
			if err := sd.Decode(); err != nil {
				return nil, fmt.Errorf("decoding stream: %w", err)
			}
		}
		streams = append(streams, sd.Content)
	}
	return streams, nil
}

// newContentStream adds an unfiltered stream object holding content and
// returns a reference to it.
func (d *Document) newContentStream(content string) (*types.IndirectRef, error) {
	sd := types.StreamDict{
		Dict:    types.NewDict(),
		Content: []byte(content),
	}
	if err := sd.Encode(); err != nil {
		return nil, fmt.Errorf("encoding content stream: %w", err)
	}
	ref, err := d.ctx.IndRefForNewObject(sd)
	if err != nil {
		return nil, fmt.Errorf("adding content stream: %w", err)
	}
	return ref, nil
}

func translationPrefix(tx, ty float64) string {
	return fmt.Sprintf("q 1 0 0 1 %s %s cm\n", formatNumber(tx), formatNumber(ty))
}

// formatNumber renders v with at most four decimals and never as "-0".
func formatNumber(v float64) string {
	v = math.Round(v*1e4) / 1e4
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
