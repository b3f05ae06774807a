// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"bytes"
	"errors"
	"fmt"

	dpdf "github.com/dslipak/pdf"
	lpdf "github.com/ledongthuc/pdf"
)

// Backend names reported by Inspect.
const (
	BackendLedongthuc = "ledongthuc"
	BackendDslipak    = "dslipak"
	BackendPDFCPU     = "pdfcpu"
)

// maxParentDepth bounds the walk up the page tree for inherited attributes.
const maxParentDepth = 32

// PageSize is a page's media box size in points.
type PageSize struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Info summarizes a document as seen by one reader backend.
type Info struct {
	Backend string     `json:"backend" yaml:"backend"`
	Pages   int        `json:"pages" yaml:"pages"`
	Sizes   []PageSize `json:"sizes" yaml:"sizes"`
}

// Inspect reads the page count and media boxes of data. It tries the
// ledongthuc reader first, then dslipak, and finally pdfcpu, returning the
// first backend that succeeds.
func Inspect(data []byte) (Info, error) {
	var errs []error

	info, err := inspectLedongthuc(data)
	if err == nil {
		return info, nil
	}
	errs = append(errs, fmt.Errorf("%s: %w", BackendLedongthuc, err))

	info, err = inspectDslipak(data)
	if err == nil {
		return info, nil
	}
	errs = append(errs, fmt.Errorf("%s: %w", BackendDslipak, err))

	info, err = inspectPDFCPU(data)
	if err == nil {
		return info, nil
	}
	errs = append(errs, fmt.Errorf("%s: %w", BackendPDFCPU, err))

	return Info{}, errors.Join(errs...)
}

func inspectLedongthuc(data []byte) (info Info, err error) {
	defer recoverPanic(&err)

	r, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Info{}, err
	}

	info = Info{Backend: BackendLedongthuc, Pages: r.NumPage()}
	for i := 1; i <= info.Pages; i++ {
		v := r.Page(i).V
		box := v.Key("MediaBox")
		for depth := 0; box.Kind() != lpdf.Array && depth < maxParentDepth; depth++ {
			v = v.Key("Parent")
			if v.IsNull() {
				break
			}
			box = v.Key("MediaBox")
		}
		info.Sizes = append(info.Sizes, sizeOf(box.Len(), box.Index))
	}
	return info, nil
}

func inspectDslipak(data []byte) (info Info, err error) {
	defer recoverPanic(&err)

	r, err := dpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Info{}, err
	}

	info = Info{Backend: BackendDslipak, Pages: r.NumPage()}
	for i := 1; i <= info.Pages; i++ {
		v := r.Page(i).V
		box := v.Key("MediaBox")
		for depth := 0; box.Kind() != dpdf.Array && depth < maxParentDepth; depth++ {
			v = v.Key("Parent")
			if v.IsNull() {
				break
			}
			box = v.Key("MediaBox")
		}
		info.Sizes = append(info.Sizes, sizeOf(box.Len(), box.Index))
	}
	return info, nil
}

func inspectPDFCPU(data []byte) (Info, error) {
	doc, err := Load(bytes.NewReader(data), "")
	if err != nil {
		return Info{}, err
	}

	info := Info{Backend: BackendPDFCPU, Pages: doc.PageCount()}
	for i := 1; i <= info.Pages; i++ {
		w, h, err := doc.PageSize(i)
		if err != nil {
			return Info{}, err
		}
		info.Sizes = append(info.Sizes, PageSize{Width: w, Height: h})
	}
	return info, nil
}

// floater is satisfied by the Value types of both rsc-derived readers.
type floater interface {
	Float64() float64
}

// sizeOf computes width and height from a four-element box accessed through
// index. Missing or malformed boxes yield a zero size.
func sizeOf[V floater](n int, index func(int) V) PageSize {
	if n != 4 {
		return PageSize{}
	}
	x0, y0 := index(0).Float64(), index(1).Float64()
	x1, y1 := index(2).Float64(), index(3).Float64()
	w, h := x1-x0, y1-y0
	if w < 0 {
		w = -w
	}
	if h < 0 {
		h = -h
	}
	return PageSize{Width: w, Height: h}
}

// recoverPanic converts a panic raised by a reader backend on malformed
// input into an error.
func recoverPanic(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("reader panic: %v", r)
	}
}
