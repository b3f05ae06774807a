// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PointsPerCM converts centimeters to PDF user-space points.
const PointsPerCM = 28.35

// Direction is the horizontal side an in-range page is moved toward.
type Direction string

const (
	DirectionNone  Direction = "none"
	DirectionRight Direction = "right"
	DirectionLeft  Direction = "left"
)

// Sign returns +1 for right, -1 for left and 0 for pages that are not moved.
func (d Direction) Sign() float64 {
	switch d {
	case DirectionRight:
		return 1
	case DirectionLeft:
		return -1
	}
	return 0
}

// Opposite returns the mirrored direction. DirectionNone has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionRight:
		return DirectionLeft
	case DirectionLeft:
		return DirectionRight
	}
	return DirectionNone
}

// ShiftSpec holds the typed parameters of a single shift run. Values are
// taken as given: neither the shift magnitude nor StartPage <= EndPage is
// checked.
type ShiftSpec struct {
	// ShiftCM is the horizontal distance in centimeters.
	ShiftCM float64 `json:"shift_cm" yaml:"shift_cm" toml:"shift_cm"`

	// StartPage is the first page (1-based) that receives a translation.
	StartPage int `json:"start_page" yaml:"start_page" toml:"start_page"`

	// EndPage is the last translated page. Nil means the last page of the
	// document; values past the last page are clamped.
	EndPage *int `json:"end_page,omitempty" yaml:"end_page,omitempty" toml:"end_page,omitempty"`

	// FirstRight moves the first in-range page right (positive x) when true.
	FirstRight bool `json:"first_right" yaml:"first_right" toml:"first_right"`

	// Password opens encrypted sources. Empty for unencrypted documents.
	Password string `json:"-" yaml:"password,omitempty" toml:"password,omitempty"`
}

// DefaultShiftSpec returns the parameters the form starts with: 1 cm,
// starting at page 1, through the last page, first page moved right.
func DefaultShiftSpec() ShiftSpec {
	return ShiftSpec{
		ShiftCM:    1,
		StartPage:  1,
		FirstRight: true,
	}
}

// Points returns the shift distance in points.
func (s ShiftSpec) Points() float64 {
	return s.ShiftCM * PointsPerCM
}

// EffectiveEnd returns the last page to translate for a document with
// total pages.
func (s ShiftSpec) EffectiveEnd(total int) int {
	if s.EndPage == nil || *s.EndPage > total {
		return total
	}
	return *s.EndPage
}

// PageShift records the translation applied to one output page.
type PageShift struct {
	Page      int       `json:"page" yaml:"page"`
	Direction Direction `json:"direction" yaml:"direction"`
	TX        float64   `json:"tx" yaml:"tx"`
}

// IntPtr returns a pointer to v. Convenient for ShiftSpec.EndPage literals.
func IntPtr(v int) *int {
	return &v
}
