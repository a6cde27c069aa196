// Package pixel defines the mask data model: named neighbor positions
// relative to the scan cursor (Pixel), the ordered collection of those
// positions plus the per-dimension scan-advance vector (PixelSet), and the
// validation invariants spec.md §3 requires of a mask (origin present,
// names unique, coordinate dimensionality consistent with the shift
// vector).
package pixel

import (
	"errors"
	"fmt"
)

// Sentinel errors for pixel/mask construction.
var (
	// ErrEmptyPixelSet indicates a PixelSet was built with zero pixels.
	ErrEmptyPixelSet = errors.New("pixel: pixel set is empty")

	// ErrDuplicateName indicates two pixels share the same name.
	ErrDuplicateName = errors.New("pixel: duplicate pixel name")

	// ErrMissingOrigin indicates no pixel sits at the all-zero coordinate.
	ErrMissingOrigin = errors.New("pixel: mask does not include the origin pixel")

	// ErrDimensionMismatch indicates a pixel's coordinate vector length
	// disagrees with the PixelSet's declared dimensionality.
	ErrDimensionMismatch = errors.New("pixel: coordinate dimensionality mismatch")

	// ErrBadShift indicates the shift vector's length disagrees with the
	// mask's dimensionality, or contains a non-positive component.
	ErrBadShift = errors.New("pixel: invalid shift vector")
)

// Pixel is a single named neighbor position relative to the current scan
// position (the origin, all-zero coordinates).
type Pixel struct {
	// Name uniquely identifies this pixel within its PixelSet.
	Name string

	// Coords holds the pixel's offset from the origin: [x, y] for 2D masks,
	// [x, y, z] for 3D masks.
	Coords []int
}

// IsOrigin reports whether p sits at the current scan position.
func (p Pixel) IsOrigin() bool {
	for _, c := range p.Coords {
		if c != 0 {
			return false
		}
	}

	return true
}

// PixelSet is the ordered sequence of mask pixels plus the shift vector
// describing how far the scan advances between successive mask
// applications. Condition order (used for the RuleSet bit layout and the
// ODT builder's tie-break rule) is the construction order of this slice.
type PixelSet struct {
	pixels []Pixel
	index  map[string]int
	shifts []int
}

// New validates and constructs a PixelSet from shifts (the per-dimension
// scan-advance vector) and pixels (in condition order; LSB of a RuleSet
// configuration index corresponds to pixels[0]).
//
// Validation:
//   - pixels must be non-empty (ErrEmptyPixelSet).
//   - names must be unique (ErrDuplicateName).
//   - every pixel's coordinate vector must have the same length as shifts
//     (ErrDimensionMismatch).
//   - at least one pixel must be the origin (ErrMissingOrigin).
//   - every shift component must be a positive integer (ErrBadShift).
func New(shifts []int, pixels ...Pixel) (*PixelSet, error) {
	if len(pixels) == 0 {
		return nil, ErrEmptyPixelSet
	}
	if len(shifts) == 0 {
		return nil, ErrBadShift
	}
	for _, s := range shifts {
		if s <= 0 {
			return nil, fmt.Errorf("pixel: shift component %d: %w", s, ErrBadShift)
		}
	}

	index := make(map[string]int, len(pixels))
	hasOrigin := false
	for i, p := range pixels {
		if len(p.Coords) != len(shifts) {
			return nil, fmt.Errorf("pixel: %q has %d coords, want %d: %w", p.Name, len(p.Coords), len(shifts), ErrDimensionMismatch)
		}
		if _, dup := index[p.Name]; dup {
			return nil, fmt.Errorf("pixel: %q: %w", p.Name, ErrDuplicateName)
		}
		index[p.Name] = i
		if p.IsOrigin() {
			hasOrigin = true
		}
	}
	if !hasOrigin {
		return nil, ErrMissingOrigin
	}

	ps := &PixelSet{
		pixels: append([]Pixel(nil), pixels...),
		index:  index,
		shifts: append([]int(nil), shifts...),
	}

	return ps, nil
}

// Len returns the number of pixels (conditions contributed by the mask;
// extra non-pixel conditions such as "iter" are layered on by the ruleset
// package and are not counted here).
func (ps *PixelSet) Len() int { return len(ps.pixels) }

// At returns the i-th pixel in condition order.
func (ps *PixelSet) At(i int) Pixel { return ps.pixels[i] }

// Index returns the condition-order position of the named pixel.
func (ps *PixelSet) Index(name string) (int, bool) {
	i, ok := ps.index[name]
	return i, ok
}

// Names returns pixel names in condition order.
func (ps *PixelSet) Names() []string {
	out := make([]string, len(ps.pixels))
	for i, p := range ps.pixels {
		out[i] = p.Name
	}

	return out
}

// Dims returns the mask's dimensionality (2 or 3).
func (ps *PixelSet) Dims() int { return len(ps.shifts) }

// Shifts returns the per-dimension scan-advance vector. The first
// component is the horizontal shift consumed by the forest package.
func (ps *PixelSet) Shifts() []int { return append([]int(nil), ps.shifts...) }

// HorizontalShift is a convenience accessor for shifts[0], the only shift
// component spec.md §4.5 builds forests from.
func (ps *PixelSet) HorizontalShift() int { return ps.shifts[0] }
