// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package resolve binds the axes of a parsed pattern to concrete sizes, given the dimensions
// of the input tensor and the sizes given by name.
//
// The result, Resolved, describes the input and output of the rearrangement in terms of
// elementary axes: the axes left after every composite group is split into its parts. Axes
// captured by an ellipsis get synthetic identities, see EllipsisAxis.
package resolve

import (
	"fmt"
	"math"
	"strings"

	"github.com/gomlx/einops/pkg/core/shapes"
	"github.com/gomlx/einops/pkg/einops/faults"
	"github.com/gomlx/einops/pkg/einops/pattern"
	"github.com/gomlx/einops/pkg/support/sets"
	"github.com/gomlx/einops/pkg/support/xslices"
	"github.com/gomlx/exceptions"
)

// AxisID identifies an elementary axis: it is the axis name, or EllipsisAxis(i) for the i-th
// axis captured by the ellipsis.
type AxisID string

// EllipsisAxis returns the identity of the i-th axis captured by the ellipsis, in capture order.
func EllipsisAxis(i int) AxisID {
	return AxisID(fmt.Sprintf("%s%d%s", pattern.ReservedPrefix, i, pattern.ReservedSuffix))
}

// Resolved holds the concrete sizes of every elementary axis of a pattern, for one input shape.
type Resolved struct {
	Pattern *pattern.Pattern

	// InputDims are the dimensions of the input tensor.
	InputDims []int

	// Sizes of every elementary axis.
	Sizes map[AxisID]int

	// InputGroups lists, for each input dimension, the elementary axes it is split into.
	// A dimension matched by a literal 1 or by "()" has no elementary axes.
	InputGroups [][]AxisID

	// OutputGroups lists, for each output dimension, the elementary axes merged into it.
	OutputGroups [][]AxisID

	// NewAxes are the axes that only exist in the output.
	NewAxes sets.Set[AxisID]
}

// ElementaryInput returns the elementary input axes, in order.
func (r *Resolved) ElementaryInput() []AxisID { return flatten(r.InputGroups) }

// ElementaryOutput returns the elementary output axes, in order.
func (r *Resolved) ElementaryOutput() []AxisID { return flatten(r.OutputGroups) }

// DimsOf returns the sizes of the given axes.
func (r *Resolved) DimsOf(axes []AxisID) []int {
	return xslices.Map(axes, func(axis AxisID) int {
		size, found := r.Sizes[axis]
		if !found {
			exceptions.Panicf("resolve: axis %q has no resolved size", axis)
		}
		return size
	})
}

// OutputDims returns the dimensions of the output tensor: the product of each output group.
func (r *Resolved) OutputDims() []int {
	return xslices.Map(r.OutputGroups, func(group []AxisID) int {
		return xslices.Product(r.DimsOf(group))
	})
}

// String implements fmt.Stringer.
func (r *Resolved) String() string {
	var sb strings.Builder
	writeGroups := func(groups [][]AxisID) {
		for ii, group := range groups {
			if ii > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString("(")
			for jj, axis := range group {
				if jj > 0 {
					sb.WriteString(" ")
				}
				_, _ = fmt.Fprintf(&sb, "%s=%d", axis, r.Sizes[axis])
			}
			sb.WriteString(")")
		}
	}
	writeGroups(r.InputGroups)
	sb.WriteString(" -> ")
	writeGroups(r.OutputGroups)
	return sb.String()
}

func flatten(groups [][]AxisID) []AxisID {
	var axes []AxisID
	for _, group := range groups {
		axes = append(axes, group...)
	}
	return axes
}

// Resolve assigns a concrete size to every elementary axis of p, given the input dimensions and
// the sizes given by name.
//
// Errors are *faults.Fault of kinds InvalidAxisSize, MissingAxisSize, UnusedAxisSize, ShapeMismatch,
// AxisSizeConflict, IndivisibleSplit or AmbiguousSplit.
func Resolve(p *pattern.Pattern, dims []int, sizes shapes.AxisBindings) (*Resolved, error) {
	if name, found := sizes.FirstNonPositive(); found {
		return nil, faults.Errorf(faults.KindInvalidAxisSize, "size of axis %q must be positive, got %d", name, sizes[name]).
			WithPattern(p.Text).WithAxis(name).Err()
	}
	if err := p.CheckSizeNames(sizes.Names()); err != nil {
		return nil, err
	}
	numElements := 1
	for _, dim := range dims {
		if dim <= 0 {
			return nil, faults.Errorf(faults.KindShapeMismatch, "input dimensions %v must all be positive", dims).
				WithPattern(p.Text).WithDimensions(dims).Err()
		}
		var ok bool
		if numElements, ok = mulWithinInt(numElements, dim); !ok {
			return nil, faults.Errorf(faults.KindShapeMismatch, "input dimensions %v have more elements than an int can hold", dims).
				WithPattern(p.Text).WithDimensions(dims).Err()
		}
	}

	r := &Resolved{
		Pattern:   p,
		InputDims: append([]int(nil), dims...),
		Sizes:     make(map[AxisID]int),
		NewAxes:   sets.Make[AxisID](),
	}

	// Rank check: the ellipsis absorbs the dimensions not matched by the other groups.
	numGroups := len(p.Input.Groups)
	numEllipsisAxes := 0
	if p.Input.HasEllipsis() {
		numGroups--
		numEllipsisAxes = len(dims) - numGroups
		if numEllipsisAxes < 0 {
			return nil, faults.Errorf(faults.KindShapeMismatch,
				"input has rank %d, but the pattern requires at least %d dimensions", len(dims), numGroups).
				WithPattern(p.Text).WithDimensions(dims).Err()
		}
	} else if len(dims) != numGroups {
		return nil, faults.Errorf(faults.KindShapeMismatch,
			"input has rank %d, but the pattern %q has %d dimensions", len(dims), p.Input, numGroups).
			WithPattern(p.Text).WithDimensions(dims).Err()
	}

	// Input side.
	ellipsisAxes := make([]AxisID, numEllipsisAxes)
	dimIdx := 0
	for groupIdx, group := range p.Input.Groups {
		if groupIdx == p.Input.EllipsisGroup {
			for ii := range numEllipsisAxes {
				axis := EllipsisAxis(ii)
				ellipsisAxes[ii] = axis
				r.Sizes[axis] = dims[dimIdx]
				r.InputGroups = append(r.InputGroups, []AxisID{axis})
				dimIdx++
			}
			continue
		}
		axes, err := r.resolveInputGroup(group, dims[dimIdx], sizes)
		if err != nil {
			return nil, err
		}
		r.InputGroups = append(r.InputGroups, axes)
		dimIdx++
	}

	// Output side.
	for groupIdx, group := range p.Output.Groups {
		if groupIdx == p.Output.EllipsisGroup {
			if group.Parenthesized {
				r.OutputGroups = append(r.OutputGroups, ellipsisAxes)
			} else {
				for _, axis := range ellipsisAxes {
					r.OutputGroups = append(r.OutputGroups, []AxisID{axis})
				}
			}
			continue
		}
		var axes []AxisID
		for _, token := range group.Tokens {
			switch tok := token.(type) {
			case pattern.Named:
				axis := AxisID(tok.Name)
				if _, found := r.Sizes[axis]; !found {
					// Only in the output: CheckSizeNames guarantees it was given.
					r.NewAxes.Insert(axis)
					r.Sizes[axis] = sizes[tok.Name]
				}
				axes = append(axes, axis)
			case pattern.Literal:
				// Size-1 placeholder: no elementary axis.
			case pattern.Ellipsis:
				exceptions.Panicf("resolve: ellipsis outside of the ellipsis group %d in %q", p.Output.EllipsisGroup, p.Text)
			default:
				exceptions.Panicf("resolve: unknown token type %T", token)
			}
		}
		r.OutputGroups = append(r.OutputGroups, axes)
	}

	// New axes multiply the number of elements.
	numElements = 1
	for _, axis := range r.ElementaryOutput() {
		var ok bool
		if numElements, ok = mulWithinInt(numElements, r.Sizes[axis]); !ok {
			return nil, faults.Errorf(faults.KindInvalidAxisSize,
				"size %d of axis %q makes the output have more elements than an int can hold", r.Sizes[axis], axis).
				WithPattern(p.Text).WithAxis(string(axis)).WithDimensions(dims).Err()
		}
	}
	return r, nil
}

// mulWithinInt returns a*b for positive a and b, and false if it overflows an int.
func mulWithinInt(a, b int) (int, bool) {
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// resolveInputGroup binds the axes of one input group (not the ellipsis) to the dimension it matches.
// It returns the elementary axes of the group.
func (r *Resolved) resolveInputGroup(group pattern.Group, dim int, sizes shapes.AxisBindings) ([]AxisID, error) {
	var (
		axes    []AxisID
		unknown []AxisID
	)
	// knownProduct stops growing once it exceeds dim: knownTooLarge is then set.
	knownProduct, knownTooLarge := 1, false
	multiplyKnown := func(size int) {
		if knownTooLarge {
			return
		}
		if knownProduct > dim/size {
			knownTooLarge = true
			return
		}
		knownProduct *= size
	}
	for _, token := range group.Tokens {
		switch tok := token.(type) {
		case pattern.Named:
			axis := AxisID(tok.Name)
			axes = append(axes, axis)
			if size, found := sizes[tok.Name]; found {
				r.Sizes[axis] = size
				multiplyKnown(size)
			} else {
				unknown = append(unknown, axis)
			}
		case pattern.Literal:
			multiplyKnown(tok.Value)
		case pattern.Ellipsis:
			exceptions.Panicf("resolve: ellipsis outside of the ellipsis group %d in %q",
				r.Pattern.Input.EllipsisGroup, r.Pattern.Text)
		default:
			exceptions.Panicf("resolve: unknown token type %T", token)
		}
	}

	newFault := func(kind faults.Kind, format string, args ...any) *faults.Fault {
		return faults.Errorf(kind, format, args...).WithPattern(r.Pattern.Text).WithDimensions(r.InputDims)
	}
	switch len(unknown) {
	case 0:
		if knownProduct == dim && !knownTooLarge {
			return axes, nil
		}
		if len(axes) == 0 {
			return nil, newFault(faults.KindShapeMismatch,
				"%q requires a dimension of size 1, got %d", group.String(), dim).Err()
		}
		if knownTooLarge {
			return nil, newFault(faults.KindAxisSizeConflict,
				"given sizes for %q multiply to more than the input dimension %d", group.String(), dim).
				WithAxis(string(axes[0])).Err()
		}
		return nil, newFault(faults.KindAxisSizeConflict,
			"given sizes for %q multiply to %d, but the input dimension is %d", group.String(), knownProduct, dim).
			WithAxis(string(axes[0])).Err()
	case 1:
		axis := unknown[0]
		if knownTooLarge {
			return nil, newFault(faults.KindIndivisibleSplit,
				"can't split dimension of size %d in %q: the known sizes multiply to more than %d",
				dim, group.String(), dim).WithAxis(string(axis)).Err()
		}
		if dim%knownProduct != 0 {
			return nil, newFault(faults.KindIndivisibleSplit,
				"can't split dimension of size %d in %q: %d is not divisible by the known sizes' product %d",
				dim, group.String(), dim, knownProduct).WithAxis(string(axis)).Err()
		}
		r.Sizes[axis] = dim / knownProduct
		return axes, nil
	default:
		return nil, newFault(faults.KindAmbiguousSplit,
			"can't split dimension of size %d in %q: sizes of axes %q are unknown, give all but one of them",
			dim, group.String(), unknown).WithAxis(string(unknown[0])).Err()
	}
}
