// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package plan derives the sequence of array primitives (reshape, transpose and broadcast) that
// realizes a resolved rearrangement.
//
// Raw emits the straightforward plan: reshape to the elementary input axes, transpose them to
// the order they are consumed by the output, insert and broadcast the new axes, and reshape to
// the grouped output. Optimize then rewrites it, dropping no-op steps and fusing reshapes.
package plan

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/einops/pkg/einops/resolve"
	"github.com/gomlx/einops/pkg/support/xslices"
	"github.com/gomlx/exceptions"
)

// Step is one primitive operation of a Plan: Reshape, Permute or InsertBroadcast.
//
// It is a closed set: consumers should use an exhaustive type switch.
type Step interface {
	fmt.Stringer
	isStep()
}

// Reshape changes the dimensions of the tensor, keeping the row-major order of its elements.
type Reshape struct {
	Dimensions []int
}

// Permute transposes the axes of the tensor: output axis i is the input axis Permutation[i].
type Permute struct {
	Permutation []int
}

// InsertBroadcast inserts a new axis at position Axis, repeating the values Size times along it.
type InsertBroadcast struct {
	Axis, Size int
}

func (Reshape) isStep()         {}
func (Permute) isStep()         {}
func (InsertBroadcast) isStep() {}

// String implements fmt.Stringer.
func (s Reshape) String() string { return fmt.Sprintf("Reshape(%v)", s.Dimensions) }

// String implements fmt.Stringer.
func (s Permute) String() string { return fmt.Sprintf("Permute(%v)", s.Permutation) }

// String implements fmt.Stringer.
func (s InsertBroadcast) String() string {
	return fmt.Sprintf("InsertBroadcast(axis=%d, size=%d)", s.Axis, s.Size)
}

// ApplyToDims returns the dimensions of a tensor with the given dims after the step is applied.
// It doesn't validate the step.
func ApplyToDims(dims []int, step Step) []int {
	switch s := step.(type) {
	case Reshape:
		return slices.Clone(s.Dimensions)
	case Permute:
		return xslices.Permute(dims, s.Permutation)
	case InsertBroadcast:
		return xslices.InsertAt(dims, s.Axis, s.Size)
	default:
		exceptions.Panicf("plan: unknown step type %T", step)
	}
	return nil
}

// Plan is the ordered list of steps that rearranges a tensor of InputDims into one of OutputDims.
//
// An empty Steps list means the input is returned unchanged.
// A Plan is immutable once built.
type Plan struct {
	InputDims, OutputDims []int
	Steps                 []Step
}

// IsIdentity returns whether the plan has no steps.
func (p *Plan) IsIdentity() bool { return len(p.Steps) == 0 }

// String implements fmt.Stringer.
func (p *Plan) String() string {
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "Plan(%v -> %v):", p.InputDims, p.OutputDims)
	if len(p.Steps) == 0 {
		sb.WriteString(" identity")
	}
	for _, step := range p.Steps {
		sb.WriteString(" ")
		sb.WriteString(step.String())
		sb.WriteString(";")
	}
	return sb.String()
}

// Build returns the optimized plan for the resolved rearrangement.
func Build(r *resolve.Resolved) *Plan {
	return &Plan{
		InputDims:  slices.Clone(r.InputDims),
		OutputDims: r.OutputDims(),
		Steps:      Optimize(r.InputDims, Raw(r)),
	}
}

// Raw returns the unoptimized steps for the resolved rearrangement. It always has the form:
//
//	Reshape, Permute, InsertBroadcast..., Reshape
//
// with one InsertBroadcast per new axis, in increasing output position.
func Raw(r *resolve.Resolved) []Step {
	elementaryInput := r.ElementaryInput()
	inputIndex := make(map[resolve.AxisID]int, len(elementaryInput))
	for ii, axis := range elementaryInput {
		inputIndex[axis] = ii
	}
	steps := []Step{Reshape{Dimensions: r.DimsOf(elementaryInput)}}

	// Transpose to the order the axes are consumed by the output.
	elementaryOutput := r.ElementaryOutput()
	permutation := make([]int, 0, len(elementaryInput))
	for _, axis := range elementaryOutput {
		if r.NewAxes.Has(axis) {
			continue
		}
		idx, found := inputIndex[axis]
		if !found {
			exceptions.Panicf("plan: output axis %q is neither an input axis nor a new axis in %s", axis, r)
		}
		permutation = append(permutation, idx)
	}
	if len(permutation) != len(elementaryInput) {
		exceptions.Panicf("plan: output consumes %d of the %d input axes in %s", len(permutation), len(elementaryInput), r)
	}
	steps = append(steps, Permute{Permutation: permutation})

	// Axes preceding a new axis in the output are all in place by the time it is inserted.
	for pos, axis := range elementaryOutput {
		if r.NewAxes.Has(axis) {
			steps = append(steps, InsertBroadcast{Axis: pos, Size: r.Sizes[axis]})
		}
	}
	return append(steps, Reshape{Dimensions: r.OutputDims()})
}

// Optimize rewrites the steps, applied to a tensor of inputDims, until none of the following
// rules applies:
//
//  1. An identity Permute is dropped.
//  2. A Reshape to the current dimensions is dropped.
//  3. A Reshape immediately followed by another Reshape is dropped: the second one alone has the same effect.
//
// Rule 3, together with 1, fuses the initial and final reshapes when no transposition is needed.
// The result is always equivalent to the input steps. The steps given are not modified.
func Optimize(inputDims []int, steps []Step) []Step {
	for changed := true; changed; {
		changed = false
		optimized := make([]Step, 0, len(steps))
		dims := inputDims
		for ii, step := range steps {
			switch s := step.(type) {
			case Permute:
				if xslices.IsIdentityPermutation(s.Permutation) {
					changed = true
					continue
				}
			case Reshape:
				if slices.Equal(s.Dimensions, dims) {
					changed = true
					continue
				}
				if ii+1 < len(steps) {
					if _, nextIsReshape := steps[ii+1].(Reshape); nextIsReshape {
						changed = true
						continue
					}
				}
			case InsertBroadcast:
				// Never dropped: even with Size == 1 it changes the rank.
			default:
				exceptions.Panicf("plan: unknown step type %T", step)
			}
			optimized = append(optimized, step)
			dims = ApplyToDims(dims, step)
		}
		steps = optimized
	}
	return steps
}
