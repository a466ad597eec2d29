// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package einops implements the `rearrange` operation of the einops notation: reshaping, transposing,
// splitting, merging and broadcasting axes of a tensor, described by a pattern. E.g.:
//
//	// Split the first axis, of dimension 12, into (3, 4):
//	y, err := einops.Rearrange(x, "(h w) c -> h w c", shapes.AxisBindings{"h": 3})
//
//	// Merge the two last axes, whatever the number of leading (batch) axes:
//	y, err = einops.Rearrange(x, "... h w -> ... (h w)", nil)
//
//	// Insert a new axis "b", broadcasting the values 4 times along it:
//	y, err = einops.Rearrange(x, "a 1 c -> a b c", shapes.AxisBindings{"b": 4})
//
// A pattern is compiled in stages:
//
//   - pattern.Parse: tokenizes and validates the pattern; the result is cached in a Cache, keyed
//     by the pattern and the names of the given sizes.
//   - resolve.Resolve: binds every axis to a concrete size, given the input dimensions.
//   - plan.Build: derives the minimal sequence of reshape, transpose and broadcast steps.
//   - Engine.Execute: applies the steps using a Backend, the array primitives of the tensor type.
//
// Rearrange and MustRearrange work on host tensors (see package tensors). Use NewEngine with your own
// Backend to rearrange other tensor types.
//
// Errors about the pattern, the sizes or the shapes are (or wrap) a *faults.Fault: use faults.KindOf
// to tell them apart.
package einops
