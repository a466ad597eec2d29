// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package einops

import (
	"github.com/gomlx/einops/pkg/core/shapes"
	"github.com/gomlx/einops/pkg/core/tensors"
	"github.com/gomlx/einops/pkg/einops/plan"
	"github.com/pkg/errors"
)

var tensorEngine = NewEngine[*tensors.Tensor](TensorBackend{}, DefaultCache)

// Rearrange the host tensor x according to the pattern, using DefaultCache.
//
// sizes holds the sizes of the axes that can't be inferred from the dimensions of x: new axes and
// all but one of the axes of each split. It can be nil.
//
// If the rearrangement is the identity, x itself is returned. Otherwise, the result may share storage
// with x: tensors are immutable.
func Rearrange(x *tensors.Tensor, pattern string, sizes shapes.AxisBindings) (*tensors.Tensor, error) {
	if x == nil {
		return nil, errors.Errorf("einops.Rearrange(nil, %q): tensor is nil", pattern)
	}
	return tensorEngine.Rearrange(x, pattern, sizes)
}

// MustRearrange is like Rearrange, but panics (with the error) on failure.
func MustRearrange(x *tensors.Tensor, pattern string, sizes shapes.AxisBindings) *tensors.Tensor {
	y, err := Rearrange(x, pattern, sizes)
	if err != nil {
		panic(err)
	}
	return y
}

// PlanFor returns the plan to rearrange a tensor of the given dimensions according to pattern,
// using DefaultCache. Useful to inspect what a pattern does.
func PlanFor(pattern string, dims []int, sizes shapes.AxisBindings) (*plan.Plan, error) {
	return tensorEngine.Plan(pattern, dims, sizes)
}
