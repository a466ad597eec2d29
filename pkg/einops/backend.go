// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package einops

import (
	"github.com/gomlx/einops/pkg/core/tensors"
	"github.com/gomlx/exceptions"
)

// Backend provides the array primitives a plan is executed with, for tensors of type T.
//
// Implementations must return an error (not panic) if the arguments are invalid, e.g. if the
// number of elements doesn't match in Reshape.
type Backend[T any] interface {
	// Dimensions of x.
	Dimensions(x T) []int

	// Reshape x to the given dimensions, keeping the row-major order of the elements.
	Reshape(x T, dimensions ...int) (T, error)

	// Transpose x: output axis i is the axis permutation[i] of x.
	Transpose(x T, permutation ...int) (T, error)

	// InsertAxis inserts a new axis at position axis, and repeats the values of x size times along it.
	InsertAxis(x T, axis, size int) (T, error)
}

// TensorBackend implements Backend for host tensors (*tensors.Tensor).
type TensorBackend struct{}

var _ Backend[*tensors.Tensor] = TensorBackend{}

// Dimensions implements Backend.
func (TensorBackend) Dimensions(x *tensors.Tensor) []int { return x.Dimensions() }

// Reshape implements Backend.
func (TensorBackend) Reshape(x *tensors.Tensor, dimensions ...int) (y *tensors.Tensor, err error) {
	err = exceptions.TryCatch[error](func() { y = tensors.Reshape(x, dimensions...) })
	return
}

// Transpose implements Backend.
func (TensorBackend) Transpose(x *tensors.Tensor, permutation ...int) (y *tensors.Tensor, err error) {
	err = exceptions.TryCatch[error](func() { y = tensors.Transpose(x, permutation...) })
	return
}

// InsertAxis implements Backend.
func (TensorBackend) InsertAxis(x *tensors.Tensor, axis, size int) (y *tensors.Tensor, err error) {
	err = exceptions.TryCatch[error](func() { y = tensors.InsertAxis(x, axis, size) })
	return
}
