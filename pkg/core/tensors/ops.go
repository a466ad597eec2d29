// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"reflect"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/einops/pkg/support/xslices"
	"github.com/gomlx/exceptions"
)

// This file holds the three array primitives rearrangements are built on. They all panic
// (with an error, see github.com/gomlx/exceptions) on invalid arguments.

// Reshape returns x with the given dimensions. Total size cannot change: elements keep their
// row-major (C-order) position.
//
// The returned tensor shares the flat storage with x.
func Reshape(x *Tensor, dimensions ...int) *Tensor {
	x.AssertValid()
	newSize := 1
	for _, dim := range dimensions {
		if dim <= 0 {
			exceptions.Panicf("tensors.Reshape(%s, %v): dimensions must be positive", x.shape, dimensions)
		}
		newSize *= dim
	}
	if newSize != x.Size() {
		exceptions.Panicf("tensors.Reshape(%s, %v): total requested size %s doesn't match original size %s",
			x.shape, dimensions, humanize.Comma(int64(newSize)), humanize.Comma(int64(x.Size())))
	}
	return &Tensor{shape: x.shape.WithDimensions(dimensions...), flat: x.flat}
}

// Transpose permutes the axes of x: ∀ i, 0 ≤ i < rank ⇒ output.Dimensions[i] = x.Dimensions[permutation[i]].
//
// The values are copied to a new flat storage.
func Transpose(x *Tensor, permutation ...int) *Tensor {
	x.AssertValid()
	rank := x.Rank()
	if len(permutation) != rank || !xslices.IsPermutation(permutation) {
		exceptions.Panicf("tensors.Transpose(%s, %v): permutation must hold each axis from 0 to %d exactly once",
			x.shape, permutation, rank-1)
	}
	if xslices.IsIdentityPermutation(permutation) {
		return x
	}

	outputShape := x.shape.WithDimensions(xslices.Permute(x.shape.Dimensions, permutation)...)
	// Stride on the operand for each axis of the output.
	stridesOnOperand := xslices.Permute(x.shape.Strides(), permutation)
	srcV := reflect.ValueOf(x.flat)
	dstV := reflect.MakeSlice(srcV.Type(), srcV.Len(), srcV.Len())
	for flatIdx, indices := range outputShape.Iter() {
		srcIdx := 0
		for axis, idx := range indices {
			srcIdx += idx * stridesOnOperand[axis]
		}
		dstV.Index(flatIdx).Set(srcV.Index(srcIdx))
	}
	return &Tensor{shape: outputShape, flat: dstV.Interface()}
}

// InsertAxis inserts a new axis at position axis (0 ≤ axis ≤ rank) and broadcasts (repeats) the values
// of x size times along it.
//
// So output[i_0, ..., i_{axis-1}, j, i_axis, ...] = x[i_0, ..., i_{axis-1}, i_axis, ...] for every j < size.
func InsertAxis(x *Tensor, axis, size int) *Tensor {
	x.AssertValid()
	rank := x.Rank()
	if axis < 0 || axis > rank {
		exceptions.Panicf("tensors.InsertAxis(%s, axis=%d, size=%d): axis out-of-bounds for rank %d", x.shape, axis, size, rank)
	}
	if size <= 0 {
		exceptions.Panicf("tensors.InsertAxis(%s, axis=%d, size=%d): size must be positive", x.shape, axis, size)
	}
	outputShape := x.shape.WithDimensions(xslices.InsertAt(x.shape.Dimensions, axis, size)...)
	if size == 1 {
		return &Tensor{shape: outputShape, flat: x.flat}
	}

	outer := xslices.Product(x.shape.Dimensions[:axis])
	inner := xslices.Product(x.shape.Dimensions[axis:])
	srcV := reflect.ValueOf(x.flat)
	total := outer * size * inner
	dstV := reflect.MakeSlice(srcV.Type(), total, total)
	for outerIdx := range outer {
		src := srcV.Slice(outerIdx*inner, (outerIdx+1)*inner)
		for repeat := range size {
			start := (outerIdx*size + repeat) * inner
			reflect.Copy(dstV.Slice(start, start+inner), src)
		}
	}
	return &Tensor{shape: outputShape, flat: dstV.Interface()}
}

// SameStorage returns whether the two tensors share the same flat storage. Used to verify
// no-copy behavior of reshapes.
func SameStorage(a, b *Tensor) bool {
	aV, bV := reflect.ValueOf(a.flat), reflect.ValueOf(b.flat)
	if aV.Len() == 0 || bV.Len() == 0 {
		return false
	}
	return aV.Pointer() == bV.Pointer() && aV.Len() == bV.Len()
}
