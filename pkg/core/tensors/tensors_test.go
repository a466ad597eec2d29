// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"testing"

	"github.com/gomlx/einops/pkg/support/xslices"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestFromValue(t *testing.T) {
	x := FromValue([][]float32{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, x.Shape().Check(dtypes.Float32, 2, 3))
	require.Equal(t, []float32{1, 2, 3, 4, 5, 6}, CopyFlatData[float32](x))
	require.Equal(t, [][]float32{{1, 2, 3}, {4, 5, 6}}, x.Value())

	scalar := FromValue(int32(7))
	require.Equal(t, 0, scalar.Rank())
	require.Equal(t, int32(7), scalar.Value())

	require.Panics(t, func() { _ = FromValue([][]int32{{1, 2}, {3}}) })
	require.Same(t, x, FromAnyValue(x))
}

func TestFromFlatDataAndDimensions(t *testing.T) {
	data := []int32{1, 2, 3, 4, 5, 6}
	x := FromFlatDataAndDimensions(data, 3, 2)
	data[0] = 100
	require.Equal(t, [][]int32{{1, 2}, {3, 4}, {5, 6}}, x.Value(), "data must be copied")

	err := exceptions.TryCatch[error](func() { _ = FromFlatDataAndDimensions(data, 4, 2) })
	require.Error(t, err)

	f16 := FromFlatDataAndDimensions([]float16.Float16{float16.Fromfloat32(1), float16.Fromfloat32(2)}, 2, 1)
	require.Equal(t, dtypes.Float16, f16.DType())
}

func TestEqual(t *testing.T) {
	a := FromValue([][]int{{1, 2}, {3, 4}})
	b := FromFlatDataAndDimensions([]int{1, 2, 3, 4}, 2, 2)
	c := FromFlatDataAndDimensions([]int{1, 2, 3, 5}, 2, 2)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(FromFlatDataAndDimensions([]int{1, 2, 3, 4}, 4)))
}

func TestReshape(t *testing.T) {
	x := FromFlatDataAndDimensions(xslices.Iota(float32(0), 24), 2, 3, 4)
	y := Reshape(x, 6, 4)
	require.NoError(t, y.Shape().Check(dtypes.Float32, 6, 4))
	require.Equal(t, CopyFlatData[float32](x), CopyFlatData[float32](y))
	require.True(t, SameStorage(x, y))

	err := exceptions.TryCatch[error](func() { _ = Reshape(x, 5, 5) })
	require.ErrorContains(t, err, "25")
	require.ErrorContains(t, err, "24")
	require.Panics(t, func() { _ = Reshape(x, 24, 0) })
}

func TestTranspose(t *testing.T) {
	x := FromFlatDataAndDimensions(xslices.Iota(float32(0), 24), 2, 3, 4)
	y := Transpose(x, 2, 0, 1)
	require.NoError(t, y.Shape().Check(dtypes.Float32, 4, 2, 3))
	want := [][][]float32{
		{{0, 4, 8}, {12, 16, 20}},
		{{1, 5, 9}, {13, 17, 21}},
		{{2, 6, 10}, {14, 18, 22}},
		{{3, 7, 11}, {15, 19, 23}}}
	require.Equal(t, want, y.Value())

	// Identity permutation is a no-op.
	require.Same(t, x, Transpose(x, 0, 1, 2))

	require.Panics(t, func() { _ = Transpose(x, 0, 1) })
	require.Panics(t, func() { _ = Transpose(x, 0, 0, 1) })
}

func TestInsertAxis(t *testing.T) {
	x := FromFlatDataAndDimensions([]int8{1, 3}, 2)
	y := InsertAxis(x, 0, 3)
	require.Equal(t, [][]int8{{1, 3}, {1, 3}, {1, 3}}, y.Value())

	y = InsertAxis(x, 1, 2)
	require.Equal(t, [][]int8{{1, 1}, {3, 3}}, y.Value())

	x2 := FromValue([][]int32{{1, 2}, {3, 4}})
	y = InsertAxis(x2, 1, 2)
	require.Equal(t, [][][]int32{{{1, 2}, {1, 2}}, {{3, 4}, {3, 4}}}, y.Value())

	y = InsertAxis(x2, 1, 1)
	require.NoError(t, y.Shape().Check(dtypes.Int32, 2, 1, 2))
	require.True(t, SameStorage(x2, y), "size 1 insertion doesn't copy")

	require.Panics(t, func() { _ = InsertAxis(x2, 3, 2) })
	require.Panics(t, func() { _ = InsertAxis(x2, 0, 0) })
}
