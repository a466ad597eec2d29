// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"slices"
	"testing"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	invalidShape := Invalid()
	require.False(t, invalidShape.Ok())

	shape0 := Make(dtypes.Float64)
	require.True(t, shape0.Ok())
	require.True(t, shape0.IsScalar())
	require.Equal(t, 0, shape0.Rank())
	require.Equal(t, 1, shape0.Size())
	require.Equal(t, 8, int(shape0.Memory()))

	shape1 := Make(dtypes.Float32, 4, 3, 2)
	require.False(t, shape1.IsScalar())
	require.Equal(t, 3, shape1.Rank())
	require.Equal(t, 24, shape1.Size())
	require.Equal(t, 2, shape1.Dim(-1))
	require.Equal(t, 4, shape1.Dim(0))
	require.Equal(t, "(Float32)[4 3 2]", shape1.String())

	shape2 := shape1.Clone()
	shape2.Dimensions[0] = 5
	require.Equal(t, 4, shape1.Dimensions[0], "Clone must not share dimensions")
	require.False(t, shape1.Equal(shape2))
	require.True(t, shape1.EqualDimensions(Make(dtypes.Int8, 4, 3, 2)))
	require.False(t, shape1.Equal(Make(dtypes.Int8, 4, 3, 2)))

	err := exceptions.TryCatch[error](func() { _ = Make(dtypes.Float32, 3, 0) })
	require.Error(t, err)
	require.Panics(t, func() { _ = shape1.Dim(3) })
}

func TestShape_Check(t *testing.T) {
	shape := Make(dtypes.Int32, 2, 3)
	require.NoError(t, shape.Check(dtypes.Int32, 2, 3))
	require.NoError(t, shape.Check(dtypes.Int32, -1, 3))
	require.Error(t, shape.Check(dtypes.Float32, 2, 3))
	require.Error(t, shape.Check(dtypes.Int32, 2))
	require.Error(t, shape.Check(dtypes.Int32, 3, 3))
}

func TestShape_Strides(t *testing.T) {
	require.Equal(t, []int{12, 4, 1}, Make(dtypes.F32, 2, 3, 4).Strides())
	require.Equal(t, []int{1}, Make(dtypes.F32, 5).Strides())
	require.Equal(t, []int{2, 2, 1}, Make(dtypes.F32, 3, 1, 2).Strides())
	require.Empty(t, Make(dtypes.F32).Strides())
}

func TestShape_Iter(t *testing.T) {
	// Only one value to iterate.
	shape := Make(dtypes.F32, 1, 1, 1)
	var collect [][]int
	for flatIdx, indices := range shape.Iter() {
		collect = append(collect, slices.Clone(indices))
		require.Equal(t, 0, flatIdx)
	}
	require.Equal(t, [][]int{{0, 0, 0}}, collect)

	// Mixed trivial and non-trivial axes.
	shape = Make(dtypes.F64, 3, 1, 2)
	collect = nil
	counter := 0
	for flatIdx, indices := range shape.Iter() {
		collect = append(collect, slices.Clone(indices))
		assert.Equal(t, counter, flatIdx)
		counter++
	}
	want := [][]int{
		{0, 0, 0},
		{0, 0, 1},
		{1, 0, 0},
		{1, 0, 1},
		{2, 0, 0},
		{2, 0, 1},
	}
	require.Equal(t, want, collect)

	// Scalar yields exactly once.
	counter = 0
	for range Make(dtypes.Int8).Iter() {
		counter++
	}
	require.Equal(t, 1, counter)

	// Early break.
	counter = 0
	for flatIdx := range Make(dtypes.Int8, 10).Iter() {
		if flatIdx == 3 {
			break
		}
		counter++
	}
	require.Equal(t, 3, counter)
}

func TestAxisBindingsKey(t *testing.T) {
	tests := []struct {
		name     string
		bindings AxisBindings
		want     string
		wantName string
	}{
		{
			name:     "empty",
			bindings: AxisBindings{},
		},
		{
			name:     "nil",
			bindings: nil,
		},
		{
			name:     "single",
			bindings: AxisBindings{"batch": 32},
			want:     "batch=32",
			wantName: "batch",
		},
		{
			name:     "insertion_order_ignored",
			bindings: AxisBindings{"seq": 128, "batch": 32, "hidden": 512},
			want:     "batch=32,hidden=512,seq=128",
			wantName: "batch,hidden,seq",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.bindings.Key())
			require.Equal(t, tt.wantName, tt.bindings.NamesKey())
		})
	}
}

func TestAxisBindingsFirstNonPositive(t *testing.T) {
	_, found := AxisBindings{"a": 1, "b": 2}.FirstNonPositive()
	require.False(t, found)
	name, found := AxisBindings{"z": 0, "b": -1, "c": 3}.FirstNonPositive()
	require.True(t, found)
	require.Equal(t, "b", name)
}
