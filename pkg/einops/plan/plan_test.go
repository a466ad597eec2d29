// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package plan

import (
	"testing"

	"github.com/gomlx/einops/pkg/core/shapes"
	"github.com/gomlx/einops/pkg/einops/pattern"
	"github.com/gomlx/einops/pkg/einops/resolve"
	"github.com/google/go-cmp/cmp"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolved(t *testing.T, text string, dims []int, sizes shapes.AxisBindings) *resolve.Resolved {
	t.Helper()
	p := must.M1(pattern.Parse(text))
	r, err := resolve.Resolve(p, dims, sizes)
	require.NoError(t, err)
	return r
}

// finalDims simulates the steps over the dimensions.
func finalDims(dims []int, steps []Step) []int {
	for _, step := range steps {
		dims = ApplyToDims(dims, step)
	}
	return dims
}

func TestRaw(t *testing.T) {
	r := resolved(t, "(h w) c -> w b (c h)", []int{12, 10}, shapes.AxisBindings{"h": 3, "b": 2})
	want := []Step{
		Reshape{Dimensions: []int{3, 4, 10}},
		Permute{Permutation: []int{1, 2, 0}},
		InsertBroadcast{Axis: 1, Size: 2},
		Reshape{Dimensions: []int{4, 2, 30}},
	}
	if diff := cmp.Diff(want, Raw(r)); diff != "" {
		t.Errorf("raw plan mismatch (-want +got):\n%s", diff)
	}

	// New axes are inserted in increasing output position.
	r = resolved(t, "a -> x a y", []int{3}, shapes.AxisBindings{"x": 2, "y": 4})
	steps := Raw(r)
	assert.Equal(t, []Step{
		Reshape{Dimensions: []int{3}},
		Permute{Permutation: []int{0}},
		InsertBroadcast{Axis: 0, Size: 2},
		InsertBroadcast{Axis: 2, Size: 4},
		Reshape{Dimensions: []int{2, 3, 4}},
	}, steps)
	assert.Equal(t, []int{2, 3, 4}, finalDims([]int{3}, steps))
}

func TestOptimizeRules(t *testing.T) {
	// Identity permute dropped, then the two reshapes fuse.
	steps := []Step{
		Reshape{Dimensions: []int{3, 4, 5}},
		Permute{Permutation: []int{0, 1, 2}},
		Reshape{Dimensions: []int{12, 5}},
	}
	want := []Step{Reshape{Dimensions: []int{12, 5}}}
	if diff := cmp.Diff(want, Optimize([]int{3, 4, 5}, steps)); diff != "" {
		t.Errorf("fusion mismatch (-want +got):\n%s", diff)
	}
	// Input not modified.
	require.Len(t, steps, 3)

	// Reshape to current dims dropped.
	got := Optimize([]int{2, 3}, []Step{Reshape{Dimensions: []int{2, 3}}, Permute{Permutation: []int{1, 0}}})
	assert.Equal(t, []Step{Permute{Permutation: []int{1, 0}}}, got)

	// Reshapes separated by a real permute are kept.
	steps = []Step{
		Reshape{Dimensions: []int{3, 4, 10}},
		Permute{Permutation: []int{1, 0, 2}},
		Reshape{Dimensions: []int{40, 3}},
	}
	assert.Equal(t, steps, Optimize([]int{12, 10}, steps))

	// Reshapes chain collapsing to a no-op.
	got = Optimize([]int{6}, []Step{Reshape{Dimensions: []int{2, 3}}, Reshape{Dimensions: []int{3, 2}}, Reshape{Dimensions: []int{6}}})
	assert.Empty(t, got)

	// Size-1 insertions are kept.
	got = Optimize([]int{2}, []Step{InsertBroadcast{Axis: 1, Size: 1}, Reshape{Dimensions: []int{2, 1}}})
	assert.Equal(t, []Step{InsertBroadcast{Axis: 1, Size: 1}}, got)
}

func TestBuild(t *testing.T) {
	testCases := []struct {
		name    string
		pattern string
		dims    []int
		sizes   shapes.AxisBindings
		want    []Step
		output  []int
	}{
		{"identity", "a b c -> a b c", []int{2, 3, 4}, nil, []Step{}, []int{2, 3, 4}},
		{"split", "(h w) c -> h w c", []int{12, 10}, shapes.AxisBindings{"h": 3},
			[]Step{Reshape{Dimensions: []int{3, 4, 10}}}, []int{3, 4, 10}},
		{"merge", "a b c -> (a b) c", []int{3, 4, 5}, nil,
			[]Step{Reshape{Dimensions: []int{12, 5}}}, []int{12, 5}},
		{"transpose", "h w -> w h", []int{3, 4}, nil,
			[]Step{Permute{Permutation: []int{1, 0}}}, []int{4, 3}},
		{"broadcast", "a 1 c -> a b c", []int{3, 1, 5}, shapes.AxisBindings{"b": 4},
			[]Step{Reshape{Dimensions: []int{3, 5}}, InsertBroadcast{Axis: 1, Size: 4}}, []int{3, 4, 5}},
		{"ellipsis", "... h w -> ... (h w)", []int{2, 3, 4, 5}, nil,
			[]Step{Reshape{Dimensions: []int{2, 3, 20}}}, []int{2, 3, 20}},
		{"split transpose merge", "b (h w) c -> b w (h c)", []int{2, 6, 5}, shapes.AxisBindings{"w": 2},
			[]Step{
				Reshape{Dimensions: []int{2, 3, 2, 5}},
				Permute{Permutation: []int{0, 2, 1, 3}},
				Reshape{Dimensions: []int{2, 2, 15}},
			}, []int{2, 2, 15}},
		{"named size-1 new axis", "a b -> b x a", []int{2, 3}, shapes.AxisBindings{"x": 1},
			[]Step{Permute{Permutation: []int{1, 0}}, InsertBroadcast{Axis: 1, Size: 1}}, []int{3, 1, 2}},
		{"literal 1 input is a no-op", "a 1 -> a 1", []int{4, 1}, nil, []Step{}, []int{4, 1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := Build(resolved(t, tc.pattern, tc.dims, tc.sizes))
			if diff := cmp.Diff(tc.want, p.Steps); diff != "" {
				t.Errorf("plan mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tc.output, p.OutputDims)
			assert.Equal(t, tc.dims, p.InputDims)
			assert.Equal(t, tc.output, finalDims(tc.dims, p.Steps))
			assert.Equal(t, len(tc.want) == 0, p.IsIdentity())
		})
	}
}

func TestOptimizeKeepsResult(t *testing.T) {
	testCases := []struct {
		pattern string
		dims    []int
		sizes   shapes.AxisBindings
	}{
		{"a b c -> c b a", []int{4, 6, 2}, nil},
		{"(a b) c -> a (b c)", []int{4, 6}, shapes.AxisBindings{"a": 2}},
		{"a b -> (b a) 1 x", []int{4, 6}, shapes.AxisBindings{"x": 3}},
		{"... c -> c ...", []int{4, 6, 2}, nil},
		{"a ... -> (...) y a", []int{4, 6, 2}, shapes.AxisBindings{"y": 2}},
	}
	for _, tc := range testCases {
		r := resolved(t, tc.pattern, tc.dims, tc.sizes)
		raw := Raw(r)
		optimized := Optimize(r.InputDims, raw)
		assert.LessOrEqual(t, len(optimized), len(raw), tc.pattern)
		assert.Equal(t, finalDims(r.InputDims, raw), finalDims(r.InputDims, optimized), tc.pattern)
		assert.Equal(t, r.OutputDims(), finalDims(r.InputDims, optimized), tc.pattern)
	}
}

func TestPlanString(t *testing.T) {
	p := Build(resolved(t, "h w -> w h", []int{3, 4}, nil))
	assert.Equal(t, "Plan([3 4] -> [4 3]): Permute([1 0]);", p.String())
	p = Build(resolved(t, "h w -> h w", []int{3, 4}, nil))
	assert.Equal(t, "Plan([3 4] -> [3 4]): identity", p.String())
	assert.Equal(t, "InsertBroadcast(axis=1, size=4)", InsertBroadcast{Axis: 1, Size: 4}.String())
	assert.Equal(t, "Reshape([2 3])", Reshape{Dimensions: []int{2, 3}}.String())
}
