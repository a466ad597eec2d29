// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package einops

import (
	"slices"

	"github.com/gomlx/einops/pkg/core/shapes"
	"github.com/gomlx/einops/pkg/einops/faults"
	"github.com/gomlx/einops/pkg/einops/plan"
	"github.com/gomlx/einops/pkg/einops/resolve"
	"github.com/gomlx/einops/pkg/support/xslices"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Engine rearranges tensors of type T, using the array primitives of its Backend.
//
// It is safe for concurrent use, as long as the Backend is.
type Engine[T any] struct {
	backend Backend[T]
	cache   *Cache
}

// NewEngine creates an Engine for the given backend. If cache is nil, DefaultCache is used.
func NewEngine[T any](backend Backend[T], cache *Cache) *Engine[T] {
	if cache == nil {
		cache = DefaultCache
	}
	return &Engine[T]{backend: backend, cache: cache}
}

// Cache used by the engine to store compiled patterns.
func (e *Engine[T]) Cache() *Cache { return e.cache }

// Plan compiles the pattern (or fetches it from the cache) and returns the plan to rearrange
// a tensor with the given dimensions.
func (e *Engine[T]) Plan(pattern string, dims []int, sizes shapes.AxisBindings) (*plan.Plan, error) {
	p, err := e.cache.Compile(pattern, sizes)
	if err != nil {
		return nil, err
	}
	r, err := resolve.Resolve(p, dims, sizes)
	if err != nil {
		return nil, err
	}
	pl := plan.Build(r)
	if klog.V(3).Enabled() {
		klog.Infof("einops: %q with sizes {%s} resolved to %s: %s", pattern, sizes.Key(), r, pl)
	}
	return pl, nil
}

// Rearrange x according to the pattern. sizes holds the sizes of the axes that can't be inferred
// from the dimensions of x: new axes and all but one of the axes of a split.
//
// If the rearrangement is the identity, x itself is returned.
func (e *Engine[T]) Rearrange(x T, pattern string, sizes shapes.AxisBindings) (T, error) {
	pl, err := e.Plan(pattern, e.backend.Dimensions(x), sizes)
	if err != nil {
		var zero T
		return zero, err
	}
	return e.Execute(x, pl)
}

// Execute applies the plan steps to x.
//
// Steps inserting an axis of size 1 are executed with a Reshape. Any failure of the Backend, an
// error or a panic, is returned as a fault of kind faults.KindExecutionFault.
func (e *Engine[T]) Execute(x T, pl *plan.Plan) (T, error) {
	var zero T
	dims := e.backend.Dimensions(x)
	if !slices.Equal(dims, pl.InputDims) {
		return zero, faults.Errorf(faults.KindShapeMismatch,
			"plan is for input dimensions %v, got tensor with dimensions %v", pl.InputDims, dims).
			WithDimensions(dims).Err()
	}
	for _, step := range pl.Steps {
		var primitive func() (T, error)
		switch s := step.(type) {
		case plan.Reshape:
			primitive = func() (T, error) { return e.backend.Reshape(x, s.Dimensions...) }
		case plan.Permute:
			primitive = func() (T, error) { return e.backend.Transpose(x, s.Permutation...) }
		case plan.InsertBroadcast:
			if s.Size == 1 {
				primitive = func() (T, error) { return e.backend.Reshape(x, xslices.InsertAt(dims, s.Axis, 1)...) }
			} else {
				primitive = func() (T, error) { return e.backend.InsertAxis(x, s.Axis, s.Size) }
			}
		default:
			exceptions.Panicf("einops: unknown plan step type %T", step)
		}
		want := plan.ApplyToDims(dims, step)
		y, err := callBackend(primitive)
		if err == nil {
			if got := e.backend.Dimensions(y); !slices.Equal(got, want) {
				err = errors.Errorf("backend returned dimensions %v, wanted %v", got, want)
			}
		}
		if err != nil {
			f := faults.Wrap(faults.KindExecutionFault, err, "executing %s on tensor with dimensions %v", step, dims).
				WithStep(step).WithDimensions(dims)
			klog.Errorf("einops: internal error executing %s: %+v", pl, err)
			return zero, f.Err()
		}
		x, dims = y, want
	}
	return x, nil
}

// callBackend calls the primitive, converting a panic to an error.
func callBackend[T any](primitive func() (T, error)) (y T, err error) {
	exception := exceptions.Try(func() { y, err = primitive() })
	if exception == nil {
		return
	}
	var zero T
	if exceptionErr, ok := exception.(error); ok {
		return zero, errors.WithMessage(exceptionErr, "backend panicked")
	}
	return zero, errors.Errorf("backend panicked: %v", exception)
}
