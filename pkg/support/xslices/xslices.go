// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package xslices provide missing functionality to the slices package, mostly around
// manipulating lists of dimensions and axes permutations.
package xslices

import (
	"golang.org/x/exp/constraints"
)

// Iota returns a slice of incremental int values, starting with start and of length len.
// Eg: Iota(3.0, 2) -> []float64{3.0, 4.0}
func Iota[T interface {
	constraints.Integer | constraints.Float
}](start T, len int) (slice []T) {
	slice = make([]T, len)
	for ii := range slice {
		slice[ii] = start + T(ii)
	}
	return
}

// Product returns the product of all values in the slice. The product of an empty slice is 1.
func Product[T constraints.Integer](values []T) T {
	var product T = 1
	for _, v := range values {
		product *= v
	}
	return product
}

// Map executes the given function sequentially for every element on in, and returns a mapped slice.
func Map[In, Out any](in []In, fn func(e In) Out) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}

// IsIdentityPermutation returns whether permutation[i] == i for every i.
func IsIdentityPermutation(permutation []int) bool {
	for ii, axis := range permutation {
		if ii != axis {
			return false
		}
	}
	return true
}

// IsPermutation returns whether the slice holds each value in [0, len(permutation)) exactly once.
func IsPermutation(permutation []int) bool {
	seen := make([]bool, len(permutation))
	for _, axis := range permutation {
		if axis < 0 || axis >= len(permutation) || seen[axis] {
			return false
		}
		seen[axis] = true
	}
	return true
}

// Permute returns a new slice with `out[i] = values[permutation[i]]`.
// It assumes len(permutation) == len(values).
func Permute[T any](values []T, permutation []int) []T {
	out := make([]T, len(permutation))
	for ii, from := range permutation {
		out[ii] = values[from]
	}
	return out
}

// InsertAt returns a new slice with value inserted at position pos (0 <= pos <= len(slice)).
func InsertAt[T any](slice []T, pos int, value T) []T {
	out := make([]T, 0, len(slice)+1)
	out = append(out, slice[:pos]...)
	out = append(out, value)
	return append(out, slice[pos:]...)
}
