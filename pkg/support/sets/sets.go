// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package sets holds the Set type used for axis names.
package sets

import (
	"cmp"
	"maps"
	"slices"
)

// Set of comparable elements, backed by a map.
type Set[T comparable] map[T]struct{}

// Make returns an empty Set.
func Make[T comparable]() Set[T] { return Set[T]{} }

// MakeWith returns a Set holding the given elements.
func MakeWith[T comparable](elements ...T) Set[T] {
	s := make(Set[T], len(elements))
	s.Insert(elements...)
	return s
}

// Has reports whether element is in s.
func (s Set[T]) Has(element T) bool {
	_, found := s[element]
	return found
}

// Insert adds the elements to s.
func (s Set[T]) Insert(elements ...T) {
	for _, element := range elements {
		s[element] = struct{}{}
	}
}

// Sub returns a new Set with the elements of s that are not in other.
func (s Set[T]) Sub(other Set[T]) Set[T] {
	diff := maps.Clone(s)
	maps.DeleteFunc(diff, func(element T, _ struct{}) bool { return other.Has(element) })
	return diff
}

// Sorted returns the elements of s in ascending order.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	return slices.Sorted(maps.Keys(s))
}
