// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"fmt"
	"sort"
	"strings"
)

// AxisBindings maps axis names to concrete dimension values.
//
// It is used to give the sizes of axes that can't be inferred from a tensor's shape, like the
// axes of a split or the new axes created by a rearrangement.
type AxisBindings map[string]int

// Names returns the axis names, sorted alphabetically.
func (ab AxisBindings) Names() []string {
	names := make([]string, 0, len(ab))
	for name := range ab {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Key returns a canonical string representation for map keying.
// Format: "name1=val1,name2=val2" with names sorted alphabetically.
// Returns empty string for empty or nil bindings.
func (ab AxisBindings) Key() string {
	if len(ab) == 0 {
		return ""
	}
	names := ab.Names()
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, ab[name])
	}
	return strings.Join(parts, ",")
}

// NamesKey returns a canonical string with only the sorted axis names, ignoring their values.
// Format: "name1,name2". Returns empty string for empty or nil bindings.
func (ab AxisBindings) NamesKey() string {
	return strings.Join(ab.Names(), ",")
}

// FirstNonPositive returns the first name (in sorted order) bound to a value <= 0, if any.
func (ab AxisBindings) FirstNonPositive() (name string, found bool) {
	for _, name := range ab.Names() {
		if ab[name] <= 0 {
			return name, true
		}
	}
	return "", false
}
