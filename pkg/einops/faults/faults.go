// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package faults defines the errors returned when compiling or applying a rearrangement pattern.
//
// Every error carries a Kind, so callers can tell a malformed pattern from, say, a tensor that
// doesn't match it. Use KindOf (or Is) to recover it, even after the error has been wrapped:
//
//	y, err := einops.Rearrange(x, "(h w) c -> h w c", shapes.AxisBindings{"h": 5})
//	if faults.Is(err, faults.KindIndivisibleSplit) { ... }
//
// None of the faults are transient: rearranging is deterministic, and retrying the same call
// returns the same fault.
package faults

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind of fault.
type Kind int

//go:generate enumer -type=Kind -trimprefix=Kind -output=gen_kind_enumer.go faults.go

const (
	// KindUnknown is returned by KindOf for errors that are not a *Fault.
	KindUnknown Kind = iota

	// KindMalformedPattern is a missing or repeated "->", unbalanced or nested parentheses, or a misplaced ellipsis.
	KindMalformedPattern

	// KindDuplicateAxis is the same axis name repeated within one side of the pattern.
	KindDuplicateAxis

	// KindMultipleEllipsis is more than one ellipsis ("...") on one side of the pattern.
	KindMultipleEllipsis

	// KindInvalidAxisName is an identifier that is not a valid axis name.
	KindInvalidAxisName

	// KindInvalidLiteral is a numeric literal other than 1.
	KindInvalidLiteral

	// KindDroppedAxis is a named axis of the input that is missing from the output.
	KindDroppedAxis

	// KindShapeMismatch is an input rank (or a size-1 placeholder) that disagrees with the pattern.
	KindShapeMismatch

	// KindIndivisibleSplit is a split whose known sizes don't evenly divide the input dimension.
	KindIndivisibleSplit

	// KindAmbiguousSplit is a split with more than one axis of unknown size.
	KindAmbiguousSplit

	// KindMissingAxisSize is a new output axis without a given size.
	KindMissingAxisSize

	// KindInvalidAxisSize is a given axis size that is not positive, or so large the output can't be addressed.
	KindInvalidAxisSize

	// KindAxisSizeConflict is a given axis size that contradicts the input shape.
	KindAxisSizeConflict

	// KindUnusedAxisSize is a given axis size whose name doesn't appear in the pattern.
	KindUnusedAxisSize

	// KindExecutionFault is a failure of the array primitives while executing a plan.
	// It signals an internal invariant violation, not a user error.
	KindExecutionFault
)

// Fault is the error type for all rearrangement failures.
type Fault struct {
	Kind Kind

	// Pattern where the fault happened, if known. It may be the full pattern or just the offending part.
	Pattern string

	// Axis is the offending axis name, or the offending literal for KindInvalidLiteral, if any.
	Axis string

	// Dimensions is the concrete shape involved, if any.
	Dimensions []int

	// Step is the plan step being executed, for KindExecutionFault.
	Step string

	msg   string
	cause error
}

// Error implements the error interface.
func (f *Fault) Error() string {
	var sb strings.Builder
	sb.WriteString(f.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(f.msg)
	if f.Pattern != "" {
		_, _ = fmt.Fprintf(&sb, " (pattern %q)", f.Pattern)
	}
	return sb.String()
}

// Message returns the fault's message, without the kind and pattern decorations.
func (f *Fault) Message() string { return f.msg }

// Unwrap returns the error that caused the fault, if any.
func (f *Fault) Unwrap() error { return f.cause }

// Errorf creates a new Fault of the given kind.
// Use the With* methods to attach more context, and Err to return it with a stack trace (github.com/pkg/errors).
func Errorf(kind Kind, format string, args ...any) *Fault {
	return &Fault{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// WithPattern sets the pattern where the fault happened.
func (f *Fault) WithPattern(pattern string) *Fault {
	f.Pattern = pattern
	return f
}

// WithAxis sets the offending axis name.
func (f *Fault) WithAxis(axis string) *Fault {
	f.Axis = axis
	return f
}

// WithDimensions sets the concrete shape involved.
func (f *Fault) WithDimensions(dimensions []int) *Fault {
	f.Dimensions = append([]int(nil), dimensions...)
	return f
}

// WithStep sets the plan step that failed.
func (f *Fault) WithStep(step fmt.Stringer) *Fault {
	f.Step = step.String()
	return f
}

// Err returns the fault as an error, with a stack trace attached.
func (f *Fault) Err() error {
	return errors.WithStack(f)
}

// Wrap creates a Fault of the given kind caused by err; the cause's message is appended to the fault's message.
func Wrap(kind Kind, err error, format string, args ...any) *Fault {
	f := Errorf(kind, format, args...)
	f.msg = fmt.Sprintf("%s: %v", f.msg, err)
	f.cause = err
	return f
}

// As returns the *Fault in err's chain, if any.
func As(err error) (*Fault, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// KindOf returns the Kind of the fault in err's chain, or KindUnknown if there is none.
func KindOf(err error) Kind {
	if f, ok := As(err); ok {
		return f.Kind
	}
	return KindUnknown
}

// Is returns whether err holds a fault of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
