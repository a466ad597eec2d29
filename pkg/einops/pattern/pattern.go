// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package pattern parses and validates rearrangement patterns, like "b (h w) c -> b h w c".
//
// A pattern has an input and an output Side, separated by "->". Each side is a sequence of
// groups, one per dimension of the tensor: a group is either a bare token or a parenthesized
// list of tokens (a composite axis, split on the input side and merged on the output side).
// Tokens are axis names, the literal 1 (a size-1 placeholder) or the ellipsis "...", which
// captures a run of unnamed dimensions shared by both sides.
//
// Parsing is purely syntactic and name-level: no sizes are resolved here, see package resolve.
package pattern

import (
	"fmt"
	"strings"

	"github.com/gomlx/einops/pkg/einops/faults"
	"github.com/gomlx/einops/pkg/support/sets"
	"github.com/gomlx/exceptions"
)

// Token is one element of a Group: Named, Literal or Ellipsis.
//
// It is a closed set: consumers should use an exhaustive type switch.
type Token interface {
	fmt.Stringer
	isToken()
}

// Named is an axis identified by its name.
type Named struct {
	Name string
}

// Literal is an axis whose size is fixed by the pattern itself. Only 1 is accepted.
type Literal struct {
	Value int
}

// Ellipsis captures a run of unnamed dimensions.
type Ellipsis struct{}

func (Named) isToken()    {}
func (Literal) isToken()  {}
func (Ellipsis) isToken() {}

// String implements fmt.Stringer.
func (n Named) String() string { return n.Name }

// String implements fmt.Stringer.
func (l Literal) String() string { return fmt.Sprintf("%d", l.Value) }

// String implements fmt.Stringer.
func (Ellipsis) String() string { return EllipsisSymbol }

const (
	// Separator between the input and output sides of a pattern.
	Separator = "->"

	// EllipsisSymbol is the textual representation of an Ellipsis.
	EllipsisSymbol = "..."
)

// Group is one dimension slot of a side of the pattern.
//
// A bare token is a group of length 1 with Parenthesized set to false. A parenthesized group
// may hold any number of tokens, including none ("()" is a dimension of size 1).
type Group struct {
	Tokens        []Token
	Parenthesized bool
}

// String implements fmt.Stringer.
func (g Group) String() string {
	parts := make([]string, len(g.Tokens))
	for ii, token := range g.Tokens {
		parts[ii] = token.String()
	}
	joined := strings.Join(parts, " ")
	if g.Parenthesized {
		return "(" + joined + ")"
	}
	return joined
}

// HasEllipsis returns whether the group holds the ellipsis.
func (g Group) HasEllipsis() bool {
	for _, token := range g.Tokens {
		if _, ok := token.(Ellipsis); ok {
			return true
		}
	}
	return false
}

// Side is one side (input or output) of the pattern.
type Side struct {
	Groups []Group

	// EllipsisGroup is the index of the group holding the ellipsis, or -1 if there is none.
	EllipsisGroup int
}

// HasEllipsis returns whether the side has an ellipsis.
func (s Side) HasEllipsis() bool { return s.EllipsisGroup >= 0 }

// String implements fmt.Stringer.
func (s Side) String() string {
	parts := make([]string, len(s.Groups))
	for ii, group := range s.Groups {
		parts[ii] = group.String()
	}
	return strings.Join(parts, " ")
}

// Names returns the axis names of the side, in the order they are written.
func (s Side) Names() []string {
	var names []string
	for _, group := range s.Groups {
		for _, token := range group.Tokens {
			switch tok := token.(type) {
			case Named:
				names = append(names, tok.Name)
			case Literal, Ellipsis:
				// No name.
			default:
				exceptions.Panicf("pattern: unknown token type %T", token)
			}
		}
	}
	return names
}

// Pattern is the parsed and validated form of a rearrangement pattern.
//
// It is immutable after Parse returns, and safe to share among goroutines.
type Pattern struct {
	// Text is the pattern as given by the user.
	Text string

	Input, Output Side
}

// String returns the normalized pattern.
func (p *Pattern) String() string {
	return p.Input.String() + " " + Separator + " " + p.Output.String()
}

// HasEllipsis returns whether the pattern uses an ellipsis (on both sides, as validated by Parse).
func (p *Pattern) HasEllipsis() bool { return p.Input.HasEllipsis() }

// AxisNames returns the set of all axis names used in the pattern.
func (p *Pattern) AxisNames() sets.Set[string] {
	names := sets.MakeWith(p.Input.Names()...)
	names.Insert(p.Output.Names()...)
	return names
}

// NewAxes returns the names that only appear in the output side, in the order they are written.
// Their sizes must be given explicitly.
func (p *Pattern) NewAxes() []string {
	inputNames := sets.MakeWith(p.Input.Names()...)
	var newAxes []string
	for _, name := range p.Output.Names() {
		if !inputNames.Has(name) {
			newAxes = append(newAxes, name)
		}
	}
	return newAxes
}

// CheckSizeNames validates the names of the sizes the user will provide against the pattern:
// every new axis (see NewAxes) must be given a size, and every given name must be used in the pattern.
//
// It returns a *faults.Fault of kind MissingAxisSize or UnusedAxisSize otherwise.
func (p *Pattern) CheckSizeNames(names []string) error {
	given := sets.MakeWith(names...)
	for _, name := range p.NewAxes() {
		if !given.Has(name) {
			return faults.Errorf(faults.KindMissingAxisSize,
				"axis %q only appears in the output, its size must be given explicitly", name).
				WithPattern(p.Text).WithAxis(name).Err()
		}
	}
	if unused := sets.Sorted(given.Sub(p.AxisNames())); len(unused) > 0 {
		return faults.Errorf(faults.KindUnusedAxisSize, "sizes given for axes %q, which are not used in the pattern", unused).
			WithPattern(p.Text).WithAxis(unused[0]).Err()
	}
	return nil
}
