// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"strings"
	"unicode"

	"github.com/gomlx/einops/pkg/einops/faults"
	"github.com/gomlx/einops/pkg/support/sets"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// ReservedPrefix and ReservedSuffix delimit the names used internally for the axes captured by the
// ellipsis, e.g. "__ellipsis_0__". Axis names of that form are rejected.
const (
	ReservedPrefix = "__ellipsis_"
	ReservedSuffix = "__"
)

// Parse tokenizes and validates the pattern text.
//
// It returns a *faults.Fault (wrapped with a stack trace) of kind MalformedPattern, DuplicateAxis,
// MultipleEllipsis, InvalidAxisName, InvalidLiteral or DroppedAxis if the pattern is not valid.
func Parse(text string) (*Pattern, error) {
	sides := strings.Split(text, Separator)
	if len(sides) != 2 {
		return nil, faults.Errorf(faults.KindMalformedPattern,
			"missing or too many %q separating input from output, there must be exactly one", Separator).
			WithPattern(text).Err()
	}
	p := &Pattern{Text: text}
	var err error
	p.Input, err = parseSide(sides[0], true)
	if err != nil {
		return nil, sideError(err, text, "input")
	}
	p.Output, err = parseSide(sides[1], false)
	if err != nil {
		return nil, sideError(err, text, "output")
	}

	if p.Input.HasEllipsis() != p.Output.HasEllipsis() {
		return nil, faults.Errorf(faults.KindMalformedPattern,
			"ellipsis (%q) must appear on both sides of the pattern or on neither", EllipsisSymbol).
			WithPattern(text).Err()
	}
	outputNames := sets.MakeWith(p.Output.Names()...)
	for _, name := range p.Input.Names() {
		if !outputNames.Has(name) {
			return nil, faults.Errorf(faults.KindDroppedAxis,
				"axis %q of the input is missing from the output, rearrange can't drop axes", name).
				WithPattern(text).WithAxis(name).Err()
		}
	}
	return p, nil
}

// sideError attaches the full pattern to a fault raised while parsing one side. The offending
// word, if any, is kept in the fault's Axis.
func sideError(err error, text, sideName string) error {
	if f, ok := faults.As(err); ok {
		f.WithPattern(text)
	}
	return errors.WithMessagef(err, "%s side", sideName)
}

// parseSide tokenizes one side of the pattern and validates it.
func parseSide(text string, isInput bool) (side Side, err error) {
	side.EllipsisGroup = -1
	var (
		word    strings.Builder
		current *Group
	)
	flush := func() error {
		if word.Len() == 0 {
			return nil
		}
		token, err := classifyWord(word.String())
		word.Reset()
		if err != nil {
			return err
		}
		if current != nil {
			current.Tokens = append(current.Tokens, token)
		} else {
			side.Groups = append(side.Groups, Group{Tokens: []Token{token}})
		}
		return nil
	}

	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			err = flush()
		case r == '(':
			if err = flush(); err != nil {
				break
			}
			if current != nil {
				err = faults.Errorf(faults.KindMalformedPattern, "nested parentheses are not allowed").Err()
				break
			}
			current = &Group{Parenthesized: true}
		case r == ')':
			if err = flush(); err != nil {
				break
			}
			if current == nil {
				err = faults.Errorf(faults.KindMalformedPattern, "unbalanced parentheses: \")\" without matching \"(\"").Err()
				break
			}
			side.Groups = append(side.Groups, *current)
			current = nil
		default:
			word.WriteRune(r)
		}
		if err != nil {
			return
		}
	}
	if err = flush(); err != nil {
		return
	}
	if current != nil {
		err = faults.Errorf(faults.KindMalformedPattern, "unbalanced parentheses: \"(\" not closed").Err()
		return
	}
	err = validateSide(&side, isInput)
	return
}

// classifyWord converts one whitespace/parenthesis delimited word to a Token.
func classifyWord(word string) (Token, error) {
	if word == EllipsisSymbol {
		return Ellipsis{}, nil
	}
	if isDigits(word) {
		if word != "1" {
			return nil, faults.Errorf(faults.KindInvalidLiteral,
				"numeric literal %q not allowed, only the size-1 placeholder \"1\" is: give sizes by name instead", word).
				WithAxis(word).Err()
		}
		return Literal{Value: 1}, nil
	}
	if !IsValidName(word) {
		return nil, faults.Errorf(faults.KindInvalidAxisName,
			"invalid axis name %q: names must match [A-Za-z_][A-Za-z0-9_]* and not be of the reserved form %s<n>%s",
			word, ReservedPrefix, ReservedSuffix).
			WithAxis(word).Err()
	}
	return Named{Name: word}, nil
}

// IsValidName returns whether name can be used as an axis name.
func IsValidName(name string) bool {
	if name == "" || IsReservedName(name) {
		return false
	}
	for ii, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && ii > 0:
		default:
			return false
		}
	}
	return true
}

// IsReservedName returns whether name has the form used internally for ellipsis axes.
func IsReservedName(name string) bool {
	if len(name) <= len(ReservedPrefix)+len(ReservedSuffix) ||
		!strings.HasPrefix(name, ReservedPrefix) || !strings.HasSuffix(name, ReservedSuffix) {
		return false
	}
	return isDigits(name[len(ReservedPrefix) : len(name)-len(ReservedSuffix)])
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// validateSide checks ellipsis placement and cardinality, and name uniqueness.
func validateSide(side *Side, isInput bool) error {
	seen := sets.Make[string]()
	for groupIdx, group := range side.Groups {
		for _, token := range group.Tokens {
			switch tok := token.(type) {
			case Named:
				if seen.Has(tok.Name) {
					return faults.Errorf(faults.KindDuplicateAxis, "axis %q appears more than once", tok.Name).
						WithAxis(tok.Name).Err()
				}
				seen.Insert(tok.Name)
			case Ellipsis:
				if side.HasEllipsis() {
					return faults.Errorf(faults.KindMultipleEllipsis, "ellipsis (%q) can appear only once per side", EllipsisSymbol).Err()
				}
				side.EllipsisGroup = groupIdx
			case Literal:
				// Nothing to check, the value was validated by the tokenizer.
			default:
				exceptions.Panicf("pattern: unknown token type %T", token)
			}
		}
	}
	if !side.HasEllipsis() {
		return nil
	}
	group := side.Groups[side.EllipsisGroup]
	if group.Parenthesized {
		if len(group.Tokens) > 1 {
			return faults.Errorf(faults.KindMalformedPattern, "ellipsis (%q) can't be grouped with other axes in %s",
				EllipsisSymbol, group).Err()
		}
		if isInput {
			return faults.Errorf(faults.KindMalformedPattern,
				"ellipsis (%q) can't be parenthesized on the input side", EllipsisSymbol).Err()
		}
	}
	return nil
}
