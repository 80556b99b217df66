// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jsonschema

import (
	"fmt"
	"math"
	"sort"

	"github.com/dacolabs/jst/internal/ast"
	"github.com/dacolabs/jst/internal/translate"
)

// Decode turns a parsed schema node into an intermediate tag. The result
// may contain unions; collapsing them is the normalizer's job. An empty
// union marks an under-specified node for the resolver to settle.
func Decode(s *Schema, ctx translate.Context) (*ast.Tag, error) {
	switch len(s.Type) {
	case 0:
		return decodeUntyped(s, ctx)
	case 1:
		return decodeTyped(s, s.Type[0], ctx)
	default:
		variants := make([]*ast.Tag, 0, len(s.Type))
		nullable := false
		for _, name := range s.Type {
			tag, err := decodeTyped(s, name, ctx)
			if err != nil {
				return nil, err
			}
			if tag.IsNull() {
				nullable = true
			}
			variants = append(variants, tag)
		}
		union := ast.NewUnion(variants)
		union.Nullable = nullable
		return union, nil
	}
}

func decodeUntyped(s *Schema, ctx translate.Context) (*ast.Tag, error) {
	if tag, ok, err := decodeCombinators(s, ctx); ok || err != nil {
		return tag, err
	}
	if s.HasEnum {
		return decodeEnum(s.Enum), nil
	}
	// Untyped nodes with structural keywords behave like their typed
	// counterparts.
	if len(s.Properties) > 0 || s.AdditionalProperties != nil || len(s.PatternProperties) > 0 {
		return decodeObject(s, ctx)
	}
	if s.Items != nil {
		return decodeArray(s, ctx)
	}
	return ast.NewUnion(nil), nil
}

func decodeTyped(s *Schema, name string, ctx translate.Context) (*ast.Tag, error) {
	switch name {
	case "null":
		return ast.NewNull(), nil
	case "boolean":
		return ast.NewAtom(ast.Boolean), nil
	case "integer":
		return ast.NewAtom(ast.Integer), nil
	case "number":
		return ast.NewAtom(ast.Number), nil
	case "string":
		return decodeString(s), nil
	case "object":
		return decodeObject(s, ctx)
	case "array":
		return decodeArray(s, ctx)
	default:
		return nil, fmt.Errorf("%w: unsupported type %q", translate.ErrInvalidSchema, name)
	}
}

func decodeString(s *Schema) *ast.Tag {
	switch s.Format {
	case "date":
		return ast.NewAtom(ast.Date)
	case "date-time":
		return ast.NewAtom(ast.DateTime)
	}
	if s.ContentEncoding == "base64" || s.ContentMediaType == "application/octet-stream" {
		return ast.NewAtom(ast.Bytes)
	}
	return ast.NewAtom(ast.String)
}

func decodeObject(s *Schema, ctx translate.Context) (*ast.Tag, error) {
	if len(s.Properties) > 0 {
		fields := make(map[string]*ast.Tag, len(s.Properties))
		for key, sub := range s.Properties {
			child, err := Decode(sub, ctx)
			if err != nil {
				return nil, err
			}
			fields[key] = child
		}
		required := make(map[string]bool, len(s.Required))
		for _, name := range s.Required {
			required[name] = true
		}
		return ast.NewObject(fields, required), nil
	}

	ap := s.AdditionalProperties
	apSchema := ap != nil && ap.Schema != nil && !ap.Schema.IsEmpty()
	apTrivial := ap != nil && ap.Allowed && !apSchema

	switch {
	case apSchema && len(s.PatternProperties) > 0:
		value, err := Decode(ap.Schema, ctx)
		if err != nil {
			return nil, err
		}
		variants := []*ast.Tag{value}
		patterns, err := decodePatternValues(s, ctx)
		if err != nil {
			return nil, err
		}
		return ast.NewMap(ast.NewUnion(append(variants, patterns...))), nil
	case apSchema:
		value, err := Decode(ap.Schema, ctx)
		if err != nil {
			return nil, err
		}
		return ast.NewMap(value), nil
	case len(s.PatternProperties) > 0:
		patterns, err := decodePatternValues(s, ctx)
		if err != nil {
			return nil, err
		}
		return ast.NewMap(ast.NewUnion(patterns)), nil
	case apTrivial:
		return ast.NewMap(nil), nil
	}

	if tag, ok, err := decodeCombinators(s, ctx); ok || err != nil {
		return tag, err
	}
	return ast.NewUnion(nil), nil
}

func decodePatternValues(s *Schema, ctx translate.Context) ([]*ast.Tag, error) {
	// Patterns are data, not structure; only the value schemas matter.
	// Iterate sorted for determinism.
	tags := make([]*ast.Tag, 0, len(s.PatternProperties))
	for _, pattern := range sortedKeys(s.PatternProperties) {
		tag, err := Decode(s.PatternProperties[pattern], ctx)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func decodeArray(s *Schema, ctx translate.Context) (*ast.Tag, error) {
	if s.Items == nil {
		return ast.NewUnion(nil), nil
	}
	if s.Items.Tuple != nil {
		items := make([]*ast.Tag, 0, len(s.Items.Tuple))
		for _, sub := range s.Items.Tuple {
			tag, err := Decode(sub, ctx)
			if err != nil {
				return nil, err
			}
			items = append(items, tag)
		}
		if ctx.TupleStruct {
			return ast.NewTuple(items), nil
		}
		return ast.NewArray(ast.NewUnion(items)), nil
	}
	items, err := Decode(s.Items.Schema, ctx)
	if err != nil {
		return nil, err
	}
	return ast.NewArray(items), nil
}

// decodeCombinators handles oneOf, anyOf, and allOf uniformly as unions;
// allOf intersections collapse through the same lattice join.
func decodeCombinators(s *Schema, ctx translate.Context) (*ast.Tag, bool, error) {
	subs := make([]*Schema, 0, len(s.OneOf)+len(s.AnyOf)+len(s.AllOf))
	subs = append(subs, s.OneOf...)
	subs = append(subs, s.AnyOf...)
	subs = append(subs, s.AllOf...)
	if len(subs) == 0 {
		return nil, false, nil
	}
	variants := make([]*ast.Tag, 0, len(subs))
	nullable := false
	for _, sub := range subs {
		tag, err := Decode(sub, ctx)
		if err != nil {
			return nil, true, err
		}
		if tag.IsNull() {
			nullable = true
		}
		variants = append(variants, tag)
	}
	union := ast.NewUnion(variants)
	union.Nullable = nullable
	return union, true, nil
}

// decodeEnum picks the widest atomic type covering the literal values,
// defaulting to a string. A null literal makes the tag nullable.
func decodeEnum(values []any) *ast.Tag {
	var (
		sawBool, sawInt, sawFloat, sawString, sawOther bool
		nullable                                       bool
	)
	for _, v := range values {
		switch v := v.(type) {
		case nil:
			nullable = true
		case bool:
			sawBool = true
		case float64:
			if v == math.Trunc(v) {
				sawInt = true
			} else {
				sawFloat = true
			}
		case string:
			sawString = true
		default:
			sawOther = true
		}
	}

	var tag *ast.Tag
	switch {
	case sawOther:
		tag = ast.NewAtom(ast.String)
	case sawBool && !sawInt && !sawFloat && !sawString:
		tag = ast.NewAtom(ast.Boolean)
	case sawInt && !sawFloat && !sawBool && !sawString:
		tag = ast.NewAtom(ast.Integer)
	case (sawInt || sawFloat) && !sawBool && !sawString:
		tag = ast.NewAtom(ast.Number)
	default:
		tag = ast.NewAtom(ast.String)
	}
	tag.Nullable = nullable
	return tag
}

func sortedKeys(m map[string]*Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
