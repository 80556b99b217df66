// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package normalize resolves a decoded schema tree into the strongly
// typed form the dialect encoders consume: unions collapsed, names and
// namespaces assigned, nullability settled, incompatibilities resolved.
package normalize

import (
	"fmt"

	"github.com/dacolabs/jst/internal/ast"
	"github.com/dacolabs/jst/internal/translate"
)

// Normalize rewrites the tree in passes: case normalization, union
// collapse, name and namespace assignment, opaque-JSON escaping plus
// strategy resolution, then nullability. The result contains no unions
// and is a fixed point: normalizing it again changes nothing.
func Normalize(root *ast.Tag, ctx translate.Context) (*ast.Tag, error) {
	if ctx.NormalizeCase {
		normalizeFieldNames(root)
	}

	root, err := collapse(root, ctx)
	if err != nil {
		return nil, err
	}

	if root != nil {
		assignNames(root, "root", "")
		root, err = resolve(root, ctx)
		if err != nil {
			return nil, err
		}
	}
	if root == nil {
		// unresolvable root under drop: an empty record
		root = ast.NewObject(nil, nil)
		assignNames(root, "root", "")
	}

	applyNullability(root)
	if ctx.ForceNullable {
		forceNullable(root)
	}
	return root, nil
}

// normalizeFieldNames rewrites object field names to snake_case. Map keys
// are data and stay untouched. Collisions disambiguate by appending _1,
// _2, ... in lexicographic order of the original field names; the order in
// which the source document lists the fields is not consulted.
func normalizeFieldNames(t *ast.Tag) {
	switch t.Kind {
	case ast.KindObject:
		fields := make(map[string]*ast.Tag, len(t.Fields))
		required := make(map[string]bool)
		taken := make(map[string]bool, len(t.Fields))
		for _, orig := range t.FieldNames() {
			name := SnakeCase(orig)
			if taken[name] {
				for i := 1; ; i++ {
					candidate := fmt.Sprintf("%s_%d", name, i)
					if !taken[candidate] {
						name = candidate
						break
					}
				}
			}
			taken[name] = true
			fields[name] = t.Fields[orig]
			if t.RequiredFields[orig] {
				required[name] = true
			}
			normalizeFieldNames(t.Fields[orig])
		}
		t.Fields = fields
		t.RequiredFields = required
	case ast.KindMap:
		if t.Value != nil {
			normalizeFieldNames(t.Value)
		}
	case ast.KindArray:
		normalizeFieldNames(t.Items)
	case ast.KindTuple:
		for _, item := range t.Tuple {
			normalizeFieldNames(item)
		}
	case ast.KindUnion:
		for _, v := range t.Variants {
			normalizeFieldNames(v)
		}
	}
}

// collapse reduces every union to a single variant through the lattice
// join, bottom-up to a fixed point. A nil return means the sub-tree was
// dropped by the resolve strategy.
func collapse(t *ast.Tag, ctx translate.Context) (*ast.Tag, error) {
	switch t.Kind {
	case ast.KindObject:
		for _, name := range t.FieldNames() {
			child, err := collapse(t.Fields[name], ctx)
			if err != nil {
				return nil, err
			}
			if child == nil {
				delete(t.Fields, name)
				delete(t.RequiredFields, name)
				continue
			}
			t.Fields[name] = child
		}
		return t, nil
	case ast.KindMap:
		if t.Value == nil {
			return t, nil
		}
		value, err := collapse(t.Value, ctx)
		if err != nil || value == nil {
			return nil, err
		}
		t.Value = value
		return t, nil
	case ast.KindArray:
		items, err := collapse(t.Items, ctx)
		if err != nil || items == nil {
			return nil, err
		}
		t.Items = items
		return t, nil
	case ast.KindTuple:
		for i, item := range t.Tuple {
			item, err := collapse(item, ctx)
			if err != nil || item == nil {
				return nil, err
			}
			t.Tuple[i] = item
		}
		return t, nil
	case ast.KindUnion:
		return collapseUnion(t, ctx)
	default:
		return t, nil
	}
}

func collapseUnion(t *ast.Tag, ctx translate.Context) (*ast.Tag, error) {
	underSpecified := len(t.Variants) == 0

	// Collapse the variants themselves, splice nested unions, filter
	// nulls into nullability, and dedupe structurally equal variants.
	nullable := t.Nullable
	var variants []*ast.Tag
	seen := make(map[string]*ast.Tag)
	for _, v := range t.Variants {
		v, err := collapse(v, ctx)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		flat := []*ast.Tag{v}
		if v.Kind == ast.KindUnion && len(v.Variants) > 0 {
			flat = v.Variants
			nullable = nullable || v.Nullable
		}
		for _, f := range flat {
			if f.IsNull() {
				nullable = true
				continue
			}
			if f.Kind == ast.KindUnion && len(f.Variants) == 0 {
				// an empty union constrains nothing
				continue
			}
			key := f.StructureKey()
			if prev, ok := seen[key]; ok {
				prev.Nullable = prev.Nullable || f.Nullable
				continue
			}
			seen[key] = f
			variants = append(variants, f)
		}
	}

	switch len(variants) {
	case 0:
		if underSpecified {
			return t, nil
		}
		null := ast.NewNull()
		null.Nullable = true
		return null, nil
	case 1:
		result := variants[0]
		result.Nullable = result.Nullable || nullable
		return result, nil
	}

	result := variants[0]
	for _, v := range variants[1:] {
		var err error
		result, err = join(result, v, ctx)
		if err != nil || result == nil {
			return nil, err
		}
	}
	result.Nullable = result.Nullable || nullable
	return result, nil
}

// assignNames walks the tree assigning each tag its name and the dotted
// namespace of its ancestors.
func assignNames(t *ast.Tag, name, namespace string) {
	t.Name = name
	t.Namespace = namespace

	childNS := name
	if namespace != "" {
		childNS = namespace + "." + name
	}

	switch t.Kind {
	case ast.KindObject:
		for _, field := range t.FieldNames() {
			assignNames(t.Fields[field], field, childNS)
		}
	case ast.KindMap:
		assignNames(t.Key, "key", childNS)
		if t.Value != nil {
			assignNames(t.Value, "value", childNS)
		}
	case ast.KindArray:
		assignNames(t.Items, "items", childNS)
	case ast.KindTuple:
		for i, item := range t.Tuple {
			assignNames(item, fmt.Sprintf("f%d_", i), childNS)
		}
	}
}

// resolve settles what the lattice could not: opaque-JSON path escapes,
// under-specified nodes, standalone nulls, and value-less maps. A nil
// return drops the tag from its parent.
func resolve(t *ast.Tag, ctx translate.Context) (*ast.Tag, error) {
	if ctx.JSONObjectPath != nil && ctx.JSONObjectPath.MatchString(t.Path()) {
		return replaceWithAtom(t, ast.JSON), nil
	}

	switch t.Kind {
	case ast.KindUnion:
		// only under-specified markers survive collapse
		return settle(t, ctx, ast.String)
	case ast.KindNull:
		return settle(t, ctx, ast.String)
	case ast.KindObject:
		for _, name := range t.FieldNames() {
			child, err := resolve(t.Fields[name], ctx)
			if err != nil {
				return nil, err
			}
			if child == nil {
				delete(t.Fields, name)
				delete(t.RequiredFields, name)
				continue
			}
			t.Fields[name] = child
		}
		return t, nil
	case ast.KindMap:
		if t.Value == nil {
			if ctx.AllowMapsWithoutValue {
				return t, nil
			}
			return settle(t, ctx, ast.JSON)
		}
		value, err := resolve(t.Value, ctx)
		if err != nil || value == nil {
			return nil, err
		}
		t.Value = value
		return t, nil
	case ast.KindArray:
		items, err := resolve(t.Items, ctx)
		if err != nil || items == nil {
			return nil, err
		}
		t.Items = items
		return t, nil
	case ast.KindTuple:
		for i, item := range t.Tuple {
			item, err := resolve(item, ctx)
			if err != nil || item == nil {
				return nil, err
			}
			t.Tuple[i] = item
		}
		return t, nil
	default:
		return t, nil
	}
}

func settle(t *ast.Tag, ctx translate.Context, cast ast.Atom) (*ast.Tag, error) {
	switch ctx.Resolve {
	case translate.ResolveDrop:
		return nil, nil
	case translate.ResolvePanic:
		return nil, fmt.Errorf("%w: cannot express %q", translate.ErrIncompatible, t.Path())
	default:
		return replaceWithAtom(t, cast), nil
	}
}

// replaceWithAtom swaps a tag's type for an atom, keeping its position
// attributes.
func replaceWithAtom(t *ast.Tag, atom ast.Atom) *ast.Tag {
	r := ast.NewAtom(atom)
	r.Name = t.Name
	r.Namespace = t.Namespace
	r.Nullable = t.Nullable
	r.Required = t.Required
	return r
}

// applyNullability marks object fields nullable when their parent does
// not require them. Map and array nullability affects only the outer
// position, so values and items are recursed without modification.
func applyNullability(t *ast.Tag) {
	switch t.Kind {
	case ast.KindObject:
		for name, child := range t.Fields {
			child.Required = t.RequiredFields[name]
			if !child.Required {
				child.Nullable = true
			}
			applyNullability(child)
		}
	case ast.KindMap:
		if t.Value != nil {
			applyNullability(t.Value)
		}
	case ast.KindArray:
		applyNullability(t.Items)
	case ast.KindTuple:
		for _, item := range t.Tuple {
			applyNullability(item)
		}
	}
}

func forceNullable(t *ast.Tag) {
	t.Nullable = true
	switch t.Kind {
	case ast.KindObject:
		for _, child := range t.Fields {
			forceNullable(child)
		}
	case ast.KindMap:
		forceNullable(t.Key)
		if t.Value != nil {
			forceNullable(t.Value)
		}
	case ast.KindArray:
		forceNullable(t.Items)
	case ast.KindTuple:
		for _, item := range t.Tuple {
			forceNullable(item)
		}
	}
}
