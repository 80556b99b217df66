// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package normalize

import (
	"fmt"

	"github.com/dacolabs/jst/internal/ast"
	"github.com/dacolabs/jst/internal/translate"
)

// join computes the least upper bound of two tags. Incompatible pairs are
// settled by the resolve method: cast yields an opaque JSON atom, drop
// yields nil (the caller removes the sub-tree), panic yields
// ErrIncompatible. The operation is commutative, so n-ary union collapse
// is a left fold over the variants.
func join(a, b *ast.Tag, ctx translate.Context) (*ast.Tag, error) {
	nullable := a.Nullable || b.Nullable

	// Null is the nullability identity, not a type contributor.
	if a.IsNull() {
		b.Nullable = true
		return b, nil
	}
	if b.IsNull() {
		a.Nullable = true
		return a, nil
	}

	// An empty union constrains nothing and joins to its counterpart.
	if a.Kind == ast.KindUnion && len(a.Variants) == 0 {
		b.Nullable = nullable
		return b, nil
	}
	if b.Kind == ast.KindUnion && len(b.Variants) == 0 {
		a.Nullable = nullable
		return a, nil
	}

	result, err := joinTyped(a, b, ctx)
	if err != nil || result == nil {
		return nil, err
	}
	result.Nullable = nullable
	return result, nil
}

func joinTyped(a, b *ast.Tag, ctx translate.Context) (*ast.Tag, error) {
	switch {
	case a.Kind == ast.KindAtom && b.Kind == ast.KindAtom:
		return joinAtoms(a, b, ctx)
	case a.Kind == ast.KindObject && b.Kind == ast.KindObject:
		return joinObjects(a, b, ctx)
	case a.Kind == ast.KindMap && b.Kind == ast.KindMap:
		if a.Value == nil || b.Value == nil {
			return ast.NewMap(nil), nil
		}
		value, err := join(a.Value, b.Value, ctx)
		if err != nil || value == nil {
			return nil, err
		}
		return ast.NewMap(value), nil
	case a.Kind == ast.KindArray && b.Kind == ast.KindArray:
		items, err := join(a.Items, b.Items, ctx)
		if err != nil || items == nil {
			return nil, err
		}
		return ast.NewArray(items), nil
	case a.Kind == ast.KindTuple && b.Kind == ast.KindTuple && len(a.Tuple) == len(b.Tuple):
		items := make([]*ast.Tag, len(a.Tuple))
		for i := range a.Tuple {
			item, err := join(a.Tuple[i], b.Tuple[i], ctx)
			if err != nil || item == nil {
				return nil, err
			}
			items[i] = item
		}
		return ast.NewTuple(items), nil
	default:
		return incompatible(a, b, ctx)
	}
}

func joinAtoms(a, b *ast.Tag, ctx translate.Context) (*ast.Tag, error) {
	if a.Atom == b.Atom {
		return ast.NewAtom(a.Atom), nil
	}
	if (a.Atom == ast.Integer && b.Atom == ast.Number) || (a.Atom == ast.Number && b.Atom == ast.Integer) {
		return ast.NewAtom(ast.Number), nil
	}
	return incompatible(a, b, ctx)
}

// joinObjects unions the field sets. Shared fields join pointwise, the
// required set is the intersection, and fields present on only one side
// become nullable.
func joinObjects(a, b *ast.Tag, ctx translate.Context) (*ast.Tag, error) {
	fields := make(map[string]*ast.Tag, len(a.Fields)+len(b.Fields))
	required := make(map[string]bool)

	for name, left := range a.Fields {
		right, shared := b.Fields[name]
		if !shared {
			left.Nullable = true
			fields[name] = left
			continue
		}
		merged, err := join(left, right, ctx)
		if err != nil {
			return nil, err
		}
		if merged == nil {
			// drop strategy: the offending field is omitted
			continue
		}
		fields[name] = merged
		if a.RequiredFields[name] && b.RequiredFields[name] {
			required[name] = true
		}
	}
	for name, right := range b.Fields {
		if _, shared := a.Fields[name]; !shared {
			right.Nullable = true
			fields[name] = right
		}
	}

	return ast.NewObject(fields, required), nil
}

func incompatible(a, b *ast.Tag, ctx translate.Context) (*ast.Tag, error) {
	switch ctx.Resolve {
	case translate.ResolveDrop:
		return nil, nil
	case translate.ResolvePanic:
		return nil, fmt.Errorf("%w: no join of %s and %s",
			translate.ErrIncompatible, a.StructureKey(), b.StructureKey())
	default:
		return ast.NewAtom(ast.JSON), nil
	}
}
