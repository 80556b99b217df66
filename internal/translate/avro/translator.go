// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package avro renders a normalized schema tree as an Apache Avro schema.
package avro

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/dacolabs/jst/internal/ast"
	"github.com/dacolabs/jst/internal/jsonschema"
	"github.com/dacolabs/jst/internal/normalize"
	"github.com/dacolabs/jst/internal/translate"
)

func init() {
	translate.Register(&Translator{})
}

// Translator translates JSON Schema documents to Avro schema definitions.
type Translator struct{}

// Name returns the translator's identifier.
func (t *Translator) Name() string {
	return "avro"
}

// FileExtension returns the file extension for Avro schema files.
func (t *Translator) FileExtension() string {
	return ".avsc"
}

// primitive is a primitive or logical Avro type.
type primitive struct {
	Type        string `json:"type"`
	LogicalType string `json:"logicalType,omitempty"`
}

// record is an Avro record schema. The namespace is omitted at the root.
type record struct {
	Type      string  `json:"type"`
	Name      string  `json:"name"`
	Namespace string  `json:"namespace,omitempty"`
	Fields    []field `json:"fields"`
}

// field is a single record field. Nullable fields carry a null default so
// absent values deserialize cleanly.
type field struct {
	Name    string          `json:"name"`
	Type    any             `json:"type"`
	Default json.RawMessage `json:"default,omitempty"`
}

type arraySchema struct {
	Type  string `json:"type"`
	Items any    `json:"items"`
}

type mapSchema struct {
	Type   string `json:"type"`
	Values any    `json:"values"`
}

// Translate converts a JSON Schema document to an Avro schema JSON
// document.
func (t *Translator) Translate(schema []byte, ctx translate.Context) ([]byte, error) {
	parsed, err := jsonschema.Parse(schema)
	if err != nil {
		return nil, err
	}
	tag, err := jsonschema.Decode(parsed, ctx)
	if err != nil {
		return nil, err
	}
	tag, err = normalize.Normalize(tag, ctx)
	if err != nil {
		return nil, err
	}

	out, err := json.MarshalIndent(encode(tag), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Avro schema: %w", err)
	}
	return append(out, '\n'), nil
}

// encode renders a tag, wrapping nullable positions in a null union.
func encode(t *ast.Tag) any {
	enc := encodeType(t)
	if t.Nullable {
		return []any{primitive{Type: "null"}, enc}
	}
	return enc
}

func encodeType(t *ast.Tag) any {
	switch t.Kind {
	case ast.KindAtom:
		return encodeAtom(t.Atom)
	case ast.KindObject:
		fields := make([]field, 0, len(t.Fields))
		for _, name := range t.FieldNames() {
			fields = append(fields, encodeField(name, t.Fields[name]))
		}
		return record{
			Type:      "record",
			Name:      t.Name,
			Namespace: t.Namespace,
			Fields:    fields,
		}
	case ast.KindMap:
		if t.Value == nil {
			return mapSchema{Type: "map", Values: primitive{Type: "string"}}
		}
		return mapSchema{Type: "map", Values: encode(t.Value)}
	case ast.KindArray:
		return arraySchema{Type: "array", Items: encode(t.Items)}
	case ast.KindTuple:
		fields := make([]field, 0, len(t.Tuple))
		for _, item := range t.Tuple {
			fields = append(fields, encodeField(item.Name, item))
		}
		return record{
			Type:      "record",
			Name:      t.Name,
			Namespace: t.Namespace,
			Fields:    fields,
		}
	default:
		return primitive{Type: "null"}
	}
}

func encodeField(name string, t *ast.Tag) field {
	f := field{Name: name, Type: encode(t)}
	if t.Nullable {
		f.Default = json.RawMessage("null")
	}
	return f
}

// encodeAtom maps scalar types. Avro has no JSON type, so opaque JSON
// degrades to a string.
func encodeAtom(a ast.Atom) any {
	switch a {
	case ast.Boolean:
		return primitive{Type: "boolean"}
	case ast.Integer:
		return primitive{Type: "long"}
	case ast.Number:
		return primitive{Type: "double"}
	case ast.Bytes:
		return primitive{Type: "bytes"}
	case ast.Date:
		return primitive{Type: "int", LogicalType: "date"}
	case ast.DateTime:
		return primitive{Type: "long", LogicalType: "timestamp-micros"}
	default:
		return primitive{Type: "string"}
	}
}
