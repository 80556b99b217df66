// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package bigquery renders a normalized schema tree as a BigQuery table
// schema: a JSON list of field descriptors.
package bigquery

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

// Translator translates JSON Schema documents to BigQuery table schemas.
type Translator struct{}

// Name returns the translator's identifier.
func (t *Translator) Name() string {
	return "bigquery"
}

// FileExtension returns the file extension for BigQuery schema files.
func (t *Translator) FileExtension() string {
	return ".bq.json"
}

// fieldSchema is one BigQuery field descriptor.
type fieldSchema struct {
	Name   string        `json:"name"`
	Type   string        `json:"type"`
	Mode   string        `json:"mode"`
	Fields []fieldSchema `json:"fields,omitempty"`
}

// Translate converts a JSON Schema document to a BigQuery schema JSON
// document. The top-level form is the root record's field list, or a
// single field for a non-object root.
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

	var fields []fieldSchema
	if tag.Kind == ast.KindObject {
		fields = make([]fieldSchema, 0, len(tag.Fields))
		for _, name := range tag.FieldNames() {
			fields = append(fields, encodeField(tag.Fields[name]))
		}
	} else {
		fields = []fieldSchema{encodeField(tag)}
	}

	out, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal BigQuery schema: %w", err)
	}
	return append(out, '\n'), nil
}

func encodeField(t *ast.Tag) fieldSchema {
	switch t.Kind {
	case ast.KindAtom:
		return fieldSchema{Name: t.Name, Type: atomType(t.Atom), Mode: mode(t)}
	case ast.KindObject:
		fields := make([]fieldSchema, 0, len(t.Fields))
		for _, name := range t.FieldNames() {
			fields = append(fields, encodeField(t.Fields[name]))
		}
		return fieldSchema{Name: t.Name, Type: "RECORD", Mode: mode(t), Fields: fields}
	case ast.KindMap:
		fields := []fieldSchema{encodeField(t.Key)}
		if t.Value != nil {
			fields = append(fields, encodeField(t.Value))
		}
		return fieldSchema{Name: t.Name, Type: "RECORD", Mode: "REPEATED", Fields: fields}
	case ast.KindArray:
		f := encodeField(t.Items)
		f.Name = t.Name
		f.Mode = "REPEATED"
		return f
	case ast.KindTuple:
		fields := make([]fieldSchema, 0, len(t.Tuple))
		for _, item := range t.Tuple {
			fields = append(fields, encodeField(item))
		}
		return fieldSchema{Name: t.Name, Type: "RECORD", Mode: mode(t), Fields: fields}
	default:
		return fieldSchema{Name: t.Name, Type: "STRING", Mode: "NULLABLE"}
	}
}

func mode(t *ast.Tag) string {
	if t.Nullable {
		return "NULLABLE"
	}
	return "REQUIRED"
}

func atomType(a ast.Atom) string {
	switch a {
	case ast.Boolean:
		return "BOOL"
	case ast.Integer:
		return "INT64"
	case ast.Number:
		return "FLOAT64"
	case ast.Bytes:
		return "BYTES"
	case ast.Date:
		return "DATE"
	case ast.DateTime:
		return "TIMESTAMP"
	case ast.JSON:
		return "JSON"
	default:
		return "STRING"
	}
}
