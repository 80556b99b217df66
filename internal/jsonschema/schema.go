// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jsonschema models the subset of JSON Schema the engine
// understands and decodes it into the intermediate AST.
package jsonschema

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/dacolabs/jst/internal/translate"
)

// AdditionalProperties is either a boolean or a subschema.
type AdditionalProperties struct {
	Allowed bool
	Schema  *Schema
}

// Items is either a single subschema or a positional tuple of subschemas.
type Items struct {
	Schema *Schema
	Tuple  []*Schema
}

// Schema is the recognized keyword surface of one JSON Schema node.
// Keywords outside this set are ignored; they carry no shape.
type Schema struct {
	Type                 []string
	Format               string
	ContentEncoding      string
	ContentMediaType     string
	Properties           map[string]*Schema
	PatternProperties    map[string]*Schema
	AdditionalProperties *AdditionalProperties
	Required             []string
	Items                *Items
	OneOf                []*Schema
	AnyOf                []*Schema
	AllOf                []*Schema
	Enum                 []any
	HasEnum              bool
}

type schemaJSON struct {
	Type                 json.RawMessage    `json:"type"`
	Format               string             `json:"format"`
	ContentEncoding      string             `json:"contentEncoding"`
	ContentMediaType     string             `json:"contentMediaType"`
	Properties           map[string]*Schema `json:"properties"`
	PatternProperties    map[string]*Schema `json:"patternProperties"`
	AdditionalProperties json.RawMessage    `json:"additionalProperties"`
	Required             []string           `json:"required"`
	Items                json.RawMessage    `json:"items"`
	OneOf                []*Schema          `json:"oneOf"`
	AnyOf                []*Schema          `json:"anyOf"`
	AllOf                []*Schema          `json:"allOf"`
	Enum                 json.RawMessage    `json:"enum"`
}

// UnmarshalJSON decodes one schema node, splitting the polymorphic
// keywords (type, additionalProperties, items) into their variants.
func (s *Schema) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("%w: schema node must be a JSON object", translate.ErrInvalidSchema)
	}

	var w schemaJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	s.Format = w.Format
	s.ContentEncoding = w.ContentEncoding
	s.ContentMediaType = w.ContentMediaType
	s.Properties = w.Properties
	s.PatternProperties = w.PatternProperties
	s.Required = w.Required
	s.OneOf = w.OneOf
	s.AnyOf = w.AnyOf
	s.AllOf = w.AllOf

	if len(w.Type) > 0 {
		var single string
		if err := json.Unmarshal(w.Type, &single); err == nil {
			s.Type = []string{single}
		} else {
			var list []string
			if err := json.Unmarshal(w.Type, &list); err != nil {
				return fmt.Errorf("%w: type must be a string or a list of strings", translate.ErrInvalidSchema)
			}
			s.Type = list
		}
	}

	if len(w.AdditionalProperties) > 0 {
		var allowed bool
		if err := json.Unmarshal(w.AdditionalProperties, &allowed); err == nil {
			s.AdditionalProperties = &AdditionalProperties{Allowed: allowed}
		} else {
			var sub Schema
			if err := json.Unmarshal(w.AdditionalProperties, &sub); err != nil {
				return err
			}
			s.AdditionalProperties = &AdditionalProperties{Allowed: true, Schema: &sub}
		}
	}

	if len(w.Items) > 0 {
		itemsTrimmed := bytes.TrimSpace(w.Items)
		if len(itemsTrimmed) > 0 && itemsTrimmed[0] == '[' {
			var tuple []*Schema
			if err := json.Unmarshal(w.Items, &tuple); err != nil {
				return err
			}
			s.Items = &Items{Tuple: tuple}
		} else {
			var sub Schema
			if err := json.Unmarshal(w.Items, &sub); err != nil {
				return err
			}
			s.Items = &Items{Schema: &sub}
		}
	}

	if len(w.Enum) > 0 {
		if err := json.Unmarshal(w.Enum, &s.Enum); err != nil {
			return err
		}
		s.HasEnum = true
	}

	return nil
}

// IsEmpty reports whether the node carries no recognized keywords, i.e.
// it constrains nothing.
func (s *Schema) IsEmpty() bool {
	return len(s.Type) == 0 &&
		s.Format == "" &&
		s.ContentEncoding == "" &&
		s.ContentMediaType == "" &&
		len(s.Properties) == 0 &&
		len(s.PatternProperties) == 0 &&
		s.AdditionalProperties == nil &&
		len(s.Required) == 0 &&
		s.Items == nil &&
		len(s.OneOf) == 0 &&
		len(s.AnyOf) == 0 &&
		len(s.AllOf) == 0 &&
		!s.HasEnum
}

// Parse reads a JSON Schema document. The top level must be a JSON
// object; anything else is an invalid schema.
func Parse(data []byte) (*Schema, error) {
	if !json.Valid(data) {
		return nil, errors.New("input is not valid JSON")
	}
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		if errors.Is(err, translate.ErrInvalidSchema) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", translate.ErrInvalidSchema, err)
	}
	return &s, nil
}
