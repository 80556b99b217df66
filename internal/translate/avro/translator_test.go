// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package avro

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/jst/internal/translate"
)

func translateAvro(t *testing.T, input string, ctx translate.Context) []byte {
	t.Helper()
	out, err := (&Translator{}).Translate([]byte(input), ctx)
	require.NoError(t, err)
	return out
}

func TestTranslate_SimpleObject(t *testing.T) {
	out := translateAvro(t, `{
		"type": "object",
		"properties": {"foo": {"type": "boolean"}}
	}`, translate.Context{})

	// non-required fields become null unions with a null default
	assert.JSONEq(t, `{
		"type": "record",
		"name": "root",
		"fields": [
			{
				"name": "foo",
				"type": [{"type": "null"}, {"type": "boolean"}],
				"default": null
			}
		]
	}`, string(out))
}

func TestTranslate_RequiredField(t *testing.T) {
	out := translateAvro(t, `{
		"type": "object",
		"properties": {"flag": {"type": "boolean"}},
		"required": ["flag"]
	}`, translate.Context{})

	assert.JSONEq(t, `{
		"type": "record",
		"name": "root",
		"fields": [
			{"name": "flag", "type": {"type": "boolean"}}
		]
	}`, string(out))
}

func TestTranslate_AtomicRoot(t *testing.T) {
	out := translateAvro(t, `{"type": "integer"}`, translate.Context{})
	assert.JSONEq(t, `{"type": "long"}`, string(out))
}

func TestTranslate_Primitives(t *testing.T) {
	out := translateAvro(t, `{
		"type": "object",
		"required": ["str", "int", "num", "flag"],
		"properties": {
			"str": {"type": "string"},
			"int": {"type": "integer"},
			"num": {"type": "number"},
			"flag": {"type": "boolean"}
		}
	}`, translate.Context{})

	var result map[string]any
	require.NoError(t, json.Unmarshal(out, &result))

	types := map[string]any{}
	for _, f := range result["fields"].([]any) {
		field := f.(map[string]any)
		types[field["name"].(string)] = field["type"].(map[string]any)["type"]
	}
	assert.Equal(t, "string", types["str"])
	assert.Equal(t, "long", types["int"])
	assert.Equal(t, "double", types["num"])
	assert.Equal(t, "boolean", types["flag"])
}

func TestTranslate_LogicalTypesAndBytes(t *testing.T) {
	out := translateAvro(t, `{
		"type": "object",
		"required": ["day", "ts", "blob"],
		"properties": {
			"day": {"type": "string", "format": "date"},
			"ts": {"type": "string", "format": "date-time"},
			"blob": {"type": "string", "contentEncoding": "base64"}
		}
	}`, translate.Context{})

	assert.JSONEq(t, `{
		"type": "record",
		"name": "root",
		"fields": [
			{"name": "blob", "type": {"type": "bytes"}},
			{"name": "day", "type": {"type": "int", "logicalType": "date"}},
			{"name": "ts", "type": {"type": "long", "logicalType": "timestamp-micros"}}
		]
	}`, string(out))
}

func TestTranslate_NestedRecordNamespace(t *testing.T) {
	out := translateAvro(t, `{
		"type": "object",
		"required": ["payload"],
		"properties": {
			"payload": {
				"type": "object",
				"required": ["x"],
				"properties": {"x": {"type": "integer"}}
			}
		}
	}`, translate.Context{})

	assert.JSONEq(t, `{
		"type": "record",
		"name": "root",
		"fields": [
			{
				"name": "payload",
				"type": {
					"type": "record",
					"name": "payload",
					"namespace": "root",
					"fields": [
						{"name": "x", "type": {"type": "long"}}
					]
				}
			}
		]
	}`, string(out))
}

func TestTranslate_Map(t *testing.T) {
	out := translateAvro(t, `{
		"type": "object",
		"additionalProperties": {"type": "integer"}
	}`, translate.Context{})

	assert.JSONEq(t, `{"type": "map", "values": {"type": "long"}}`, string(out))
}

func TestTranslate_MapWithoutValueFallsBackToString(t *testing.T) {
	out := translateAvro(t, `{
		"type": "object",
		"additionalProperties": true
	}`, translate.Context{AllowMapsWithoutValue: true})

	assert.JSONEq(t, `{"type": "map", "values": {"type": "string"}}`, string(out))
}

func TestTranslate_Array(t *testing.T) {
	out := translateAvro(t, `{
		"type": "array",
		"items": {"type": "integer"}
	}`, translate.Context{})

	assert.JSONEq(t, `{"type": "array", "items": {"type": "long"}}`, string(out))
}

func TestTranslate_TupleStruct(t *testing.T) {
	out := translateAvro(t, `{
		"type": "array",
		"items": [{"type": "boolean"}, {"type": "string"}]
	}`, translate.Context{TupleStruct: true})

	assert.JSONEq(t, `{
		"type": "record",
		"name": "root",
		"fields": [
			{"name": "f0_", "type": {"type": "boolean"}},
			{"name": "f1_", "type": {"type": "string"}}
		]
	}`, string(out))
}

func TestTranslate_IncompatibleOneOfCastsToString(t *testing.T) {
	// no legal union of a scalar and an array
	out := translateAvro(t, `{
		"oneOf": [
			{"type": "integer"},
			{"type": "array", "items": {"type": "integer"}}
		]
	}`, translate.Context{Resolve: translate.ResolveCast})

	assert.JSONEq(t, `{"type": "string"}`, string(out))
}

func TestTranslate_IncompatibleOneOfPanics(t *testing.T) {
	_, err := (&Translator{}).Translate([]byte(`{
		"oneOf": [
			{"type": "integer"},
			{"type": "array", "items": {"type": "integer"}}
		]
	}`), translate.Context{Resolve: translate.ResolvePanic})

	assert.ErrorIs(t, err, translate.ErrIncompatible)
}

func TestTranslate_ForceNullable(t *testing.T) {
	out := translateAvro(t, `{
		"type": "object",
		"required": ["atom", "list"],
		"properties": {
			"atom": {"type": "integer"},
			"list": {"type": "array", "items": {"type": "boolean"}}
		}
	}`, translate.Context{ForceNullable: true})

	assert.JSONEq(t, `[
		{"type": "null"},
		{
			"type": "record",
			"name": "root",
			"fields": [
				{
					"name": "atom",
					"type": [{"type": "null"}, {"type": "long"}],
					"default": null
				},
				{
					"name": "list",
					"type": [
						{"type": "null"},
						{
							"type": "array",
							"items": [{"type": "null"}, {"type": "boolean"}]
						}
					],
					"default": null
				}
			]
		}
	]`, string(out))
}

func TestTranslate_NormalizeCase(t *testing.T) {
	out := translateAvro(t, `{
		"type": "object",
		"required": ["fooBar"],
		"properties": {"fooBar": {"type": "boolean"}}
	}`, translate.Context{NormalizeCase: true})

	var result map[string]any
	require.NoError(t, json.Unmarshal(out, &result))
	field := result["fields"].([]any)[0].(map[string]any)
	assert.Equal(t, "foo_bar", field["name"])
}

func TestTranslate_InvalidSchema(t *testing.T) {
	_, err := (&Translator{}).Translate([]byte(`{"type": 12}`), translate.Context{})
	assert.ErrorIs(t, err, translate.ErrInvalidSchema)
}

func TestTranslate_Deterministic(t *testing.T) {
	input := `{
		"type": "object",
		"properties": {
			"b": {"type": "integer"},
			"a": {"type": "string"},
			"c": {"type": "object", "properties": {"z": {"type": "boolean"}, "y": {"type": "number"}}}
		}
	}`

	first := translateAvro(t, input, translate.Context{})
	second := translateAvro(t, input, translate.Context{})
	assert.Equal(t, first, second)
}
