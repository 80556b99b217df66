// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/jst/internal/config"

	// Import translators to auto-register
	_ "github.com/dacolabs/jst/internal/translate/avro"
	_ "github.com/dacolabs/jst/internal/translate/bigquery"
)

func noEnv(string) string { return "" }

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(noEnv)
	cmd.SetIn(strings.NewReader(stdin))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const sampleSchema = `{
	"type": "object",
	"properties": {"foo": {"type": "boolean"}}
}`

func TestRootCmd_TranslatesStdinToBigQuery(t *testing.T) {
	out, err := execute(t, sampleSchema, "--type", "bigquery")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"mode": "NULLABLE", "name": "foo", "type": "BOOL"}]`, out)
}

func TestRootCmd_TranslatesFileToAvro(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleSchema), 0o600))

	out, err := execute(t, "", "--type", "avro", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"record"`)
	assert.Contains(t, out, `"root"`)
}

func TestRootCmd_WritesOutputFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "schema.bq.json")

	_, err := execute(t, sampleSchema, "--type", "bigquery", "--output", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath) //nolint:gosec
	require.NoError(t, err)
	assert.JSONEq(t, `[{"mode": "NULLABLE", "name": "foo", "type": "BOOL"}]`, string(data))
}

func TestRootCmd_InvalidResolveFlag(t *testing.T) {
	_, err := execute(t, sampleSchema, "--resolve", "explode")
	assert.Error(t, err)
}

func TestRootCmd_PanicOnIncompatible(t *testing.T) {
	_, err := execute(t, `{"type": "object", "properties": {"empty": {}}}`,
		"--type", "bigquery", "--resolve", "panic")
	assert.Error(t, err)
}

func TestRootCmd_MissingInputFile(t *testing.T) {
	_, err := execute(t, "", filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestRootCmd_ConfigDefaults(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), ".jst.yaml")
	cfg := &config.Config{
		Version:       config.CurrentConfigVersion,
		Type:          "bigquery",
		NormalizeCase: true,
	}
	require.NoError(t, cfg.Save(cfgPath))

	out, err := execute(t, `{
		"type": "object",
		"properties": {"fooBar": {"type": "boolean"}}
	}`, "--config", cfgPath)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"mode": "NULLABLE", "name": "foo_bar", "type": "BOOL"}]`, out)
}

func TestRootCmd_FlagsOverrideConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), ".jst.yaml")
	cfg := &config.Config{Version: config.CurrentConfigVersion, Type: "bigquery"}
	require.NoError(t, cfg.Save(cfgPath))

	out, err := execute(t, sampleSchema, "--config", cfgPath, "--type", "avro")
	require.NoError(t, err)
	assert.Contains(t, out, `"record"`)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "jst version")
}
