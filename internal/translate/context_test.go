// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResolveMethod(t *testing.T) {
	tests := []struct {
		in   string
		want ResolveMethod
	}{
		{"cast", ResolveCast},
		{"", ResolveCast},
		{"drop", ResolveDrop},
		{"panic", ResolvePanic},
	}
	for _, tt := range tests {
		got, err := ParseResolveMethod(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseResolveMethod_Invalid(t *testing.T) {
	_, err := ParseResolveMethod("explode")
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestResolveMethod_String(t *testing.T) {
	assert.Equal(t, "cast", ResolveCast.String())
	assert.Equal(t, "drop", ResolveDrop.String())
	assert.Equal(t, "panic", ResolvePanic.String())
}

func TestCompileJSONPath(t *testing.T) {
	var ctx Context

	require.NoError(t, ctx.CompileJSONPath(`^root\.payload$`))
	require.NotNil(t, ctx.JSONObjectPath)
	assert.True(t, ctx.JSONObjectPath.MatchString("root.payload"))
	assert.False(t, ctx.JSONObjectPath.MatchString("root.other"))

	require.NoError(t, ctx.CompileJSONPath(""))
	assert.Nil(t, ctx.JSONObjectPath)
}

func TestCompileJSONPath_Invalid(t *testing.T) {
	var ctx Context
	err := ctx.CompileJSONPath(`([unclosed`)
	assert.ErrorIs(t, err, ErrInvalidOption)
}
