package main

import (
	"bytes"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, generate(&buf, "tables"))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "// Code generated by crcgen. DO NOT EDIT."))
	assert.Contains(t, out, "package tables")
	assert.Contains(t, out, "0x77073096")
	assert.Contains(t, out, "0x2d02ef8d")

	file, err := parser.ParseFile(token.NewFileSet(), "tables.go", out, 0)
	require.NoError(t, err)
	assert.Equal(t, "tables", file.Name.Name)
}

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.go")
	require.NoError(t, writeOutput(path, "tables"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var want bytes.Buffer
	require.NoError(t, generate(&want, "tables"))
	assert.Equal(t, want.String(), string(data))

	assert.Error(t, writeOutput(filepath.Join(t.TempDir(), "missing", "tables.go"), "tables"))
}
