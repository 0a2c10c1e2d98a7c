package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

const (
	testSchema = "# `title:/.+/`\n\n- `tag:/[a-z]+/`{1,}\n"
	testInput  = "# Release notes\n\n- fixes\n- docs\n"
	badInput   = "# Release notes\n\n- fixes\n- Docs2\n"
)

// writeFiles writes schema and input into a temporary directory and
// returns their paths.
func writeFiles(t *testing.T, schema, input string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.md")
	inputPath := filepath.Join(dir, "input.md")
	require.NoError(t, os.WriteFile(schemaPath, []byte(schema), 0o600))
	require.NoError(t, os.WriteFile(inputPath, []byte(input), 0o600))
	return schemaPath, inputPath
}

func TestSetupValidateFlags(t *testing.T) {
	fs, flags := SetupValidateFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Empty(t, flags.Schema)
		assert.Equal(t, FormatText, flags.Format)
		assert.False(t, flags.Quiet)
		assert.Zero(t, flags.MaxDepth)
		assert.False(t, flags.Stream)
		assert.Equal(t, defaultChunkSize, flags.ChunkSize)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"-s", "schema.md", "-f", "json", "-q", "--max-depth", "3", "--nfc", "--stream", "--no-color", "doc.md"}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, "schema.md", flags.Schema)
		assert.Equal(t, "json", flags.Format)
		assert.True(t, flags.Quiet)
		assert.Equal(t, 3, flags.MaxDepth)
		assert.True(t, flags.NFC)
		assert.True(t, flags.Stream)
		assert.True(t, flags.NoColor)
		assert.Equal(t, "doc.md", fs.Arg(0))
	})
}

func TestRunValidate_Valid(t *testing.T) {
	schemaPath, inputPath := writeFiles(t, testSchema, testInput)
	var stdout, stderr bytes.Buffer

	err := runValidate([]string{"--schema", schemaPath, inputPath}, nil, &stdout, &stderr)
	require.NoError(t, err)

	var captures map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &captures))
	assert.Equal(t, "Release notes", captures["title"])
	assert.Equal(t, []any{"fixes", "docs"}, captures["tag"])
	assert.Contains(t, stderr.String(), "Validation passed")
	assert.NotContains(t, stderr.String(), "\x1b[", "output to a buffer must not be coloured")
}

func TestRunValidate_Invalid(t *testing.T) {
	schemaPath, inputPath := writeFiles(t, testSchema, badInput)
	var stdout, stderr bytes.Buffer

	err := runValidate([]string{"-s", schemaPath, inputPath}, nil, &stdout, &stderr)
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, stderr.String(), "Errors (1)")
	assert.Contains(t, stderr.String(), "(line 4, col")
	assert.Contains(t, stderr.String(), "Validation failed: 1 error(s)")
}

func TestRunValidate_Quiet(t *testing.T) {
	schemaPath, inputPath := writeFiles(t, testSchema, badInput)
	var stdout, stderr bytes.Buffer

	err := runValidate([]string{"-q", "-s", schemaPath, inputPath}, nil, &stdout, &stderr)
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Empty(t, stderr.String())
}

func TestRunValidate_StructuredFormats(t *testing.T) {
	schemaPath, inputPath := writeFiles(t, testSchema, badInput)

	t.Run("json", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := runValidate([]string{"-s", schemaPath, "--format", "json", inputPath}, nil, &stdout, &stderr)
		require.ErrorIs(t, err, ErrValidationFailed)

		var report ValidateReport
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
		assert.False(t, report.Valid)
		assert.Equal(t, 1, report.ErrorCount)
		require.Len(t, report.Errors, 1)
		assert.Equal(t, "error", report.Errors[0].Severity)
		assert.Equal(t, "content mismatch", report.Errors[0].Kind)
		assert.Equal(t, 4, report.Errors[0].Line)
		assert.Equal(t, "Release notes", report.Captures["title"])
	})

	t.Run("yaml", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := runValidate([]string{"-s", schemaPath, "-f", "yaml", inputPath}, nil, &stdout, &stderr)
		require.ErrorIs(t, err, ErrValidationFailed)

		var report map[string]any
		require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &report))
		assert.Equal(t, false, report["valid"])
		assert.Equal(t, 1, report["error_count"])
	})
}

func TestRunValidate_Stdin(t *testing.T) {
	schemaPath, _ := writeFiles(t, testSchema, testInput)

	for _, args := range [][]string{
		{"-s", schemaPath, "-"},
		{"-s", schemaPath, "--stream", "--chunk-size", "3", "-"},
	} {
		t.Run(strings.Join(args[2:], " "), func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := runValidate(args, strings.NewReader(testInput), &stdout, &stderr)
			require.NoError(t, err)
			assert.Contains(t, stderr.String(), "Input: <stdin>")
			assert.Contains(t, stdout.String(), `"Release notes"`)
		})
	}
}

func TestRunValidate_StreamReportsErrors(t *testing.T) {
	schemaPath, inputPath := writeFiles(t, testSchema, badInput)
	var stdout, stderr bytes.Buffer

	err := runValidate([]string{"-s", schemaPath, "--stream", "--chunk-size", "1", "-f", "json", inputPath}, nil, &stdout, &stderr)
	require.ErrorIs(t, err, ErrValidationFailed)

	var report ValidateReport
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
	assert.Equal(t, 1, report.ErrorCount)
}

func TestRunValidate_Verbose(t *testing.T) {
	schemaPath, inputPath := writeFiles(t, testSchema, testInput)
	var stdout, stderr bytes.Buffer

	require.NoError(t, runValidate([]string{"--verbose", "-s", schemaPath, inputPath}, nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "level=DEBUG")
}

func TestRunValidate_UsageErrors(t *testing.T) {
	schemaPath, inputPath := writeFiles(t, testSchema, testInput)

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"no args", []string{}, "exactly one file path"},
		{"missing schema", []string{inputPath}, "requires --schema"},
		{"invalid format", []string{"-s", schemaPath, "--format", "xml", inputPath}, "invalid format"},
		{"bad chunk size", []string{"-s", schemaPath, "--chunk-size", "0", inputPath}, "chunk-size"},
		{"negative depth", []string{"-s", schemaPath, "--max-depth", "-1", inputPath}, "non-negative"},
		{"schema not found", []string{"-s", schemaPath + ".missing", inputPath}, "reading schema"},
		{"input not found", []string{"-s", schemaPath, inputPath + ".missing"}, "reading input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := runValidate(tt.args, nil, &stdout, &stderr)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrValidationFailed)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestHandleValidate_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.NoError(t, runValidate([]string{"--help"}, nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage: mdvalidate validate")
}
