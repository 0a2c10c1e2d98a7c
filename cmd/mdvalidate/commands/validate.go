package commands

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	mdvalidate "github.com/404Wolf/mdvalidate-sub001"
	"github.com/404Wolf/mdvalidate-sub001/internal/cliutil"
	"github.com/404Wolf/mdvalidate-sub001/validator"
)

// defaultChunkSize is how many bytes --stream reads per validation pass.
const defaultChunkSize = 4096

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Schema    string
	Format    string
	Quiet     bool
	MaxDepth  int
	NFC       bool
	Stream    bool
	ChunkSize int
	NoColor   bool
	Verbose   bool
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.Schema, "schema", "", "schema markdown file (required)")
	fs.StringVar(&flags.Schema, "s", "", "schema markdown file (required)")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Format, "f", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output captures, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output captures, no diagnostic messages")
	fs.IntVar(&flags.MaxDepth, "max-depth", 0, "maximum list nesting depth below a top-level list (0 = unlimited)")
	fs.BoolVar(&flags.NFC, "nfc", false, "normalize input to Unicode NFC before validating")
	fs.BoolVar(&flags.Stream, "stream", false, "validate the input incrementally as it is read")
	fs.IntVar(&flags.ChunkSize, "chunk-size", defaultChunkSize, "bytes read per validation pass with --stream")
	fs.BoolVar(&flags.NoColor, "no-color", false, "disable coloured output")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log validation steps to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: mdvalidate validate [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Validate a markdown document, or stdin, against a markdown schema.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nOutput Formats:\n")
		cliutil.Writef(fs.Output(), "  text (default)  Human-readable report on stderr, captures as JSON on stdout\n")
		cliutil.Writef(fs.Output(), "  json            JSON report for programmatic processing\n")
		cliutil.Writef(fs.Output(), "  yaml            YAML report for programmatic processing\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  mdvalidate validate --schema schema.md README.md\n")
		cliutil.Writef(fs.Output(), "  mdvalidate validate -s schema.md --max-depth 2 notes.md\n")
		cliutil.Writef(fs.Output(), "  generate-report | mdvalidate validate -s schema.md --stream -\n")
		cliutil.Writef(fs.Output(), "  mdvalidate validate -s schema.md --format json README.md | jq '.captures'\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Validation successful\n")
		cliutil.Writef(fs.Output(), "  1    Validation failed with errors\n")
	}

	return fs, flags
}

// ValidateReport is the structured (json/yaml) form of a validation.
type ValidateReport struct {
	Valid      bool           `json:"valid"       yaml:"valid"`
	Schema     string         `json:"schema"      yaml:"schema"`
	Input      string         `json:"input"       yaml:"input"`
	ErrorCount int            `json:"error_count" yaml:"error_count"`
	Captures   map[string]any `json:"captures"    yaml:"captures"`
	Errors     []ReportIssue  `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// ReportIssue is one error of a ValidateReport.
type ReportIssue struct {
	Severity   string `json:"severity"              yaml:"severity"`
	Kind       string `json:"kind,omitempty"        yaml:"kind,omitempty"`
	Path       string `json:"path,omitempty"        yaml:"path,omitempty"`
	Message    string `json:"message"               yaml:"message"`
	Line       int    `json:"line,omitempty"        yaml:"line,omitempty"`
	Column     int    `json:"column,omitempty"      yaml:"column,omitempty"`
	SchemaLine int    `json:"schema_line,omitempty" yaml:"schema_line,omitempty"`
	Expected   string `json:"expected,omitempty"    yaml:"expected,omitempty"`
	Actual     string `json:"actual,omitempty"      yaml:"actual,omitempty"`
	Diff       string `json:"diff,omitempty"        yaml:"diff,omitempty"`
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	return runValidate(args, os.Stdin, os.Stdout, os.Stderr)
}

func runValidate(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, flags := SetupValidateFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path or '-' for stdin")
	}
	inputPath := fs.Arg(0)

	// Check flags early to fail fast before reading anything
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if flags.Schema == "" {
		return fmt.Errorf("validate command requires --schema")
	}
	if flags.ChunkSize <= 0 {
		return fmt.Errorf("invalid chunk-size %d: must be positive", flags.ChunkSize)
	}

	schema, err := os.ReadFile(flags.Schema)
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}

	opts := []validator.Option{
		validator.WithMaxListDepth(flags.MaxDepth),
		validator.WithNormalizeUnicode(flags.NFC),
	}
	if flags.Verbose {
		handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, validator.WithLogger(validator.NewSlogAdapter(slog.New(handler)).With("schema", flags.Schema)))
	}

	var input io.Reader = stdin
	if inputPath != StdinFilePath {
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		defer func() { _ = f.Close() }()
		input = f
	}

	startTime := time.Now()
	var result *validator.Result
	if flags.Stream {
		result, err = validateStream(string(schema), input, flags.ChunkSize, opts)
	} else {
		opts = append(opts, validator.WithSchemaText(string(schema)), validator.WithInputReader(input))
		result, err = validator.ValidateWithOptions(opts...)
	}
	if err != nil {
		return fmt.Errorf("validating %s: %w", FormatInputPath(inputPath), err)
	}
	totalTime := time.Since(startTime)

	issues := result.Issues()
	if inputPath != StdinFilePath {
		for i := range issues {
			issues[i].File = inputPath
		}
	}

	// Handle structured output formats
	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		report := ValidateReport{
			Valid:      result.Valid(),
			Schema:     flags.Schema,
			Input:      FormatInputPath(inputPath),
			ErrorCount: len(result.Errors),
			Captures:   result.Value,
		}
		for _, iss := range issues {
			report.Errors = append(report.Errors, ReportIssue{
				Severity:   iss.Severity.String(),
				Kind:       iss.Kind,
				Path:       iss.Path,
				Message:    iss.Message,
				Line:       iss.Line,
				Column:     iss.Column,
				SchemaLine: iss.SchemaLine,
				Expected:   iss.Expected,
				Actual:     iss.Actual,
				Diff:       iss.Diff,
			})
		}
		if err := OutputStructured(stdout, report, flags.Format); err != nil {
			return err
		}
		if !result.Valid() {
			return ErrValidationFailed
		}
		return nil
	}

	// Text format: report on stderr, captures on stdout
	palette := cliutil.NewPalette(stderr, flags.NoColor)
	if !flags.Quiet {
		cliutil.Writef(stderr, "Markdown Schema Validator\n")
		cliutil.Writef(stderr, "=========================\n\n")
		cliutil.Writef(stderr, "mdvalidate version: %s\n", mdvalidate.Version())
		cliutil.Writef(stderr, "Schema: %s\n", flags.Schema)
		cliutil.Writef(stderr, "Input: %s\n", FormatInputPath(inputPath))
		cliutil.Writef(stderr, "Total Time: %v\n\n", totalTime)

		if len(issues) > 0 {
			cliutil.Writef(stderr, "Errors (%d):\n", len(issues))
			for _, iss := range issues {
				line := iss.String()
				if iss.IsFatal() {
					line = palette.Warn.Sprint(line)
				} else {
					line = palette.Fail.Sprint(line)
				}
				cliutil.Writef(stderr, "  %s\n", strings.ReplaceAll(line, "\n", "\n  "))
			}
			cliutil.Writef(stderr, "\n")
		}
	}

	if len(result.Value) > 0 {
		if err := OutputStructured(stdout, result.Value, FormatJSON); err != nil {
			return err
		}
	}

	if !flags.Quiet {
		if result.Valid() {
			cliutil.Writef(stderr, "%s\n", palette.OK.Sprint("✓ Validation passed"))
		} else {
			cliutil.Writef(stderr, "%s\n", palette.Fail.Sprintf("✗ Validation failed: %d error(s)", len(result.Errors)))
		}
	}

	if !result.Valid() {
		return ErrValidationFailed
	}
	return nil
}

// validateStream feeds input to a validation session chunkSize bytes at a
// time, validating after every chunk, and marks end of input once the
// reader is drained.
func validateStream(schema string, input io.Reader, chunkSize int, opts []validator.Option) (*validator.Result, error) {
	state, err := validator.New(schema, opts...)
	if err != nil {
		return nil, err
	}

	r := bufio.NewReaderSize(input, chunkSize)
	buf := make([]byte, chunkSize)
	var text strings.Builder
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			text.Write(buf[:n])
			if err := state.ReadInput(text.String(), false); err != nil {
				return nil, err
			}
			state.Validate()
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("reading input: %w", readErr)
		}
	}

	if err := state.ReadInput(text.String(), true); err != nil {
		return nil, err
	}
	return state.Validate(), nil
}
