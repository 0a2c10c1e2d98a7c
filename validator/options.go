package validator

import (
	"fmt"
	"io"

	"github.com/404Wolf/mdvalidate-sub001/internal/options"
	"github.com/404Wolf/mdvalidate-sub001/mderrors"
)

// Option is a function that configures a validation operation
type Option func(*config) error

// config holds configuration for a validation session or a one-shot call
type config struct {
	schemaFilePath *string
	schemaText     *string

	inputFilePath *string
	inputText     *string
	inputReader   io.Reader

	logger       Logger
	maxListDepth int
	normalize    bool
}

// applyOptions applies option functions and returns the configuration.
// Sources are not checked here; see requireSources.
func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		logger: NopLogger{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// requireSources ensures exactly one schema source and one input source are set.
func (cfg *config) requireSources() error {
	if err := options.ValidateSingleInputSource(
		"schema",
		"must specify a schema source (WithSchemaFilePath or WithSchemaText)",
		"must specify exactly one schema source",
		cfg.schemaFilePath != nil, cfg.schemaText != nil,
	); err != nil {
		return err
	}
	return options.ValidateSingleInputSource(
		"input",
		"must specify an input source (WithInputFilePath, WithInputText, or WithInputReader)",
		"must specify exactly one input source",
		cfg.inputFilePath != nil, cfg.inputText != nil, cfg.inputReader != nil,
	)
}

// WithSchemaFilePath reads the schema document from a file
func WithSchemaFilePath(path string) Option {
	return func(cfg *config) error {
		cfg.schemaFilePath = &path
		return nil
	}
}

// WithSchemaText uses the given text as the schema document
func WithSchemaText(schema string) Option {
	return func(cfg *config) error {
		cfg.schemaText = &schema
		return nil
	}
}

// WithInputFilePath reads the input document from a file
func WithInputFilePath(path string) Option {
	return func(cfg *config) error {
		cfg.inputFilePath = &path
		return nil
	}
}

// WithInputText uses the given text as the input document
func WithInputText(input string) Option {
	return func(cfg *config) error {
		cfg.inputText = &input
		return nil
	}
}

// WithInputReader reads the input document from r until EOF
func WithInputReader(r io.Reader) Option {
	return func(cfg *config) error {
		if r == nil {
			return &mderrors.ConfigError{Option: "input reader", Message: "reader is nil"}
		}
		cfg.inputReader = r
		return nil
	}
}

// WithLogger sets the structured logger.
// Default: NopLogger (no logging)
func WithLogger(l Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			l = NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}

// WithMaxListDepth caps how many list levels may nest below a top-level list.
// A matcher's own depth cap still applies when it is tighter.
// Default: 0 (unlimited)
func WithMaxListDepth(depth int) Option {
	return func(cfg *config) error {
		if depth < 0 {
			return &mderrors.ConfigError{
				Option:  "max list depth",
				Value:   depth,
				Message: fmt.Sprintf("must be non-negative, got %d", depth),
			}
		}
		cfg.maxListDepth = depth
		return nil
	}
}

// WithNormalizeUnicode enables NFC normalisation of input text before parsing.
// Default: false
func WithNormalizeUnicode(enabled bool) Option {
	return func(cfg *config) error {
		cfg.normalize = enabled
		return nil
	}
}
