package validator

import (
	"fmt"
	"io"
	"os"
)

// ValidateWithOptions validates a complete input document against a schema
// in one call, using functional options for configuration.
//
// Exactly one schema source and one input source are required.
//
// Example:
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithSchemaFilePath("schema.md"),
//	    validator.WithInputFilePath("README.md"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Valid(), result.Value)
func ValidateWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid options: %w", err)
	}
	if err := cfg.requireSources(); err != nil {
		return nil, fmt.Errorf("validator: invalid options: %w", err)
	}

	schema, err := cfg.loadSchema()
	if err != nil {
		return nil, err
	}
	input, err := cfg.loadInput()
	if err != nil {
		return nil, err
	}

	// The options were already applied; hand the session a copy of the result.
	state, err := New(schema, func(c *config) error {
		*c = *cfg
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := state.ReadInput(input, true); err != nil {
		return nil, err
	}
	return state.Validate(), nil
}

func (cfg *config) loadSchema() (string, error) {
	if cfg.schemaText != nil {
		return *cfg.schemaText, nil
	}
	data, err := os.ReadFile(*cfg.schemaFilePath)
	if err != nil {
		return "", fmt.Errorf("validator: failed to read schema: %w", err)
	}
	cfg.logger.Debug("read schema file", "path", *cfg.schemaFilePath, "bytes", len(data))
	return string(data), nil
}

func (cfg *config) loadInput() (string, error) {
	switch {
	case cfg.inputText != nil:
		return *cfg.inputText, nil
	case cfg.inputReader != nil:
		data, err := io.ReadAll(cfg.inputReader)
		if err != nil {
			return "", fmt.Errorf("validator: failed to read input: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(*cfg.inputFilePath)
		if err != nil {
			return "", fmt.Errorf("validator: failed to read input: %w", err)
		}
		cfg.logger.Debug("read input file", "path", *cfg.inputFilePath, "bytes", len(data))
		return string(data), nil
	}
}
