// Package options provides shared utilities for option validation across packages.
package options

import "github.com/404Wolf/mdvalidate-sub001/mderrors"

// ValidateSingleInputSource ensures exactly one source is specified for a document.
// option names the document ("schema" or "input") in the returned error.
// sources is a variadic list of booleans indicating whether each source is set.
// noSourceMsg is the error message when no source is specified.
// multiSourceMsg is the error message when multiple sources are specified.
// Returns a *mderrors.ConfigError if zero or more than one source is specified.
func ValidateSingleInputSource(option, noSourceMsg, multiSourceMsg string, sources ...bool) error {
	sourceCount := 0
	for _, hasSource := range sources {
		if hasSource {
			sourceCount++
		}
	}

	if sourceCount == 0 {
		return &mderrors.ConfigError{Option: option, Message: noSourceMsg}
	}
	if sourceCount > 1 {
		return &mderrors.ConfigError{Option: option, Message: multiSourceMsg}
	}

	return nil
}
