// Package mderrors provides structured error types for mdvalidate.
//
// Import path: github.com/404Wolf/mdvalidate-sub001/mderrors
//
// Validation problems are accumulated as values in a validation result rather
// than returned as call errors. The types in this package let callers tell the
// categories apart with [errors.Is] and [errors.As].
//
// # Error Types
//
//   - [SchemaError]: the schema document itself is unusable
//   - [SchemaViolationError]: the input disagrees with an otherwise valid schema
//   - [ParseError]: a document could not be turned into a parse tree
//   - [ConfigError]: invalid options or session misuse
//
// # Sentinel Errors
//
//   - [ErrSchema]: Matches any [SchemaError]
//   - [ErrUnsupported]: Matches [SchemaError] with Kind=[Unsupported]
//   - [ErrSchemaViolation]: Matches any [SchemaViolationError]
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage
//
//	for _, err := range result.Errors {
//	    var v *mderrors.SchemaViolationError
//	    if errors.As(err, &v) && v.Kind == mderrors.WrongListCount {
//	        fmt.Printf("expected %s items, got %d\n", v.ExpectedCount, v.ActualCount)
//	    }
//	}
package mderrors
