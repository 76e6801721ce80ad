// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeMissingSource,
//	    "failed to read trait table",
//	    readErr,
//	    map[string]any{
//	        "path": path,
//	    },
//	)
//
// Callers that only need the classification use CodeOf or HasCode:
//
//	if errors.HasCode(err, errors.ErrCodeParse) {
//	    // report the offending script line
//	}
package errors
