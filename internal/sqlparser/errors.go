package sqlparser

import "errors"

// SyntaxError reports a query that cannot be parsed, such as a missing
// SELECT or FROM clause. It propagates unmodified to the caller, which
// surfaces it as a client-facing query error.
type SyntaxError struct {
	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return e.Msg
}

// IsSyntaxError reports whether the error is a SyntaxError.
// Uses errors.As to handle wrapped errors.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}
