package diag

import (
	"errors"
	"fmt"
)

// Error carries a fatal diagnostic through ordinary Go error returns.
type Error struct {
	Diag Diagnostic
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Diag.Code.ID(), e.Diag.Message)
}

// AsError wraps d as an error.
func AsError(d Diagnostic) error {
	return &Error{Diag: d}
}

// CodeOf extracts the diagnostic code from err, or UnknownCode.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Diag.Code
	}
	return UnknownCode
}
