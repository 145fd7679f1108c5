package types

import "fmt"

// CustomError carries an HTTP status and a machine-readable type through
// the fiber error handler.
type CustomError struct {
	Code    int
	Message string
	Type    string
}

// NewCustomError builds a CustomError with a formatted message
func NewCustomError(code int, errType, format string, args ...interface{}) *CustomError {
	return &CustomError{
		Code:    code,
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s (%s %d)", e.Message, e.Type, e.Code)
}
