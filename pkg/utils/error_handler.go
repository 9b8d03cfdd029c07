package utils

import "fmt"

// ErrorHandler logs err under message and returns the wrapped error,
// so call sites can log and propagate in one line. A nil err passes
// through untouched.
func ErrorHandler(err error, message string) error {
	if err == nil {
		return nil
	}
	Logger.WithError(err).Error(message)
	return fmt.Errorf("%s: %w", message, err)
}
