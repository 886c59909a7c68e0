package utils

import (
	"errors"
	"fmt"
)

// ConvertPanicValueToError converts a value recovered from a panic to an error.
func ConvertPanicValueToError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}

	return fmt.Errorf("%#v", v)
}

// CombineErrors combines errors into a single error with a multiline message, nil errors are ignored.
// CombineErrors returns nil if all errors are nil. The combined error matches each of the errors (errors.Is, errors.As).
func CombineErrors(errs ...error) error {
	return errors.Join(errs...)
}

// CombineErrorsWithPrefixMessage combines errors into a single error with a multiline message.
func CombineErrorsWithPrefixMessage(prefixMsg string, errs ...error) error {
	err := CombineErrors(errs...)
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", prefixMsg, err)
}
