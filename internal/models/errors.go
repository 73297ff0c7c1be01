package models

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError rejects user input before anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// ValidationErrors collects field errors from one input.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// OrNil returns nil for an empty list so callers can `return errs.OrNil()`.
func (e ValidationErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// IsValidation reports whether err is, or wraps, a validation failure.
func IsValidation(err error) bool {
	var one *ValidationError
	var many ValidationErrors
	return errors.As(err, &one) || errors.As(err, &many)
}

// FieldMessage returns the message for field, or "".
func FieldMessage(err error, field string) string {
	var many ValidationErrors
	if errors.As(err, &many) {
		for _, v := range many {
			if v.Field == field {
				return v.Message
			}
		}
	}
	var one *ValidationError
	if errors.As(err, &one) && one.Field == field {
		return one.Message
	}
	return ""
}
