package quiz

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or out-of-range input. The operation has
// no side effect when this is returned.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an absent quiz, question or result.
type NotFoundError struct {
	Kind string // "quiz" | "question" | "result"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// ConflictError reports a duplicate answer submission. The first submission's
// record stays untouched.
type ConflictError struct {
	QuizID     string
	UserID     string
	QuestionID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("question %q already answered by user %q in quiz %q", e.QuestionID, e.UserID, e.QuizID)
}

// StoreError wraps a backend failure with the operation and key it hit.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// IsTransient reports whether err is a backend failure worth retrying, as
// opposed to a validation, not-found or conflict outcome.
func IsTransient(err error) bool {
	var s *StoreError
	return errors.As(err, &s)
}

func storeErr(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Key: key, Err: err}
}
