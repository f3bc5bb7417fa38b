// Package repository translates each domain's HTTP operations into the
// tri-state result every screen consumes: Loading, then exactly one of
// Success or Error. No retries, no caching, no deduplication; each call is
// independent.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/smarteval/smarteval-go/pkg/errors"
)

// State discriminates the three Resource cases.
type State int

const (
	StateLoading State = iota
	StateSuccess
	StateError
)

const genericErrorMessage = "An unexpected error occurred"

// Resource is a tagged tri-state value. Exactly one case holds at a time;
// the zero value is Loading.
type Resource[T any] struct {
	state   State
	value   T
	message string
}

// Loading marks an operation in flight.
func Loading[T any]() Resource[T] {
	return Resource[T]{state: StateLoading}
}

// Success wraps a terminal payload.
func Success[T any](value T) Resource[T] {
	return Resource[T]{state: StateSuccess, value: value}
}

// Failure wraps a terminal user-facing message, never empty.
func Failure[T any](message string) Resource[T] {
	if message == "" {
		message = genericErrorMessage
	}
	return Resource[T]{state: StateError, message: message}
}

// State returns the case discriminator.
func (r Resource[T]) State() State { return r.state }

// IsLoading reports the in-flight case.
func (r Resource[T]) IsLoading() bool { return r.state == StateLoading }

// IsSuccess reports the terminal success case.
func (r Resource[T]) IsSuccess() bool { return r.state == StateSuccess }

// IsError reports the terminal failure case.
func (r Resource[T]) IsError() bool { return r.state == StateError }

// Value returns the payload; meaningful only when IsSuccess.
func (r Resource[T]) Value() T { return r.value }

// Message returns the failure message; meaningful only when IsError.
func (r Resource[T]) Message() string { return r.message }

// emit runs one operation and streams Loading followed by exactly one
// terminal result, then closes. The channel is buffered so a slow consumer
// never blocks emission.
func emit[T any](ctx context.Context, fallback string, op func(context.Context) (T, error)) <-chan Resource[T] {
	out := make(chan Resource[T], 2)
	go func() {
		defer close(out)
		out <- Loading[T]()

		value, err := op(ctx)
		if err != nil {
			out <- Failure[T](resolveMessage(err, fallback))
			return
		}
		out <- Success(value)
	}()
	return out
}

// resolveMessage picks the user-facing text: server-supplied message first,
// then the operation fallback, then the transport error text, then a
// generic line. Validation and storage failures carry their own message.
func resolveMessage(err error, fallback string) string {
	e := appErrors.FromError(err)
	if e == nil {
		return genericErrorMessage
	}

	switch e.Code {
	case appErrors.CodeValidation, appErrors.CodeStorage:
		if e.Message != "" {
			return e.Message
		}
	case appErrors.CodeServer, appErrors.CodeUnauth:
		if e.Message != "" {
			return e.Message
		}
	}

	if fallback != "" {
		return fallback
	}
	if e.Err != nil && e.Err.Error() != "" {
		return e.Err.Error()
	}
	return genericErrorMessage
}

// validationError converts the first struct-tag failure into an inline
// message so the action is blocked before any network call.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return appErrors.Validation(genericErrorMessage)
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return appErrors.Validation(field + " is required")
	case "email":
		return appErrors.Validation(field + " must be a valid email address")
	case "min":
		return appErrors.Validation(field + " is too short")
	case "oneof":
		return appErrors.Validation(field + " has an unsupported value")
	default:
		return appErrors.Validation(field + " is invalid")
	}
}
