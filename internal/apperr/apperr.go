// Package apperr holds the typed error kinds the engine reports. Validation
// failures are raised before any write; PartialPublication is the only kind
// that can surface after a side effect.
package apperr

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind string

const (
	KindValidation         Kind = "validation"
	KindImmutableField     Kind = "immutable_field"
	KindPrecondition       Kind = "precondition"
	KindPartialPublication Kind = "partial_publication"
	KindNotFound           Kind = "not_found"
)

type FieldIssue struct {
	Field string `json:"field,omitempty"`
	Issue string `json:"issue,omitempty"`
}

type Error struct {
	Kind    Kind
	Message string
	Details []FieldIssue
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func Validation(message string, details ...FieldIssue) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func ImmutableField(field string) *Error {
	return &Error{
		Kind:    KindImmutableField,
		Message: fmt.Sprintf("%s cannot be changed after creation", field),
		Details: []FieldIssue{{Field: field, Issue: "immutable"}},
	}
}

func Precondition(message string) *Error {
	return &Error{Kind: KindPrecondition, Message: message}
}

// PartialPublication reports a publish sequence that failed between its two
// writes. appliedStage names the write that went through so the pair can be
// reconciled.
func PartialPublication(appliedStage string, cause error) *Error {
	return &Error{
		Kind:    KindPartialPublication,
		Message: fmt.Sprintf("publication partially applied: %s succeeded", appliedStage),
		Details: []FieldIssue{{Field: appliedStage, Issue: "applied"}},
		cause:   cause,
	}
}

func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// KindOf unwraps err looking for an engine error kind.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
