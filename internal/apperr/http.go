package apperr

import (
	"net/http"

	"github.com/pkg/errors"
)

// Payload is the wire shape for failed requests.
type Payload struct {
	Message string       `json:"message"`
	TraceID string       `json:"traceId,omitempty"`
	Details []FieldIssue `json:"details,omitempty"`
}

func Status(err error) int {
	switch k, _ := KindOf(err); k {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindImmutableField, KindPrecondition:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindPartialPublication:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func ToPayload(err error, traceID string) Payload {
	var e *Error
	if errors.As(err, &e) {
		return Payload{Message: e.Message, TraceID: traceID, Details: e.Details}
	}
	return Payload{Message: "internal server error", TraceID: traceID}
}
