package handler

import (
	"errors"

	"github.com/snuhangout/api/internal/model"
	"github.com/snuhangout/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// Every handler funnels service failures through here so the same sentinel
// always produces the same status code.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotConnectionRecipient):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrProfileNotFound):
		return model.NewNotFoundError("dating profile")
	case errors.Is(err, service.ErrTargetProfileNotFound):
		return model.NewNotFoundError("target dating profile")
	case errors.Is(err, service.ErrConnectionNotFound):
		return model.NewNotFoundError("connection request")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrProfileIncomplete):
		return model.NewProfileIncompleteError(err.Error())
	case errors.Is(err, service.ErrConnectionExists):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrUnknownQuestion),
		errors.Is(err, service.ErrInvalidAnswer):
		return model.NewValidationError(answerFieldErrors(err))

	case errors.Is(err, service.ErrCannotConnectSelf):
		return model.NewValidationError([]model.FieldError{{Field: "to_user_id", Message: err.Error()}})

	// State errors → 422
	case errors.Is(err, service.ErrConnectionNotPending),
		errors.Is(err, service.ErrInvalidConnectionState):
		return model.NewValidationError([]model.FieldError{{Field: "state", Message: err.Error()}})

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}

// answerFieldErrors reports each rejected answer as its own field error
func answerFieldErrors(err error) []model.FieldError {
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}

	fields := make([]model.FieldError, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, model.FieldError{Field: "answers", Message: e.Error()})
	}
	return fields
}
