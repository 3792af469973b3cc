package serverutils

import (
	"lendhub-be/internal/pkg/apperror"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

func SuccessResponse(message string, data interface{}) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) Response {
	return Response{
		Success: false,
		Message: message,
	}
}

// ValidationErrorResponse surfaces every collected field error so the caller
// can correct all fields in one pass.
func ValidationErrorResponse(message string, errs []string) Response {
	return Response{
		Success: false,
		Message: message,
		Errors:  errs,
	}
}

// FromAppError builds the error body for a pipeline failure. Authorization
// failures stay generic on purpose.
func FromAppError(err error) Response {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return ValidationErrorResponse("Validation failed", apperror.FieldErrors(err))
	case apperror.KindUnauthenticated:
		return ErrorResponse(401, "Authentication required")
	case apperror.KindForbidden:
		return ErrorResponse(403, "You do not have permission to perform this action")
	case apperror.KindNotFound:
		return ErrorResponse(404, "Resource not found")
	case apperror.KindConflict:
		return ErrorResponse(409, "The record was modified by someone else, reload and retry")
	case apperror.KindTransactional:
		return ErrorResponse(500, "The operation could not be completed, no changes were applied. Please retry")
	default:
		return ErrorResponse(500, "Unexpected server error")
	}
}
