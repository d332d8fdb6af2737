package server

import (
	"errors"

	"github.com/localrivet/edmundson/internal/errortypes"
)

// ErrorResponse describes a failed tool call. Tool responses carry the
// status, code and message in-band.
type ErrorResponse struct {
	Status  string                 `json:"status"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error response codes
const (
	StatusCodeValidationError = "VALIDATION_ERROR"
	StatusCodeConfigError     = "CONFIG_ERROR"
	StatusCodeDatabaseError   = "DATABASE_ERROR"
	StatusCodeNotFound        = "NOT_FOUND"
	StatusCodeInternalError   = "INTERNAL_ERROR"
	StatusCodeUnknownError    = "UNKNOWN_ERROR"
)

// errorToResponse converts an error to a standardized ErrorResponse
func errorToResponse(err error) ErrorResponse {
	resp := ErrorResponse{
		Status:  "error",
		Code:    StatusCodeUnknownError,
		Message: err.Error(),
	}

	var appErr *errortypes.AppError
	if !errors.As(err, &appErr) {
		return resp
	}

	resp.Details = appErr.Fields
	switch appErr.Type {
	case errortypes.ErrorTypeValidation:
		resp.Code = StatusCodeValidationError
	case errortypes.ErrorTypeConfig:
		resp.Code = StatusCodeConfigError
	case errortypes.ErrorTypeDatabase:
		resp.Code = StatusCodeDatabaseError
	case errortypes.ErrorTypeNotFound:
		resp.Code = StatusCodeNotFound
	case errortypes.ErrorTypeInternal:
		resp.Code = StatusCodeInternalError
	}
	return resp
}
