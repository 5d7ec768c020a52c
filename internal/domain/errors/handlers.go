package errors

import "homiio/internal/errors"

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "MISSING_COORDINATES"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Detailed error information (optional)
}

// NewErrorInfo flattens err into an ErrorInfo. Errors that are not AppErrors
// are reported as INTERNAL_ERROR with the raw message as details.
func NewErrorInfo(err error) *ErrorInfo {
	if err == nil {
		return nil
	}

	var appErr AppError
	if errors.As(err, &appErr) {
		info := &ErrorInfo{
			Code:    appErr.ErrorCode(),
			Message: appErr.Message(),
		}
		if details := appErr.Details(); details != "" {
			info.Details = details
		}

		return info
	}

	return &ErrorInfo{
		Code:    ErrInternalError.ErrorCode(),
		Message: ErrInternalError.Message(),
		Details: err.Error(),
	}
}
