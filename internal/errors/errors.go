package errors

import "net/http"

// APIError is a client-facing failure with an HTTP status and the stable
// numeric code the API has always reported alongside it.
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

var (
	ErrNameTooShort = &APIError{
		Status:  http.StatusBadRequest,
		Code:    110,
		Message: "Name must be at least 3 characters long.",
	}
	ErrInvalidEmail = &APIError{
		Status:  http.StatusBadRequest,
		Code:    111,
		Message: "Please provide a valid email address.",
	}
	ErrInvalidBody = &APIError{
		Status:  http.StatusBadRequest,
		Code:    103,
		Message: "Invalid request body.",
	}
	ErrEmailAlreadyInUse = &APIError{
		Status:  http.StatusBadRequest,
		Code:    101,
		Message: "Student already exists with this email.",
	}
	ErrPasswordTooShort = &APIError{
		Status:  http.StatusBadRequest,
		Code:    112,
		Message: "Password must be at least 6 characters long.",
	}
	ErrStudentEmailNotFound = &APIError{
		Status:  http.StatusNotFound,
		Code:    113,
		Message: "Student with this email does not exist.",
	}
	ErrIncorrectPassword = &APIError{
		Status:  http.StatusUnauthorized,
		Code:    114,
		Message: "Incorrect password. Please check and try again.",
	}
	ErrInvalidPagination = &APIError{
		Status:  http.StatusBadRequest,
		Code:    107,
		Message: "Invalid pagination parameters. Page and limit must be positive integers.",
	}
	ErrPageNotFound = &APIError{
		Status:  http.StatusNotFound,
		Code:    108,
		Message: "Page not found. Requested page exceeds total number of pages.",
	}
	ErrStudentNotFound = &APIError{
		Status:  http.StatusNotFound,
		Code:    104,
		Message: "Student not found",
	}
	ErrWeakPassword = &APIError{
		Status: http.StatusBadRequest,
		Code:   109,
		Message: "Password must contain at least 8 characters, an uppercase letter, " +
			"a lowercase letter, a number, and a special character",
	}
	ErrRefreshTokenRequired = &APIError{
		Status:  http.StatusBadRequest,
		Code:    105,
		Message: "Refresh token is required. Please provide the refresh token.",
	}
)

// InvalidField reports a profile field that failed validation. These share one
// numeric code; the message names the offending field.
func InvalidField(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    115,
		Message: message,
	}
}

// InvalidRefreshToken wraps the verification failure so the refresh endpoint
// can surface the underlying reason, as the API always has.
func InvalidRefreshToken(cause error) *APIError {
	return &APIError{
		Status:  http.StatusForbidden,
		Code:    106,
		Message: "Invalid or expired refresh token. Error: " + cause.Error(),
	}
}
