package failure

import (
	"errors"
	"net/http"

	"locally/shared/constant"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// RedirectTo, when set, names the client route the caller should be sent to.
type Failure struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// SignInRequired is an Unauthorized failure that sends the client to the credential entry route.
func SignInRequired(msg string) error {
	return &Failure{
		Code:       http.StatusUnauthorized,
		Message:    msg,
		RedirectTo: constant.RouteAuth,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// AccessDenied is a Forbidden failure that sends the client back home with a notice.
func AccessDenied(msg string) error {
	return &Failure{
		Code:       http.StatusForbidden,
		Message:    msg,
		RedirectTo: constant.RouteHome,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetRedirect returns the redirect hint of an error interface, if any.
func GetRedirect(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.RedirectTo
	}

	return constant.Empty
}
