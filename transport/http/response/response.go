package response

import (
	"encoding/json"
	"net/http"

	"locally/shared/constant"
	"locally/shared/failure"
	"locally/shared/logger"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

// Error is the body of every failed request. RedirectTo names the client route to move to,
// Input echoes what the caller submitted so a form can be refilled.
type Error struct {
	Error      *string `json:"error,omitempty"`
	RedirectTo *string `json:"redirect_to,omitempty"`
	Input      any     `json:"input,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError sends a response with an error message
func WithError(writer http.ResponseWriter, err error) {
	WithErrorInput(writer, err, nil)
}

// WithErrorInput sends an error response that carries back the submitted input.
func WithErrorInput(writer http.ResponseWriter, err error, input any) {
	code := failure.GetCode(err)
	errMsg := err.Error()

	body := Error{Error: &errMsg, Input: input}

	if redirect := failure.GetRedirect(err); redirect != constant.Empty {
		body.RedirectTo = &redirect
	}

	response(writer, code, body)
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
