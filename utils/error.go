package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ValidationError reports bad or missing caller input. Surfaced as HTTP 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a referenced local record being absent. Surfaced as HTTP 404.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// ConflictError reports an external record already being in the requested
// target state. The finalizer treats it as success; at the HTTP boundary it
// maps to 409.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// SignatureError reports a webhook signature mismatch. Surfaced as HTTP 400
// and never dispatched.
type SignatureError struct {
	Cause error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("webhook signature verification failed: %v", e.Cause)
}

func (e *SignatureError) Unwrap() error { return e.Cause }

// UpstreamError reports a non-2xx or network failure from an external SaaS.
// Status is the upstream HTTP status, or 0 for transport-level failures.
// Retryable by callers that own an idempotent sequence.
type UpstreamError struct {
	Service string
	Status  int
	Body    string
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s request failed: %s", e.Service, e.Body)
	}
	return fmt.Sprintf("%s returned %d: %s", e.Service, e.Status, e.Body)
}

// HTTPStatus maps a taxonomy error to the status a route handler should
// respond with. Unknown errors default to 500.
func HTTPStatus(err error) int {
	var (
		ve *ValidationError
		nf *NotFoundError
		ce *ConflictError
		se *SignatureError
		ue *UpstreamError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &se):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ce):
		return http.StatusConflict
	case errors.As(err, &ue):
		if ue.Status >= 400 {
			return ue.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// IsRetryable reports whether re-invoking the failed operation can succeed.
// Only upstream outages qualify; validation, signature, and not-found
// failures are terminal.
func IsRetryable(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError translates a taxonomy error into the uniform {error, details}
// body at the route boundary.
func RespondError(c *gin.Context, err error, message string) {
	JSONError(c, HTTPStatus(err), message, err.Error())
}
