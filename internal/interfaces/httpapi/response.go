package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/tochoprime/league-console/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "league-console"
)

type googleResponseEnvelope struct {
	APIVersion   string           `json:"apiVersion"`
	Data         any              `json:"data,omitempty"`
	Error        *googleErrorBody `json:"error,omitempty"`
	Notification *notification    `json:"notification,omitempty"`
	RedirectTo   string           `json:"redirectTo,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

// errorOptions decorate an error response for the console.
type errorOptions struct {
	notify     *notification
	redirectTo string
}

type errorOption func(*errorOptions)

func withNotification(n notification) errorOption {
	return func(o *errorOptions) { o.notify = &n }
}

func withRedirect(path string) errorOption {
	return func(o *errorOptions) { o.redirectTo = path }
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	if id, ok := requestIDFromContext(ctx); ok {
		w.Header().Set(requestIDHeader, id)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

// writeMutation answers a create/update/delete with the localized toast.
func writeMutation(ctx context.Context, w http.ResponseWriter, status int, data any, n notification) {
	ctx, span := startSpan(ctx, "httpapi.writeMutation")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion:   googleAPIVersion,
		Data:         data,
		Notification: &n,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error, opts ...errorOption) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	var options errorOptions
	for _, opt := range opts {
		opt(&options)
	}

	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: err.Error(),
				},
			},
		},
		Notification: options.notify,
		RedirectTo:   options.redirectTo,
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
		Notification: &notification{Kind: notifyError, Message: "Error inesperado del servidor"},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, usecase.ErrConflict):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "conflict",
			Status:     "FAILED_PRECONDITION",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}
