package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/exception"
)

type DecodeRequestFunc func(r *http.Request) (interface{}, error)

type EncodeResponseFunc func(ctx context.Context, w http.ResponseWriter, response interface{}) error

var ErrInvalidRequestBody = exception.ApplicationError{
	Message:    "invalid request body",
	StatusCode: http.StatusBadRequest,
}

// MakeHandlerFunc adapts a go-kit endpoint to an http.HandlerFunc.
func MakeHandlerFunc(endpt endpoint.Endpoint, decode DecodeRequestFunc, encode EncodeResponseFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		request, err := decode(r)
		if err != nil {
			ErrorResponse(ctx, err, w)
			return
		}

		response, err := endpt(ctx, request)
		if err != nil {
			ErrorResponse(ctx, err, w)
			return
		}

		if err := encode(ctx, w, response); err != nil {
			slog.ErrorContext(ctx, "failed to encode response", slog.String("error", err.Error()))
		}
	}
}

// DecodeRequest decodes the request body into a new T and runs its Bind hook.
func DecodeRequest[T any, PT interface {
	*T
	render.Binder
}](r *http.Request) (interface{}, error) {
	request := PT(new(T))

	if err := render.Bind(r, request); err != nil {
		var appErr exception.ApplicationError
		if errors.As(err, &appErr) {
			return nil, err
		}

		return nil, ErrInvalidRequestBody.WithCause(err)
	}

	return request, nil
}
