package service

import (
	"net/http"

	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/exception"
)

var ErrAuthenticationFailed = exception.ApplicationError{
	Message:    "failed to authenticate with fare source",
	StatusCode: http.StatusBadGateway,
}

// ErrNoOffersMatched is surfaced as the single element of an otherwise empty
// recommendation list, not as an error response.
var ErrNoOffersMatched = exception.ApplicationError{
	Message:    "no offers matched preferences",
	StatusCode: http.StatusOK,
}
