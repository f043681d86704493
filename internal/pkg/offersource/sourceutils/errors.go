package sourceutils

import (
	"net/http"

	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/exception"
)

var ErrSourceInternalError = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "source internal error or temporary unavailable",
}

var ErrSourceUnauthorized = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "source rejected credentials",
}

var ErrSourceBadRequest = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "source rejected request",
}

var ErrSourceRateLimitExceeded = exception.ApplicationError{
	StatusCode: http.StatusTooManyRequests,
	Message:    "source rate limit exceeded",
}
