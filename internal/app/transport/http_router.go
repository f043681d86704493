package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/ijalalfrz/award-flight-recommender/internal/app/config"
	"github.com/ijalalfrz/award-flight-recommender/internal/app/dto"
	"github.com/ijalalfrz/award-flight-recommender/internal/app/endpoints"
	httptransport "github.com/ijalalfrz/award-flight-recommender/internal/pkg/transport/http"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
	limiter httptransport.RateLimiter,
) *chi.Mux {
	// Initialize Router
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1/recommendations", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.CORSMiddleware(cfg.HTTP.AllowedOrigins),
			httptransport.Recoverer(slog.Default()),
			httptransport.RateLimit(limiter, cfg.HTTP.RateLimitRPS),
			render.SetContentType(render.ContentTypeJSON),
		)

		router.Post("/", httptransport.MakeHandlerFunc(
			endpts.RecommendationEndpoint.Recommend,
			httptransport.DecodeRequest[dto.SearchRequest],
			httptransport.ResponseWithBody,
		))
	})

	return router
}
