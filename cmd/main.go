package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-redis/redis_rate/v10"
	"github.com/ijalalfrz/award-flight-recommender/internal/app/config"
	"github.com/ijalalfrz/award-flight-recommender/internal/app/dto"
	"github.com/ijalalfrz/award-flight-recommender/internal/app/endpoints"
	"github.com/ijalalfrz/award-flight-recommender/internal/app/service"
	"github.com/ijalalfrz/award-flight-recommender/internal/app/transport"
	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/auth"
	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/logger"
	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offer"
	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offersource"
	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offersource/amadeus"
	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offersource/seatsaero"
	"github.com/redis/go-redis/v9"
)

// @title           Award Flight Recommender API
// @version         0.0.1
// @description     award-flight-recommender
// @host      localhost:8080
// @BasePath  /
// @license.name Rizal Alfarizi
// @license.url https://github.com/ijalalfrz
func main() {

	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel)

	slog.Debug("config loaded successfully", slog.Any("config", cfg))
	runApp(cfg)
}

func runApp(cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	var waitGroup sync.WaitGroup
	// Starts the server in a go routine
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		startHTTPServer(ctx, cfg)
	}()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-sigChannel:
		cancel()
		slog.InfoContext(ctx, "received OS signal. Exiting...", slog.String("signal", sig.String()))
	case <-ctx.Done():
		slog.ErrorContext(ctx, "failed to start HTTP server")
	}

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

func startHTTPServer(ctx context.Context, cfg config.Config) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		ReadTimeout:  cfg.Redis.Timeout,
		WriteTimeout: cfg.Redis.Timeout,
	})
	defer redisClient.Close()

	endpts := makeEndpoints(ctx, &cfg, redisClient)
	router := transport.MakeHTTPRouter(&cfg, endpts, redis_rate.NewLimiter(redisClient))
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	if err := server.Shutdown(context.WithoutCancel(ctx)); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}

func makeEndpoints(ctx context.Context, cfg *config.Config, redisClient *redis.Client) endpoints.Endpoints {
	// init validator
	if err := dto.InitValidator(); err != nil {
		slog.ErrorContext(ctx, "failed to init validator", slog.String("error", err.Error()))
		panic(err)
	}

	// init service endpoint
	return endpoints.Endpoints{
		RecommendationEndpoint: makeRecommendationEndpoint(ctx, cfg, redisClient),
	}
}

// token shared across instances through redis
func initTokenCache(cfg *config.Config, redisClient *redis.Client) *auth.TokenCache {
	acquirer := auth.NewClientCredentialsAcquirer(cfg.Amadeus.TokenURL,
		cfg.Amadeus.ClientID, cfg.Amadeus.ClientSecret, cfg.Amadeus.Timeout)

	return auth.NewTokenCache(amadeus.ProviderName, acquirer,
		auth.WithStore(auth.NewRedisTokenStore(redisClient), cfg.Token.LockTimeout),
		auth.WithRefreshSkew(cfg.Token.RefreshSkew),
	)
}

func makeRecommendationEndpoint(ctx context.Context, cfg *config.Config,
	redisClient *redis.Client) endpoints.RecommendationEndpoint {

	// sources
	awardSource := seatsaero.NewProvider(offersource.SourceConfig{
		BaseURL:    cfg.SeatsAero.BaseURL,
		APIKey:     cfg.SeatsAero.APIKey,
		Timeout:    cfg.SeatsAero.Timeout,
		MaxRetries: cfg.SeatsAero.MaxRetries,
	}, cfg.SeatsAero.MaxPages, cfg.SeatsAero.CADToUSD)

	cashSource := amadeus.NewProvider(offersource.SourceConfig{
		BaseURL:    cfg.Amadeus.BaseURL,
		Timeout:    cfg.Amadeus.Timeout,
		MaxRetries: cfg.Amadeus.MaxRetries,
	}, amadeus.Options{
		MaxResults:        cfg.Amadeus.MaxResults,
		RelaxNonstopRetry: cfg.Amadeus.RelaxNonstopRetry,
		OneWayFallback:    cfg.Amadeus.OneWayFallback,
	})

	policy, err := offer.ParseUnmatchedPolicy(cfg.Recommendation.UnmatchedCashPolicy)
	if err != nil {
		slog.ErrorContext(ctx, "invalid unmatched cash policy", slog.String("error", err.Error()))
		panic(err)
	}

	// service
	recommendationService := service.NewRecommendationService(
		awardSource,
		cashSource,
		initTokenCache(cfg, redisClient),
		offer.Valuator{
			TaxCapRatio: cfg.Recommendation.TaxCapRatio,
			Policy:      policy,
		},
		offer.Ranker{
			Limit: cfg.Recommendation.Limit,
			Transfer: offer.TransferRule{
				PrimarySource:   cfg.Transfer.PrimarySource,
				SecondarySource: cfg.Transfer.SecondarySource,
				PrimaryPrograms: cfg.Transfer.PrimaryPrograms,
				PrimaryAirlines: cfg.Transfer.PrimaryAirlines,
			},
		},
		cfg.Recommendation.ApplyPreferenceFilter,
	)

	// endpoint
	return endpoints.MakeRecommendationEndpoint(recommendationService)
}
