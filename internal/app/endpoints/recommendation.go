package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/award-flight-recommender/internal/app/dto"
)

type RecommendationService interface {
	Recommend(ctx context.Context, req dto.SearchRequest) (dto.SearchResponse, error)
}

type RecommendationEndpoint struct {
	Recommend endpoint.Endpoint
}

func MakeRecommendationEndpoint(service RecommendationService) RecommendationEndpoint {
	return RecommendationEndpoint{
		Recommend: makeRecommendEndpoint(service),
	}
}

func makeRecommendEndpoint(service RecommendationService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SearchRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		response, err := service.Recommend(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("recommendation service: %w", err)
		}

		return response, nil
	}
}
