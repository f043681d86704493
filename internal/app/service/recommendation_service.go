package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ijalalfrz/award-flight-recommender/internal/app/dto"
	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offer"
	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offersource"
	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offersource/sourceutils"
	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/utils"
)

type TokenProvider interface {
	Get(ctx context.Context) (string, error)
	Refresh(ctx context.Context, rejected string) (string, error)
}

type leg string

const (
	legOutbound leg = "outbound"
	legReturn   leg = "return"
	legCash     leg = "cash"
)

type sourceQuery struct {
	Name   string
	Cabin  offer.Cabin
	Leg    leg
	search func(ctx context.Context) ([]offer.Offer, error)
}

type sourceResult struct {
	Query  sourceQuery
	Offers []offer.Offer
	Error  error
}

// cabinOffers holds everything fetched for one cabin.
type cabinOffers struct {
	Outbound []offer.Offer
	Returns  []offer.Offer
	Cash     []offer.Offer
}

type RecommendationService struct {
	AwardSource           offersource.AwardSource
	CashSource            offersource.CashSource
	Tokens                TokenProvider
	Valuator              offer.Valuator
	Ranker                offer.Ranker
	ApplyPreferenceFilter bool
}

func NewRecommendationService(awardSource offersource.AwardSource,
	cashSource offersource.CashSource,
	tokens TokenProvider,
	valuator offer.Valuator,
	ranker offer.Ranker,
	applyPreferenceFilter bool,
) *RecommendationService {
	return &RecommendationService{
		AwardSource:           awardSource,
		CashSource:            cashSource,
		Tokens:                tokens,
		Valuator:              valuator,
		Ranker:                ranker,
		ApplyPreferenceFilter: applyPreferenceFilter,
	}
}

// Recommend searches award and cash inventory for every preferred cabin and
// returns the best ways to book the trip
// Recommend godoc
// @Summary      Recommend flights
// @Tags         Recommendations
// @Description  Rank points and cash offers by cost per point
// @Param        request  body      dto.SearchRequest  true  "Search Request"
// @Success      200      {object}  dto.SearchResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      429      {object}  dto.ErrorResponse
// @Failure      502      {object}  dto.ErrorResponse
// @Router       /api/v1/recommendations [post]
func (s *RecommendationService) Recommend(
	ctx context.Context,
	req dto.SearchRequest,
) (dto.SearchResponse, error) {
	startTime := time.Now()

	// a missing token fails the whole request, the cash side cannot be queried without it
	token, err := s.Tokens.Get(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to obtain fare source token", slog.String("error", err.Error()))
		return dto.SearchResponse{}, ErrAuthenticationFailed.WithCause(err)
	}

	cabins := resolveCabins(ctx, req.PreferredCabins)
	queries := s.buildQueries(req, cabins, token)
	offersByCabin, numberOfFailedSources, err := s.fetchOffers(ctx, queries)
	if err != nil {
		slog.ErrorContext(ctx, "failed to refresh fare source token", slog.String("error", err.Error()))
		return dto.SearchResponse{}, err
	}

	partySize := req.PartySize.Total()

	var pointsOffers, cashOffers []offer.Offer
	for _, cabin := range cabins {
		fetched := offersByCabin[cabin]

		var matched []offer.Offer
		if req.IsRoundTrip() {
			matched = offer.MatchRoundTrip(fetched.Outbound, fetched.Returns, fetched.Cash, req.ReturnDate)
		} else {
			matched = offer.MatchOneWay(fetched.Outbound, fetched.Cash)
		}

		valued := s.Valuator.ValueAll(matched, partySize, req.IsRoundTrip())

		slog.DebugContext(ctx, "cabin offers valued",
			slog.String("cabin", string(cabin)),
			slog.Int("outbound", len(fetched.Outbound)),
			slog.Int("returns", len(fetched.Returns)),
			slog.Int("cash", len(fetched.Cash)),
			slog.Int("valued", len(valued)))

		pointsOffers = append(pointsOffers, valued...)
		cashOffers = append(cashOffers, fetched.Cash...)
	}

	if s.ApplyPreferenceFilter {
		pointsOffers = offer.FilterPreferences(ctx, pointsOffers, offer.Preferences{
			Nonstop:    req.Nonstop,
			TimeWindow: offer.TimeWindow(req.ArrivalDeparturePreference),
		})
	}

	ranked := s.Ranker.Recommend(pointsOffers, cashOffers, req.PointsBalance, req.Nonstop)

	recommendations := make([]dto.Recommendation, 0, len(ranked))
	for _, r := range ranked {
		recommendations = append(recommendations, toRecommendation(r))
	}

	if len(recommendations) == 0 {
		slog.InfoContext(ctx, "no offers matched preferences",
			slog.String("origin", req.Origin),
			slog.String("destination", req.Destination))
		recommendations = []dto.Recommendation{{Error: ErrNoOffersMatched.Message}}
	}

	return dto.SearchResponse{
		SearchRequest:   req,
		Recommendations: recommendations,
		Metadata: dto.Metadata{
			TotalResults:     len(ranked),
			SourcesQueried:   len(queries),
			SourcesSucceeded: len(queries) - numberOfFailedSources,
			SourcesFailed:    numberOfFailedSources,
			SearchTimeMs:     int(time.Since(startTime).Milliseconds()),
		},
	}, nil
}

// buildQueries issues, per cabin, the outbound award query, the return award
// query for round trips (route swapped, nonstop and cabin held) and the cash query.
func (s *RecommendationService) buildQueries(req dto.SearchRequest, cabins []offer.Cabin,
	token string,
) []sourceQuery {
	nonstop := req.Nonstop != nil && *req.Nonstop

	queries := make([]sourceQuery, 0, len(cabins)*3)
	for _, cabin := range cabins {
		outbound := offersource.AwardQuery{
			Origin:      req.Origin,
			Destination: req.Destination,
			Date:        req.DepartureDate,
			Cabin:       cabin,
			Nonstop:     nonstop,
		}
		queries = append(queries, sourceQuery{
			Name:  "award",
			Cabin: cabin,
			Leg:   legOutbound,
			search: func(ctx context.Context) ([]offer.Offer, error) {
				return s.AwardSource.SearchAwards(ctx, outbound)
			},
		})

		if req.IsRoundTrip() {
			inbound := offersource.AwardQuery{
				Origin:      req.Destination,
				Destination: req.Origin,
				Date:        req.ReturnDate,
				Cabin:       cabin,
				Nonstop:     nonstop,
			}
			queries = append(queries, sourceQuery{
				Name:  "award",
				Cabin: cabin,
				Leg:   legReturn,
				search: func(ctx context.Context) ([]offer.Offer, error) {
					return s.AwardSource.SearchAwards(ctx, inbound)
				},
			})
		}

		cash := offersource.CashQuery{
			Origin:        req.Origin,
			Destination:   req.Destination,
			DepartureDate: req.DepartureDate,
			Adults:        req.PartySize.Adults,
			Children:      req.PartySize.Children,
			Cabin:         cabin,
			Nonstop:       nonstop,
			Token:         token,
		}
		if req.IsRoundTrip() {
			cash.ReturnDate = req.ReturnDate
		}
		queries = append(queries, sourceQuery{
			Name:  "cash",
			Cabin: cabin,
			Leg:   legCash,
			search: func(ctx context.Context) ([]offer.Offer, error) {
				return s.searchFares(ctx, cash)
			},
		})
	}

	return queries
}

// searchFares retries once with a refreshed token when the cash source rejects
// the current one. A failed refresh is an authentication failure; a second
// rejection is an ordinary source failure.
func (s *RecommendationService) searchFares(ctx context.Context,
	query offersource.CashQuery,
) ([]offer.Offer, error) {
	offers, err := s.CashSource.SearchFares(ctx, query)
	if err == nil || !errors.Is(err, sourceutils.ErrSourceUnauthorized) {
		return offers, err
	}

	slog.WarnContext(ctx, "fare source rejected token, refreshing", slog.String("cabin", string(query.Cabin)))

	token, refreshErr := s.Tokens.Refresh(ctx, query.Token)
	if refreshErr != nil {
		return nil, ErrAuthenticationFailed.WithCause(errors.Join(err, refreshErr))
	}

	query.Token = token

	return s.CashSource.SearchFares(ctx, query)
}

// fetchOffers runs every query concurrently and joins once all of them have
// completed. A failed query contributes no offers. An authentication failure
// from any query is returned after the join.
func (s *RecommendationService) fetchOffers(ctx context.Context,
	queries []sourceQuery,
) (map[offer.Cabin]*cabinOffers, int, error) {
	results := make(chan sourceResult, len(queries))
	var wg sync.WaitGroup

	// timeout for each query is set in the source itself
	wg.Add(len(queries))
	for _, query := range queries {
		go func(q sourceQuery) {
			defer wg.Done()
			offers, err := q.search(ctx)
			results <- sourceResult{
				Query:  q,
				Offers: offers,
				Error:  err,
			}
		}(query)
	}

	// wait all go routine finish
	go func() {
		wg.Wait()
		close(results)
	}()

	offersByCabin := make(map[offer.Cabin]*cabinOffers)
	for _, q := range queries {
		if _, ok := offersByCabin[q.Cabin]; !ok {
			offersByCabin[q.Cabin] = &cabinOffers{}
		}
	}

	numberOfFailedSources := 0
	var authErr error
	for result := range results {
		if errors.Is(result.Error, ErrAuthenticationFailed) {
			authErr = result.Error
			continue
		}

		if result.Error != nil {
			slog.WarnContext(ctx, "source failed",
				slog.String("source", result.Query.Name),
				slog.String("cabin", string(result.Query.Cabin)),
				slog.String("leg", string(result.Query.Leg)),
				slog.Any("error", result.Error))
			numberOfFailedSources++
			continue
		}

		fetched := offersByCabin[result.Query.Cabin]
		switch result.Query.Leg {
		case legOutbound:
			fetched.Outbound = result.Offers
		case legReturn:
			fetched.Returns = result.Offers
		case legCash:
			fetched.Cash = result.Offers
		}
	}

	if authErr != nil {
		return nil, 0, authErr
	}

	return offersByCabin, numberOfFailedSources, nil
}

// resolveCabins parses and deduplicates the requested cabins, keeping their order.
func resolveCabins(ctx context.Context, requested []string) []offer.Cabin {
	seen := make(map[offer.Cabin]bool, len(requested))
	cabins := make([]offer.Cabin, 0, len(requested))

	for _, r := range requested {
		cabin, ok := offer.ParseCabin(r)
		if !ok {
			slog.WarnContext(ctx, "unknown cabin, using economy", slog.String("cabin", r))
		}

		if seen[cabin] {
			continue
		}
		seen[cabin] = true
		cabins = append(cabins, cabin)
	}

	return cabins
}

func toRecommendation(r offer.Recommendation) dto.Recommendation {
	rec := dto.Recommendation{
		Airline:             r.Airline,
		FlightNumber:        r.FlightNumber,
		Program:             r.Program,
		Cabin:               string(r.Cabin),
		Origin:              r.Origin,
		Destination:         r.Destination,
		Nonstop:             r.Nonstop,
		DepartureDate:       r.DepartureDate,
		DepartureTime:       r.DepartureTime,
		ArrivalTime:         r.ArrivalTime,
		ReturnDate:          r.ReturnDate,
		ReturnDepartureTime: r.ReturnDepartureTime,
		ReturnArrivalTime:   r.ReturnArrivalTime,
		PointsUsed:          r.PointsUsed,
		CashPrice:           r.CashPrice,
		TaxesFees:           roundTo(r.TaxesFees, 2),
		CPP:                 roundTo(r.CPP, 3),
		SeatsAvailable:      r.SeatsAvailable,
		TransferFrom:        r.TransferFrom,
		PaymentType:         string(r.PaymentType),
	}

	if r.CashPrice != nil {
		rec.FormattedCashPrice = utils.FormatUSD(*r.CashPrice)
	}

	if r.DurationMinutes > 0 {
		rec.Duration = &dto.Duration{
			TotalMinutes: r.DurationMinutes,
			Formatted:    utils.ConvertMinutesToDuration(int64(r.DurationMinutes)),
		}
	}

	return rec
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
