package amadeus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offer"
	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offersource"
	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offersource/sourceutils"
)

const (
	ProviderName   = "amadeus"
	defaultBaseURL = "https://test.api.amadeus.com"
	searchPath     = "/v2/shopping/flight-offers"
	currencyCode   = "USD"
)

var travelClass = map[offer.Cabin]string{
	offer.CabinEconomy:        "ECONOMY",
	offer.CabinPremiumEconomy: "PREMIUM_ECONOMY",
	offer.CabinBusiness:       "BUSINESS",
	offer.CabinFirst:          "FIRST",
}

type Provider struct {
	Name       string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	MaxResults int
	// RelaxNonstopRetry retries an empty nonstop query allowing connections.
	RelaxNonstopRetry bool
	// OneWayFallback replaces an empty round-trip query with two one-way
	// queries paired by airline.
	OneWayFallback bool
	httpClient     *http.Client
}

type Options struct {
	MaxResults        int
	RelaxNonstopRetry bool
	OneWayFallback    bool
}

func NewProvider(config offersource.SourceConfig, opts Options) *Provider {
	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 50
	}

	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}

	return &Provider{
		Name:              ProviderName,
		BaseURL:           baseURL,
		Timeout:           config.Timeout,
		MaxRetries:        config.MaxRetries,
		MaxResults:        opts.MaxResults,
		RelaxNonstopRetry: opts.RelaxNonstopRetry,
		OneWayFallback:    opts.OneWayFallback,
		httpClient:        client,
	}
}

// SearchFares returns cash offers for the query, applying the configured
// retry policies when the upstream has nothing for the strict query.
func (p *Provider) SearchFares(ctx context.Context, query offersource.CashQuery) ([]offer.Offer, error) {
	if strings.TrimSpace(query.Token) == "" {
		return nil, errors.New("amadeus token is empty")
	}

	offers, err := p.search(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(offers) == 0 && query.Nonstop && p.RelaxNonstopRetry {
		slog.InfoContext(ctx, "no nonstop fares, retrying with connections",
			slog.String("cabin", string(query.Cabin)))

		relaxed := query
		relaxed.Nonstop = false
		if offers, err = p.search(ctx, relaxed); err != nil {
			return nil, err
		}
		query = relaxed
	}

	if len(offers) == 0 && query.IsRoundTrip() && p.OneWayFallback {
		slog.InfoContext(ctx, "no round trip fares, falling back to one-way pairs",
			slog.String("cabin", string(query.Cabin)))

		return p.searchOneWayPairs(ctx, query)
	}

	return offers, nil
}

func (p *Provider) searchOneWayPairs(ctx context.Context, query offersource.CashQuery) ([]offer.Offer, error) {
	outboundQuery := query
	outboundQuery.ReturnDate = ""

	returnQuery := query
	returnQuery.Origin, returnQuery.Destination = query.Destination, query.Origin
	returnQuery.DepartureDate = query.ReturnDate
	returnQuery.ReturnDate = ""

	outbound, err := p.search(ctx, outboundQuery)
	if err != nil {
		return nil, fmt.Errorf("outbound one-way: %w", err)
	}
	if len(outbound) == 0 {
		return []offer.Offer{}, nil
	}

	returns, err := p.search(ctx, returnQuery)
	if err != nil {
		return nil, fmt.Errorf("return one-way: %w", err)
	}

	return PairOneWays(outbound, returns), nil
}

func (p *Provider) search(ctx context.Context, query offersource.CashQuery) ([]offer.Offer, error) {
	reqURL, err := p.buildURL(query)
	if err != nil {
		return nil, err
	}

	var response FlightOffersResponse
	err = sourceutils.FetchJSON(ctx, p.httpClient, p.Name, p.MaxRetries,
		func(ctx context.Context) (*http.Request, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
			if err != nil {
				return nil, err
			}
			req.Header.Set("Authorization", "Bearer "+query.Token)
			req.Header.Set("Accept", "application/vnd.amadeus+json")
			return req, nil
		}, &response)
	if err != nil {
		return nil, fmt.Errorf("amadeus flight offers: %w", err)
	}

	return Normalize(response, query), nil
}

func (p *Provider) buildURL(query offersource.CashQuery) (string, error) {
	u, err := url.Parse(p.BaseURL + searchPath)
	if err != nil {
		return "", fmt.Errorf("parse amadeus base url: %w", err)
	}

	adults := query.Adults
	if adults < 1 {
		adults = 1
	}

	class, ok := travelClass[query.Cabin]
	if !ok {
		class = travelClass[offer.CabinEconomy]
	}

	q := u.Query()
	q.Set("originLocationCode", strings.ToUpper(query.Origin))
	q.Set("destinationLocationCode", strings.ToUpper(query.Destination))
	q.Set("departureDate", query.DepartureDate)
	if query.IsRoundTrip() {
		q.Set("returnDate", query.ReturnDate)
	}
	q.Set("adults", strconv.Itoa(adults))
	if query.Children > 0 {
		q.Set("children", strconv.Itoa(query.Children))
	}
	q.Set("travelClass", class)
	q.Set("nonStop", strconv.FormatBool(query.Nonstop))
	q.Set("currencyCode", currencyCode)
	q.Set("max", strconv.Itoa(p.MaxResults))
	u.RawQuery = q.Encode()

	return u.String(), nil
}
