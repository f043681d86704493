package seatsaero

import (
	"context"
	"errors"
	"fmt"
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
	ProviderName   = "seats.aero"
	defaultBaseURL = "https://seats.aero"
	searchPath     = "/partnerapi/search"
	pageSize       = 500
)

// DefaultCADToUSD is used when no conversion rate is configured.
const DefaultCADToUSD = 0.72

type Provider struct {
	Name       string
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	MaxPages   int
	CADToUSD   float64
	httpClient *http.Client
}

func NewProvider(config offersource.SourceConfig, maxPages int, cadToUSD float64) *Provider {
	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if maxPages <= 0 {
		maxPages = 1
	}
	if cadToUSD <= 0 {
		cadToUSD = DefaultCADToUSD
	}

	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}

	return &Provider{
		Name:       ProviderName,
		BaseURL:    baseURL,
		APIKey:     strings.TrimSpace(config.APIKey),
		Timeout:    config.Timeout,
		MaxRetries: config.MaxRetries,
		MaxPages:   maxPages,
		CADToUSD:   cadToUSD,
		httpClient: client,
	}
}

// SearchAwards fetches award availability for one direction, following the
// pagination cursor up to MaxPages pages.
func (p *Provider) SearchAwards(ctx context.Context, query offersource.AwardQuery) ([]offer.Offer, error) {
	if p.APIKey == "" {
		return nil, errors.New("seats.aero api key is empty")
	}

	var (
		results []offer.Offer
		cursor  int64
		skip    int
	)

	for page := 0; page < p.MaxPages; page++ {
		reqURL, err := p.buildURL(query, cursor, skip)
		if err != nil {
			return nil, err
		}

		var response SearchResponse
		err = sourceutils.FetchJSON(ctx, p.httpClient, p.Name, p.MaxRetries,
			func(ctx context.Context) (*http.Request, error) {
				req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
				if err != nil {
					return nil, err
				}
				req.Header.Set("Partner-Authorization", p.APIKey)
				req.Header.Set("Accept", "application/json")
				return req, nil
			}, &response)
		if err != nil {
			return nil, fmt.Errorf("seats.aero search page %d: %w", page+1, err)
		}

		results = append(results, Normalize(response.Data, query, p.CADToUSD)...)

		if !response.HasMore || len(response.Data) == 0 {
			break
		}
		cursor = response.Cursor
		skip += len(response.Data)
	}

	if results == nil {
		results = []offer.Offer{}
	}

	return results, nil
}

func (p *Provider) buildURL(query offersource.AwardQuery, cursor int64, skip int) (string, error) {
	u, err := url.Parse(p.BaseURL + searchPath)
	if err != nil {
		return "", fmt.Errorf("parse seats.aero base url: %w", err)
	}

	q := u.Query()
	q.Set("origin_airport", strings.ToUpper(query.Origin))
	q.Set("destination_airport", strings.ToUpper(query.Destination))
	q.Set("start_date", query.Date)
	q.Set("end_date", query.Date)
	q.Set("cabin", SchemaFor(query.Cabin).QueryName)
	q.Set("only_direct_flights", strconv.FormatBool(query.Nonstop))
	q.Set("take", strconv.Itoa(pageSize))
	if cursor != 0 {
		q.Set("cursor", strconv.FormatInt(cursor, 10))
		q.Set("skip", strconv.Itoa(skip))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
