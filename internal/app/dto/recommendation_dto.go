package dto

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/exception"
)

const (
	TripTypeOneWay = "one-way"
	TripTypeRound  = "round"
)

type PartySize struct {
	Adults   int `json:"adults" validate:"min=1,max=9"`
	Children int `json:"children" validate:"min=0,max=9"`
}

func (p PartySize) Total() int {
	return p.Adults + p.Children
}

// SearchRequest is the body of a recommendation search.
type SearchRequest struct {
	PartySize                  PartySize        `json:"partySize"`
	Origin                     string           `json:"origin" validate:"required,iata"`
	Destination                string           `json:"destination" validate:"required,iata,nefield=Origin"`
	DepartureDate              string           `json:"departureDate" validate:"required,datetime=2006-01-02"`
	ReturnDate                 string           `json:"returnDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TripType                   string           `json:"tripType" validate:"required,oneof=one-way round"`
	PreferredCabins            []string         `json:"preferredCabins" validate:"required,min=1,dive,required"`
	Nonstop                    *bool            `json:"nonstop,omitempty"`
	ArrivalDeparturePreference string           `json:"arrivalDeparturePreference,omitempty" validate:"omitempty,oneof=flexible morning afternoon evening"`
	PointsBalance              map[string]int64 `json:"pointsBalance" validate:"dive,gte=0"`
}

func (s *SearchRequest) Bind(r *http.Request) error {
	s.Origin = strings.ToUpper(strings.TrimSpace(s.Origin))
	s.Destination = strings.ToUpper(strings.TrimSpace(s.Destination))
	s.TripType = strings.ToLower(strings.TrimSpace(s.TripType))
	s.ArrivalDeparturePreference = strings.ToLower(strings.TrimSpace(s.ArrivalDeparturePreference))

	return s.Validate()
}

func (s *SearchRequest) Validate() error {
	if err := ValidateSingleError(s); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	if s.TripType == TripTypeRound {
		if s.ReturnDate == "" {
			return exception.ApplicationError{
				StatusCode: http.StatusBadRequest,
				Message:    "returnDate is required for round trips",
			}
		}

		// both dates are validated as YYYY-MM-DD, so they compare lexically
		if s.ReturnDate < s.DepartureDate {
			return exception.ApplicationError{
				StatusCode: http.StatusBadRequest,
				Message:    "returnDate must not be before departureDate",
			}
		}
	}

	return nil
}

func (s SearchRequest) IsRoundTrip() bool {
	return s.TripType == TripTypeRound
}

type Duration struct {
	TotalMinutes int    `json:"total_minutes"`
	Formatted    string `json:"formatted"`
}

// Recommendation is one ranked way to book the trip. A recommendation with
// Error set encodes as {"error": "..."} only.
type Recommendation struct {
	Airline             string    `json:"airline"`
	FlightNumber        string    `json:"flight_number,omitempty"`
	Program             string    `json:"program"`
	Cabin               string    `json:"cabin"`
	Origin              string    `json:"origin"`
	Destination         string    `json:"destination"`
	Nonstop             bool      `json:"nonstop"`
	DepartureDate       string    `json:"departure_date"`
	DepartureTime       string    `json:"departure_time"`
	ArrivalTime         string    `json:"arrival_time"`
	ReturnDate          string    `json:"return_date,omitempty"`
	ReturnDepartureTime string    `json:"return_departure_time,omitempty"`
	ReturnArrivalTime   string    `json:"return_arrival_time,omitempty"`
	PointsUsed          int64     `json:"points_used"`
	CashPrice           *float64  `json:"cash_price"`
	FormattedCashPrice  string    `json:"formatted_cash_price,omitempty"`
	TaxesFees           float64   `json:"taxes_fees"`
	CPP                 float64   `json:"cpp"`
	SeatsAvailable      int       `json:"seats_available"`
	Duration            *Duration `json:"duration,omitempty"`
	TransferFrom        string    `json:"transfer_from,omitempty"`
	PaymentType         string    `json:"payment_type"`

	Error string `json:"-"`
}

func (r Recommendation) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(ErrorResponse{Error: r.Error})
	}

	type recommendation Recommendation
	return json.Marshal(recommendation(r))
}

type Metadata struct {
	TotalResults     int `json:"total_results"`
	SourcesQueried   int `json:"sources_queried"`
	SourcesSucceeded int `json:"sources_succeeded"`
	SourcesFailed    int `json:"sources_failed"`
	SearchTimeMs     int `json:"search_time_ms"`
}

// SearchResponse is the response struct for the recommendation endpoint
type SearchResponse struct {
	SearchRequest   SearchRequest    `json:"search_request"`
	Metadata        Metadata         `json:"metadata"`
	Recommendations []Recommendation `json:"recommendations"`
}
