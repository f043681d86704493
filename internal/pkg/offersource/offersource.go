package offersource

import (
	"context"
	"net/http"
	"time"

	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offer"
)

// SourceConfig is the connection configuration shared by every upstream source.
type SourceConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	HTTPClient *http.Client
}

// AwardQuery is one directional award-inventory query.
type AwardQuery struct {
	Origin      string
	Destination string
	Date        string
	Cabin       offer.Cabin
	Nonstop     bool
}

// CashQuery is one cash-fare query. ReturnDate is empty for one-way trips.
type CashQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	Children      int
	Cabin         offer.Cabin
	Nonstop       bool
	// Token is the bearer token obtained by the caller for this request.
	Token string
}

func (q CashQuery) IsRoundTrip() bool {
	return q.ReturnDate != ""
}

// AwardSource searches loyalty-program award inventory for one direction.
type AwardSource interface {
	SearchAwards(ctx context.Context, query AwardQuery) ([]offer.Offer, error)
}

// CashSource searches cash fares priced in USD.
type CashSource interface {
	SearchFares(ctx context.Context, query CashQuery) ([]offer.Offer, error)
}
