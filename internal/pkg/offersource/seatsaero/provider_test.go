package seatsaero

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offer"
	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offersource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchAwards_BuildsQueryAndNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/partnerapi/search", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("Partner-Authorization"))

		q := r.URL.Query()
		assert.Equal(t, "LHR", q.Get("origin_airport"))
		assert.Equal(t, "JFK", q.Get("destination_airport"))
		assert.Equal(t, "2026-11-10", q.Get("start_date"))
		assert.Equal(t, "2026-11-10", q.Get("end_date"))
		assert.Equal(t, "business", q.Get("cabin"))
		assert.Equal(t, "true", q.Get("only_direct_flights"))

		_, _ = w.Write([]byte(`{
			"data":[
				{"ID":"1","Date":"2026-11-10","Source":"american",
				 "Route":{"OriginAirport":"LHR","DestinationAirport":"JFK"},
				 "JAvailable":true,"JDirect":true,"JMileageCostRaw":57500,"JTotalTaxes":21000,
				 "JAirlines":"BA","JDirectAirlines":"BA","JRemainingSeats":2,"TaxesCurrency":"USD"},
				{"ID":"2","Date":"2026-11-10","Source":"american",
				 "JAvailable":true,"JDirect":false,"JMileageCostRaw":50000}
			],
			"count":2,"hasMore":false
		}`))
	}))
	defer srv.Close()

	p := NewProvider(offersource.SourceConfig{BaseURL: srv.URL, APIKey: "secret", Timeout: time.Second}, 3, 0.72)
	got, err := p.SearchAwards(context.Background(), offersource.AwardQuery{
		Origin: "lhr", Destination: "jfk", Date: "2026-11-10", Cabin: offer.CabinBusiness, Nonstop: true,
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "BA", got[0].Airline)
	assert.Equal(t, "LHR", got[0].Origin)
	assert.Equal(t, int64(57500), got[0].PointsUsed)
	assert.InDelta(t, 210.0, got[0].TaxesFees, 1e-9)
	assert.Equal(t, offer.CabinBusiness, got[0].Cabin)
}

func TestSearchAwards_FollowsCursorUpToMaxPages(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n > 1 {
			assert.Equal(t, "42", r.URL.Query().Get("cursor"))
		}
		_, _ = fmt.Fprintf(w, `{"data":[{"ID":"%d","Date":"2026-11-01","Source":"united",
			"YAvailable":true,"YMileageCostRaw":30000,"YAirlines":"UA"}],"hasMore":true,"cursor":42}`, n)
	}))
	defer srv.Close()

	p := NewProvider(offersource.SourceConfig{BaseURL: srv.URL, APIKey: "secret"}, 2, 0)
	got, err := p.SearchAwards(context.Background(), offersource.AwardQuery{
		Origin: "SFO", Destination: "NRT", Date: "2026-11-01", Cabin: offer.CabinEconomy,
	})

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSearchAwards_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewProvider(offersource.SourceConfig{BaseURL: srv.URL, APIKey: "bad"}, 1, 0)
	_, err := p.SearchAwards(context.Background(), offersource.AwardQuery{Origin: "SFO", Destination: "NRT"})
	assert.Error(t, err)

	noKey := NewProvider(offersource.SourceConfig{BaseURL: srv.URL}, 1, 0)
	_, err = noKey.SearchAwards(context.Background(), offersource.AwardQuery{Origin: "SFO", Destination: "NRT"})
	assert.Error(t, err)
}
