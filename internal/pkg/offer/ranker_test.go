package offer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestRanker_Rank_Closure(t *testing.T) {
	rule := DefaultTransferRule()

	offers := []Offer{
		{FlightNumber: "low", Program: "american", Airline: "BA", PointsUsed: 60000, CashPrice: Price(650), CPP: 1.07},
		{FlightNumber: "high", Program: "united", Airline: "UA", PointsUsed: 70000, CashPrice: Price(2500), CPP: 3.5},
		{FlightNumber: "mid", Program: "aeroplan", Airline: "AC", PointsUsed: 45000, CashPrice: Price(900), CPP: 1.9},
		{FlightNumber: "expensive", Program: "american", Airline: "AA", PointsUsed: 500000, CashPrice: Price(9000), CPP: 1.8},
		{FlightNumber: "unpriced", Program: "american", Airline: "AA", PointsUsed: 10000, CPP: 0},
		{FlightNumber: "free", Program: "american", Airline: "AA", PointsUsed: 0, CashPrice: Price(100)},
	}

	balances := map[string]int64{
		"chase":    80000,
		"amex":     50000,
		"american": 20000,
	}

	rankRequest := func(limit int, wantIDs []string) func(t *testing.T) {
		return func(t *testing.T) {
			in := make([]Offer, len(offers))
			copy(in, offers)

			got := Ranker{Limit: limit, Transfer: rule}.Rank(in, balances)
			gotIDs := make([]string, len(got))
			for i, r := range got {
				gotIDs[i] = r.FlightNumber
				assert.Equal(t, PaymentPoints, r.PaymentType)
			}

			if diff := cmp.Diff(wantIDs, gotIDs); diff != "" {
				t.Fatalf("Rank result mismatch (-want +got):\n%s", diff)
			}

			for i := 1; i < len(got); i++ {
				assert.GreaterOrEqual(t, got[i-1].CPP, got[i].CPP)
			}
		}
	}

	t.Run("sorted_by_cpp_desc", rankRequest(5, []string{"high", "mid", "low"}))
	t.Run("capped", rankRequest(2, []string{"high", "mid"}))
	t.Run("default_limit", rankRequest(0, []string{"high", "mid", "low"}))
}

func TestRanker_TransferFrom(t *testing.T) {
	r := Ranker{Limit: 5, Transfer: DefaultTransferRule()}
	got := r.Rank([]Offer{
		{Program: "united", Airline: "UA", PointsUsed: 1000, CashPrice: Price(100), CPP: 1},
		{Program: "american", Airline: "BA", PointsUsed: 1000, CashPrice: Price(100), CPP: 0.5},
	}, map[string]int64{"chase": 1000, "amex": 1000})

	assert.Len(t, got, 2)
	assert.Equal(t, "chase", got[0].TransferFrom)
	assert.Equal(t, "amex", got[1].TransferFrom)
}

func TestRanker_Recommend(t *testing.T) {
	r := Ranker{Limit: 5, Transfer: DefaultTransferRule()}
	nonstop := true

	cash := []Offer{
		{Kind: KindCash, FlightNumber: "cheap-connect", Nonstop: false, CashPrice: Price(300)},
		{Kind: KindCash, FlightNumber: "nonstop", Nonstop: true, CashPrice: Price(450)},
		{Kind: KindCash, FlightNumber: "pricey", Nonstop: true, CashPrice: Price(900)},
	}
	unaffordable := []Offer{
		{Program: "american", PointsUsed: 90000, CashPrice: Price(900), CPP: 1},
	}

	t.Run("points_win", func(t *testing.T) {
		got := r.Recommend([]Offer{{Program: "american", PointsUsed: 100, CashPrice: Price(10), CPP: 9}},
			cash, map[string]int64{"american": 100}, nil)
		assert.Len(t, got, 1)
		assert.Equal(t, PaymentPoints, got[0].PaymentType)
	})

	t.Run("cash_fallback_is_single_cheapest", func(t *testing.T) {
		got := r.Recommend(unaffordable, cash, map[string]int64{}, nil)
		assert.Len(t, got, 1)
		assert.Equal(t, PaymentCash, got[0].PaymentType)
		assert.Equal(t, "cheap-connect", got[0].FlightNumber)
		assert.Zero(t, got[0].PointsUsed)
	})

	t.Run("cash_fallback_honors_nonstop", func(t *testing.T) {
		got := r.Recommend(unaffordable, cash, map[string]int64{}, &nonstop)
		assert.Len(t, got, 1)
		assert.Equal(t, "nonstop", got[0].FlightNumber)
	})

	t.Run("nothing_qualifies", func(t *testing.T) {
		got := r.Recommend(unaffordable, nil, map[string]int64{}, nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestTransferRule_RelevantBalance(t *testing.T) {
	rule := DefaultTransferRule()
	balances := map[string]int64{"United": 10000, "chase": 5000, "amex": 7000}

	assert.Equal(t, int64(15000), rule.RelevantBalance(Offer{Program: "united", Airline: "UA"}, balances))
	assert.Equal(t, int64(7000), rule.RelevantBalance(Offer{Program: "american", Airline: "BA"}, balances))
}

func TestParseCabin_Closure(t *testing.T) {
	parseRequest := func(in string, want Cabin, wantOK bool) func(t *testing.T) {
		return func(t *testing.T) {
			got, ok := ParseCabin(in)
			assert.Equal(t, want, got)
			assert.Equal(t, wantOK, ok)
		}
	}

	t.Run("economy", parseRequest("economy", CabinEconomy, true))
	t.Run("premium_dash", parseRequest("Premium-Economy", CabinPremiumEconomy, true))
	t.Run("premium_short", parseRequest("premium", CabinPremiumEconomy, true))
	t.Run("business", parseRequest("BUSINESS", CabinBusiness, true))
	t.Run("first", parseRequest("first", CabinFirst, true))
	t.Run("unknown_falls_back_to_economy", parseRequest("suite", CabinEconomy, false))
}
