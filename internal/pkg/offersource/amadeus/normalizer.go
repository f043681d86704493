package amadeus

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offer"
	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offersource"
	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/utils"
)

// Normalize converts a flight-offers response into cash offers. Points and
// taxes stay zero; they are only known after matching with an award offer.
// Offers that cannot be read are skipped.
func Normalize(response FlightOffersResponse, query offersource.CashQuery) []offer.Offer {
	results := make([]offer.Offer, 0, len(response.Data))

	for _, fo := range response.Data {
		normalized, err := normalizeOffer(fo, query)
		if err != nil {
			slog.Debug("failed to normalize flight offer", "id", fo.ID, "error", err)
			continue
		}
		results = append(results, normalized)
	}

	return results
}

func normalizeOffer(fo FlightOffer, query offersource.CashQuery) (offer.Offer, error) {
	if len(fo.Itineraries) == 0 || len(fo.Itineraries[0].Segments) == 0 {
		return offer.Offer{}, fmt.Errorf("offer has no outbound segments")
	}

	total, err := strconv.ParseFloat(fo.Price.Total, 64)
	if err != nil {
		return offer.Offer{}, fmt.Errorf("parse total price %q: %w", fo.Price.Total, err)
	}

	outbound := fo.Itineraries[0]
	first := outbound.Segments[0]
	last := outbound.Segments[len(outbound.Segments)-1]

	departureDate, departureTime, err := utils.SplitTimestamp(first.Departure.At)
	if err != nil {
		return offer.Offer{}, fmt.Errorf("departure: %w", err)
	}

	_, arrivalTime, err := utils.SplitTimestamp(last.Arrival.At)
	if err != nil {
		return offer.Offer{}, fmt.Errorf("arrival: %w", err)
	}

	duration, err := utils.ParseISODuration(outbound.Duration)
	if err != nil {
		duration = 0
	}

	result := offer.Offer{
		Kind:            offer.KindCash,
		Origin:          firstNonEmpty(first.Departure.IataCode, query.Origin),
		Destination:     firstNonEmpty(last.Arrival.IataCode, query.Destination),
		Airline:         first.CarrierCode,
		FlightNumber:    first.CarrierCode + first.Number,
		Cabin:           query.Cabin,
		Nonstop:         len(outbound.Segments) == 1,
		DepartureDate:   departureDate,
		DepartureTime:   departureTime,
		ArrivalTime:     arrivalTime,
		CashPrice:       offer.Price(total),
		SeatsAvailable:  fo.NumberOfBookableSeats,
		Program:         ProviderName,
		DurationMinutes: duration,
	}

	if query.IsRoundTrip() {
		if len(fo.Itineraries) < 2 || len(fo.Itineraries[1].Segments) == 0 {
			return offer.Offer{}, fmt.Errorf("round trip offer has no return segments")
		}

		ret := fo.Itineraries[1]
		returnDate, returnDeparture, err := utils.SplitTimestamp(ret.Segments[0].Departure.At)
		if err != nil {
			return offer.Offer{}, fmt.Errorf("return departure: %w", err)
		}

		_, returnArrival, err := utils.SplitTimestamp(ret.Segments[len(ret.Segments)-1].Arrival.At)
		if err != nil {
			return offer.Offer{}, fmt.Errorf("return arrival: %w", err)
		}

		result.ReturnDate = returnDate
		result.ReturnDepartureTime = returnDeparture
		result.ReturnArrivalTime = returnArrival
	}

	return result, nil
}

// PairOneWays combines separately priced outbound and return legs into round
// trips. An outbound leg is paired with the cheapest return leg of the same
// airline; legs of different airlines are never combined.
func PairOneWays(outbound []offer.Offer, returns []offer.Offer) []offer.Offer {
	results := make([]offer.Offer, 0, len(outbound))

	for _, out := range outbound {
		var (
			best  offer.Offer
			found bool
		)

		for _, ret := range returns {
			if ret.Airline != out.Airline || !ret.HasCashPrice() {
				continue
			}
			if !found || *ret.CashPrice < *best.CashPrice {
				best = ret
				found = true
			}
		}

		if !found || !out.HasCashPrice() {
			continue
		}

		paired := out
		paired.ReturnDate = best.DepartureDate
		paired.ReturnDepartureTime = best.DepartureTime
		paired.ReturnArrivalTime = best.ArrivalTime
		paired.CashPrice = offer.Price(*out.CashPrice + *best.CashPrice)
		if best.SeatsAvailable < paired.SeatsAvailable {
			paired.SeatsAvailable = best.SeatsAvailable
		}

		results = append(results, paired)
	}

	return results
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
