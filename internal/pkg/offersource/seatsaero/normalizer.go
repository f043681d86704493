package seatsaero

import (
	"strings"

	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offer"
	"github.com/ijalalfrz/award-flight-recommender/internal/pkg/offersource"
)

const baseCurrency = "USD"

// Normalize converts one page of availability rows into award offers for the
// queried cabin. A row is kept only when the cabin is available and its direct
// flag equals the requested nonstop flag exactly.
func Normalize(rows []Availability, query offersource.AwardQuery, cadToUSD float64) []offer.Offer {
	schema := SchemaFor(query.Cabin)
	results := make([]offer.Offer, 0, len(rows))

	for _, row := range rows {
		if query.Date != "" && row.Date != "" && row.Date != query.Date {
			continue
		}

		ca := schema.Project(row)
		if !ca.Available || ca.Direct != query.Nonstop {
			continue
		}

		airline := ca.Airlines
		if query.Nonstop {
			airline = ca.DirectAirlines
		}

		results = append(results, offer.Offer{
			Kind:           offer.KindAward,
			Origin:         firstNonEmpty(row.Route.OriginAirport, query.Origin),
			Destination:    firstNonEmpty(row.Route.DestinationAirport, query.Destination),
			Airline:        airline,
			Cabin:          schema.Cabin,
			Nonstop:        ca.Direct,
			DepartureDate:  firstNonEmpty(row.Date, query.Date),
			DepartureTime:  offer.NotAvailable,
			ArrivalTime:    offer.NotAvailable,
			PointsUsed:     ca.MileageCost,
			TaxesFees:      taxesInUSD(ca.TotalTaxes, ca.TaxesCurrency, cadToUSD),
			SeatsAvailable: ca.RemainingSeats,
			Program:        firstNonEmpty(row.Source, row.Route.Source),
		})
	}

	return results
}

// taxesInUSD converts minor units to USD. Non-USD amounts are treated as CAD,
// the only other currency the source reports. An empty currency means USD.
func taxesInUSD(minorUnits int64, currency string, cadToUSD float64) float64 {
	amount := float64(minorUnits) / 100

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" || currency == baseCurrency {
		return amount
	}

	return amount * cadToUSD
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
