package seatsaero

import "github.com/ijalalfrz/award-flight-recommender/internal/pkg/offer"

// CabinAvailability is the typed view of one cabin's columns of an Availability row.
type CabinAvailability struct {
	Available      bool
	MileageCost    int64
	TotalTaxes     int64
	TaxesCurrency  string
	Direct         bool
	Airlines       string
	DirectAirlines string
	RemainingSeats int
}

// CabinSchema maps a cabin to the seats.aero column set that describes it.
type CabinSchema struct {
	Cabin offer.Cabin
	// Prefix is the column prefix, e.g. "Y" for YAvailable.
	Prefix string
	// QueryName is the value of the cabin query parameter.
	QueryName string
	project   func(a Availability) CabinAvailability
}

// Project reads the cabin's columns out of a raw row. The per-cabin taxes
// currency falls back to the row-level currency.
func (s CabinSchema) Project(a Availability) CabinAvailability {
	ca := s.project(a)
	if ca.TaxesCurrency == "" {
		ca.TaxesCurrency = a.TaxesCurrency
	}

	return ca
}

var (
	economySchema = CabinSchema{
		Cabin:     offer.CabinEconomy,
		Prefix:    "Y",
		QueryName: "economy",
		project: func(a Availability) CabinAvailability {
			return CabinAvailability{
				Available:      a.YAvailable,
				MileageCost:    a.YMileageCostRaw,
				TotalTaxes:     a.YTotalTaxes,
				TaxesCurrency:  a.YTaxesCurrency,
				Direct:         a.YDirect,
				Airlines:       a.YAirlines,
				DirectAirlines: a.YDirectAirlines,
				RemainingSeats: a.YRemainingSeats,
			}
		},
	}

	premiumEconomySchema = CabinSchema{
		Cabin:     offer.CabinPremiumEconomy,
		Prefix:    "W",
		QueryName: "premium",
		project: func(a Availability) CabinAvailability {
			return CabinAvailability{
				Available:      a.WAvailable,
				MileageCost:    a.WMileageCostRaw,
				TotalTaxes:     a.WTotalTaxes,
				TaxesCurrency:  a.WTaxesCurrency,
				Direct:         a.WDirect,
				Airlines:       a.WAirlines,
				DirectAirlines: a.WDirectAirlines,
				RemainingSeats: a.WRemainingSeats,
			}
		},
	}

	businessSchema = CabinSchema{
		Cabin:     offer.CabinBusiness,
		Prefix:    "J",
		QueryName: "business",
		project: func(a Availability) CabinAvailability {
			return CabinAvailability{
				Available:      a.JAvailable,
				MileageCost:    a.JMileageCostRaw,
				TotalTaxes:     a.JTotalTaxes,
				TaxesCurrency:  a.JTaxesCurrency,
				Direct:         a.JDirect,
				Airlines:       a.JAirlines,
				DirectAirlines: a.JDirectAirlines,
				RemainingSeats: a.JRemainingSeats,
			}
		},
	}

	firstSchema = CabinSchema{
		Cabin:     offer.CabinFirst,
		Prefix:    "F",
		QueryName: "first",
		project: func(a Availability) CabinAvailability {
			return CabinAvailability{
				Available:      a.FAvailable,
				MileageCost:    a.FMileageCostRaw,
				TotalTaxes:     a.FTotalTaxes,
				TaxesCurrency:  a.FTaxesCurrency,
				Direct:         a.FDirect,
				Airlines:       a.FAirlines,
				DirectAirlines: a.FDirectAirlines,
				RemainingSeats: a.FRemainingSeats,
			}
		},
	}
)

// SchemaFor returns the column mapping for a cabin. Unsupported cabins use
// economy's mapping rather than failing the request.
func SchemaFor(cabin offer.Cabin) CabinSchema {
	switch cabin {
	case offer.CabinPremiumEconomy:
		return premiumEconomySchema
	case offer.CabinBusiness:
		return businessSchema
	case offer.CabinFirst:
		return firstSchema
	default:
		return economySchema
	}
}
