package offer

import "strings"

// NotAvailable marks a departure or arrival time that no source could provide.
const NotAvailable = "N/A"

// Cabin is the closed set of cabin classes understood by every source.
type Cabin string

const (
	CabinEconomy        Cabin = "economy"
	CabinPremiumEconomy Cabin = "premium_economy"
	CabinBusiness       Cabin = "business"
	CabinFirst          Cabin = "first"
)

// ParseCabin maps a request cabin identifier to a Cabin. Unknown identifiers
// resolve to economy and report ok=false so the caller can log the fallback.
func ParseCabin(s string) (Cabin, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "economy", "coach", "y":
		return CabinEconomy, true
	case "premium", "premium_economy", "premium-economy", "premiumeconomy", "w":
		return CabinPremiumEconomy, true
	case "business", "j", "c":
		return CabinBusiness, true
	case "first", "f":
		return CabinFirst, true
	}

	return CabinEconomy, false
}

// Kind tells where an offer's prices came from.
type Kind string

const (
	KindAward   Kind = "award"
	KindCash    Kind = "cash"
	KindMatched Kind = "matched"
)

// Offer is the canonical itinerary record shared by the award and cash sources.
// An offer is either single-source (award or cash) or matched, carrying both
// point and cash pricing. CPP stays zero unless both prices are known.
type Offer struct {
	Kind         Kind
	Origin       string
	Destination  string
	Airline      string
	FlightNumber string
	Cabin        Cabin
	Nonstop      bool

	DepartureDate string
	DepartureTime string
	ArrivalTime   string

	ReturnDate          string
	ReturnDepartureTime string
	ReturnArrivalTime   string

	// PointsUsed is per itinerary and per person until the valuation step
	// scales it to the whole party and trip.
	PointsUsed     int64
	CashPrice      *float64
	TaxesFees      float64
	ReturnTaxes    float64
	SeatsAvailable int
	Program        string

	DurationMinutes int
	CPP             float64
}

// IsRoundTrip reports whether the offer carries a return leg.
func (o Offer) IsRoundTrip() bool {
	return o.ReturnDate != ""
}

// HasCashPrice reports whether a cash counterpart is attached.
func (o Offer) HasCashPrice() bool {
	return o.CashPrice != nil
}

// Price returns a pointer to a copy of amount, for use as Offer.CashPrice.
func Price(amount float64) *float64 {
	return &amount
}
